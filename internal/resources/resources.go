// Package resources loads everything a frontend needs from the asset blob,
// falling back to procedural assets when the blob is missing.
package resources

import (
	"log"

	"python-arcade/internal/audio"
	"python-arcade/internal/maps"
	"python-arcade/internal/render"
)

// Set is the loaded game data.
type Set struct {
	Assets *maps.Assets
	Atlas  *render.Atlas
	Bank   *audio.Bank
}

// Load reads the blob at dataPath. layoutPath may be empty for the built-in
// layout. Nothing here is fatal: missing parts are replaced and logged.
func Load(dataPath, layoutPath string) *Set {
	layout := maps.DefaultLayout()
	if layoutPath != "" {
		l, err := maps.LoadLayout(layoutPath)
		if err != nil {
			log.Printf("Could not load layout %s: %v, using the built-in layout", layoutPath, err)
		} else {
			layout = l
		}
	}

	assets, err := maps.Load(dataPath, layout)
	if err != nil {
		log.Printf("Could not load assets from %s: %v, using default assets", dataPath, err)
		assets = maps.DefaultAssets()
	}
	return FromAssets(assets)
}

// FromAssets decodes the atlas and samples of assets.
func FromAssets(assets *maps.Assets) *Set {
	s := &Set{Assets: assets}

	atlas, err := render.LoadAtlas(assets.Atlas())
	if err != nil {
		if len(assets.Atlas()) > 0 {
			log.Printf("Could not decode sprite atlas: %v, using fallback sprites", err)
		}
		atlas = render.FallbackAtlas()
	}
	s.Atlas = atlas

	s.Bank = audio.NewBank(assets)
	log.Printf("Assets loaded: %d bytes, %d samples", assets.Size(), assets.SampleCount())
	return s
}
