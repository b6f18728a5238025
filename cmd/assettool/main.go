package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"python-arcade/internal/audio"
	"python-arcade/internal/game"
	"python-arcade/internal/grid"
	"python-arcade/internal/maps"
	"python-arcade/internal/render"
)

var (
	layoutPath = flag.String("layout", "", "asset layout JSON (default: built-in offsets)")
	legendPath = flag.String("legend", "", "legend JSON merged over the built-in legend")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: assettool validate <blob>")
			os.Exit(1)
		}
		os.Exit(runValidate(args[0]))
	case "viz":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: assettool viz <blob> <plane>")
			os.Exit(1)
		}
		runViz(args[0], args[1])
	case "stats":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: assettool stats <blob>")
			os.Exit(1)
		}
		runStats(args[0])
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: assettool all <blob>")
			os.Exit(1)
		}
		os.Exit(runAll(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: assettool [-layout file] [-legend file] <command> <blob> [plane]

Commands:
  validate <blob>          Check the layout, atlas and every level's start state
  viz      <blob> <plane>  Render a plane as colored ASCII art ("-" for the built-in assets)
  stats    <blob>          Show cell distribution per plane and sample lengths
  all      <blob>          Run validate, then viz + stats for every plane`)
}

// open loads the blob, or the built-in assets for "-".
func open(path string) (*maps.Assets, error) {
	if path == "-" {
		return maps.DefaultAssets(), nil
	}
	layout := maps.DefaultLayout()
	if *layoutPath != "" {
		l, err := maps.LoadLayout(*layoutPath)
		if err != nil {
			return nil, err
		}
		layout = l
	}
	return maps.Load(path, layout)
}

func legend() maps.Legend {
	if *legendPath == "" {
		return maps.DefaultLegend()
	}
	l, err := maps.LoadLegend(*legendPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return l
}

func mustOpen(path string) *maps.Assets {
	a, err := open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

// --- validate ---

func runValidate(path string) int {
	a, err := open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}
	fmt.Printf("Layout OK (%d bytes, %d planes, %d samples)\n", a.Size(), len(a.Layout.Planes), a.SampleCount())

	errors := 0
	if len(a.Atlas()) > 0 {
		if _, err := render.LoadAtlas(a.Atlas()); err != nil {
			fmt.Printf("  ERROR: atlas: %v\n", err)
			errors++
		}
	} else {
		fmt.Println("  WARN: no atlas, fallback sprites will be used")
	}

	for n := 0; n < maps.Levels; n++ {
		fmt.Printf("Validating level %d...\n", n)
		l := game.NewLevel(n, game.StartLives, a, rand.New(rand.NewSource(1)), game.LevelEvents{})
		errs := 0

		// Check the crawler starts on open ground
		for _, c := range l.Crawler.Cells() {
			if l.Background.At(c[0], c[1]) != maps.TileGround {
				fmt.Printf("  ERROR: crawler cell (%d,%d) is not ground\n", c[0], c[1])
				errs++
			}
		}

		// Check prey stand on ground
		for _, p := range l.Roster.All() {
			if l.Background.At(p.X, p.Y) != maps.TileGround {
				fmt.Printf("  ERROR: prey at (%d,%d) is not on ground\n", p.X, p.Y)
				errs++
			}
		}

		// Check food lies on ground
		food := l.FoodCells()
		for _, i := range food {
			if l.Background.Cells[i] != maps.TileGround {
				fmt.Printf("  ERROR: food at (%d,%d) is not on ground\n", i%game.Cols, i/game.Cols)
				errs++
			}
		}

		if errs == 0 {
			fmt.Printf("  OK (%d prey, %d food)\n", l.Roster.Len(), len(food))
		}
		errors += errs
	}

	if errors > 0 {
		fmt.Printf("\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Printf("\nAll %d levels valid\n", maps.Levels)
	return 0
}

// --- viz ---

// ansiColor returns the ANSI escape for the given code.
func ansiColor(code int) string {
	return fmt.Sprintf("\033[%dm", code)
}

func runViz(path, name string) {
	a := mustOpen(path)
	def, plane, ok := a.Plane(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no plane %q\n", name)
		os.Exit(1)
	}
	vizPlane(def, plane, legend())
}

func vizPlane(def maps.PlaneDef, plane grid.Plane, lg maps.Legend) {
	fmt.Printf("%s (%dx%d at %d,%d)\n", def.Name, def.W, def.H, def.X, def.Y)
	for y := 0; y < plane.H; y++ {
		for x := 0; x < plane.W; x++ {
			tile := lg.Describe(plane.Data[y*plane.W+x])
			fmt.Print(ansiColor(tile.Fg), string(tile.Char), "\033[0m")
		}
		fmt.Println()
	}
}

// --- stats ---

func runStats(path string) {
	a := mustOpen(path)
	lg := legend()
	for _, def := range a.Layout.Planes {
		_, plane, _ := a.Plane(def.Name)
		planeStats(def, plane, lg)
		fmt.Println()
	}

	fmt.Printf("Atlas:   %d bytes\n", len(a.Atlas()))
	bank := audio.NewBank(a)
	for i := 0; i < a.SampleCount(); i++ {
		fmt.Printf("Sample %d: %7d bytes  %v\n", i, len(a.Sample(i)), bank.Duration(game.Sample(i)))
	}
}

func planeStats(def maps.PlaneDef, plane grid.Plane, lg maps.Legend) {
	total := plane.W * plane.H
	fmt.Printf("%s (%dx%d = %d cells)\n", def.Name, plane.W, plane.H, total)

	// Count by tile name
	counts := make(map[string]int)
	walkable := 0
	for _, v := range plane.Data {
		tile := lg.Describe(v)
		counts[tile.Name]++
		if tile.Walkable {
			walkable++
		}
	}

	type entry struct {
		name  string
		count int
	}
	var sorted []entry
	for name, count := range counts {
		sorted = append(sorted, entry{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	for _, e := range sorted {
		pct := float64(e.count) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Printf("  %-10s %4d (%5.1f%%) %s\n", e.name, e.count, pct, bar)
	}
	fmt.Printf("  Walkable: %d/%d (%.1f%%)\n", walkable, total, float64(walkable)/float64(total)*100)
}

// --- all ---

func runAll(path string) int {
	// Run validate first
	fmt.Println("=== VALIDATE ===")
	code := runValidate(path)
	if code != 0 {
		return code
	}

	a := mustOpen(path)
	lg := legend()
	for _, def := range a.Layout.Planes {
		_, plane, _ := a.Plane(def.Name)
		fmt.Printf("\n=== VIZ: %s ===\n", def.Name)
		vizPlane(def, plane, lg)
		fmt.Printf("\n=== STATS: %s ===\n", def.Name)
		planeStats(def, plane, lg)
	}
	return 0
}
