package main

import (
	"flag"
	"log"
	"os"

	"python-arcade/internal/audio"
	"python-arcade/internal/desktop"
	"python-arcade/internal/game"
	"python-arcade/internal/resources"
	"python-arcade/internal/store"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	data := flag.String("data", "assets/python.data", "asset blob")
	layout := flag.String("layout", "", "asset layout JSON (default: built-in offsets)")
	db := flag.String("db", "python.db", "score database, empty to keep scores in memory")
	mute := flag.Bool("mute", false, "no sound")
	flag.Parse()

	if v := os.Getenv("PYTHON_DATA"); v != "" {
		*data = v
	}
	if v, ok := os.LookupEnv("PYTHON_DB"); ok {
		*db = v
	}

	set := resources.Load(*data, *layout)

	var scores game.Store
	if *db != "" {
		s, err := store.Open(*db)
		if err != nil {
			log.Printf("Could not open %s: %v, scores will not be saved", *db, err)
		} else {
			defer s.Close()
			scores = s
		}
	}

	var sound game.Audio = audio.NewSpeaker(set.Bank)
	if *mute {
		sound = audio.NewTimed(set.Bank)
	}

	machine := game.NewMachine(game.Config{
		Assets: set.Assets,
		Audio:  sound,
		Scores: game.NewScoreboard(scores),
	})
	app, err := desktop.New(machine, set.Atlas)
	if err != nil {
		log.Fatalf("Startup error: %v", err)
	}
	if err := app.Run("Python"); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}
