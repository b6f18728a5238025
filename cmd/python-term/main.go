package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"python-arcade/internal/audio"
	"python-arcade/internal/game"
	"python-arcade/internal/resources"
	"python-arcade/internal/store"
	"python-arcade/internal/terminal"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	data := flag.String("data", "assets/python.data", "asset blob")
	layout := flag.String("layout", "", "asset layout JSON (default: built-in offsets)")
	db := flag.String("db", "python.db", "score database, empty to keep scores in memory")
	sound := flag.Bool("sound", false, "play sound on this machine")
	logFile := flag.String("log", "", "write the log here instead of discarding it")
	flag.Parse()

	if v := os.Getenv("PYTHON_DATA"); v != "" {
		*data = v
	}
	if v, ok := os.LookupEnv("PYTHON_DB"); ok {
		*db = v
	}

	// The screen belongs to the game, the log goes elsewhere
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("Log file error: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
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

	var player game.Audio = audio.NewTimed(set.Bank)
	if *sound {
		player = audio.NewSpeaker(set.Bank)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Terminal error: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Terminal error: %v", err)
	}
	defer screen.Fini()

	machine := game.NewMachine(game.Config{
		Assets: set.Assets,
		Audio:  player,
		Scores: game.NewScoreboard(scores),
	})
	front, err := terminal.New(screen, machine, set.Atlas)
	if err != nil {
		screen.Fini()
		log.SetOutput(os.Stderr)
		log.Fatalf("Startup error: %v", err)
	}
	front.Run()
}
