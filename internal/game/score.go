package game

import (
	"log"
	"strconv"
)

// Store is a string key/value store that survives restarts.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

const (
	scoreKeyPrefix = "python_"
	keyTopScore    = scoreKeyPrefix + "topScore"
	keyLastScore   = scoreKeyPrefix + "lastScore"
)

// Scoreboard tracks the current and best score and persists both on every change.
type Scoreboard struct {
	store Store
	Top   int
	Score int
}

// NewScoreboard loads the saved scores. A nil store keeps scores in memory only.
func NewScoreboard(store Store) *Scoreboard {
	s := &Scoreboard{store: store}
	s.Top = s.load(keyTopScore)
	if s.Top == 0 {
		s.Top = TopScoreFloor
	}
	s.Score = s.load(keyLastScore)
	return s
}

func (s *Scoreboard) load(key string) int {
	if s.store == nil {
		return 0
	}
	v, ok, err := s.store.Get(key)
	if err != nil {
		log.Printf("load %s: %v", key, err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("load %s: bad value %q", key, v)
		return 0
	}
	return n
}

func (s *Scoreboard) save(key string, n int) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(key, strconv.Itoa(n)); err != nil {
		log.Printf("save %s: %v", key, err)
	}
}

// Add increases the score, saving it and, when beaten, the top score.
func (s *Scoreboard) Add(n int) {
	s.Score += n
	s.save(keyLastScore, s.Score)
	if s.Top < s.Score {
		s.Top = s.Score
		s.save(keyTopScore, s.Top)
	}
}

// Reset zeroes the current score for a new game. Nothing is saved until the next Add.
func (s *Scoreboard) Reset() {
	s.Score = 0
}
