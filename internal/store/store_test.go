package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"python-arcade/internal/game"
)

type keyed interface {
	KV
	Keys(prefix string) ([]string, error)
}

func backends(t *testing.T) map[string]keyed {
	db, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return map[string]keyed{"sqlite": db, "memory": NewMemory()}
}

func TestGetSet(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("missing"); ok || err != nil {
				t.Errorf("Get(missing) = %v, %v", ok, err)
			}
			if err := kv.Set("a", "1"); err != nil {
				t.Fatal(err)
			}
			if err := kv.Set("a", "2"); err != nil {
				t.Fatal(err)
			}
			if v, ok, err := kv.Get("a"); v != "2" || !ok || err != nil {
				t.Errorf("Get(a) = %q, %v, %v", v, ok, err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"bob/x", "alice/y", "alice/x", "alicex"} {
				kv.Set(k, "v")
			}
			got, err := kv.Keys("alice/")
			if err != nil {
				t.Fatal(err)
			}
			if want := []string{"alice/x", "alice/y"}; !reflect.DeepEqual(got, want) {
				t.Errorf("Keys = %v, want %v", got, want)
			}
		})
	}
}

func TestPrefixedScoresAreSeparate(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			alice := game.NewScoreboard(WithPrefix(kv, "alice/"))
			bob := game.NewScoreboard(WithPrefix(kv, "bob/"))
			for i := 0; i < 7; i++ {
				alice.Add(game.ScorePrey)
			}
			bob.Add(game.ScorePrey)

			if again := game.NewScoreboard(WithPrefix(kv, "alice/")); again.Top != 700 || again.Score != 700 {
				t.Errorf("alice reloaded top=%d score=%d", again.Top, again.Score)
			}
			if again := game.NewScoreboard(WithPrefix(kv, "bob/")); again.Top != game.TopScoreFloor || again.Score != 100 {
				t.Errorf("bob reloaded top=%d score=%d", again.Top, again.Score)
			}
		})
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	db.Set("python_topScore", "900")
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if v, ok, _ := db.Get("python_topScore"); !ok || v != "900" {
		t.Errorf("after reopen = %q, %v", v, ok)
	}
}

var _ game.Store = (*DB)(nil)
var _ game.Store = (*Memory)(nil)
var _ game.Store = (*Prefixed)(nil)
