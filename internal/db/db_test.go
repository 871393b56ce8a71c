package db

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/balkashynov/ceoplan/internal/config"
)

type opener func(t *testing.T) Store

func backends() map[string]opener {
	return map[string]opener{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), false)
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return s
		},
		"bolt": func(t *testing.T) Store {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "test.bolt"))
			if err != nil {
				t.Fatalf("open bolt: %v", err)
			}
			return s
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			if _, ok, err := s.Get(ctx, "gameState"); err != nil || ok {
				t.Fatalf("missing key: ok=%v err=%v", ok, err)
			}

			if err := s.Set(ctx, "gameState", `{"currentPoints":1}`); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "gameState", `{"currentPoints":2}`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, ok, err := s.Get(ctx, "gameState")
			if err != nil || !ok || got != `{"currentPoints":2}` {
				t.Fatalf("get=%q ok=%v err=%v", got, ok, err)
			}

			if err := s.Delete(ctx, "gameState"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := s.Get(ctx, "gameState"); ok {
				t.Fatal("key still present after delete")
			}
			if err := s.Delete(ctx, "gameState"); err != nil {
				t.Fatalf("deleting a missing key should be a no-op: %v", err)
			}
		})
	}
}

func TestStoreKeysByPrefix(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			for _, k := range []string{
				"dailyPlan-2024-05-14",
				"habits-2024-05-14",
				"dailyPlan-2024-05-12",
				"gameState",
				"dailyPlan_2024",
			} {
				if err := s.Set(ctx, k, "{}"); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}

			keys, err := s.Keys(ctx, "dailyPlan-")
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			want := []string{"dailyPlan-2024-05-12", "dailyPlan-2024-05-14"}
			if !reflect.DeepEqual(keys, want) {
				t.Fatalf("keys=%v, want %v", keys, want)
			}

			all, err := s.Keys(ctx, "")
			if err != nil {
				t.Fatalf("all keys: %v", err)
			}
			if len(all) != 5 {
				t.Fatalf("all keys=%v", all)
			}
		})
	}
}

func TestStoreClosed(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			if err := s.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrStoreClosed) {
				t.Fatalf("set after close err=%v, want ErrStoreClosed", err)
			}
		})
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ceoplan.db")
	ctx := context.Background()

	s, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "habits-2024-05-14", `{"completed":["h1"]}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, ok, err := s.Get(ctx, "habits-2024-05-14")
	if err != nil || !ok || got != `{"completed":["h1"]}` {
		t.Fatalf("get=%q ok=%v err=%v", got, ok, err)
	}
}

func TestOpenCreatesHome(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "home")
	cfg := config.Config{Home: home, Store: config.StoreBolt}

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*BoltStore); !ok {
		t.Fatalf("store=%T, want *BoltStore", s)
	}

	mem, err := Open(config.Config{Store: config.StoreMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := mem.(*MemoryStore); !ok {
		t.Fatalf("store=%T, want *MemoryStore", mem)
	}
}
