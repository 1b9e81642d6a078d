package querypod

import (
	"sync"
	"testing"
)

func TestGetOrCreateGeneratesFreshID(t *testing.T) {
	store := NewMemoryStore()

	id, history := store.GetOrCreate("")
	if id == "" {
		t.Fatal("expected a generated session id")
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(history))
	}

	id2, history2 := store.GetOrCreate("never-seen-before")
	if id2 == "" || id2 == "never-seen-before" {
		t.Fatalf("expected a freshly generated id for an unknown one, got %q", id2)
	}
	if len(history2) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(history2))
	}

	if id == id2 {
		t.Fatal("expected unique ids across calls")
	}
}

func TestGetOrCreateReturnsCommittedHistory(t *testing.T) {
	store := NewMemoryStore()
	id, _ := store.GetOrCreate("")

	committed := []Turn{UserTurn("hi"), AssistantTurn("hello")}
	store.Commit(id, committed)

	got, history := store.GetOrCreate(id)
	if got != id {
		t.Fatalf("expected id %q back, got %q", id, got)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(history))
	}
	if history[0] != committed[0] || history[1] != committed[1] {
		t.Fatalf("history mismatch: %v", history)
	}
}

func TestGetOrCreateReturnsACopy(t *testing.T) {
	store := NewMemoryStore()
	id, _ := store.GetOrCreate("")
	store.Commit(id, []Turn{UserTurn("hi")})

	_, history := store.GetOrCreate(id)
	history[0].Content = "mutated"

	_, again := store.GetOrCreate(id)
	if len(again) != 1 || again[0].Content != "hi" {
		t.Fatalf("stored history was mutated through a read copy: %v", again)
	}
}

func TestCommitLastWriterWins(t *testing.T) {
	store := NewMemoryStore()
	id, _ := store.GetOrCreate("")

	store.Commit(id, []Turn{UserTurn("first")})
	store.Commit(id, []Turn{UserTurn("second")})

	_, history := store.GetOrCreate(id)
	if len(history) != 1 || history[0].Content != "second" {
		t.Fatalf("expected last commit to win, got %v", history)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	id, _ := store.GetOrCreate("")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Commit(id, []Turn{UserTurn("q"), AssistantTurn("a")})
			_, _ = store.GetOrCreate(id)
		}()
	}
	wg.Wait()

	_, history := store.GetOrCreate(id)
	if len(history) != 2 {
		t.Fatalf("expected 2 turns after concurrent commits, got %d", len(history))
	}
}
