package persona

import "testing"

func TestResolveKnownTag(t *testing.T) {
	store := NewMemoryStore(Seed())
	p := Resolve(store, "healing")
	if p.ID != "healing" {
		t.Fatalf("expected healing persona, got %s", p.ID)
	}
}

func TestResolveUnknownTagFallsBackToDefault(t *testing.T) {
	store := NewMemoryStore(Seed())
	p := Resolve(store, "cowboy")
	if p.ID != DefaultID {
		t.Fatalf("expected default persona %s, got %s", DefaultID, p.ID)
	}
	if p.SystemPrompt == "" {
		t.Fatal("default persona should carry a system prompt")
	}
}

func TestResolveEmptyStore(t *testing.T) {
	store := NewMemoryStore(nil)
	p := Resolve(store, "healing")
	if p.ID != DefaultID {
		t.Fatalf("expected bare default id, got %s", p.ID)
	}
}
