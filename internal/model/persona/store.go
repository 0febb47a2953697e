package persona

// Store exposes persona retrieval for HTTP handlers and the relay.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
}

// Resolve 按标签查找 persona；未识别的标签统一回退到默认 persona。
// 回退规则只在这里出现一处。
func Resolve(s Store, id string) Persona {
	if p, ok := s.FindByID(id); ok {
		return p
	}
	if p, ok := s.FindByID(DefaultID); ok {
		return p
	}
	return Persona{ID: DefaultID}
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the predefined persona list.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}
