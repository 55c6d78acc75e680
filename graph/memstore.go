package graph

import "sync"

// MemStore is an in-memory Store. Writes are serialized behind one mutex
// (single-writer-at-a-time semantics); iteration order is insertion order so
// repeated runs over the same input report duplicates deterministically.
type MemStore struct {
	mu sync.Mutex

	entities    map[string]*Entity
	entityOrder []string

	relationships map[string]*Relationship
	relOrder      []string
}

func NewMemStore() *MemStore {
	return &MemStore{
		entities:      make(map[string]*Entity),
		relationships: make(map[string]*Relationship),
	}
}

func (s *MemStore) AddEntity(e *Entity) (*Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entities[e.Key]; ok {
		return existing, false
	}
	s.entities[e.Key] = e
	s.entityOrder = append(s.entityOrder, e.Key)
	return e, true
}

func (s *MemStore) FindEntity(key string) *Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entities[key]
}

func (s *MemStore) IterateEntities(f EntityFilter, fn func(*Entity) error) error {
	s.mu.Lock()
	keys := make([]string, len(s.entityOrder))
	copy(keys, s.entityOrder)
	s.mu.Unlock()

	for _, key := range keys {
		s.mu.Lock()
		e := s.entities[key]
		s.mu.Unlock()
		if e == nil {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemStore) AddRelationship(r *Relationship) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.relationships[r.Key]; ok {
		return false
	}
	s.relationships[r.Key] = r
	s.relOrder = append(s.relOrder, r.Key)
	return true
}

func (s *MemStore) IterateRelationships(f RelationshipFilter, fn func(*Relationship) error) error {
	s.mu.Lock()
	keys := make([]string, len(s.relOrder))
	copy(keys, s.relOrder)
	s.mu.Unlock()

	for _, key := range keys {
		s.mu.Lock()
		r := s.relationships[key]
		s.mu.Unlock()
		if r == nil {
			continue
		}
		if f.Class != "" && r.Class != f.Class {
			continue
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// EntityCount returns the number of stored entities.
func (s *MemStore) EntityCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}

// RelationshipCount returns the number of stored relationships.
func (s *MemStore) RelationshipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.relationships)
}
