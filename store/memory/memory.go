package memory

import (
	"context"

	"github.com/alphadose/haxmap"
)

// Store keeps values in process memory, it is the session scoped provider
// and the stand-in used when no provider is configured.
type Store struct {
	m *haxmap.Map[string, []byte]
}

func New() *Store {
	return &Store{
		m: haxmap.New[string, []byte](),
	}
}

func (s *Store) Set(_ context.Context, k string, v []byte) error {
	s.m.Set(k, append([]byte(nil), v...))
	return nil
}

func (s *Store) Get(_ context.Context, k string) ([]byte, error) {
	v, ok := s.m.Get(k)
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (s *Store) Remove(_ context.Context, k string) error {
	s.m.Del(k)
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	keys := make([]string, 0, s.m.Len())
	s.m.ForEach(func(k string, _ []byte) bool {
		keys = append(keys, k)
		return true
	})
	if len(keys) > 0 {
		s.m.Del(keys...)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return int(s.m.Len())
}
