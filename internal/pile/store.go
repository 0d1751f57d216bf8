package pile

import (
	"errors"
	"fmt"
)

// ErrEmptyID is returned when a piece without an id is added to a Store.
var ErrEmptyID = errors.New("piece id is empty")

// Store is the arena of pieces for one round. Pieces are never deleted,
// only flagged removed; removal and risk fields can only be changed from
// inside this package.
type Store struct {
	pieces []*Piece
	byID   map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Add appends a piece. Duplicate and empty ids are rejected.
func (s *Store) Add(p *Piece) error {
	if p == nil || p.ID == "" {
		return ErrEmptyID
	}
	if _, dup := s.byID[p.ID]; dup {
		return fmt.Errorf("duplicate piece id %q", p.ID)
	}
	s.byID[p.ID] = len(s.pieces)
	s.pieces = append(s.pieces, p)
	return nil
}

// Get looks a piece up by id.
func (s *Store) Get(id string) (*Piece, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.pieces[i], true
}

// Pieces returns every piece in insertion order, removed ones included.
// The slice is shared with the store; callers must not append to it.
func (s *Store) Pieces() []*Piece {
	return s.pieces
}

// Active returns the pieces still in the pile.
func (s *Store) Active() []*Piece {
	out := make([]*Piece, 0, len(s.pieces))
	for _, p := range s.pieces {
		if !p.removed {
			out = append(out, p)
		}
	}
	return out
}

// Len is the total number of pieces, removed ones included.
func (s *Store) Len() int {
	return len(s.pieces)
}

// PieceAt returns the topmost active piece under the point, or nil.
// Later pieces are drawn on top, so the search runs backwards.
func (s *Store) PieceAt(x, y float64) *Piece {
	for i := len(s.pieces) - 1; i >= 0; i-- {
		p := s.pieces[i]
		if !p.removed && p.Contains(x, y) {
			return p
		}
	}
	return nil
}
