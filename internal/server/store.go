package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/printforge/printboard/pkg/config"
	"github.com/printforge/printboard/pkg/errors"
	"github.com/printforge/printboard/pkg/route"
)

// Board is a stored generation result. Artifacts are kept inline; boards
// are small (a few hundred KB of SCAD and JSON at most).
type Board struct {
	ID        string                `json:"id" bson:"_id"`
	Name      string                `json:"name" bson:"name"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
	Config    config.KeyboardConfig `json:"config" bson:"config"`
	Coverage  route.CoverageStats   `json:"coverage_stats" bson:"coverage_stats"`
	KeyCount  int                   `json:"key_count" bson:"key_count"`
	Files     map[string][]byte     `json:"-" bson:"files"`
}

// FileKinds returns the stored artifact kinds, sorted.
func (b *Board) FileKinds() []string {
	kinds := make([]string, 0, len(b.Files))
	for kind := range b.Files {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Store persists generated boards. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put stores a board, replacing any existing board with the same ID.
	Put(ctx context.Context, board *Board) error

	// Get retrieves a board by ID. A missing board is a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Board, error)

	// Delete removes a board. Deleting an absent board is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is the default in-process store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]*Board
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string]*Board)}
}

func (s *MemoryStore) Put(ctx context.Context, board *Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[board.ID] = board
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "board %q not found", id)
	}
	return board, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
