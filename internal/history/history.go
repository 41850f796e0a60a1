// Package history keeps the most recent successful computations, newest first,
// and persists them through an injected Store.
package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daemonp/crc8calc/internal/crc8"
	"github.com/daemonp/crc8calc/internal/util"
)

const (
	DefaultLimit = 10
	maxInputLen  = 50
)

// ErrFailedResult is returned by Add for results that did not succeed.
var ErrFailedResult = errors.New("only successful results are recorded")

type Entry struct {
	ID        string      `json:"id" yaml:"id"`
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
	Input     string      `json:"input" yaml:"input"`
	Format    crc8.Format `json:"inputFormat" yaml:"inputFormat"`
	Algorithm string      `json:"algorithm" yaml:"algorithm"`
	Result    string      `json:"result" yaml:"result"`
	Full      crc8.Result `json:"fullResult" yaml:"fullResult"`
}

// Store persists the entry list as a whole.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
	Delete() error
}

type History struct {
	store   Store
	limit   int
	entries []Entry
	now     func() time.Time
	mu      sync.Mutex
}

// New loads the persisted entries from store. A limit below 1 means DefaultLimit.
func New(store Store, limit int) (*History, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return &History{
		store:   store,
		limit:   limit,
		entries: entries,
		now:     time.Now,
	}, nil
}

// Add records a successful result at the front of the list, evicting the
// oldest entries beyond the limit, and saves the list.
func (h *History) Add(input string, format crc8.Format, result crc8.Result) (Entry, error) {
	if !result.Success {
		return Entry{}, ErrFailedResult
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: h.now(),
		Input:     util.Truncate(input, maxInputLen),
		Format:    format,
		Algorithm: result.Algorithm,
		Result:    result.Hex,
		Full:      result,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]Entry, 0, h.limit)
	entries = append(entries, entry)
	entries = append(entries, h.entries...)
	if len(entries) > h.limit {
		entries = entries[:h.limit]
	}

	if err := h.store.Save(entries); err != nil {
		return Entry{}, fmt.Errorf("failed to save history: %w", err)
	}

	h.entries = entries
	return entry, nil
}

// List returns a copy of the entries, newest first.
func (h *History) List() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Get looks an entry up by ID.
func (h *History) Get(id string) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clear removes every entry and the persisted copy.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Delete(); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}

	h.entries = nil
	return nil
}

// MemoryStore is a Store that keeps entries in process memory.
type MemoryStore struct {
	entries []Entry
	mu      sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStore) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
	return nil
}

func (m *MemoryStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}
