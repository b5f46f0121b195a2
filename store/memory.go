package store

import (
	"context"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"cardroom.io/holdem/game"
)

type memoryEntry struct {
	snapshot []byte
	rev      uint64
}

// MemoryStore keeps table snapshots in process memory. Used by the script
// tests and single-process deployments.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]*memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string]*memoryEntry),
	}
}

func (m *MemoryStore) Load(ctx context.Context, code string) (*game.Table, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.tables[code]
	if !ok {
		return nil, 0, ErrTableNotFound
	}
	table := &game.Table{}
	if err := jsoniter.Unmarshal(entry.snapshot, table); err != nil {
		return nil, 0, errors.Wrapf(err, "Unable to unmarshal snapshot for table %s", code)
	}
	return table, entry.rev, nil
}

func (m *MemoryStore) Save(ctx context.Context, code string, table *game.Table, rev uint64) error {
	snapshot, err := jsoniter.Marshal(table)
	if err != nil {
		return errors.Wrapf(err, "Unable to marshal snapshot for table %s", code)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.tables[code]
	if !ok {
		if rev != 0 {
			return ErrRevisionConflict
		}
		m.tables[code] = &memoryEntry{snapshot: snapshot, rev: 1}
		return nil
	}
	if entry.rev != rev {
		return ErrRevisionConflict
	}
	entry.snapshot = snapshot
	entry.rev++
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[code]; !ok {
		return ErrTableNotFound
	}
	delete(m.tables, code)
	return nil
}
