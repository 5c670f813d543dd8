package journal

import (
	"context"

	"github.com/wonny/tradejournal/internal/contracts"
)

// MemorySource serves a fixed in-memory snapshot (demo data, tests)
type MemorySource struct {
	snap contracts.Snapshot
}

var (
	_ contracts.JournalSource = (*MemorySource)(nil)
	_ SnapshotLoader          = (*MemorySource)(nil)
)

// NewMemorySource wraps a snapshot. The snapshot is not copied.
func NewMemorySource(snap contracts.Snapshot) *MemorySource {
	return &MemorySource{snap: snap}
}

// LoadSnapshot returns the records of one account
func (m *MemorySource) LoadSnapshot(ctx context.Context, accountID string) (contracts.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return contracts.Snapshot{}, err
	}
	return m.snap.ForAccount(accountID), nil
}

// ListPositions returns the positions of one account
func (m *MemorySource) ListPositions(ctx context.Context, accountID string) ([]contracts.Position, error) {
	snap, err := m.LoadSnapshot(ctx, accountID)
	return snap.Positions, err
}

// ListExecutions returns the executions of one account
func (m *MemorySource) ListExecutions(ctx context.Context, accountID string) ([]contracts.Execution, error) {
	snap, err := m.LoadSnapshot(ctx, accountID)
	return snap.Executions, err
}
