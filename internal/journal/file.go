package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/tradejournal/internal/contracts"
)

// LoadSnapshotFile reads a JSON or YAML snapshot fixture.
// 확장자로 포맷 판단 (.yaml/.yml → YAML, 나머지 → JSON)
func LoadSnapshotFile(path string) (contracts.Snapshot, error) {
	var snap contracts.Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &snap)
	default:
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	return snap, nil
}

// WriteSnapshotFile writes a snapshot as indented JSON or YAML (by extension)
func WriteSnapshotFile(path string, snap contracts.Snapshot) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(snap)
	default:
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// FileSource serves a snapshot fixture from disk.
// 파일은 호출마다 다시 읽는다 (수정 즉시 반영)
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed journal source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadSnapshot reads the file and keeps the given account (all when empty)
func (f *FileSource) LoadSnapshot(ctx context.Context, accountID string) (contracts.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return contracts.Snapshot{}, err
	}

	snap, err := LoadSnapshotFile(f.path)
	if err != nil {
		return contracts.Snapshot{}, err
	}
	return snap.ForAccount(accountID), nil
}

// ListPositions implements contracts.JournalSource
func (f *FileSource) ListPositions(ctx context.Context, accountID string) ([]contracts.Position, error) {
	snap, err := f.LoadSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return snap.Positions, nil
}

// ListExecutions implements contracts.JournalSource
func (f *FileSource) ListExecutions(ctx context.Context, accountID string) ([]contracts.Execution, error) {
	snap, err := f.LoadSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return snap.Executions, nil
}
