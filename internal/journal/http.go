package journal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wonny/tradejournal/internal/contracts"
	"github.com/wonny/tradejournal/pkg/httputil"
)

// HTTPSource fetches snapshots from a remote journal export endpoint.
// 응답 body 는 contracts.Snapshot JSON, accountId 는 query 로 전달
type HTTPSource struct {
	client  *httputil.Client
	baseURL string
}

// NewHTTPSource creates a remote journal source
func NewHTTPSource(client *httputil.Client, baseURL string) *HTTPSource {
	return &HTTPSource{client: client, baseURL: baseURL}
}

// LoadSnapshot fetches the snapshot of one account (all when empty)
func (h *HTTPSource) LoadSnapshot(ctx context.Context, accountID string) (contracts.Snapshot, error) {
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return contracts.Snapshot{}, fmt.Errorf("parse snapshot url: %w", err)
	}
	if accountID != "" {
		q := u.Query()
		q.Set("accountId", accountID)
		u.RawQuery = q.Encode()
	}

	var snap contracts.Snapshot
	if err := h.client.GetJSON(ctx, u.String(), &snap); err != nil {
		return contracts.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}

	// 서버가 필터링하지 않아도 결과는 해당 계정만
	return snap.ForAccount(accountID), nil
}

// ListPositions implements contracts.JournalSource
func (h *HTTPSource) ListPositions(ctx context.Context, accountID string) ([]contracts.Position, error) {
	snap, err := h.LoadSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return snap.Positions, nil
}

// ListExecutions implements contracts.JournalSource
func (h *HTTPSource) ListExecutions(ctx context.Context, accountID string) ([]contracts.Execution, error) {
	snap, err := h.LoadSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return snap.Executions, nil
}
