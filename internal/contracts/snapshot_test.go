package contracts

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSide_Direction(t *testing.T) {
	tests := []struct {
		side      Side
		wantLong  bool
		wantShort bool
	}{
		{SideBuy, true, false},
		{SideLong, true, false},
		{SideSell, false, true},
		{SideShort, false, true},
		{Side("FLAT"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.side), func(t *testing.T) {
			if got := tt.side.IsLong(); got != tt.wantLong {
				t.Errorf("IsLong() = %v, want %v", got, tt.wantLong)
			}
			if got := tt.side.IsShort(); got != tt.wantShort {
				t.Errorf("IsShort() = %v, want %v", got, tt.wantShort)
			}
		})
	}
}

func TestSnapshot_ForAccount(t *testing.T) {
	snap := &Snapshot{
		Positions: []Position{
			{ID: "p1", AccountID: "a", Status: PositionClosed},
			{ID: "p2", AccountID: "b", Status: PositionOpen},
			{ID: "p3", AccountID: "a", Status: PositionLiquidated},
		},
		Executions: []Execution{
			{ID: "e1", AccountID: "a"},
			{ID: "e2", AccountID: "b"},
		},
	}

	got := snap.ForAccount("a")
	if len(got.Positions) != 2 || len(got.Executions) != 1 {
		t.Fatalf("ForAccount(a) = %d positions, %d executions, want 2, 1", len(got.Positions), len(got.Executions))
	}

	all := snap.ForAccount("")
	if len(all.Positions) != 3 || len(all.Executions) != 2 {
		t.Errorf("ForAccount(\"\") should keep everything")
	}

	// 복사본이어야 함
	all.Positions[0].ID = "changed"
	if snap.Positions[0].ID != "p1" {
		t.Error("ForAccount must not alias the source slice")
	}

	if n := snap.ClosedCount(); n != 1 {
		t.Errorf("ClosedCount() = %d, want 1", n)
	}
}

func TestPosition_JSONOmitsAbsentFields(t *testing.T) {
	pos := Position{
		ID:       "p1",
		Status:   PositionOpen,
		Side:     SideLong,
		OpenedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		MaxSize:  "1.5",
	}

	data, err := json.Marshal(pos)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, key := range []string{"closedAt", "realizedPnL", "avgExitPrice"} {
		if strings.Contains(string(data), key) {
			t.Errorf("open position JSON should omit %s: %s", key, data)
		}
	}

	var decoded Position
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.ClosedAt != nil || decoded.Status != PositionOpen {
		t.Errorf("decoded position = %+v, want open without closedAt", decoded)
	}
}

