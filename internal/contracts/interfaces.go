package contracts

import "context"

// JournalSource supplies the positions/executions of one trading account
// ⭐ SSOT: 저장소 → analytics 입력 인터페이스
// Postgres, SQLite, 파일 구현이 모두 이 인터페이스를 따른다
type JournalSource interface {
	ListPositions(ctx context.Context, accountID string) ([]Position, error)
	ListExecutions(ctx context.Context, accountID string) ([]Execution, error)
}
