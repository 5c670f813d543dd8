package contracts

// Snapshot is the immutable (positions, executions) pair handed to the analytics engine
// 파일 fixture (JSON/YAML) 포맷도 이 구조체를 그대로 사용
type Snapshot struct {
	Positions  []Position  `json:"positions" yaml:"positions"`
	Executions []Execution `json:"executions" yaml:"executions"`
}

// ForAccount returns a copy containing only records of the given account.
// An empty accountID keeps everything.
func (s *Snapshot) ForAccount(accountID string) Snapshot {
	if accountID == "" {
		return Snapshot{
			Positions:  append([]Position(nil), s.Positions...),
			Executions: append([]Execution(nil), s.Executions...),
		}
	}

	out := Snapshot{
		Positions:  make([]Position, 0, len(s.Positions)),
		Executions: make([]Execution, 0, len(s.Executions)),
	}
	for _, p := range s.Positions {
		if p.AccountID == accountID {
			out.Positions = append(out.Positions, p)
		}
	}
	for _, e := range s.Executions {
		if e.AccountID == accountID {
			out.Executions = append(out.Executions, e)
		}
	}
	return out
}

// ClosedCount returns the number of CLOSED positions
func (s *Snapshot) ClosedCount() int {
	n := 0
	for i := range s.Positions {
		if s.Positions[i].IsClosed() {
			n++
		}
	}
	return n
}
