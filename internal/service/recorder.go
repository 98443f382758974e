package service

import "assassins/internal/domain"

// Recorder persists game records as they are produced. Implementations
// must tolerate being called from the single game loop only; the core
// never records concurrently.
type Recorder interface {
	RecordInformation(info *domain.Information) error
	RecordStatement(st *domain.Statement) error
	RecordVote(v domain.Vote) error
	RecordElimination(name, role, cause string, day int) error
}
