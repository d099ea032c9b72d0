package ids

import "sync/atomic"

// Sequence hands out task ids: 1, 2, 3, ... A value is never handed out
// twice, even after the task that carried it is deleted.
type Sequence struct {
	last atomic.Int64
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
