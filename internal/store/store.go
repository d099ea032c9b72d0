package store

import (
	"sync"
	"time"

	"todo-web/internal/ids"
	"todo-web/internal/model"
)

// TaskStore keeps tasks in memory in insertion order. All methods are safe
// for concurrent use.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []model.Task
	seq   ids.Sequence
	now   func() time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create appends a new task. The caller is responsible for rejecting empty
// titles.
func (s *TaskStore) Create(title, description string) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.Task{
		ID:          s.seq.Next(),
		Title:       title,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *TaskStore) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Get(id int64) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Complete marks the first task with the given id as completed and reports
// whether one was found.
func (s *TaskStore) Complete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = true
			return true
		}
	}
	return false
}

// Delete removes every task with the given id and reports whether anything
// was removed.
func (s *TaskStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(s.tasks)
	clear(s.tasks[len(kept):])
	s.tasks = kept
	return removed
}
