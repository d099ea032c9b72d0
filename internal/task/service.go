package task

import "todo-web/internal/model"

// Service applies the task list rules on top of a repository. Rejected and
// not-found operations come back as errors so callers can decide whether
// to surface them.
type Service struct {
	repo TaskRepository
}

func NewService(repo TaskRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(title, description string) (model.Task, error) {
	valid, err := ValidateTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	return s.repo.Create(valid, description), nil
}

func (s *Service) List() []model.Task {
	return s.repo.List()
}

func (s *Service) Complete(id int64) error {
	if !s.repo.Complete(id) {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Service) Delete(id int64) error {
	if !s.repo.Delete(id) {
		return ErrTaskNotFound
	}
	return nil
}
