package task

import "todo-web/internal/model"

type TaskRepository interface {
	Create(title, description string) model.Task
	List() []model.Task
	Complete(id int64) bool
	Delete(id int64) bool
}
