package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"todo-web/internal/model"
	"todo-web/internal/task"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type listView struct {
	Tasks     []model.Task
	Completed int
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.service.List()

	view := listView{Tasks: tasks}
	for _, t := range tasks {
		if t.Completed {
			view.Completed++
		}
	}

	var buf bytes.Buffer
	if err := s.listTmpl.ExecuteTemplate(&buf, "index.html", view); err != nil {
		s.logger.Error("render_list_failed", map[string]any{
			"rid":   RequestIDFromContext(r.Context()),
			"error": err,
		})
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	title, description, err := readTaskForm(w, r, s.maxFormBytes)
	if err != nil {
		s.logger.Debug("task_create_skipped", map[string]any{
			"rid":    RequestIDFromContext(r.Context()),
			"reason": "invalid form",
			"error":  err,
		})
		redirectToList(w, r)
		return
	}

	created, err := s.service.Create(title, description)
	if err != nil {
		// Missing title is a silent no-op for the user.
		if errors.Is(err, task.ErrEmptyTitle) {
			s.logger.Debug("task_create_skipped", map[string]any{
				"rid":    RequestIDFromContext(r.Context()),
				"reason": err.Error(),
			})
		} else {
			s.logger.Error("task_create_failed", map[string]any{
				"rid":   RequestIDFromContext(r.Context()),
				"error": err,
			})
		}
		redirectToList(w, r)
		return
	}

	s.logger.Debug("task_created", map[string]any{
		"rid":     RequestIDFromContext(r.Context()),
		"task_id": created.ID,
	})
	redirectToList(w, r)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.logOutcome(r, "task_completed", id, s.service.Complete(id))
	redirectToList(w, r)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.logOutcome(r, "task_deleted", id, s.service.Delete(id))
	redirectToList(w, r)
}

// logOutcome records what happened to a complete/delete request. Unknown
// ids are not an error for the caller; they only show up in debug logs.
func (s *Server) logOutcome(r *http.Request, msg string, id int64, err error) {
	fields := map[string]any{
		"rid":     RequestIDFromContext(r.Context()),
		"task_id": id,
	}
	switch {
	case err == nil:
		s.logger.Debug(msg, fields)
	case errors.Is(err, task.ErrTaskNotFound):
		fields["reason"] = err.Error()
		s.logger.Debug(msg+"_skipped", fields)
	default:
		fields["error"] = err
		s.logger.Error(msg+"_failed", fields)
	}
}
