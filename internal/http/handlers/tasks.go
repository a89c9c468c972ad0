package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskflow/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListTasks returns every task assigned to the date in the path.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.ListByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	Completed   *bool   `json:"completed"`
}

// CreateTask inserts a task and recomputes the day's stats before returning.
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in := domain.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	}
	if req.Completed != nil {
		in.Completed = *req.Completed
	}

	task, err := h.Tasks.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update. Only title, description, completed
// and completedAt may change; other keys in the body are ignored, matching
// the allow-list the frontend relies on.
func (h *Handler) UpdateTask(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch, err := buildTaskPatch(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func buildTaskPatch(body map[string]json.RawMessage) (domain.TaskPatch, error) {
	var patch domain.TaskPatch

	if raw, ok := body["title"]; ok {
		var title string
		if err := json.Unmarshal(raw, &title); err != nil {
			return patch, domain.NewValidationError("title", "must be a string")
		}
		patch.Title = &title
	}
	if raw, ok := body["description"]; ok {
		// nullable: an explicit null clears the description
		var desc *string
		if err := json.Unmarshal(raw, &desc); err != nil {
			return patch, domain.NewValidationError("description", "must be a string or null")
		}
		patch.Description = desc
		patch.SetDescription = true
	}
	if raw, ok := body["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			return patch, domain.NewValidationError("completed", "must be a boolean")
		}
		patch.Completed = &completed
	}
	if raw, ok := body["completedAt"]; ok {
		var ts *time.Time
		if err := json.Unmarshal(raw, &ts); err != nil {
			return patch, domain.NewValidationError("completedAt", "must be an RFC 3339 timestamp or null")
		}
		patch.CompletedAt = ts
		patch.SetCompletedAt = true
	}

	return patch, nil
}

// DeleteTask removes a task and recomputes the day's stats.
func (h *Handler) DeleteTask(c *gin.Context) {
	deleted, err := h.Tasks.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
