package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rchoud/task-manager-api/internal/api/shared"
	"github.com/rchoud/task-manager-api/internal/domain"
	"github.com/rchoud/task-manager-api/internal/platform/image"
	"github.com/rchoud/task-manager-api/internal/platform/logger"
	"github.com/rchoud/task-manager-api/internal/store"
)

// TaskHandler handles task CRUD and task image storage. Every mutating
// operation is scoped to the authenticated owner.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /tasks. The owner is always the authenticated user;
// the request body cannot assign the task to anyone else.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(user.ID, req.Description, req.Completed)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /tasks. Filters, sorting and pagination come from query
// parameters; absent or unparsable values degrade to "no filter" rather
// than erroring.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	opts := parseListTasksOptions(r)

	tasks, err := h.taskStore.List(r.Context(), user.ID, opts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PATCH /tasks/{id}. Only {description, completed} may be
// sent; any other field rejects the whole request and the task is left
// untouched.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	fields, err := shared.DecodeJSONFields(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	update, err := domain.ParseTaskUpdate(fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The update is validated against the current task before anything is
	// written, so a rejected request cannot half-apply.
	task, err := h.taskStore.GetByID(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch task")
		return
	}

	if err := task.Apply(update); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}. The deleted task's last snapshot is
// returned.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), user.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch task")
		return
	}

	if err := h.taskStore.Delete(r.Context(), user.ID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UploadImage handles POST /tasks/image/{id}. The uploaded file is normalized
// to a 250x250 PNG. Only the task's owner may attach an image; anyone else
// gets the same 404 an absent task would.
func (h *TaskHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	data, ok := readImageUpload(w, r, "image")
	if !ok {
		return
	}

	normalized, err := image.Normalize(data)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.SetImage(r.Context(), user.ID, taskID, normalized); err != nil {
		HandleAPIError(w, r, err, "Failed to store task image")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteImage handles DELETE /tasks/image/{id}, owner-scoped like upload.
func (h *TaskHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskStore.SetImage(r.Context(), user.ID, taskID, nil); err != nil {
		HandleAPIError(w, r, err, "Failed to clear task image")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetImage handles GET /tasks/image/{id}. Public, like avatar fetch.
func (h *TaskHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	img, err := h.taskStore.GetImage(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch task image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		log.Error("failed to write task image response", slog.String("error", err.Error()))
	}
}

// parseListTasksOptions extracts filter, sort and pagination options from
// the request's query string. Unparsable values are ignored.
func parseListTasksOptions(r *http.Request) store.ListTasksOptions {
	var opts store.ListTasksOptions
	q := r.URL.Query()

	if raw := q.Get("completed"); raw != "" {
		if completed, err := strconv.ParseBool(raw); err == nil {
			opts.Completed = &completed
		}
	}

	// sortBy is "field_dir", e.g. "createdAt_desc". The field itself never
	// contains an underscore, so the last one is the separator.
	if raw := q.Get("sortBy"); raw != "" {
		if idx := strings.LastIndex(raw, "_"); idx > 0 {
			opts.SortBy = raw[:idx]
			if raw[idx+1:] == "desc" {
				opts.SortDirection = store.SortDescending
			} else {
				opts.SortDirection = store.SortAscending
			}
		} else {
			opts.SortBy = raw
			opts.SortDirection = store.SortAscending
		}
	}

	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if raw := q.Get("skip"); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil && skip > 0 {
			opts.Skip = skip
		}
	}

	return opts
}
