package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/api/shared"
	"github.com/rchoud/task-manager-api/internal/domain"
	"github.com/rchoud/task-manager-api/internal/mocks"
	"github.com/rchoud/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskHandlerFixture struct {
	handler   *TaskHandler
	taskStore *mocks.MockTaskStore
	owner     *domain.User
	stranger  *domain.User
}

func newTaskHandlerFixture(t *testing.T) *taskHandlerFixture {
	t.Helper()

	newUser := func(email string) *domain.User {
		return &domain.User{
			ID:             uuid.New(),
			Name:           "Test User",
			Email:          email,
			HashedPassword: "bcrypt-hash",
		}
	}

	taskStore := mocks.NewMockTaskStore()
	return &taskHandlerFixture{
		handler:   NewTaskHandler(taskStore, nil),
		taskStore: taskStore,
		owner:     newUser("owner@example.com"),
		stranger:  newUser("stranger@example.com"),
	}
}

// router mounts the task routes under the given user, standing in for the
// auth middleware.
func (f *taskHandlerFixture) router(user *domain.User) http.Handler {
	r := chi.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(shared.WithUser(req.Context(), user, "token")))
			})
		})
	}
	r.Post("/tasks", f.handler.Create)
	r.Get("/tasks", f.handler.List)
	r.Get("/tasks/{id}", f.handler.Get)
	r.Patch("/tasks/{id}", f.handler.Update)
	r.Delete("/tasks/{id}", f.handler.Delete)
	r.Post("/tasks/image/{id}", f.handler.UploadImage)
	r.Get("/tasks/image/{id}", f.handler.GetImage)
	r.Delete("/tasks/image/{id}", f.handler.DeleteImage)
	return r
}

func (f *taskHandlerFixture) seedTask(t *testing.T, owner *domain.User, description string, completed bool) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner.ID, description, completed)
	require.NoError(t, err)
	require.NoError(t, f.taskStore.Create(context.Background(), task))
	return task
}

func TestTaskCreate(t *testing.T) {
	t.Parallel()

	t.Run("valid task", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/tasks", jsonBody(t, map[string]interface{}{
			"description": "buy milk",
		}))
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "buy milk", got.Description)
		assert.False(t, got.Completed)
		assert.Equal(t, f.owner.ID, got.OwnerID)
	})

	t.Run("owner in body is ignored", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/tasks", jsonBody(t, map[string]interface{}{
			"description": "buy milk",
			"owner":       f.stranger.ID.String(),
		}))
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, f.owner.ID, got.OwnerID, "ownership always comes from the requester")
	})

	t.Run("missing description", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/tasks", jsonBody(t, map[string]interface{}{
			"completed": true,
		}))
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/tasks", jsonBody(t, map[string]interface{}{
			"description": "buy milk",
		}))
		rec := httptest.NewRecorder()
		f.router(nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTaskList(t *testing.T) {
	t.Parallel()

	t.Run("only the requester's tasks", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		f.seedTask(t, f.owner, "mine 1", false)
		f.seedTask(t, f.owner, "mine 2", true)
		f.seedTask(t, f.stranger, "not mine", false)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []*domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 2)
		for _, task := range got {
			assert.Equal(t, f.owner.ID, task.OwnerID)
		}
	})

	t.Run("empty list is a JSON array", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("completed filter", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		f.seedTask(t, f.owner, "open", false)
		f.seedTask(t, f.owner, "done", true)

		req := httptest.NewRequest(http.MethodGet, "/tasks?completed=true", nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []*domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "done", got[0].Description)
	})

	t.Run("unparsable filter values are ignored", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		f.seedTask(t, f.owner, "open", false)
		f.seedTask(t, f.owner, "done", true)

		req := httptest.NewRequest(http.MethodGet, "/tasks?completed=banana&limit=banana&skip=-3", nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []*domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		for _, desc := range []string{"one", "two", "three"} {
			f.seedTask(t, f.owner, desc, false)
		}

		req := httptest.NewRequest(http.MethodGet, "/tasks?limit=1&skip=1", nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []*domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Len(t, got, 1)
	})
}

func TestParseListTasksOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  store.ListTasksOptions
	}{
		{"empty query", "", store.ListTasksOptions{}},
		{
			"sort descending",
			"sortBy=createdAt_desc",
			store.ListTasksOptions{SortBy: "createdAt", SortDirection: store.SortDescending},
		},
		{
			"sort ascending",
			"sortBy=description_asc",
			store.ListTasksOptions{SortBy: "description", SortDirection: store.SortAscending},
		},
		{
			"bare field defaults ascending",
			"sortBy=completed",
			store.ListTasksOptions{SortBy: "completed", SortDirection: store.SortAscending},
		},
		{
			"limit and skip",
			"limit=10&skip=20",
			store.ListTasksOptions{Limit: 10, Skip: 20},
		},
		{
			"negative values ignored",
			"limit=-1&skip=-5",
			store.ListTasksOptions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks?"+tt.query, nil)
			assert.Equal(t, tt.want, parseListTasksOptions(req))
		})
	}

	t.Run("completed pointer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks?completed=false", nil)
		opts := parseListTasksOptions(req)
		require.NotNil(t, opts.Completed)
		assert.False(t, *opts.Completed)
	})
}

func TestTaskGet(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture(t)
	task := f.seedTask(t, f.owner, "buy milk", false)

	t.Run("owner fetches own task", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks/"+task.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("someone else's task looks absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks/"+task.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router(f.stranger).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks/42", nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates allowed fields", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+task.ID.String(),
			jsonBody(t, map[string]interface{}{"completed": true}))
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := f.taskStore.GetByID(context.Background(), f.owner.ID, task.ID)
		require.NoError(t, err)
		assert.True(t, stored.Completed)
	})

	t.Run("disallowed field rejects whole update", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+task.ID.String(),
			jsonBody(t, map[string]interface{}{
				"completed": true,
				"priority":  "high",
			}))
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "priority")

		stored, err := f.taskStore.GetByID(context.Background(), f.owner.ID, task.ID)
		require.NoError(t, err)
		assert.False(t, stored.Completed, "rejected update must not half-apply")
	})

	t.Run("not owned looks absent", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+task.ID.String(),
			jsonBody(t, map[string]interface{}{"completed": true}))
		rec := httptest.NewRecorder()
		f.router(f.stranger).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		stored, err := f.taskStore.GetByID(context.Background(), f.owner.ID, task.ID)
		require.NoError(t, err)
		assert.False(t, stored.Completed)
	})
}

func TestTaskDelete(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes and receives snapshot", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		req := httptest.NewRequest(http.MethodDelete, "/tasks/"+task.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, task.ID, got.ID)

		_, err := f.taskStore.GetByID(context.Background(), f.owner.ID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("not owned looks absent", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		req := httptest.NewRequest(http.MethodDelete, "/tasks/"+task.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router(f.stranger).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		_, err := f.taskStore.GetByID(context.Background(), f.owner.ID, task.ID)
		assert.NoError(t, err, "the task must survive a stranger's delete")
	})
}

func TestTaskImage(t *testing.T) {
	t.Parallel()

	t.Run("upload normalizes and stores", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		body, contentType := multipartUpload(t, "image", "receipt.png", testPNG(t, 600, 400))
		req := httptest.NewRequest(http.MethodPost, "/tasks/image/"+task.ID.String(), body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := f.taskStore.GetImage(context.Background(), task.ID)
		require.NoError(t, err)

		decoded, err := png.Decode(bytes.NewReader(stored))
		require.NoError(t, err)
		assert.Equal(t, 250, decoded.Bounds().Dx())
		assert.Equal(t, 250, decoded.Bounds().Dy())
	})

	t.Run("upload to someone else's task looks absent", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		body, contentType := multipartUpload(t, "image", "receipt.png", testPNG(t, 100, 100))
		req := httptest.NewRequest(http.MethodPost, "/tasks/image/"+task.ID.String(), body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		f.router(f.stranger).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		_, err := f.taskStore.GetImage(context.Background(), task.ID)
		assert.ErrorIs(t, err, store.ErrTaskImageNotFound)
	})

	t.Run("fetch is public", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)
		img := testPNG(t, 250, 250)
		require.NoError(t, f.taskStore.SetImage(context.Background(), f.owner.ID, task.ID, img))

		req := httptest.NewRequest(http.MethodGet, "/tasks/image/"+task.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router(nil).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, img, rec.Body.Bytes())
	})

	t.Run("fetch without stored image", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)

		req := httptest.NewRequest(http.MethodGet, "/tasks/image/"+task.ID.String(), nil)
		rec := httptest.NewRecorder()
		f.router(nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete owner-scoped", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		task := f.seedTask(t, f.owner, "buy milk", false)
		require.NoError(t, f.taskStore.SetImage(context.Background(), f.owner.ID, task.ID, []byte("png")))

		strangerReq := httptest.NewRequest(http.MethodDelete, "/tasks/image/"+task.ID.String(), nil)
		strangerRec := httptest.NewRecorder()
		f.router(f.stranger).ServeHTTP(strangerRec, strangerReq)
		assert.Equal(t, http.StatusNotFound, strangerRec.Code)

		ownerReq := httptest.NewRequest(http.MethodDelete, "/tasks/image/"+task.ID.String(), nil)
		ownerRec := httptest.NewRecorder()
		f.router(f.owner).ServeHTTP(ownerRec, ownerReq)
		require.Equal(t, http.StatusOK, ownerRec.Code)

		_, err := f.taskStore.GetImage(context.Background(), task.ID)
		assert.ErrorIs(t, err, store.ErrTaskImageNotFound)
	})
}
