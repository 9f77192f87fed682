package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListTasks_resolves_worker_names(t *testing.T) {
	workerID := int64(777)
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	var workerCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{
				"id": "t-1", "title": "Install cameras", "text": "Office 3",
				"status": 1, "department": 2,
				"assignedWorkerId": workerID,
				"createdAt":        created,
			},
			{
				"id": "t-2", "title": "Review mockups", "text": "Landing page",
				"status": 0, "department": 3,
				"assignedWorkerId": nil,
				"createdAt":        created,
			},
		})
	})
	mux.HandleFunc("GET /workers", func(w http.ResponseWriter, r *http.Request) {
		workerCalls++
		writeJSON(t, w, []map[string]any{
			{"telegramId": workerID, "fullName": "Ada Mills", "department": 2, "telegramUsername": "ada", "workerStatus": 1},
		})
	})

	c := newTestClient(t, mux)
	tasks, err := c.ListTasks(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Ada Mills", tasks[0].AssignedWorkerName)
	assert.Equal(t, domain.StatusInProgress, tasks[0].Status)
	assert.Equal(t, domain.DepartmentBackend, tasks[0].Department)
	assert.Empty(t, tasks[1].AssignedWorkerName)
	// At most one extra round trip regardless of task count.
	assert.Equal(t, 1, workerCalls)
}

func TestListTasks_skips_worker_fetch_when_none_assigned(t *testing.T) {
	var workerCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"id": "t-1", "title": "A", "text": "B", "status": 0, "department": 1, "createdAt": time.Now()},
		})
	})
	mux.HandleFunc("GET /workers", func(w http.ResponseWriter, r *http.Request) {
		workerCalls++
		writeJSON(t, w, []map[string]any{})
	})

	c := newTestClient(t, mux)
	_, err := c.ListTasks(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	assert.Zero(t, workerCalls)
}

func TestListTasks_sends_filter_query(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("department"))
		assert.Equal(t, "2", r.URL.Query().Get("status"))
		writeJSON(t, w, []map[string]any{})
	})

	dept := domain.DepartmentFrontend
	status := domain.StatusOnReview

	c := newTestClient(t, mux)
	_, err := c.ListTasks(context.Background(), domain.TaskFilter{Department: &dept, Status: &status})
	require.NoError(t, err)
}

func TestCreateTask(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ProjectTask", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Inspect panel", in["title"])
		assert.Equal(t, float64(2), in["department"])

		writeJSON(t, w, map[string]any{
			"id": "t-9", "title": in["title"], "text": in["text"],
			"status": 0, "department": 2,
			"createdAt": time.Now().UTC(),
		})
	})

	c := newTestClient(t, mux)
	task, err := c.CreateTask(context.Background(), NewTask{
		Title:      "Inspect panel",
		Text:       "Check alarm panel in building A",
		Department: domain.DepartmentBackend,
	})
	require.NoError(t, err)

	assert.Equal(t, "t-9", task.ID)
	assert.Equal(t, domain.StatusToDo, task.Status)
	assert.Nil(t, task.AssignedWorkerID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestUpdateTask_missing_id_fails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /ProjectTask", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such task", http.StatusNotFound)
	})

	c := newTestClient(t, mux)
	_, err := c.UpdateTask(context.Background(), UpdateTask{ID: "ghost"})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestTransitionEndpoints(t *testing.T) {
	var paths []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ProjectTask/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, c.CompleteTask(ctx, "t-1"))
	require.NoError(t, c.FinishTask(ctx, "t-1"))
	require.NoError(t, c.CancelReview(ctx, "t-1"))

	assert.Equal(t, []string{
		"/ProjectTask/t-1/complete",
		"/ProjectTask/t-1/finish",
		"/ProjectTask/t-1/cancel-review",
	}, paths)
}

func TestAcceptTask_sends_worker_id(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ProjectTask/t-1/accept", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "555", r.URL.Query().Get("tgId"))
		writeJSON(t, w, map[string]any{
			"id": "t-1", "title": "A", "text": "B", "status": 1, "department": 1,
			"assignedWorkerId": 555, "createdAt": time.Now().UTC(),
		})
	})

	c := newTestClient(t, mux)
	task, err := c.AcceptTask(context.Background(), "t-1", 555)
	require.NoError(t, err)
	require.NotNil(t, task.AssignedWorkerID)
	assert.Equal(t, int64(555), *task.AssignedWorkerID)
}

func TestActiveTaskForUser_404_is_empty_result(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask/active-for-user/42", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	c := newTestClient(t, mux)
	task, err := c.ActiveTaskForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestGetTask_tolerates_missing_worker(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask/t-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id": "t-1", "title": "A", "text": "B", "status": 1, "department": 1,
			"assignedWorkerId": 999, "createdAt": time.Now().UTC(),
		})
	})
	mux.HandleFunc("GET /workers/999", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	c := newTestClient(t, mux)
	task, err := c.GetTask(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Empty(t, task.AssignedWorkerName)
}

func TestTasksForUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask/assigned-to-user/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{
			{"id": "t-1", "title": "A", "text": "B", "status": 3, "department": 1,
				"assignedWorkerId": 42, "createdAt": time.Now().UTC()},
			{"id": "t-2", "title": "C", "text": "D", "status": 1, "department": 1,
				"assignedWorkerId": 42, "createdAt": time.Now().UTC()},
		})
	})

	c := newTestClient(t, mux)
	got, err := c.TasksForUser(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.StatusDone, got[0].Status)
	assert.Equal(t, "t-2", got[1].ID)
}

func TestDeleteTask(t *testing.T) {
	var deleted bool
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /ProjectTask/t-1", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.DeleteTask(context.Background(), "t-1"))
	assert.True(t, deleted)
}

func TestWorkerCRUD(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /workers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("workerStatus"))
		writeJSON(t, w, []map[string]any{
			{"telegramId": 1, "fullName": "Ada Mills", "department": 1, "telegramUsername": "ada", "workerStatus": 1},
		})
	})
	mux.HandleFunc("POST /workers", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(t, w, map[string]any{
			"telegramId": in["telegramId"], "fullName": in["fullName"],
			"department": in["department"], "telegramUsername": in["telegramUsername"],
			"workerStatus": 0,
		})
	})
	mux.HandleFunc("DELETE /workers/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	busy := domain.WorkerBusy
	workers, err := c.ListWorkers(ctx, domain.WorkerFilter{WorkerStatus: &busy})
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.Equal(t, "Ada Mills", workers[0].FullName)

	created, err := c.CreateWorker(ctx, NewWorker{
		TelegramID: 2, FullName: "Ben Okafor",
		Department: domain.DepartmentUiUx, TelegramUsername: "ben",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.TelegramID)
	assert.Equal(t, domain.WorkerFree, created.WorkerStatus)

	require.NoError(t, c.DeleteWorker(ctx, 1))
}

func TestAPIError_surfaces_status(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ProjectTask", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := newTestClient(t, mux)
	_, err := c.ListTasks(context.Background(), domain.TaskFilter{})
	require.Error(t, err)

	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "500")
}
