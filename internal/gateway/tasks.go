package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

// taskDTO is the wire shape of a task.
type taskDTO struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Text             string     `json:"text"`
	Status           int        `json:"status"`
	Department       int        `json:"department"`
	AssignedWorkerID *int64     `json:"assignedWorkerId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
}

func (d taskDTO) toDomain() domain.Task {
	return domain.Task{
		ID:               d.ID,
		Title:            d.Title,
		Text:             d.Text,
		Status:           domain.TaskStatus(d.Status),
		Department:       domain.Department(d.Department),
		AssignedWorkerID: d.AssignedWorkerID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// NewTask is the payload for creating a task.
type NewTask struct {
	Title      string            `json:"title"`
	Text       string            `json:"text"`
	Department domain.Department `json:"department"`
}

// UpdateTask is the payload for editing a task's content.
type UpdateTask struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Text       string            `json:"text"`
	Department domain.Department `json:"department"`
}

func taskQuery(filter domain.TaskFilter) url.Values {
	q := url.Values{}
	if filter.Department != nil {
		q.Set("department", strconv.Itoa(int(*filter.Department)))
	}
	if filter.Status != nil {
		q.Set("status", strconv.Itoa(int(*filter.Status)))
	}
	return q
}

// ListTasks fetches tasks matching the filter. Assigned-worker names are
// resolved by a single extra round trip to the workers collection.
func (c *Client) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var dtos []taskDTO
	if err := c.get(ctx, "/ProjectTask", taskQuery(filter), &dtos); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(dtos))
	for _, d := range dtos {
		tasks = append(tasks, d.toDomain())
	}

	if err := c.resolveWorkerNames(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// resolveWorkerNames cross-references the worker collection to fill in
// display names for assigned tasks.
func (c *Client) resolveWorkerNames(ctx context.Context, tasks []domain.Task) error {
	assigned := false
	for i := range tasks {
		if tasks[i].Assigned() {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil
	}

	workers, err := c.ListWorkers(ctx, domain.WorkerFilter{})
	if err != nil {
		return fmt.Errorf("resolve worker names: %w", err)
	}

	byID := make(map[int64]string, len(workers))
	for _, w := range workers {
		byID[w.TelegramID] = w.FullName
	}

	for i := range tasks {
		if tasks[i].AssignedWorkerID != nil {
			tasks[i].AssignedWorkerName = byID[*tasks[i].AssignedWorkerID]
		}
	}
	return nil
}

// GetTask fetches a single task by identity, resolving its assigned worker
// by a secondary lookup. A missing worker record is tolerated; the name is
// simply left empty.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var dto taskDTO
	if err := c.get(ctx, "/ProjectTask/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}

	task := dto.toDomain()
	if task.AssignedWorkerID != nil {
		worker, err := c.GetWorker(ctx, *task.AssignedWorkerID)
		if err != nil {
			c.log.Debug().Err(err).Str("task", id).Msg("assigned worker lookup failed")
		} else {
			task.AssignedWorkerName = worker.FullName
		}
	}
	return &task, nil
}

// CreateTask creates a task from user input and returns the server record.
func (c *Client) CreateTask(ctx context.Context, in NewTask) (*domain.Task, error) {
	var dto taskDTO
	if err := c.post(ctx, "/ProjectTask", nil, in, &dto); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	task := dto.toDomain()
	return &task, nil
}

// UpdateTask updates a task's editable fields by identity. Fails when the
// identity does not exist server-side.
func (c *Client) UpdateTask(ctx context.Context, in UpdateTask) (*domain.Task, error) {
	var dto taskDTO
	if err := c.put(ctx, "/ProjectTask", in, &dto); err != nil {
		return nil, fmt.Errorf("update task %s: %w", in.ID, err)
	}
	task := dto.toDomain()
	return &task, nil
}

// DeleteTask removes a task by identity.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/ProjectTask/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// AcceptTask records a worker taking the task, moving it to In Progress
// server-side.
func (c *Client) AcceptTask(ctx context.Context, id string, workerID int64) (*domain.Task, error) {
	q := url.Values{}
	q.Set("tgId", strconv.FormatInt(workerID, 10))

	var dto taskDTO
	if err := c.post(ctx, "/ProjectTask/"+url.PathEscape(id)+"/accept", q, nil, &dto); err != nil {
		return nil, fmt.Errorf("accept task %s: %w", id, err)
	}
	task := dto.toDomain()
	return &task, nil
}

// CompleteTask sends an in-progress task to review.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	if err := c.post(ctx, "/ProjectTask/"+url.PathEscape(id)+"/complete", nil, nil, nil); err != nil {
		return fmt.Errorf("complete task %s: %w", id, err)
	}
	return nil
}

// FinishTask approves a task on review, marking it done.
func (c *Client) FinishTask(ctx context.Context, id string) error {
	if err := c.post(ctx, "/ProjectTask/"+url.PathEscape(id)+"/finish", nil, nil, nil); err != nil {
		return fmt.Errorf("finish task %s: %w", id, err)
	}
	return nil
}

// CancelReview returns a task on review to in-progress.
func (c *Client) CancelReview(ctx context.Context, id string) error {
	if err := c.post(ctx, "/ProjectTask/"+url.PathEscape(id)+"/cancel-review", nil, nil, nil); err != nil {
		return fmt.Errorf("cancel review for task %s: %w", id, err)
	}
	return nil
}

// ActiveTaskForUser returns the worker's current task, or nil when the
// server reports none. A 404 is a valid empty result, not an error.
func (c *Client) ActiveTaskForUser(ctx context.Context, workerID int64) (*domain.Task, error) {
	var dto taskDTO
	path := "/ProjectTask/active-for-user/" + strconv.FormatInt(workerID, 10)
	if err := c.get(ctx, path, nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("active task for worker %d: %w", workerID, err)
	}
	if dto.ID == "" {
		return nil, nil
	}
	task := dto.toDomain()
	return &task, nil
}

// TasksForUser returns all tasks assigned to the worker.
func (c *Client) TasksForUser(ctx context.Context, workerID int64) ([]domain.Task, error) {
	var dtos []taskDTO
	path := "/ProjectTask/assigned-to-user/" + strconv.FormatInt(workerID, 10)
	if err := c.get(ctx, path, nil, &dtos); err != nil {
		return nil, fmt.Errorf("tasks for worker %d: %w", workerID, err)
	}

	tasks := make([]domain.Task, 0, len(dtos))
	for _, d := range dtos {
		tasks = append(tasks, d.toDomain())
	}
	return tasks, nil
}
