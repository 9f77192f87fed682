package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

type workerDTO struct {
	TelegramID       int64  `json:"telegramId"`
	FullName         string `json:"fullName"`
	Department       int    `json:"department"`
	TelegramUsername string `json:"telegramUsername"`
	WorkerStatus     int    `json:"workerStatus"`
}

func (d workerDTO) toDomain() domain.Worker {
	return domain.Worker{
		TelegramID:       d.TelegramID,
		FullName:         d.FullName,
		Department:       domain.Department(d.Department),
		TelegramUsername: d.TelegramUsername,
		WorkerStatus:     domain.WorkerStatus(d.WorkerStatus),
	}
}

// NewWorker is the payload for creating a worker.
type NewWorker struct {
	TelegramID       int64             `json:"telegramId"`
	FullName         string            `json:"fullName"`
	Department       domain.Department `json:"department"`
	TelegramUsername string            `json:"telegramUsername"`
}

// UpdateWorker carries a full worker record for edits. Identity and
// username are included because the API takes the whole shape, but the
// server treats them as write-once.
type UpdateWorker = NewWorker

// ListWorkers fetches workers matching the filter.
func (c *Client) ListWorkers(ctx context.Context, filter domain.WorkerFilter) ([]domain.Worker, error) {
	q := url.Values{}
	if filter.Department != nil {
		q.Set("department", strconv.Itoa(int(*filter.Department)))
	}
	if filter.WorkerStatus != nil {
		q.Set("workerStatus", strconv.Itoa(int(*filter.WorkerStatus)))
	}

	var dtos []workerDTO
	if err := c.get(ctx, "/workers", q, &dtos); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	workers := make([]domain.Worker, 0, len(dtos))
	for _, d := range dtos {
		workers = append(workers, d.toDomain())
	}
	return workers, nil
}

// GetWorker fetches a single worker by external identity.
func (c *Client) GetWorker(ctx context.Context, telegramID int64) (*domain.Worker, error) {
	var dto workerDTO
	path := "/workers/" + strconv.FormatInt(telegramID, 10)
	if err := c.get(ctx, path, nil, &dto); err != nil {
		return nil, fmt.Errorf("get worker %d: %w", telegramID, err)
	}
	worker := dto.toDomain()
	return &worker, nil
}

// CreateWorker registers a new worker and returns the server record.
func (c *Client) CreateWorker(ctx context.Context, in NewWorker) (*domain.Worker, error) {
	var dto workerDTO
	if err := c.post(ctx, "/workers", nil, in, &dto); err != nil {
		return nil, fmt.Errorf("create worker: %w", err)
	}
	worker := dto.toDomain()
	return &worker, nil
}

// UpdateWorkerRecord updates a worker's editable fields.
func (c *Client) UpdateWorkerRecord(ctx context.Context, in UpdateWorker) (*domain.Worker, error) {
	var dto workerDTO
	if err := c.put(ctx, "/workers", in, &dto); err != nil {
		return nil, fmt.Errorf("update worker %d: %w", in.TelegramID, err)
	}
	worker := dto.toDomain()
	return &worker, nil
}

// DeleteWorker removes a worker by external identity.
func (c *Client) DeleteWorker(ctx context.Context, telegramID int64) error {
	path := "/workers/" + strconv.FormatInt(telegramID, 10)
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("delete worker %d: %w", telegramID, err)
	}
	return nil
}
