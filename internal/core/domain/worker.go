package domain

// WorkerStatus is the server-derived availability of a worker. It is never
// written by this client.
type WorkerStatus int

const (
	WorkerFree WorkerStatus = iota
	WorkerBusy
	WorkerUnavailable
)

var workerStatusLabels = map[WorkerStatus]string{
	WorkerFree:        "Free",
	WorkerBusy:        "Busy",
	WorkerUnavailable: "Unavailable",
}

// Label returns the display string for the worker status.
func (s WorkerStatus) Label() string {
	if l, ok := workerStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// IsValid reports whether s is a defined worker status.
func (s WorkerStatus) IsValid() bool {
	_, ok := workerStatusLabels[s]
	return ok
}

// Worker is a person tasks can be assigned to. TelegramID and
// TelegramUsername are write-once: set at creation, immutable afterwards.
type Worker struct {
	TelegramID       int64
	FullName         string
	Department       Department
	TelegramUsername string
	WorkerStatus     WorkerStatus
}

// WorkerFilter narrows a worker query. Nil fields match everything.
type WorkerFilter struct {
	Department   *Department
	WorkerStatus *WorkerStatus
}

// IsZero reports whether the filter matches all workers.
func (f WorkerFilter) IsZero() bool {
	return f.Department == nil && f.WorkerStatus == nil
}

// Matches applies the filter to a single worker.
func (f WorkerFilter) Matches(w *Worker) bool {
	if f.Department != nil && w.Department != *f.Department {
		return false
	}
	if f.WorkerStatus != nil && w.WorkerStatus != *f.WorkerStatus {
		return false
	}
	return true
}
