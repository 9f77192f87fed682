package board

import (
	"sort"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

// WorkerStats aggregates one worker's task counts and throughput.
type WorkerStats struct {
	Worker domain.Worker

	Active int
	Done   int

	// AvgCompletionHours is the mean wall-clock time from creation to the
	// last update across this worker's done tasks. Zero when no done task
	// carries a usable update timestamp.
	AvgCompletionHours float64
}

// Stats is the aggregate snapshot rendered by the statistics view.
type Stats struct {
	TotalTasks   int
	TotalWorkers int

	TasksByStatus       map[domain.TaskStatus]int
	TasksByDepartment   map[domain.Department]int
	WorkersByDepartment map[domain.Department]int
	WorkersByStatus     map[domain.WorkerStatus]int

	// AvgCompletionHours covers all done tasks with a usable update
	// timestamp, regardless of assignee.
	AvgCompletionHours float64

	PerWorker []WorkerStats
}

// ComputeStats derives the statistics snapshot from the store's caches.
// Completion time is measured as UpdatedAt minus CreatedAt on done tasks;
// a done task whose UpdatedAt is missing or equals CreatedAt contributes
// to counts but not to averages.
func ComputeStats(s *Store) Stats {
	tasks := s.Tasks()
	workers := s.Workers()

	stats := Stats{
		TotalTasks:          len(tasks),
		TotalWorkers:        len(workers),
		TasksByStatus:       make(map[domain.TaskStatus]int),
		TasksByDepartment:   make(map[domain.Department]int),
		WorkersByDepartment: make(map[domain.Department]int),
		WorkersByStatus:     make(map[domain.WorkerStatus]int),
	}

	perWorker := make(map[int64]*WorkerStats, len(workers))
	for _, w := range workers {
		w := w
		stats.WorkersByDepartment[w.Department]++
		stats.WorkersByStatus[w.WorkerStatus]++
		perWorker[w.TelegramID] = &WorkerStats{Worker: w}
	}

	var totalHours float64
	var timedDone int
	workerHours := make(map[int64]float64, len(workers))
	workerTimed := make(map[int64]int, len(workers))

	for i := range tasks {
		t := &tasks[i]
		stats.TasksByStatus[t.Status]++
		stats.TasksByDepartment[t.Department]++

		ws := (*WorkerStats)(nil)
		if t.AssignedWorkerID != nil {
			ws = perWorker[*t.AssignedWorkerID]
		}

		if t.Status == domain.StatusDone {
			if ws != nil {
				ws.Done++
			}
			if t.Modified() {
				hours := t.UpdatedAt.Sub(t.CreatedAt).Hours()
				totalHours += hours
				timedDone++
				if ws != nil {
					workerHours[ws.Worker.TelegramID] += hours
					workerTimed[ws.Worker.TelegramID]++
				}
			}
		} else if ws != nil && t.Status != domain.StatusToDo {
			ws.Active++
		}
	}

	if timedDone > 0 {
		stats.AvgCompletionHours = totalHours / float64(timedDone)
	}

	stats.PerWorker = make([]WorkerStats, 0, len(perWorker))
	for id, ws := range perWorker {
		if n := workerTimed[id]; n > 0 {
			ws.AvgCompletionHours = workerHours[id] / float64(n)
		}
		stats.PerWorker = append(stats.PerWorker, *ws)
	}
	sort.Slice(stats.PerWorker, func(i, j int) bool {
		a, b := stats.PerWorker[i], stats.PerWorker[j]
		if a.Done != b.Done {
			return a.Done > b.Done
		}
		return a.Worker.FullName < b.Worker.FullName
	})

	return stats
}
