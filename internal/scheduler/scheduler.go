// Package scheduler runs the periodic auto-archive sweep: on a fixed
// interval, tasks past their due date are moved into the archive collection,
// the same selection an admin triggers manually with an empty archive call.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/repository"
)

type ArchiveSweeper struct {
	taskRepo repository.TaskRepository
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewArchiveSweeper creates a sweeper with the given interval.
func NewArchiveSweeper(taskRepo repository.TaskRepository, interval time.Duration) *ArchiveSweeper {
	return &ArchiveSweeper{
		taskRepo: taskRepo,
		interval: interval,
	}
}

// Start begins sweeping until Stop is called.
func (s *ArchiveSweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	log.Printf("Archive sweeper started (interval %s)", s.interval)
}

// Stop cancels the sweep loop and waits for it to exit.
func (s *ArchiveSweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	log.Println("Archive sweeper stopped")
}

func (s *ArchiveSweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep archives every overdue task. Errors are logged, not propagated: the
// next tick retries the same selection.
func (s *ArchiveSweeper) Sweep(now time.Time) {
	tasks, err := s.taskRepo.ListOverdue(now)
	if err != nil {
		log.Printf("Archive sweep: failed to list overdue tasks: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	if err := s.taskRepo.Archive(tasks, now); err != nil {
		log.Printf("Archive sweep: failed to archive %d tasks: %v", len(tasks), err)
		return
	}

	log.Printf("Archive sweep: archived %d overdue tasks", len(tasks))
}
