// Package worker reconciles project point awards in the background.
// Project creation and the point award are two independent store
// writes; when the award fails after the project is saved, the
// project stays in award_status=pending and this worker retries it.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillora/skillora/internal/model"
)

// ProjectStore lists and marks projects awaiting their point award.
type ProjectStore interface {
	ListUnscored(ctx context.Context, batchSize int) ([]model.Project, error)
	MarkScored(ctx context.Context, id uuid.UUID) error
}

// Scorer applies the point award and badge for a project.
type Scorer interface {
	ScoreProject(ctx context.Context, project model.Project) error
}

// Worker periodically reconciles unscored projects
type Worker struct {
	projects ProjectStore
	scorer   Scorer

	interval  time.Duration
	batchSize int

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Config holds worker configuration
type Config struct {
	Interval  time.Duration
	BatchSize int
}

// New creates a new reconcile worker
func New(projects ProjectStore, scorer Scorer, cfg Config) *Worker {
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 10
	}

	return &Worker{
		projects:  projects,
		scorer:    scorer,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background reconcile loop
func (w *Worker) Start(ctx context.Context) {
	slog.Info("starting reconcile worker", "interval", w.interval, "batch_size", w.batchSize)

	w.wg.Add(1)
	go w.runReconcileLoop(ctx)
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	slog.Info("stopping reconcile worker")
	close(w.stopCh)
	w.wg.Wait()
	slog.Info("reconcile worker stopped")
}

func (w *Worker) runReconcileLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce reconciles one batch of unscored projects and returns the
// number of projects scored. It is also called directly by the admin
// reconcile endpoint.
func (w *Worker) RunOnce(ctx context.Context) int {
	projects, err := w.projects.ListUnscored(ctx, w.batchSize)
	if err != nil {
		slog.Error("failed to list unscored projects", "error", err)
		return 0
	}

	scored := 0
	for _, project := range projects {
		if err := w.scorer.ScoreProject(ctx, project); err != nil {
			slog.Warn("failed to score project", "id", project.ID, "uid", project.UserID, "error", err)
			continue
		}
		if err := w.projects.MarkScored(ctx, project.ID); err != nil {
			// The award landed but the flag write failed; the next
			// pass will re-award.
			slog.Error("failed to mark project scored", "id", project.ID, "error", err)
			continue
		}

		scored++
		slog.Info("scored project", "id", project.ID, "uid", project.UserID, "points", project.Points)
	}

	return scored
}
