package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stewartad1/RapidEdge/internal/dxf/repository"
)

// Scheduler runs periodic maintenance against the measurement-history
// store. Currently a single nightly prune of rows past retention.
type Scheduler struct {
	history   *repository.HistoryRepository
	retention time.Duration
}

func NewScheduler(history *repository.HistoryRepository, retention time.Duration) *Scheduler {
	return &Scheduler{history: history, retention: retention}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// Daily at midnight (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.pruneHistory()
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (pruning history nightly at 12:00AM)")
	c.Start()
}

func (s *Scheduler) pruneHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.history.PruneOlderThan(ctx, s.retention)
	if err != nil {
		log.Printf("History prune failed: %v", err)
		return
	}
	log.Printf("History prune removed %d rows at: %s", removed, time.Now().Format(time.RFC1123))
}
