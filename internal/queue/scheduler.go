// Package queue defines the background task types and the periodic
// scheduler that enqueues them.
package queue

import (
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/config"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

// NewScheduler registers the recurring tasks: an hourly sweep of stale
// pending signups.
func NewScheduler(cfg config.RedisConfig) (*Scheduler, error) {
	sched := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		nil,
	)

	if _, err := sched.Register("0 * * * *", NewVerificationCleanupTask()); err != nil {
		return nil, fmt.Errorf("register cleanup task: %w", err)
	}

	return &Scheduler{scheduler: sched}, nil
}

// Run blocks until shutdown.
func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
