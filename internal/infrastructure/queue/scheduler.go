package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-core/internal/config"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/logger"
)

// Scheduler registers the recurring catalog maintenance jobs.
type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
	log       logger.Logger
}

func NewScheduler(redisAddr string, jobConfig config.JobConfig, log logger.Logger) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler, jobConfig: jobConfig, log: log}
}

// RegisterJobs wires every cron entry.
func (s *Scheduler) RegisterJobs() error {
	return s.registerReorderScanJob()
}

// Daily at 6 AM, before business hours, so flagged books appear in the
// morning logs.
func (s *Scheduler) registerReorderScanJob() error {
	payload, err := json.Marshal(events.ReorderScanPayload{Limit: s.jobConfig.ReorderScanLimit})
	if err != nil {
		return err
	}

	task := asynq.NewTask(events.TypeReorderScan, payload)

	_, err = s.scheduler.Register(
		"0 6 * * *",
		task,
		asynq.Queue(events.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		s.log.Error("failed to register reorder scan job", err)
		return err
	}

	s.log.Info("registered reorder scan: daily at 6 AM", map[string]interface{}{
		"limit": s.jobConfig.ReorderScanLimit,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
