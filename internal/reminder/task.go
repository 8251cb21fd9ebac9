package reminder

import (
	"context"
	"fmt"
	"time"

	"ptslot/internal/logger"

	"github.com/hibiken/asynq"
)

const TypeDailyReminder = "reminder:daily"

const taskTimeout = 5 * time.Minute

func NewDailyTask() *asynq.Task {
	return asynq.NewTask(TypeDailyReminder, nil, asynq.MaxRetry(2), asynq.Timeout(taskTimeout))
}

// HandleTask is the asynq handler for TypeDailyReminder. Only a failed
// booking lookup is returned, so asynq retries runs that sent nothing.
func (r *Reminder) HandleTask(ctx context.Context, _ *asynq.Task) error {
	_, err := r.Run(ctx)
	return err
}

func (r *Reminder) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeDailyReminder, r.HandleTask)
}

func NewServer(opt asynq.RedisConnOpt) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency:  1,
		Queues:       map[string]int{"default": 1},
		Logger:       taskLogger{},
		ErrorHandler: asynq.ErrorHandlerFunc(logTaskError),
	})
}

func logTaskError(_ context.Context, task *asynq.Task, err error) {
	logger.Error("background task failed", "type", task.Type(), "error", err)
}

// NewScheduler enqueues the daily task on cronspec, read in loc.
func NewScheduler(opt asynq.RedisConnOpt, cronspec string, loc *time.Location) (*asynq.Scheduler, error) {
	s := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   taskLogger{},
	})
	if _, err := s.Register(cronspec, NewDailyTask()); err != nil {
		return nil, fmt.Errorf("schedule daily reminder %q: %w", cronspec, err)
	}
	return s, nil
}

// taskLogger routes asynq's own logs into the application logger.
type taskLogger struct{}

func (taskLogger) Debug(args ...interface{}) { logger.L().Debug(args...) }
func (taskLogger) Info(args ...interface{})  { logger.L().Info(args...) }
func (taskLogger) Warn(args ...interface{})  { logger.L().Warn(args...) }
func (taskLogger) Error(args ...interface{}) { logger.L().Error(args...) }
func (taskLogger) Fatal(args ...interface{}) { logger.L().Fatal(args...) }
