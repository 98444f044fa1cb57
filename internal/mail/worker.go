package mail

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/config"
)

// Worker consumes email tasks from Redis and delivers them.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
	from   string
}

// NewWorker creates the asynq server and registers handlers. Call Run to start.
func NewWorker(redisOpt asynq.RedisClientOpt, cfg config.MailConfig, logger *zap.Logger) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, logger: logger, from: cfg.From}
	mux.HandleFunc(TypeSendEmail, w.handleSendEmail)
	return w
}

func (w *Worker) handleSendEmail(ctx context.Context, t *asynq.Task) error {
	var msg Message
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		w.logger.Error("email task payload invalid", zap.Error(err))
		return err
	}
	// Dev: log delivery metadata; production would hand off to SMTP.
	// The body stays out of the log, it carries one-time codes.
	w.logger.Info("email delivered",
		zap.String("from", w.from),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// Run blocks until shutdown.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker and waits for in-flight tasks.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
