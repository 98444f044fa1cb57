package mail

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeSendEmail is the task type for outbound mail.
const TypeSendEmail = "email:send"

// Message is the payload carried by an email task.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Enqueuer hands messages to the delivery queue. Delivery is asynchronous;
// callers must not treat enqueue failure as fatal to their own writes.
type Enqueuer interface {
	Enqueue(ctx context.Context, msg Message) error
}

// TaskEnqueuer is the asynq-backed Enqueuer.
type TaskEnqueuer struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewTaskEnqueuer builds an enqueuer on the shared Redis connection settings.
func NewTaskEnqueuer(redisOpt asynq.RedisClientOpt, logger *zap.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), logger: logger}
}

// Close releases the underlying client.
func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

// Enqueue submits a mail task. The message body may carry a plaintext
// verification code, so only the recipient and subject are logged.
func (q *TaskEnqueuer) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, asynq.NewTask(TypeSendEmail, payload)); err != nil {
		q.logger.Warn("enqueue email failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return err
	}
	return nil
}
