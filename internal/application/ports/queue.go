package ports

import "context"

// TaskEnqueuer enqueues async tasks (email delivery).
type TaskEnqueuer interface {
	EnqueueSendPasswordReset(ctx context.Context, email, resetURL string) error
}
