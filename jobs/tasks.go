package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	jobmetrics "github.com/freightline-erp/freightline-erp/internal/jobs"
	"github.com/freightline-erp/freightline-erp/internal/payments"
	"github.com/freightline-erp/freightline-erp/internal/uploads"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeUploadsSweep prunes stale view-URL entries persisted in Redis.
	TaskTypeUploadsSweep = "uploads:sweep"
	// TaskTypePaymentNotify fans out a notification after a payment request
	// is created.
	TaskTypePaymentNotify = "payments:notify"
)

// PaymentNotifyPayload carries the details of a freshly created payment request.
type PaymentNotifyPayload struct {
	PaymentRequestID string  `json:"paymentRequestId"`
	TripID           string  `json:"tripId"`
	Type             string  `json:"type"`
	Amount           float64 `json:"amount"`
	Beneficiary      string  `json:"beneficiary"`
}

// NewPaymentNotifyTask constructs an Asynq task for a payment notification.
func NewPaymentNotifyTask(payload PaymentNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePaymentNotify, data), nil
}

// NewUploadsSweepTask constructs the periodic sweep task.
func NewUploadsSweepTask() *asynq.Task {
	return asynq.NewTask(TaskTypeUploadsSweep, nil)
}

// NewPaymentNotifyHandler returns the handler for TaskTypePaymentNotify.
// Delivery is log-based for now; downstream channels hang off the same task.
func NewPaymentNotifyHandler(logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	printer := message.NewPrinter(language.English)
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskTypePaymentNotify)
		var payload PaymentNotifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return tracker.End(asynq.SkipRetry)
		}
		logger.Info("payment request created",
			slog.String("paymentRequestId", payload.PaymentRequestID),
			slog.String("tripId", payload.TripID),
			slog.String("type", payload.Type),
			slog.String("amount", printer.Sprintf("%.2f", payload.Amount)),
			slog.String("beneficiary", payload.Beneficiary),
		)
		return tracker.End(nil)
	}
}

// NewUploadsSweepHandler returns the handler for TaskTypeUploadsSweep. It
// walks the persisted view-URL namespace and deletes keys that lost their
// expiry, so the cache cannot accrete permanent entries.
func NewUploadsSweepHandler(client *redis.Client, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track(TaskTypeUploadsSweep)
		var swept int
		iter := client.Scan(ctx, 0, uploads.ViewURLKeyPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			ttl, err := client.TTL(ctx, key).Result()
			if err != nil {
				continue
			}
			if ttl < 0 {
				if err := client.Del(ctx, key).Err(); err == nil {
					swept++
				}
			}
		}
		if err := iter.Err(); err != nil {
			return tracker.End(err)
		}
		metrics.AddSwept(swept)
		logger.Info("uploads sweep finished", slog.Int("swept", swept))
		return tracker.End(nil)
	}
}

// Notifier adapts the payments notification hook onto the job queue. Failures
// are logged and swallowed so a queue outage never fails the request.
type Notifier struct {
	client *Client
	logger *slog.Logger
}

// NewNotifier constructs a queue-backed payments notifier.
func NewNotifier(client *Client, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// PaymentRequested enqueues a payments:notify task.
func (n *Notifier) PaymentRequested(ctx context.Context, notification payments.PaymentNotification) {
	if n == nil || n.client == nil {
		return
	}
	payload := PaymentNotifyPayload{
		PaymentRequestID: notification.PaymentRequestID,
		TripID:           notification.TripID,
		Type:             notification.Type,
		Amount:           notification.Amount,
		Beneficiary:      notification.Beneficiary,
	}
	if _, err := n.client.EnqueuePaymentNotify(ctx, payload); err != nil {
		n.logger.Warn("enqueue payment notification", slog.Any("error", err))
	}
}
