package workers

import (
	"context"
	"time"

	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/webhook"
)

const deliveryBatchSize = 50

// WebhookWorker drains the webhook outbox. It polls on a ticker and can be
// kicked for immediate dispatch after a new application lands. Delivery is
// best-effort with bounded retries; the application itself never waits on
// it.
type WebhookWorker struct {
	deliveryRepo repositories.WebhookDeliveryRepository
	sender       webhook.Sender

	url         string
	maxAttempts int
	interval    time.Duration
	timeout     time.Duration

	kick chan struct{}
}

func NewWebhookWorker(
	deliveryRepo repositories.WebhookDeliveryRepository,
	sender webhook.Sender,
	url string,
	maxAttempts int,
	interval time.Duration,
	timeout time.Duration,
) *WebhookWorker {
	return &WebhookWorker{
		deliveryRepo: deliveryRepo,
		sender:       sender,
		url:          url,
		maxAttempts:  maxAttempts,
		interval:     interval,
		timeout:      timeout,
		kick:         make(chan struct{}, 1),
	}
}

// Kick requests an immediate dispatch pass. Non-blocking; a pass is
// already queued when the channel is full.
func (w *WebhookWorker) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Start runs the poll loop until the context is cancelled.
func (w *WebhookWorker) Start(ctx context.Context) {
	logger.Info("Webhook worker started",
		"interval", w.interval.String(),
		"max_attempts", w.maxAttempts,
		"configured", w.url != "",
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Webhook worker stopped")
			return
		case <-ticker.C:
			w.dispatchPending(ctx)
		case <-w.kick:
			w.dispatchPending(ctx)
		}
	}
}

func (w *WebhookWorker) dispatchPending(ctx context.Context) {
	deliveries, err := w.deliveryRepo.FindPending(deliveryBatchSize)
	if err != nil {
		logger.Error("Failed to load pending webhook deliveries", "error", err)
		return
	}

	for i := range deliveries {
		if ctx.Err() != nil {
			return
		}
		w.dispatch(ctx, &deliveries[i])
	}
}

func (w *WebhookWorker) dispatch(ctx context.Context, delivery *models.WebhookDelivery) {
	if w.url == "" {
		logger.Warn("Webhook URL not configured, skipping delivery",
			"delivery_id", delivery.ID,
			"application_id", delivery.ApplicationID,
		)
		if err := w.deliveryRepo.MarkSkipped(delivery.ID, "webhook URL not configured"); err != nil {
			logger.Error("Failed to mark delivery skipped", "delivery_id", delivery.ID, "error", err)
		}
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.sender.Send(sendCtx, w.url, delivery.Payload)
	cancel()

	if err == nil {
		if err := w.deliveryRepo.MarkDelivered(delivery.ID); err != nil {
			logger.Error("Failed to mark delivery done", "delivery_id", delivery.ID, "error", err)
		}
		logger.Info("Webhook delivered",
			"delivery_id", delivery.ID,
			"application_id", delivery.ApplicationID,
		)
		return
	}

	attempts := delivery.Attempts + 1
	final := attempts >= w.maxAttempts

	logger.Warn("Webhook delivery failed",
		"delivery_id", delivery.ID,
		"application_id", delivery.ApplicationID,
		"attempt", attempts,
		"final", final,
		"error", err,
	)

	if markErr := w.deliveryRepo.MarkAttemptFailed(delivery.ID, attempts, err.Error(), final); markErr != nil {
		logger.Error("Failed to record delivery attempt", "delivery_id", delivery.ID, "error", markErr)
	}
}
