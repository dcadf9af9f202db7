package repositories

import (
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

type WebhookDeliveryRepository interface {
	FindPending(limit int) ([]models.WebhookDelivery, error)
	MarkDelivered(id string) error
	MarkAttemptFailed(id string, attempts int, lastError string, final bool) error
	MarkSkipped(id string, reason string) error
}

type WebhookDeliveryRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookDeliveryRepository(db *gorm.DB) WebhookDeliveryRepository {
	return &WebhookDeliveryRepositoryImpl{db: db}
}

func (r *WebhookDeliveryRepositoryImpl) FindPending(limit int) ([]models.WebhookDelivery, error) {
	var deliveries []models.WebhookDelivery
	err := r.db.Where("status = ?", models.DeliveryStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&deliveries).Error
	return deliveries, err
}

func (r *WebhookDeliveryRepositoryImpl) MarkDelivered(id string) error {
	now := time.Now()
	return r.db.Model(&models.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.DeliveryStatusDelivered,
			"delivered_at": &now,
			"last_error":   "",
		}).Error
}

// MarkAttemptFailed records a failed attempt. With final set, the delivery
// leaves the pending pool for good; otherwise the next poll retries it.
func (r *WebhookDeliveryRepositoryImpl) MarkAttemptFailed(id string, attempts int, lastError string, final bool) error {
	status := models.DeliveryStatusPending
	if final {
		status = models.DeliveryStatusFailed
	}
	return r.db.Model(&models.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}

func (r *WebhookDeliveryRepositoryImpl) MarkSkipped(id string, reason string) error {
	return r.db.Model(&models.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.DeliveryStatusSkipped,
			"last_error": reason,
		}).Error
}
