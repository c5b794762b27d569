package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/menyesha/complaint-service/internal/config"
	"github.com/menyesha/complaint-service/internal/events"
	"github.com/menyesha/complaint-service/internal/persistence"
)

// NotificationService logs domain events and mirrors them as JSON onto a
// Redis channel for downstream consumers. Delivery is best-effort and
// never fails the originating request.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *persistence.Redis
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redis *persistence.Redis, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redis,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventComplaintStatusChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventComplaintPriorityChanged, n.handleEvent)
	n.dispatcher.Subscribe(events.EventUserStatusChanged, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	n.publishToRedis(ctx, event)
	return nil
}

func (n *NotificationService) publishToRedis(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EventChannel) == "" || n.redis == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("event marshal failed", zap.Error(err))
		return
	}
	if err := n.redis.Publish(ctx, n.cfg.EventChannel, payload); err != nil {
		n.logger.Warn("event fan-out failed",
			zap.String("channel", n.cfg.EventChannel),
			zap.Error(err))
	}
}
