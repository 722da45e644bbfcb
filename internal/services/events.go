package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// EventPublisher sends entity change events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// EntityEvent is the payload published after a successful write.
type EntityEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// notifier publishes entity events on a best-effort basis.
type notifier struct {
	publisher EventPublisher
	log       *zap.Logger
}

func (n notifier) notify(entity, action string, id int64) {
	if n.publisher == nil {
		return
	}
	routingKey := entity + "." + action
	body, err := json.Marshal(EntityEvent{Entity: entity, Action: action, ID: id, OccurredAt: time.Now().UTC()})
	if err != nil {
		n.log.Warn("Failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := n.publisher.Publish(routingKey, body); err != nil {
		n.log.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return
	}
	n.log.Debug("Published event", zap.String("routing_key", routingKey), zap.Int64("id", id))
}
