package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	StorageCleanupQueue      = "storage.cleanup"
	StorageCleanupExchange   = "storage.exchange"
	StorageCleanupRoutingKey = "storage.cleanup"
)

// CleanupMessage asks the reconciliation consumer to remove a blob that the
// API could not keep consistent with the metadata store: either the metadata
// write failed after a successful upload, or a best-effort delete against
// the store failed.
type CleanupMessage struct {
	StorageKey   string `json:"storage_key"`
	ResourceKind string `json:"resource_kind"`
	Reason       string `json:"reason"`
	Timestamp    int64  `json:"timestamp"`
}

// CleanupService publishes blob cleanup jobs for out-of-process reconciliation.
type CleanupService struct {
	channel *amqp.Channel
}

func InitCleanupService(channel *amqp.Channel) *CleanupService {
	service := &CleanupService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		StorageCleanupExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Storage exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		StorageCleanupQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Storage cleanup queue: " + err.Error())
	}

	err = channel.QueueBind(
		StorageCleanupQueue,
		StorageCleanupRoutingKey,
		StorageCleanupExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind Storage cleanup queue: " + err.Error())
	}

	return service
}

// PublishCleanup enqueues one blob for removal. Best-effort callers may drop
// the returned error after logging it.
func (s *CleanupService) PublishCleanup(ctx context.Context, storageKey, resourceKind, reason string) error {
	msg := CleanupMessage{
		StorageKey:   storageKey,
		ResourceKind: resourceKind,
		Reason:       reason,
		Timestamp:    time.Now().Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup message: %w", err)
	}

	err = s.channel.PublishWithContext(ctx,
		StorageCleanupExchange,
		StorageCleanupRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish cleanup message: %w", err)
	}

	return nil
}
