package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	AssetEventQueue      = "asset.events"
	AssetEventExchange   = "asset.exchange"
	AssetEventRoutingKey = "asset.events"
)

// Event actions published on the asset queue.
const (
	ActionRecordCreated     = "record.created"
	ActionRecordUpdated     = "record.updated"
	ActionRecordDeleted     = "record.deleted"
	ActionInspectionCreated = "inspection.created"
	ActionInspectionDeleted = "inspection.deleted"
)

// AssetEventMessage notifies downstream consumers about lifecycle changes
// to transformer records and inspections.
type AssetEventMessage struct {
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	ActorID    string `json:"actor_id,omitempty"`
	ImageCount int    `json:"image_count"`
	Timestamp  int64  `json:"timestamp"`
}

type AssetEventService struct {
	channel *amqp.Channel
}

func InitAssetEventService(channel *amqp.Channel) *AssetEventService {
	service := &AssetEventService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		AssetEventExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare asset event exchange: " + err.Error())
	}

	_, err = channel.QueueDeclare(
		AssetEventQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		panic("Failed to declare asset event queue: " + err.Error())
	}

	err = channel.QueueBind(
		AssetEventQueue,
		AssetEventRoutingKey,
		AssetEventExchange,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to bind asset event queue: " + err.Error())
	}

	return service
}

func (s *AssetEventService) PublishAssetEvent(ctx context.Context, msg AssetEventMessage) error {
	msg.Timestamp = time.Now().Unix()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		AssetEventExchange,
		AssetEventRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
