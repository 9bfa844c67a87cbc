package events

import (
	"context"
	"time"

	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type eventEnvelope struct {
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

type rabbitMQPublisher struct {
	Channel   *amqp.Channel
	QueueName string
	Log       *zap.Logger
}

// NewRabbitMQPublisher publishes lifecycle events to the durable queue.
// When channel is nil the broker integration is disabled and a no-op
// publisher is returned instead.
func NewRabbitMQPublisher(channel *amqp.Channel, queueName string, logger *zap.Logger) contracts.EventPublisher {
	if channel == nil {
		return &noopPublisher{}
	}
	return &rabbitMQPublisher{
		Channel:   channel,
		QueueName: queueName,
		Log:       logger,
	}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(eventEnvelope{
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = p.Channel.PublishWithContext(ctx, "", p.QueueName, false, false, amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return exceptions.ErrAMQPPublish(err)
	}

	return nil
}

type noopPublisher struct{}

func (p *noopPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return nil
}
