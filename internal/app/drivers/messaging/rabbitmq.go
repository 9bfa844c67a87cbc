package messaging

import (
	"fmt"
	"patholab-service/internal/app/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// NewRabbitMQChannel dials the broker and declares the durable case-event
// queue. Returns nil when the broker integration is disabled.
func NewRabbitMQChannel(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, log *logrus.Logger) *amqp.Channel {
	if !driverConfig.RabbitMQ.Enabled {
		log.Println("RabbitMQ integration disabled, lifecycle events will not be published")
		return nil
	}

	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp.Dial(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ: %s", err.Error())
	}

	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open rabbitMQ channel: %s", err.Error())
	}

	_, err = channel.QueueDeclare(internalConfig.App.EventQueueName, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("Failed to declare rabbitMQ queue: %s", err.Error())
	}

	log.Println("Successfully connected to rabbitMQ")
	return channel
}
