package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/streamkit/donation-notifier/internal/service"
)

// Consumer subscribes to the donation topic under a consumer group and feeds
// each record through the donation service. Offsets are committed manually:
// a record is marked only after its notification has been persisted, which is
// what gives the pipeline at-least-once semantics.
type Consumer struct {
	topic         string
	consumerGroup sarama.ConsumerGroup
	donationSvc   service.DonationService
	log           *slog.Logger
}

// NewConsumer constructs a Consumer. The consumer group is injected so main
// owns its lifecycle and tests can substitute fakes at the session level.
func NewConsumer(
	topic string,
	consumerGroup sarama.ConsumerGroup,
	donationSvc service.DonationService,
	log *slog.Logger,
) *Consumer {
	return &Consumer{
		topic:         topic,
		consumerGroup: consumerGroup,
		donationSvc:   donationSvc,
		log:           log,
	}
}

// Start begins the consume loop and blocks until the context is cancelled or
// the consumer group is closed. Transient errors are retried with backoff.
func (c *Consumer) Start(ctx context.Context) error {
	defer func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Warn("Failed to close consumer group", slog.Any("error", err))
		}
	}()

	c.log.Info("Kafka consumer started", slog.String("topic", c.topic))

	backoff := 1 * time.Second
	for {
		err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
		if err != nil {
			c.log.Error("Error consuming messages", slog.Any("error", err))

			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return err
			}

			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}

		if ctx.Err() != nil {
			c.log.Info("Context cancelled, stopping consumer")
			return ctx.Err()
		}
	}
}

// Setup logs the partition assignment for the new session.
func (c *Consumer) Setup(session sarama.ConsumerGroupSession) error {
	for topic, partitions := range session.Claims() {
		c.log.Info("Partition assignment",
			slog.String("topic", topic),
			slog.Any("partitions", partitions),
		)
	}
	return nil
}

// Cleanup is called once when the consumer session ends (rebalance, shutdown).
func (c *Consumer) Cleanup(_ sarama.ConsumerGroupSession) error {
	c.log.Info("Kafka session cleanup complete")
	return nil
}

// ConsumeClaim processes one partition's records strictly in offset order.
// A record whose notification could not be persisted is left unmarked so the
// broker redelivers it; broadcast outcome plays no part in the decision.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		c.log.Debug("Donation event received",
			slog.String("topic", message.Topic),
			slog.Int("partition", int(message.Partition)),
			slog.Int64("offset", message.Offset),
		)

		notif, err := c.donationSvc.Process(session.Context(), message.Value)
		if err != nil {
			c.log.Error("Donation processing failed, offset left unmarked",
				slog.Int64("offset", message.Offset),
				slog.Any("error", err))
			continue
		}

		c.log.Info("Donation event processed",
			slog.Int64("offset", message.Offset),
			slog.Int64("notification_id", notif.ID))

		session.MarkMessage(message, "")
	}
	return nil
}
