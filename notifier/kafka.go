package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"dailyfeed/logger"
)

// KafkaConfig holds the producer settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Published is the JSON document written to the topic.
type Published struct {
	Subject string    `json:"subject"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	HTML    string    `json:"html"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sent_at"`
}

// Kafka publishes each message to a topic, keyed by subject.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
	log      logger.Logger
}

// NewSaramaConfig returns the producer configuration used by NewKafkaProducer.
func NewSaramaConfig() *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	return saramaConfig
}

// NewKafkaProducer connects a sync producer to the configured brokers.
func NewKafkaProducer(cfg KafkaConfig) (sarama.SyncProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS not set")
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// NewKafka wraps a producer publishing to topic.
func NewKafka(producer sarama.SyncProducer, topic string, log logger.Logger) *Kafka {
	if log == nil {
		log = logger.NewNop()
	}
	return &Kafka{producer: producer, topic: topic, now: time.Now, log: log}
}

func (k *Kafka) Name() string { return "kafka" }

func (k *Kafka) Deliver(_ context.Context, msg Message) error {
	if k.topic == "" {
		return errors.New("KAFKA_TOPIC not set")
	}

	payload, err := json.Marshal(Published{
		Subject: msg.Subject,
		From:    msg.From,
		To:      msg.To,
		HTML:    msg.HTML,
		Text:    msg.Text,
		SentAt:  k.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode kafka message: %w", err)
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(msg.Subject),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", k.topic, err)
	}

	k.log.Info("email published to kafka",
		logger.String("topic", k.topic),
		logger.Int("partition", int(partition)),
		logger.Any("offset", offset),
	)
	return nil
}

// Close shuts the producer down.
func (k *Kafka) Close() error {
	return k.producer.Close()
}
