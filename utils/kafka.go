package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Nopesy/UCSB-Hacks-XII/config"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the activity-feed producer. Kafka is optional:
// when KAFKA_BROKERS is unset PublishActivity is a no-op.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, activity feed disabled")
		return
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}

	log.Printf("✅ Kafka producer ready (topic %s)", cfg.KafkaTopic)
}

// CloseKafka flushes and closes the producer.
func CloseKafka() {
	if kafkaWriter == nil {
		return
	}
	if err := kafkaWriter.Close(); err != nil {
		log.Printf("⚠️ Kafka close failed: %v", err)
	}
}

// ActivityMessage is one entry on the dashboard activity feed.
type ActivityMessage struct {
	UserID  string         `json:"user_id"`
	Action  string         `json:"action"`
	Details map[string]any `json:"details,omitempty"`
	At      time.Time      `json:"at"`
}

// PublishActivity emits a fire-and-forget activity message keyed by user.
func PublishActivity(userID, action string, details map[string]any) {
	if kafkaWriter == nil {
		return
	}

	msg := ActivityMessage{
		UserID:  userID,
		Action:  action,
		Details: details,
		At:      time.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(userID),
		Value: payload,
	}); err != nil {
		log.Printf("⚠️ Kafka publish %s failed: %v", action, err)
	}
}
