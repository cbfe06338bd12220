package alerts

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	streamKey = "opina:alerts"
	groupName = "opina:alerts:dashboard"
	maxLen    = 1000
)

// Publish appends a dissatisfaction alert to the Redis stream. A missing
// Redis client is not an error; the alert path still works through email.
func Publish(event Event) error {
	if rdb == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	err = rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		MaxLen: maxLen,
		Approx: true,
		Values: map[string]interface{}{"payload": payload},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish alert event: %w", err)
	}
	return nil
}

// AlertHub receives consumed alert events for broadcast
type AlertHub interface {
	BroadcastAlert(event Event)
}

// StreamConsumer reads alert events from the stream and forwards them to the
// dashboard websocket hub
type StreamConsumer struct {
	rdb          *redis.Client
	consumerName string
	hub          AlertHub
}

// NewStreamConsumer creates a consumer bound to this process instance
func NewStreamConsumer(hub AlertHub) *StreamConsumer {
	if rdb == nil {
		return nil
	}

	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("consumer-%s-%d", hostname, os.Getpid())

	return &StreamConsumer{
		rdb:          rdb,
		consumerName: consumerName,
		hub:          hub,
	}
}

// Start creates the consumer group if needed and begins consuming
func (sc *StreamConsumer) Start() error {
	if sc == nil || sc.rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	err := sc.rdb.XGroupCreateMkStream(ctx, streamKey, groupName, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		log.Printf("Alert consumer group create: %v", err)
	}

	go sc.consumeLoop()
	return nil
}

func (sc *StreamConsumer) consumeLoop() {
	for {
		streams, err := sc.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    groupName,
			Consumer: sc.consumerName,
			Streams:  []string{streamKey, ">"},
			Count:    100,
			Block:    time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				if err := sc.processMessage(message); err != nil {
					log.Printf("Failed to process alert message %s: %v", message.ID, err)
					continue
				}
				if err := sc.rdb.XAck(ctx, streamKey, groupName, message.ID).Err(); err != nil {
					log.Printf("Failed to ack alert message %s: %v", message.ID, err)
				}
			}
		}
	}
}

func (sc *StreamConsumer) processMessage(message redis.XMessage) error {
	raw, ok := message.Values["payload"].(string)
	if !ok {
		return fmt.Errorf("missing payload field")
	}

	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return fmt.Errorf("invalid alert payload: %w", err)
	}

	if sc.hub != nil {
		sc.hub.BroadcastAlert(event)
	}
	return nil
}
