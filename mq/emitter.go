package mq

import (
	"context"
	"encoding/json"
	"log"

	"medibook/globals"
	"medibook/models"
	"medibook/rdx"
)

const channel = "appointment-events"

// Emit publishes an event to the redis channel. Publishing is best-effort
// and detached from the request context: a broker outage or an already
// finished request must never fail the operation that triggered the event.
func Emit(_ context.Context, eventName string, content models.Index) {
	content.Method = eventName
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(globals.Ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", eventName, err)
	}
}

// eventLabel prefers the cached display name for user events so the audit
// log reads as who, not which id. Misses fall back to the raw id.
func eventLabel(event models.Index, lookup func(string) (string, error)) string {
	if event.EntityType != "user" {
		return event.EntityId
	}
	name, err := lookup("users:" + event.EntityId)
	if err != nil || name == "" {
		return event.EntityId
	}
	return name
}

// StartWorker consumes the event channel. Today the only subscriber logs
// events for audit; notification senders can hang off the same channel.
func StartWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[events] listening for appointment events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[events] failed to parse event: %v", err)
			continue
		}
		log.Printf("[events] %s %s/%s", event.Method, event.EntityType, eventLabel(event, rdx.RdxGet))
	}
}
