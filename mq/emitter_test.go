package mq

import (
	"errors"
	"testing"

	"medibook/models"
)

func TestEventLabel(t *testing.T) {
	lookup := func(key string) (string, error) {
		if key == "users:u123" {
			return "Asha", nil
		}
		return "", errors.New("not found")
	}

	ev := models.Index{EntityType: "user", EntityId: "u123"}
	if got := eventLabel(ev, lookup); got != "Asha" {
		t.Fatalf("expected cached name, got %q", got)
	}

	ev = models.Index{EntityType: "user", EntityId: "u999"}
	if got := eventLabel(ev, lookup); got != "u999" {
		t.Fatalf("cache miss must fall back to the id, got %q", got)
	}

	ev = models.Index{EntityType: "appointment", EntityId: "a1"}
	if got := eventLabel(ev, lookup); got != "a1" {
		t.Fatalf("non-user events keep the id, got %q", got)
	}
}
