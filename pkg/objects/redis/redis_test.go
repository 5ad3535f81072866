package redis

import (
	"os"
	"testing"

	"github.com/namihq/redisobj-go/pkg/objects"
	"github.com/namihq/redisobj-go/pkg/objects/objtest"
)

func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set, skipping Redis tests")
	}

	factory := func(t *testing.T) objects.Store {
		store, err := New(redisURL)
		if err != nil {
			t.Fatalf("Failed to create Redis store: %v", err)
		}
		return store
	}

	objtest.RunConformanceTests(t, factory)
}

func TestIsConnectionError(t *testing.T) {
	if IsConnectionError(nil) {
		t.Fatal("nil is not a connection error")
	}
	if !IsConnectionError(errConnRefused{}) {
		t.Fatal("Expected connection refused to classify as connection error")
	}
}

type errConnRefused struct{}

func (errConnRefused) Error() string { return "dial tcp 127.0.0.1:6379: connection refused" }
