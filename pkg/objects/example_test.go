package objects_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/namihq/redisobj-go/pkg/objects"

	// Import backends to register them
	_ "github.com/namihq/redisobj-go/pkg/objects/memory"
	_ "github.com/namihq/redisobj-go/pkg/objects/redis"
)

func ExampleNewClientFromConfig() {
	client, err := objects.NewClientFromConfig(objects.Config{
		Backend: objects.BackendMemory,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	hash := objects.NewHash[string](client, "users")

	if _, err := hash.Set(ctx, "123", "john"); err != nil {
		log.Fatal(err)
	}

	value, err := hash.Get(ctx, "123")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(value.Or("unknown"))
	// Output: john
}

func ExampleQueue_Pop() {
	client, err := objects.NewClientFromConfig(objects.Config{
		Backend: objects.BackendMemory,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	queue := objects.NewQueue[string](client, "work")

	if err := queue.Push(ctx, "job-1"); err != nil {
		log.Fatal(err)
	}

	item, err := queue.Pop(ctx, time.Second)
	if err != nil {
		log.Fatal(err)
	}
	if v, ok := item.Get(); ok {
		fmt.Println(v)
	}
	// Output: job-1
}

func ExamplePriorityQueue() {
	client, err := objects.NewClientFromConfig(objects.Config{
		Backend: objects.BackendMemory,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](client, "tasks")

	pq.Push(ctx, "routine", 1)
	pq.Push(ctx, "urgent", 10)

	item, err := pq.PopReady(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(item.Or("none"))
	// Output: urgent
}
