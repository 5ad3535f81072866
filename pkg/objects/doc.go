// Package objects provides typed accessors over Redis server-side data
// structures: hashes, FIFO queues backed by lists, and priority queues
// backed by sorted sets. Application code manipulates a remote structure
// through local method calls; values are serialized as JSON on the way in
// and out.
//
// Accessors are stateless views. They hold no cache, no locks and no retry
// logic: every method is a direct pass-through to one store command, and
// consistency is whatever the store's atomic command execution gives you.
// A missing field, an empty queue or an elapsed blocking-pop timeout comes
// back as an absent Value, never as an error.
//
// Example usage:
//
//	store, err := objects.NewStoreFromConfig(objects.Config{
//		Backend:  objects.BackendRedis,
//		RedisURL: "redis://localhost:6379/0",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	client := objects.NewClient(store)
//	defer client.Close()
//
//	ctx := context.Background()
//	queue := objects.NewQueue[string](client, "work")
//	if err := queue.Push(ctx, "job-1"); err != nil {
//		log.Fatal(err)
//	}
//
//	item, err := queue.Pop(ctx, 5*time.Second)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if v, ok := item.Get(); ok {
//		fmt.Println(v)
//	}
//
// The in-memory backend provides a first-class development and testing
// experience, including blocking pops. The Redis adapter wraps go-redis/v9
// for production use behind the same Store interface.
package objects
