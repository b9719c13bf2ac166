// Package storage owns the todo collection and the id counter behind it.
//
// # Overview
//
// The service keeps every todo item in process memory. Nothing is written
// to disk, so a restart starts from an empty list. The package exposes a
// small Store interface so handlers and tests depend on behaviour rather
// than on the concrete MemoryStore.
//
// # Core Interface
//
// Store: ordered todo collection
//   - List() - All items, in the order they were added
//   - Add(title) - Append a new item with the next id
//   - Remove(id) - Delete one item by id
//   - Reset() - Drop everything and restart ids at 1
//   - Len() - Number of stored items
//
// # Ids
//
// Ids start at 1 and grow by one on every Add. Removing an item never
// frees its id: after adding 1, 2, 3 and removing 3, the next item is 4.
// Only Reset rewinds the counter, and nothing outside tests calls it.
//
// # Concurrency and Thread Safety
//
// net/http runs handlers on many goroutines, so MemoryStore guards its
// state with a sync.RWMutex:
//   - List and Len take the shared lock
//   - Add, Remove and Reset take the exclusive lock
//   - Appending an item and bumping the counter happen under one lock
//
// Items are plain values. List returns a fresh slice, so callers may
// modify what they receive without touching the store.
//
// # Error Handling
//
// ErrNotFound: no item with the requested id
//   - Returned by Remove()
//   - Store state is unchanged
//   - Compare with errors.Is
//
// # Usage Examples
//
//	store := storage.NewMemoryStore()
//
//	item := store.Add("Buy groceries")
//	fmt.Println(item.ID) // 1
//
//	if _, err := store.Remove(42); errors.Is(err, storage.ErrNotFound) {
//	    log.Println("nothing to delete")
//	}
//
//	for _, it := range store.List() {
//	    fmt.Printf("%d: %s\n", it.ID, it.Title)
//	}
//
// # Testing
//
// Every test builds its own store with NewMemoryStore, so no shared
// reset step is needed between tests. Property tests drive random
// add/remove sequences through pgregory.net/rapid:
//
//	go test ./internal/storage/... -cover
//	go test -race ./internal/storage/...
package storage
