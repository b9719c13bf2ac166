package storage

import (
	"errors"
	"sync"

	"golang.org/x/exp/slices"
)

// ErrNotFound is returned when no item matches the requested id
var ErrNotFound = errors.New("todo not found")

// firstID is the id handed to the first item of a fresh or reset store
const firstID = 1

// Item is a single entry of the todo list.
// ID is assigned by the store and never changes or gets reused.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Store defines the operations on the todo collection
// All implementations must be thread-safe for concurrent access
type Store interface {
	// List returns all items in insertion order
	// Returns an empty, non-nil slice when the store is empty
	List() []Item

	// Add appends a new item with the next id
	// The title is stored as given; callers validate it
	Add(title string) Item

	// Remove deletes the item with the given id and returns it
	// Returns ErrNotFound if no item has that id
	Remove(id int) (Item, error)

	// Reset drops every item and restarts id assignment
	Reset()

	// Len returns the number of stored items
	Len() int
}

// MemoryStore implements Store with an in-memory slice
// Uses sync.RWMutex for thread-safe concurrent access
type MemoryStore struct {
	mu     sync.RWMutex // Protects items and nextID
	items  []Item       // Insertion-ordered items
	nextID int          // Id for the next Add
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make([]Item, 0),
		nextID: firstID,
	}
}

// List returns a copy of all items in insertion order
func (m *MemoryStore) List() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Item, len(m.items))
	copy(result, m.items)
	return result
}

// Add stores a new, not yet completed item
func (m *MemoryStore) Add(title string) Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := Item{
		ID:    m.nextID,
		Title: title,
	}
	m.nextID++
	m.items = append(m.items, item)

	return item
}

// Remove deletes the first item with the given id
func (m *MemoryStore) Remove(id int) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.items, func(it Item) bool { return it.ID == id })
	if idx < 0 {
		return Item{}, ErrNotFound
	}

	removed := m.items[idx]
	m.items = slices.Delete(m.items, idx, idx+1)
	return removed, nil
}

// Reset clears the store and restarts ids at 1
func (m *MemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make([]Item, 0)
	m.nextID = firstID
}

// Len returns the number of stored items
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}
