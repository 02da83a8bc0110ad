package database

import (
	"sync"
	"time"

	"github.com/mdouchement/itemservice/internal/model"
	"github.com/pkg/errors"
)

type memory struct {
	mu     sync.RWMutex
	items  map[int]*model.Item
	order  []int
	nextID int
}

// MemoryOpen returns a new process-local database.
// All records are lost when the process exits.
func MemoryOpen() Client {
	return &memory{
		items:  map[int]*model.Item{},
		nextID: 1,
	}
}

// Close the database.
func (c *memory) Close() error {
	return nil
}

// IsNotFound returns true if err is a not found error.
func (c *memory) IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// FindItem returns the item for the given id.
func (c *memory) FindItem(id int) (*model.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "could not find item")
	}
	return item.Clone(), nil
}

// FindItems returns all the items in insertion order.
func (c *memory) FindItems() ([]*model.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]*model.Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id].Clone())
	}
	return items, nil
}

// InsertItem stores a new item with a fresh id.
func (c *memory) InsertItem(name string, description *string) (*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := (&model.Item{
		Name:        name,
		Description: description,
	}).Clone()
	model.Touch(item, time.Now().UTC())
	item.SetID(c.nextID)
	c.nextID++

	c.items[item.ID] = item
	c.order = append(c.order, item.ID)
	return item.Clone(), nil
}

// ReplaceItem overwrites the name and the description of the item matching the given id.
func (c *memory) ReplaceItem(id int, name string, description *string) (*model.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "could not replace item")
	}

	*item = *(&model.Item{
		Base:        item.Base,
		Name:        name,
		Description: description,
	}).Clone()
	model.Touch(item, time.Now().UTC())
	return item.Clone(), nil
}

// DeleteItem deletes the item matching the given id.
func (c *memory) DeleteItem(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return errors.Wrap(ErrNotFound, "could not delete item")
	}

	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
