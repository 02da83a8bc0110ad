package database

import (
	"github.com/mdouchement/itemservice/internal/model"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

type (
	// A Client can interacts with the database.
	Client interface {
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		ItemInteraction
	}

	// An ItemInteraction defines all the methods used to interact with a item record(s).
	ItemInteraction interface {
		// FindItem returns the item for the given id.
		FindItem(id int) (*model.Item, error)
		// FindItems returns all the items in insertion order.
		FindItems() ([]*model.Item, error)
		// InsertItem stores a new item with a fresh id.
		InsertItem(name string, description *string) (*model.Item, error)
		// ReplaceItem overwrites the name and the description of the item matching the given id.
		ReplaceItem(id int, name string, description *string) (*model.Item, error)
		// DeleteItem deletes the item matching the given id.
		DeleteItem(id int) error
	}
)
