package database

import (
	"os"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/mdouchement/itemservice/internal/model"
	"github.com/pkg/errors"
)

// ErrDatabaseExists is returned by StormInit when the database file is already present.
var ErrDatabaseExists = errors.New("database already exists")

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	if _, err := os.Stat(database); err == nil {
		return ErrDatabaseExists
	}

	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.Init(&model.Item{})
	return errors.Wrap(err, "could not init item index")
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.ReIndex(&model.Item{})
	return errors.Wrap(err, "could not ReIndex items")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// FindItem returns the item for the given id.
func (c *strm) FindItem(id int) (*model.Item, error) {
	var item model.Item
	if err := c.db.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}
	return &item, nil
}

// FindItems returns all the items in insertion order.
func (c *strm) FindItems() ([]*model.Item, error) {
	items := make([]*model.Item, 0)
	err := c.db.Select().OrderBy("ID").Find(&items)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find items")
	}
	return items, nil
}

// InsertItem stores a new item with a fresh id.
func (c *strm) InsertItem(name string, description *string) (*model.Item, error) {
	item := &model.Item{
		Name:        name,
		Description: description,
	}
	model.Touch(item, time.Now().UTC())

	// The ID is assigned by the storm increment on save.
	if err := c.db.Save(item); err != nil {
		return nil, errors.Wrap(err, "could not save the item")
	}
	return item.Clone(), nil
}

// ReplaceItem overwrites the name and the description of the item matching the given id.
func (c *strm) ReplaceItem(id int, name string, description *string) (*model.Item, error) {
	tx, err := c.db.Begin(true)
	if err != nil {
		return nil, errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback() // nolint:errcheck

	var item model.Item
	if err = tx.One("ID", id, &item); err != nil {
		return nil, errors.Wrap(err, "could not find item")
	}

	item.Name = name
	item.Description = description
	model.Touch(&item, time.Now().UTC())

	// Save overwrites the whole record so a nil description is persisted too.
	if err = tx.Save(&item); err != nil {
		return nil, errors.Wrap(err, "could not save the item")
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "could not commit transaction")
	}
	return &item, nil
}

// DeleteItem deletes the item matching the given id.
func (c *strm) DeleteItem(id int) error {
	tx, err := c.db.Begin(true)
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback() // nolint:errcheck

	var item model.Item
	if err = tx.One("ID", id, &item); err != nil {
		return errors.Wrap(err, "could not find item")
	}
	if err = tx.DeleteStruct(&item); err != nil {
		return errors.Wrap(err, "could not delete the item")
	}
	return errors.Wrap(tx.Commit(), "could not commit transaction")
}
