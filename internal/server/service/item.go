package service

import (
	"math"

	"github.com/mdouchement/itemservice/internal/apierror"
	"github.com/mdouchement/itemservice/internal/database"
	"github.com/mdouchement/itemservice/internal/model"
	"github.com/pkg/errors"
)

type (
	// An ItemParams is used when a client creates or replaces an item.
	ItemParams struct {
		Params
		Name        string  `json:"name"        validate:"required"`
		Description *string `json:"description"`
	}

	// A ListParams is used when a client lists items.
	ListParams struct {
		Params
		Limit  int
		Offset int
		Search string // optional, case-insensitive substring of name or description
	}

	// An ItemService performs the item operations over a database.
	ItemService struct {
		db database.Client
	}
)

// DefaultLimit is the number of items returned when no limit is given.
const DefaultLimit = 100

// NewListParams returns the default list parameters.
func NewListParams() ListParams {
	return ListParams{
		Limit: DefaultLimit,
	}
}

// NewItem instantiates a new Item service.
func NewItem(db database.Client) *ItemService {
	return &ItemService{db: db}
}

// List returns the items matching the search term, paginated after filtering.
func (s *ItemService) List(params ListParams) ([]*model.Item, error) {
	items, err := s.db.FindItems()
	if err != nil {
		return nil, errors.Wrap(err, "could not list items")
	}

	filtered := items[:0]
	for _, item := range items {
		if item.Match(params.Search) {
			filtered = append(filtered, item)
		}
	}

	return Paginate(filtered, params.Offset, params.Limit), nil
}

// Get returns the item matching the given id.
func (s *ItemService) Get(id int) (*model.Item, error) {
	item, err := s.db.FindItem(id)
	return item, s.error(err, "could not get item")
}

// Create stores a new item.
func (s *ItemService) Create(params ItemParams) (*model.Item, error) {
	item, err := s.db.InsertItem(params.Name, params.Description)
	return item, s.error(err, "could not create item")
}

// Update replaces the name and the description of the item matching the given id.
func (s *ItemService) Update(id int, params ItemParams) (*model.Item, error) {
	item, err := s.db.ReplaceItem(id, params.Name, params.Description)
	return item, s.error(err, "could not update item")
}

// Delete removes the item matching the given id.
func (s *ItemService) Delete(id int) error {
	return s.error(s.db.DeleteItem(id), "could not delete item")
}

func (s *ItemService) error(err error, message string) error {
	if err == nil {
		return nil
	}
	if s.db.IsNotFound(err) {
		return apierror.NotFound(ItemNotFound)
	}
	return errors.Wrap(err, message)
}

// Paginate returns the [offset, offset+limit) window of items.
// Negative bounds count from the end and out of range bounds are clamped.
func Paginate(items []*model.Item, offset, limit int) []*model.Item {
	n := len(items)
	bound := func(i int) int {
		if i < 0 {
			i += n
			if i < 0 {
				return 0
			}
			return i
		}
		if i > n {
			return n
		}
		return i
	}

	start := bound(offset)
	stop := offset + limit
	switch {
	case limit > 0 && offset > math.MaxInt-limit:
		stop = n
	case limit < 0 && offset < math.MinInt-limit:
		stop = 0
	default:
		stop = bound(stop)
	}
	if start >= stop {
		return []*model.Item{}
	}
	return items[start:stop]
}
