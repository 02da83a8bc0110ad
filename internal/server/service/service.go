package service

// Params are the basic fields used in requests.
type Params struct {
	UserAgent string `json:"-"`
}

// ItemNotFound is the detail rendered when an item does not exist.
const ItemNotFound = "Item not found"

