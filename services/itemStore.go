package services

import (
	"context"
	"errors"

	"github.com/Omthube23/fastapi-elk-project/models"
)

// ErrItemNotFound is returned by Get and Delete when no item has the requested id.
var ErrItemNotFound = errors.New("item not found")

// NewItem carries the caller-supplied fields of an item. Validation happens
// before it reaches a store.
type NewItem struct {
	Name        string
	Description *string
	Price       float64
	Quantity    int
}

// ItemStore owns the item collection. Ids are assigned from a monotonic
// counter and are never reused, and List returns items in insertion order.
type ItemStore interface {
	Create(ctx context.Context, in NewItem) (models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id uint) (models.Item, error)
	Delete(ctx context.Context, id uint) (models.Item, error)
	Close() error
}
