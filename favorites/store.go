// Package favorites keeps the saved-meal list. Every backend keeps insertion
// order and holds at most one entry per meal ID.
package favorites

import (
	"context"
	"errors"

	"mykitchen_backend/models"
)

// ErrMissingID is returned by Add when the meal carries no idMeal.
var ErrMissingID = errors.New("meal has no idMeal")

// Store is a favorites backend.
type Store interface {
	// List returns the favorites in insertion order.
	List(ctx context.Context) ([]models.Favorite, error)
	// Add appends fav unless a favorite with the same ID exists, and
	// returns the full list afterwards.
	Add(ctx context.Context, fav models.Favorite) ([]models.Favorite, error)
	// Remove deletes the favorite with id. Removing an unknown id is not an error.
	Remove(ctx context.Context, id string) error
	Close() error
}
