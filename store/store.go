// Package store holds the authoritative list of property listings.
package store

import (
	"context"

	"github.com/dcode-github/property_chatbot/backend/models"
)

// PropertyStore is the persisted collection of listings. Implementations
// serialize mutations and persist the full collection before returning.
type PropertyStore interface {
	// List returns a copy of every listing in insertion order.
	List(ctx context.Context) ([]models.Property, error)
	// Get returns the listing with the given id or models.ErrNotFound.
	Get(ctx context.Context, id int) (models.Property, error)
	// Add assigns the next id to p, appends it and persists.
	Add(ctx context.Context, p models.Property) (models.Property, error)
	// Remove drops every listing with the given id and reports how many
	// were removed. Removing an unknown id is not an error.
	Remove(ctx context.Context, id int) (int, error)
}

// nextID returns one past the largest id, or 1 for an empty list.
func nextID(properties []models.Property) int {
	max := 0
	for _, p := range properties {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
