package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/dcode-github/property_chatbot/backend/cache"
	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/store"
)

// AdminService applies back-office changes to the listings. Callers are
// expected to have authenticated the request already.
type AdminService struct {
	store store.PropertyStore
	cache cache.MatchCache
}

func NewAdminService(s store.PropertyStore, c cache.MatchCache) *AdminService {
	if c == nil {
		c = cache.Nop{}
	}
	return &AdminService{store: s, cache: c}
}

func (a *AdminService) Properties(ctx context.Context) ([]models.Property, error) {
	return a.store.List(ctx)
}

// AddProperty validates the form and appends the listing under a fresh id.
// Nothing is written when any field is missing, blank, or the price is not
// a positive number.
func (a *AdminService) AddProperty(ctx context.Context, form models.PropertyForm) (models.Property, error) {
	p, err := parseForm(form)
	if err != nil {
		return models.Property{}, err
	}

	added, err := a.store.Add(ctx, p)
	if err != nil {
		return models.Property{}, fmt.Errorf("add property: %w", err)
	}
	a.cache.Invalidate(ctx)
	log.Printf("Property %d (%s) added", added.ID, added.Name)
	return added, nil
}

// DeleteProperty removes every listing with id. Unknown ids are a no-op.
func (a *AdminService) DeleteProperty(ctx context.Context, id int) (int, error) {
	removed, err := a.store.Remove(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete property %d: %w", id, err)
	}
	if removed > 0 {
		a.cache.Invalidate(ctx)
	}
	log.Printf("Property %d delete removed %d record(s)", id, removed)
	return removed, nil
}

func parseForm(form models.PropertyForm) (models.Property, error) {
	text := []struct {
		name string
		val  *string
	}{
		{"name", form.Name},
		{"price", form.Price},
		{"location", form.Location},
		{"image", form.Image},
		{"description", form.Description},
		{"owner_email", form.OwnerEmail},
		{"owner_name", form.OwnerName},
	}
	for _, f := range text {
		if f.val == nil {
			return models.Property{}, fmt.Errorf("%w: %s", models.ErrMissingField, f.name)
		}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(*form.Price), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.Property{}, fmt.Errorf("%w: price must be a number", models.ErrValidation)
	}

	p := models.Property{
		Name:        *form.Name,
		Price:       price,
		Location:    *form.Location,
		Image:       *form.Image,
		Description: *form.Description,
		OwnerEmail:  *form.OwnerEmail,
		OwnerName:   *form.OwnerName,
	}.Trimmed()

	if err := models.Validate(p); err != nil {
		return models.Property{}, err
	}
	return p, nil
}
