package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dcode-github/property_chatbot/backend/cache"
	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) Get(context.Context, float64) ([]models.Property, cache.Generation, bool) {
	return nil, 0, false
}
func (c *countingCache) Set(context.Context, cache.Generation, float64, []models.Property) {}
func (c *countingCache) Invalidate(context.Context)                                        { c.invalidations++ }

func strPtr(s string) *string { return &s }

func validForm() models.PropertyForm {
	return models.PropertyForm{
		Name:        strPtr("A"),
		Price:       strPtr("200000"),
		Location:    strPtr("X"),
		Image:       strPtr("i"),
		Description: strPtr("d"),
		OwnerEmail:  strPtr("o@e.com"),
		OwnerName:   strPtr("O"),
	}
}

func newStore(t *testing.T) *store.FileStore {
	t.Helper()
	return store.OpenFileStore(filepath.Join(t.TempDir(), "properties.json"))
}

func interest(id string) models.InterestRequest {
	return models.InterestRequest{
		PropertyID: json.RawMessage(id),
		Name:       strPtr("Ann"),
		Email:      strPtr("ann@example.com"),
		Phone:      strPtr("555"),
	}
}

func TestAddPropertyOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := &countingCache{}
	admin := NewAdminService(s, c)

	added, err := admin.AddProperty(ctx, validForm())
	require.NoError(t, err)

	all, err := admin.Properties(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, added, all[0])
	assert.Equal(t, models.Property{
		ID: 1, Name: "A", Price: 200000, Location: "X", Image: "i",
		Description: "d", OwnerEmail: "o@e.com", OwnerName: "O",
	}, added)
	assert.Equal(t, 1, c.invalidations)
}

func TestAddPropertyAssignsNextID(t *testing.T) {
	ctx := context.Background()
	admin := NewAdminService(newStore(t), nil)

	for i := 0; i < 3; i++ {
		_, err := admin.AddProperty(ctx, validForm())
		require.NoError(t, err)
	}
	_, err := admin.DeleteProperty(ctx, 3)
	require.NoError(t, err)

	before, err := admin.Properties(ctx)
	require.NoError(t, err)

	added, err := admin.AddProperty(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, before[len(before)-1].ID+1, added.ID)
}

func TestAddPropertyTrimsFields(t *testing.T) {
	form := validForm()
	form.Name = strPtr("  Loft  ")
	form.Price = strPtr(" 1500.5 ")

	added, err := NewAdminService(newStore(t), nil).AddProperty(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Loft", added.Name)
	assert.Equal(t, 1500.5, added.Price)
}

func TestAddPropertyValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.PropertyForm)
	}{
		{"missing name", func(f *models.PropertyForm) { f.Name = nil }},
		{"blank location", func(f *models.PropertyForm) { f.Location = strPtr("   ") }},
		{"missing owner email", func(f *models.PropertyForm) { f.OwnerEmail = nil }},
		{"non numeric price", func(f *models.PropertyForm) { f.Price = strPtr("cheap") }},
		{"zero price", func(f *models.PropertyForm) { f.Price = strPtr("0") }},
		{"negative price", func(f *models.PropertyForm) { f.Price = strPtr("-5") }},
		{"nan price", func(f *models.PropertyForm) { f.Price = strPtr("NaN") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)
			c := &countingCache{}
			form := validForm()
			tt.modify(&form)

			_, err := NewAdminService(s, c).AddProperty(ctx, form)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrValidation)

			all, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
			assert.Zero(t, c.invalidations)
		})
	}
}

func TestDeleteProperty(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := &countingCache{}
	admin := NewAdminService(s, c)
	_, err := admin.AddProperty(ctx, validForm())
	require.NoError(t, err)
	c.invalidations = 0

	removed, err := admin.DeleteProperty(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Zero(t, c.invalidations)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	removed, err = admin.DeleteProperty(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.invalidations)
}

func TestSubmitInterest(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := NewAdminService(s, nil).AddProperty(ctx, validForm())
	require.NoError(t, err)

	mailer := &fakeMailer{}
	require.NoError(t, NewSubmissionService(s, mailer).SubmitInterest(ctx, interest(`1`)))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "o@e.com", mailer.sent[0].to)
	assert.Equal(t, "New Interest in Property: A", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "Price: $200,000")
}

func TestSubmissionFailuresSkipMailer(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := NewAdminService(s, nil).AddProperty(ctx, validForm())
	require.NoError(t, err)

	missingPhone := interest(`1`)
	missingPhone.Phone = nil

	tests := []struct {
		name string
		req  models.InterestRequest
		want error
	}{
		{"missing field", missingPhone, models.ErrValidation},
		{"bad id", interest(`"x"`), models.ErrValidation},
		{"unknown property", interest(`99`), models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			err := NewSubmissionService(s, mailer).SubmitInterest(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestBookVisit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := NewAdminService(s, nil).AddProperty(ctx, validForm())
	require.NoError(t, err)

	mailer := &fakeMailer{}
	svc := NewSubmissionService(s, mailer)

	req := models.VisitRequest{InterestRequest: interest(`"1"`), Date: strPtr("2024-06-01"), Time: strPtr("10:00")}
	require.NoError(t, svc.BookVisit(ctx, req))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Visit Booked for Property: A", mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].body, "Date: 2024-06-01")

	req.Time = strPtr(" ")
	assert.ErrorIs(t, svc.BookVisit(ctx, req), models.ErrValidation)
	assert.Len(t, mailer.sent, 1)
}

func TestDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := NewAdminService(s, nil).AddProperty(ctx, validForm())
	require.NoError(t, err)

	mailer := &fakeMailer{err: errors.New("connection refused")}
	err = NewSubmissionService(s, mailer).SubmitInterest(ctx, interest(`1`))
	assert.ErrorIs(t, err, models.ErrDeliveryFailure)
}
