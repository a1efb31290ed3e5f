// Package services implements buyer submissions and admin listing changes
// on top of the property store.
package services

import (
	"context"
	"fmt"
	"log"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/dcode-github/property_chatbot/backend/notify"
	"github.com/dcode-github/property_chatbot/backend/store"
)

// SubmissionService validates buyer submissions and forwards them to the
// listing owner. Submissions are never stored.
type SubmissionService struct {
	store  store.PropertyStore
	mailer notify.Mailer
}

func NewSubmissionService(s store.PropertyStore, m notify.Mailer) *SubmissionService {
	return &SubmissionService{store: s, mailer: m}
}

func (s *SubmissionService) SubmitInterest(ctx context.Context, req models.InterestRequest) error {
	contact, err := req.Validate()
	if err != nil {
		return err
	}
	property, err := s.store.Get(ctx, contact.PropertyID)
	if err != nil {
		return err
	}
	return s.deliver(ctx, notify.InterestNotification(property, contact))
}

func (s *SubmissionService) BookVisit(ctx context.Context, req models.VisitRequest) error {
	visit, err := req.Validate()
	if err != nil {
		return err
	}
	property, err := s.store.Get(ctx, visit.PropertyID)
	if err != nil {
		return err
	}
	return s.deliver(ctx, notify.VisitNotification(property, visit))
}

func (s *SubmissionService) deliver(ctx context.Context, n notify.Notification) error {
	if err := s.mailer.Send(ctx, n.To, n.Subject, n.Body); err != nil {
		log.Printf("Error sending email to %s: %v", n.To, err)
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailure, err)
	}
	return nil
}
