package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/repositories"
)

type EngagementService interface {
	SubmitContactMessage(ctx context.Context, input ContactInput) error
	Subscribe(ctx context.Context, email string) (SubscribeResult, error)
	RecordCookieConsent(ctx context.Context, input CookieConsentInput) error
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubscribeResult distinguishes a fresh signup from a lapsed subscriber
// coming back, the two get different confirmation copy.
type SubscribeResult int

const (
	Subscribed SubscribeResult = iota
	Resubscribed
)

type CookieConsentInput struct {
	UserID    *int
	SessionID string
	Consent   bool
	IPAddress string
	UserAgent string
}

type engagementService struct {
	repo repositories.EngagementRepository
}

func NewEngagementService(repo repositories.EngagementRepository) EngagementService {
	return &engagementService{repo: repo}
}

func (s *engagementService) SubmitContactMessage(ctx context.Context, input ContactInput) error {
	if input.Name == "" || input.Email == "" || input.Subject == "" || input.Message == "" {
		return ErrContactFieldsEmpty
	}
	if !validEmail(input.Email) {
		return ErrEmailRequired
	}

	msg := &models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

func (s *engagementService) Subscribe(ctx context.Context, email string) (SubscribeResult, error) {
	if !validEmail(email) {
		return 0, ErrEmailRequired
	}

	existing, err := s.repo.GetSubscriberByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsActive {
			return 0, ErrAlreadySubscribed
		}
		if err := s.repo.ReactivateSubscriber(ctx, email); err != nil {
			return 0, fmt.Errorf("failed to reactivate subscriber: %w", err)
		}
		return Resubscribed, nil
	case errors.Is(err, repositories.ErrSubscriberNotFound):
	default:
		return 0, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub := &models.NewsletterSubscriber{Email: email, IsActive: true}
	if err := s.repo.CreateSubscriber(ctx, sub); err != nil {
		if errors.Is(err, repositories.ErrSubscriberConflict) {
			return 0, ErrAlreadySubscribed
		}
		return 0, fmt.Errorf("failed to create subscriber: %w", err)
	}
	return Subscribed, nil
}

func (s *engagementService) RecordCookieConsent(ctx context.Context, input CookieConsentInput) error {
	consent := &models.CookieConsent{
		UserID:       input.UserID,
		ConsentGiven: input.Consent,
	}
	if input.SessionID != "" {
		consent.SessionID = &input.SessionID
	}
	if input.IPAddress != "" {
		consent.IPAddress = &input.IPAddress
	}
	if input.UserAgent != "" {
		consent.UserAgent = &input.UserAgent
	}
	if err := s.repo.CreateCookieConsent(ctx, consent); err != nil {
		return fmt.Errorf("failed to record cookie consent: %w", err)
	}
	return nil
}
