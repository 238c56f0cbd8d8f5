package services

import (
	"context"
	"testing"
	"time"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngagementRepo struct {
	messages    []models.ContactMessage
	subscribers map[string]models.NewsletterSubscriber
	consents    []models.CookieConsent
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{subscribers: make(map[string]models.NewsletterSubscriber)}
}

func (r *fakeEngagementRepo) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = len(r.messages) + 1
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeEngagementRepo) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	s, ok := r.subscribers[email]
	if !ok {
		return nil, repositories.ErrSubscriberNotFound
	}
	copied := s
	return &copied, nil
}

func (r *fakeEngagementRepo) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	if _, ok := r.subscribers[sub.Email]; ok {
		return repositories.ErrSubscriberConflict
	}
	sub.ID = len(r.subscribers) + 1
	sub.SubscribedAt = time.Now()
	r.subscribers[sub.Email] = *sub
	return nil
}

func (r *fakeEngagementRepo) ReactivateSubscriber(ctx context.Context, email string) error {
	s, ok := r.subscribers[email]
	if !ok {
		return repositories.ErrSubscriberNotFound
	}
	s.IsActive = true
	s.UnsubscribedAt = nil
	r.subscribers[email] = s
	return nil
}

func (r *fakeEngagementRepo) CreateCookieConsent(ctx context.Context, consent *models.CookieConsent) error {
	consent.ID = len(r.consents) + 1
	r.consents = append(r.consents, *consent)
	return nil
}

func TestSubmitContactMessage(t *testing.T) {
	repo := newFakeEngagementRepo()
	svc := NewEngagementService(repo)

	err := svc.SubmitContactMessage(context.Background(), ContactInput{
		Name: "A", Email: "a@example.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)
	assert.Len(t, repo.messages, 1)

	err = svc.SubmitContactMessage(context.Background(), ContactInput{Name: "A"})
	assert.ErrorIs(t, err, ErrContactFieldsEmpty)

	err = svc.SubmitContactMessage(context.Background(), ContactInput{
		Name: "A", Email: "not-an-email", Subject: "Hi", Message: "Hello",
	})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestSubscribeLifecycle(t *testing.T) {
	repo := newFakeEngagementRepo()
	svc := NewEngagementService(repo)

	result, err := svc.Subscribe(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, Subscribed, result)

	_, err = svc.Subscribe(context.Background(), "fan@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)

	// A lapsed subscriber coming back is reactivated, not duplicated.
	lapsed := repo.subscribers["fan@example.com"]
	lapsed.IsActive = false
	repo.subscribers["fan@example.com"] = lapsed

	result, err = svc.Subscribe(context.Background(), "fan@example.com")
	require.NoError(t, err)
	assert.Equal(t, Resubscribed, result)
	assert.True(t, repo.subscribers["fan@example.com"].IsActive)
	assert.Len(t, repo.subscribers, 1)

	_, err = svc.Subscribe(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestRecordCookieConsent(t *testing.T) {
	repo := newFakeEngagementRepo()
	svc := NewEngagementService(repo)

	userID := 3
	err := svc.RecordCookieConsent(context.Background(), CookieConsentInput{
		UserID:    &userID,
		SessionID: "sess-1",
		Consent:   true,
		IPAddress: "10.0.0.1",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)
	require.Len(t, repo.consents, 1)
	assert.True(t, repo.consents[0].ConsentGiven)
	require.NotNil(t, repo.consents[0].UserID)
	assert.Equal(t, 3, *repo.consents[0].UserID)

	// Anonymous consent is valid too.
	err = svc.RecordCookieConsent(context.Background(), CookieConsentInput{Consent: false})
	require.NoError(t, err)
	assert.Nil(t, repo.consents[1].UserID)
}
