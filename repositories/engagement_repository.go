package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/lib/pq"
)

var (
	ErrSubscriberNotFound = errors.New("newsletter subscriber not found")
	ErrSubscriberConflict = errors.New("email is already subscribed")
)

// EngagementRepository persists the simple logging entities: contact
// messages, newsletter subscribers, and cookie consents.
type EngagementRepository interface {
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
	GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error
	ReactivateSubscriber(ctx context.Context, email string) error
	CreateCookieConsent(ctx context.Context, consent *models.CookieConsent) error
}

type postgresEngagementRepository struct {
	db *sql.DB
}

func NewPostgresEngagementRepository(db *sql.DB) EngagementRepository {
	return &postgresEngagementRepository{db: db}
}

func (r *postgresEngagementRepository) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at`

	err := r.db.QueryRowContext(ctx, query,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *postgresEngagementRepository) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	query := `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
		WHERE email = $1`

	sub := &models.NewsletterSubscriber{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.IsActive,
		&sub.SubscribedAt,
		&sub.UnsubscribedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *postgresEngagementRepository) CreateSubscriber(ctx context.Context, sub *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		RETURNING id, is_active, subscribed_at`

	err := r.db.QueryRowContext(ctx, query, sub.Email).Scan(&sub.ID, &sub.IsActive, &sub.SubscribedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrSubscriberConflict
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

func (r *postgresEngagementRepository) ReactivateSubscriber(ctx context.Context, email string) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = TRUE, unsubscribed_at = NULL
		WHERE email = $1`

	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSubscriberNotFound)
}

func (r *postgresEngagementRepository) CreateCookieConsent(ctx context.Context, consent *models.CookieConsent) error {
	query := `
		INSERT INTO cookie_consents (user_id, session_id, consent_given, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		consent.UserID,
		consent.SessionID,
		consent.ConsentGiven,
		consent.IPAddress,
		consent.UserAgent,
	).Scan(&consent.ID, &consent.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record cookie consent: %w", err)
	}
	return nil
}
