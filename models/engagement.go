package models

import "time"

type ContactMessage struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type NewsletterSubscriber struct {
	ID             int        `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at" db:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty" db:"unsubscribed_at"`
}

type CookieConsent struct {
	ID           int       `json:"id" db:"id"`
	UserID       *int      `json:"user_id,omitempty" db:"user_id"`
	SessionID    *string   `json:"session_id,omitempty" db:"session_id"`
	ConsentGiven bool      `json:"consent_given" db:"consent_given"`
	IPAddress    *string   `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent    *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
