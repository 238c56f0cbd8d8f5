package models

import "time"

type User struct {
	ID            int        `json:"id" db:"id"`
	Username      string     `json:"username" db:"username"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FullName      string     `json:"full_name" db:"full_name"`
	Mobile        *string    `json:"mobile,omitempty" db:"mobile"`
	DateOfBirth   time.Time  `json:"date_of_birth" db:"date_of_birth"`
	State         string     `json:"state" db:"state"`
	ProfileImage  *string    `json:"profile_image,omitempty" db:"profile_image"`
	TotalPoints   int        `json:"total_points" db:"total_points"`
	MatchesPlayed int        `json:"matches_played" db:"matches_played"`
	ContestsWon   int        `json:"contests_won" db:"contests_won"`
	IsVerified    bool       `json:"is_verified" db:"is_verified"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty" db:"last_login"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
