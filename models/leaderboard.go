package models

import "time"

// LeaderboardEntry is one user's standing within one contest. Rank is
// recomputed at query time from points order and is never authoritative
// in the table.
type LeaderboardEntry struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	ContestID   int       `json:"contest_id" db:"contest_id"`
	TeamID      int       `json:"team_id" db:"team_id"`
	TotalPoints float64   `json:"total_points" db:"total_points"`
	Rank        int       `json:"rank" db:"-"`
	PrizeWon    float64   `json:"prize_won" db:"prize_won"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Joined user/team fields.
	Username string `json:"username" db:"-"`
	FullName string `json:"full_name" db:"-"`
	TeamName string `json:"team_name" db:"-"`
}
