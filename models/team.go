package models

import (
	"strings"
	"time"
)

// PlayerRole mirrors the ENUM in the team_players table. Free-text roles
// from the cricket API are normalized to these tokens on team submission.
type PlayerRole string

const (
	RoleBatsman      PlayerRole = "batsman"
	RoleBowler       PlayerRole = "bowler"
	RoleAllRounder   PlayerRole = "all_rounder"
	RoleWicketKeeper PlayerRole = "wicket_keeper"
)

// NormalizeRole maps a free-text role from the cricket API onto the fixed
// token set, lowercasing and replacing spaces and hyphens with underscores
// first. Unrecognized roles fall back to batsman rather than failing the
// enum constraint on insert.
func NormalizeRole(role string) PlayerRole {
	token := strings.ToLower(strings.TrimSpace(role))
	token = strings.NewReplacer(" ", "_", "-", "_").Replace(token)

	switch token {
	case "batsman":
		return RoleBatsman
	case "bowler":
		return RoleBowler
	case "all_rounder", "allrounder", "batting_allrounder", "bowling_allrounder":
		return RoleAllRounder
	case "wicket_keeper", "wicketkeeper", "wk_batsman":
		return RoleWicketKeeper
	default:
		return RoleBatsman
	}
}

// UserTeam is one user's roster submission for one contest. It owns
// exactly eleven TeamPlayer rows.
type UserTeam struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	ContestID     int       `json:"contest_id" db:"contest_id"`
	MatchID       string    `json:"match_id" db:"match_id"`
	TeamName      string    `json:"team_name" db:"team_name"`
	CaptainID     string    `json:"captain_id" db:"captain_id"`
	ViceCaptainID string    `json:"vice_captain_id" db:"vice_captain_id"`
	TotalCredits  float64   `json:"total_credits" db:"total_credits"`
	TotalPoints   float64   `json:"total_points" db:"total_points"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Joined contest fields, populated by list queries.
	ContestName   string        `json:"contest_name,omitempty" db:"-"`
	MatchName     string        `json:"match_name,omitempty" db:"-"`
	ContestStatus ContestStatus `json:"contest_status,omitempty" db:"-"`

	Players []TeamPlayer `json:"players,omitempty" db:"-"`
}

// TeamPlayer is a snapshot of a player's id/name/role/credit at the time
// of team submission. It is not live-linked to the external squad.
type TeamPlayer struct {
	ID            int        `json:"id" db:"id"`
	TeamID        int        `json:"team_id" db:"team_id"`
	PlayerID      string     `json:"player_id" db:"player_id"`
	PlayerName    string     `json:"player_name" db:"player_name"`
	PlayerRole    PlayerRole `json:"player_role" db:"player_role"`
	Credits       float64    `json:"credits" db:"credits"`
	Points        float64    `json:"points" db:"points"`
	IsCaptain     bool       `json:"is_captain" db:"is_captain"`
	IsViceCaptain bool       `json:"is_vice_captain" db:"is_vice_captain"`
}
