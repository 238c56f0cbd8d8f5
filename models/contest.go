package models

import "time"

// ContestStatus mirrors the ENUM in the contests table.
type ContestStatus string

const (
	ContestUpcoming  ContestStatus = "upcoming"
	ContestLive      ContestStatus = "live"
	ContestCompleted ContestStatus = "completed"
	ContestCancelled ContestStatus = "cancelled"
)

type ContestType string

const (
	ContestMega           ContestType = "mega"
	ContestHeadToHead     ContestType = "head_to_head"
	ContestPractice       ContestType = "practice"
	ContestWinnerTakesAll ContestType = "winner_takes_all"
)

// Contest is a prize pool tied to one external match that users join
// with a fantasy team.
type Contest struct {
	ID                  int           `json:"id" db:"id"`
	MatchID             string        `json:"match_id" db:"match_id"`
	MatchName           string        `json:"match_name" db:"match_name"`
	ContestName         string        `json:"contest_name" db:"contest_name"`
	ContestType         ContestType   `json:"contest_type" db:"contest_type"`
	MaxParticipants     int           `json:"max_participants" db:"max_participants"`
	CurrentParticipants int           `json:"current_participants" db:"current_participants"`
	EntryFee            float64       `json:"entry_fee" db:"entry_fee"`
	PrizePool           float64       `json:"prize_pool" db:"prize_pool"`
	FirstPrize          float64       `json:"first_prize" db:"first_prize"`
	Status              ContestStatus `json:"status" db:"status"`
	MatchStartTime      time.Time     `json:"match_start_time" db:"match_start_time"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}
