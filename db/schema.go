package db

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates all tables and types when they do not exist yet.
// Statements run in order because of the foreign keys between them.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`DO $$ BEGIN
		CREATE TYPE contest_status AS ENUM ('upcoming', 'live', 'completed', 'cancelled');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE contest_type AS ENUM ('mega', 'head_to_head', 'practice', 'winner_takes_all');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`DO $$ BEGIN
		CREATE TYPE player_role AS ENUM ('batsman', 'bowler', 'all_rounder', 'wicket_keeper');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(100) NOT NULL,
		mobile VARCHAR(15),
		date_of_birth DATE NOT NULL,
		state VARCHAR(50) NOT NULL,
		profile_image VARCHAR(255),
		total_points INTEGER NOT NULL DEFAULT 0,
		matches_played INTEGER NOT NULL DEFAULT 0,
		contests_won INTEGER NOT NULL DEFAULT 0,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS user_sessions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		session_token VARCHAR(255) NOT NULL UNIQUE,
		ip_address VARCHAR(45),
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_sessions_user_id ON user_sessions (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_sessions_expires_at ON user_sessions (expires_at)`,

	`CREATE TABLE IF NOT EXISTS contests (
		id SERIAL PRIMARY KEY,
		match_id VARCHAR(100) NOT NULL,
		match_name VARCHAR(255) NOT NULL,
		contest_name VARCHAR(100) NOT NULL,
		contest_type contest_type NOT NULL DEFAULT 'practice',
		max_participants INTEGER NOT NULL DEFAULT 100,
		current_participants INTEGER NOT NULL DEFAULT 0,
		entry_fee NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		prize_pool NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		first_prize NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		status contest_status NOT NULL DEFAULT 'upcoming',
		match_start_time TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contests_match_id ON contests (match_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contests_status ON contests (status)`,
	`CREATE INDEX IF NOT EXISTS idx_contests_match_start_time ON contests (match_start_time)`,

	`CREATE TABLE IF NOT EXISTS user_teams (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		contest_id INTEGER NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
		match_id VARCHAR(100) NOT NULL,
		team_name VARCHAR(100) NOT NULL DEFAULT 'My Team',
		captain_id VARCHAR(100) NOT NULL,
		vice_captain_id VARCHAR(100) NOT NULL,
		total_credits NUMERIC(4,1) NOT NULL DEFAULT 100.0,
		total_points NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, contest_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_teams_contest_id ON user_teams (contest_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_teams_match_id ON user_teams (match_id)`,

	`CREATE TABLE IF NOT EXISTS team_players (
		id SERIAL PRIMARY KEY,
		team_id INTEGER NOT NULL REFERENCES user_teams(id) ON DELETE CASCADE,
		player_id VARCHAR(100) NOT NULL,
		player_name VARCHAR(100) NOT NULL,
		player_role player_role NOT NULL,
		credits NUMERIC(4,1) NOT NULL,
		points NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		is_captain BOOLEAN NOT NULL DEFAULT FALSE,
		is_vice_captain BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_team_players_team_id ON team_players (team_id)`,

	`CREATE TABLE IF NOT EXISTS leaderboard (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		contest_id INTEGER NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
		team_id INTEGER NOT NULL REFERENCES user_teams(id) ON DELETE CASCADE,
		total_points NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		prize_won NUMERIC(10,2) NOT NULL DEFAULT 0.00,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, contest_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leaderboard_contest_id ON leaderboard (contest_id)`,

	`CREATE TABLE IF NOT EXISTS contact_messages (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL,
		subject VARCHAR(200) NOT NULL,
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id SERIAL PRIMARY KEY,
		email VARCHAR(100) NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		subscribed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		unsubscribed_at TIMESTAMPTZ
	)`,

	`CREATE TABLE IF NOT EXISTS cookie_consents (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		session_id VARCHAR(255),
		consent_given BOOLEAN NOT NULL DEFAULT FALSE,
		ip_address VARCHAR(45),
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
