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
	ErrTeamNotFound        = errors.New("user team not found")
	ErrTeamContestConflict = errors.New("user already has a team in this contest")
	ErrTeamContestInvalid  = errors.New("team contest conflict or invalid")
	ErrTeamUserInvalid     = errors.New("team user conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.UserTeam) error
	CreatePlayers(ctx context.Context, exec SQLExecutor, players []*models.TeamPlayer) error
	ExistsByUserAndContest(ctx context.Context, userID, contestID int) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]*models.UserTeam, error)
	ListPlayers(ctx context.Context, teamID int) ([]models.TeamPlayer, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, team *models.UserTeam) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO user_teams
			(user_id, contest_id, match_id, team_name, captain_id, vice_captain_id, total_credits)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, total_points, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		team.UserID,
		team.ContestID,
		team.MatchID,
		team.TeamName,
		team.CaptainID,
		team.ViceCaptainID,
		team.TotalCredits,
	).Scan(&team.ID, &team.TotalPoints, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "user_teams_user_id_contest_id_key" {
					return ErrTeamContestConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "user_teams_contest_id_fkey":
					return ErrTeamContestInvalid
				case "user_teams_user_id_fkey":
					return ErrTeamUserInvalid
				}
			}
		}
		return fmt.Errorf("failed to create user team: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) CreatePlayers(ctx context.Context, exec SQLExecutor, players []*models.TeamPlayer) error {
	if len(players) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO team_players
			(team_id, player_id, player_name, player_role, credits, is_captain, is_vice_captain)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	for _, player := range players {
		err := executor.QueryRowContext(ctx, query,
			player.TeamID,
			player.PlayerID,
			player.PlayerName,
			player.PlayerRole,
			player.Credits,
			player.IsCaptain,
			player.IsViceCaptain,
		).Scan(&player.ID)
		if err != nil {
			return fmt.Errorf("failed to create team player %s: %w", player.PlayerID, err)
		}
	}
	return nil
}

func (r *postgresTeamRepository) ExistsByUserAndContest(ctx context.Context, userID, contestID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_teams WHERE user_id = $1 AND contest_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, contestID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check team existence: %w", err)
	}
	return exists, nil
}

// ListByUser returns the user's teams with contest context, newest first.
func (r *postgresTeamRepository) ListByUser(ctx context.Context, userID int) ([]*models.UserTeam, error) {
	query := `
		SELECT
			ut.id, ut.user_id, ut.contest_id, ut.match_id, ut.team_name,
			ut.captain_id, ut.vice_captain_id, ut.total_credits, ut.total_points,
			ut.created_at, ut.updated_at,
			c.contest_name, c.match_name, c.status
		FROM user_teams ut
		JOIN contests c ON ut.contest_id = c.id
		WHERE ut.user_id = $1
		ORDER BY ut.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.UserTeam, 0)
	for rows.Next() {
		var t models.UserTeam
		scanErr := rows.Scan(
			&t.ID, &t.UserID, &t.ContestID, &t.MatchID, &t.TeamName,
			&t.CaptainID, &t.ViceCaptainID, &t.TotalCredits, &t.TotalPoints,
			&t.CreatedAt, &t.UpdatedAt,
			&t.ContestName, &t.MatchName, &t.ContestStatus,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) ListPlayers(ctx context.Context, teamID int) ([]models.TeamPlayer, error) {
	query := `
		SELECT id, team_id, player_id, player_name, player_role, credits, points,
		       is_captain, is_vice_captain
		FROM team_players
		WHERE team_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.TeamPlayer, 0, 11)
	for rows.Next() {
		var p models.TeamPlayer
		scanErr := rows.Scan(
			&p.ID, &p.TeamID, &p.PlayerID, &p.PlayerName, &p.PlayerRole,
			&p.Credits, &p.Points, &p.IsCaptain, &p.IsViceCaptain,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
