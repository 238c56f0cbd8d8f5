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
	ErrLeaderboardEntryConflict = errors.New("leaderboard entry already exists for this user and contest")
	ErrLeaderboardEntryInvalid  = errors.New("leaderboard entry references an invalid user, contest, or team")
)

type LeaderboardRepository interface {
	Create(ctx context.Context, exec SQLExecutor, entry *models.LeaderboardEntry) error
	ListByContest(ctx context.Context, contestID int) ([]*models.LeaderboardEntry, error)
}

type postgresLeaderboardRepository struct {
	db *sql.DB
}

func NewPostgresLeaderboardRepository(db *sql.DB) LeaderboardRepository {
	return &postgresLeaderboardRepository{db: db}
}

func (r *postgresLeaderboardRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresLeaderboardRepository) Create(ctx context.Context, exec SQLExecutor, entry *models.LeaderboardEntry) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO leaderboard (user_id, contest_id, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, total_points, prize_won, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		entry.UserID,
		entry.ContestID,
		entry.TeamID,
	).Scan(&entry.ID, &entry.TotalPoints, &entry.PrizeWon, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "leaderboard_user_id_contest_id_key" {
					return ErrLeaderboardEntryConflict
				}
			case "23503":
				return ErrLeaderboardEntryInvalid
			}
		}
		return fmt.Errorf("failed to create leaderboard entry: %w", err)
	}
	return nil
}

// ListByContest returns entries ordered for ranking: points descending,
// ties broken by earliest entry. Rank itself is assigned by the service.
func (r *postgresLeaderboardRepository) ListByContest(ctx context.Context, contestID int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT
			l.id, l.user_id, l.contest_id, l.team_id, ut.total_points, l.prize_won,
			l.created_at, l.updated_at,
			u.username, u.full_name, ut.team_name
		FROM leaderboard l
		JOIN users u ON l.user_id = u.id
		JOIN user_teams ut ON l.team_id = ut.id
		WHERE l.contest_id = $1
		ORDER BY ut.total_points DESC, l.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.LeaderboardEntry, 0)
	for rows.Next() {
		var e models.LeaderboardEntry
		scanErr := rows.Scan(
			&e.ID, &e.UserID, &e.ContestID, &e.TeamID, &e.TotalPoints, &e.PrizeWon,
			&e.CreatedAt, &e.UpdatedAt,
			&e.Username, &e.FullName, &e.TeamName,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
