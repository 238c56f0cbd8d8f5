package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Surabhi11/fantasy-cricket/models"
)

var ErrContestNotFound = errors.New("contest not found")

type ContestRepository interface {
	Create(ctx context.Context, contest *models.Contest) error
	GetByID(ctx context.Context, id int) (*models.Contest, error)
	ListOpenByMatch(ctx context.Context, matchID string) ([]*models.Contest, error)
	IncrementParticipants(ctx context.Context, exec SQLExecutor, id int) error
	UpdateStatus(ctx context.Context, id int, status models.ContestStatus) error
	ListByStatusDue(ctx context.Context, status models.ContestStatus) ([]*models.Contest, error)
}

type postgresContestRepository struct {
	db *sql.DB
}

func NewPostgresContestRepository(db *sql.DB) ContestRepository {
	return &postgresContestRepository{db: db}
}

func (r *postgresContestRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const contestColumns = `
	id, match_id, match_name, contest_name, contest_type, max_participants,
	current_participants, entry_fee, prize_pool, first_prize, status,
	match_start_time, created_at, updated_at
`

func (r *postgresContestRepository) Create(ctx context.Context, contest *models.Contest) error {
	query := `
		INSERT INTO contests
			(match_id, match_name, contest_name, contest_type, max_participants,
			 entry_fee, prize_pool, first_prize, match_start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, current_participants, status, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		contest.MatchID,
		contest.MatchName,
		contest.ContestName,
		contest.ContestType,
		contest.MaxParticipants,
		contest.EntryFee,
		contest.PrizePool,
		contest.FirstPrize,
		contest.MatchStartTime,
	).Scan(
		&contest.ID,
		&contest.CurrentParticipants,
		&contest.Status,
		&contest.CreatedAt,
		&contest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contest: %w", err)
	}
	return nil
}

var contestByIDQuery = `SELECT` + contestColumns + `FROM contests WHERE id = $1`

func (r *postgresContestRepository) GetByID(ctx context.Context, id int) (*models.Contest, error) {
	contest, err := r.scanContest(r.db.QueryRowContext(ctx, contestByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContestNotFound
		}
		return nil, err
	}
	return contest, nil
}

// ListOpenByMatch returns joinable contests for a match, cheapest first.
func (r *postgresContestRepository) ListOpenByMatch(ctx context.Context, matchID string) ([]*models.Contest, error) {
	query := `SELECT` + contestColumns + `
		FROM contests
		WHERE match_id = $1 AND status IN ('upcoming', 'live')
		ORDER BY entry_fee ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contests := make([]*models.Contest, 0)
	for rows.Next() {
		contest, scanErr := r.scanContest(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		contests = append(contests, contest)
	}
	return contests, rows.Err()
}

func (r *postgresContestRepository) IncrementParticipants(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE contests
		SET current_participants = current_participants + 1
		WHERE id = $1 AND current_participants < max_participants`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	// Zero rows means the contest vanished or is full; the service treats
	// either as a join failure and rolls back.
	return checkAffectedRows(result, ErrContestNotFound)
}

func (r *postgresContestRepository) UpdateStatus(ctx context.Context, id int, status models.ContestStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrContestNotFound)
}

// ListByStatusDue returns contests in the given status whose match has
// already started, used by the status scheduler.
func (r *postgresContestRepository) ListByStatusDue(ctx context.Context, status models.ContestStatus) ([]*models.Contest, error) {
	query := `SELECT` + contestColumns + `
		FROM contests
		WHERE status = $1 AND match_start_time <= NOW()`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contests := make([]*models.Contest, 0)
	for rows.Next() {
		contest, scanErr := r.scanContest(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		contests = append(contests, contest)
	}
	return contests, rows.Err()
}

func (r *postgresContestRepository) scanContest(rowScanner interface{ Scan(...interface{}) error }) (*models.Contest, error) {
	var c models.Contest
	err := rowScanner.Scan(
		&c.ID, &c.MatchID, &c.MatchName, &c.ContestName, &c.ContestType,
		&c.MaxParticipants, &c.CurrentParticipants, &c.EntryFee, &c.PrizePool,
		&c.FirstPrize, &c.Status, &c.MatchStartTime, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
