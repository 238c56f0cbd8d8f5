package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Surabhi11/fantasy-cricket/models"
	"github.com/Surabhi11/fantasy-cricket/repositories"
)

const (
	rosterSize     = 11
	maxTeamCredits = 100.0

	defaultContestType     = models.ContestPractice
	defaultMaxParticipants = 100
	defaultTeamName        = "My Team"
)

type ContestService interface {
	CreateContest(ctx context.Context, input CreateContestInput) (*models.Contest, error)
	ListContestsByMatch(ctx context.Context, matchID string) ([]*models.Contest, error)
	JoinContest(ctx context.Context, userID, contestID int, input JoinContestInput) (*models.UserTeam, error)
	GetLeaderboard(ctx context.Context, contestID int) ([]*models.LeaderboardEntry, error)
	ListUserTeams(ctx context.Context, userID int) ([]*models.UserTeam, error)
	PromoteDueContests(ctx context.Context) (int, error)
}

type CreateContestInput struct {
	MatchID         string  `json:"matchId"`
	MatchName       string  `json:"matchName"`
	ContestName     string  `json:"contestName"`
	ContestType     string  `json:"contestType"`
	MaxParticipants int     `json:"maxParticipants"`
	EntryFee        float64 `json:"entryFee"`
	PrizePool       float64 `json:"prizePool"`
	FirstPrize      float64 `json:"firstPrize"`
	MatchStartTime  string  `json:"matchStartTime"`
}

type JoinContestInput struct {
	MatchID       string            `json:"matchId"`
	TeamName      string            `json:"teamName"`
	CaptainID     string            `json:"captainId"`
	ViceCaptainID string            `json:"viceCaptainId"`
	Players       []JoinContestPick `json:"players"`
}

type JoinContestPick struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Credits float64 `json:"credits"`
}

type contestService struct {
	txBeginner      repositories.TxBeginner
	contestRepo     repositories.ContestRepository
	teamRepo        repositories.TeamRepository
	leaderboardRepo repositories.LeaderboardRepository
	logger          *slog.Logger
}

func NewContestService(
	txBeginner repositories.TxBeginner,
	contestRepo repositories.ContestRepository,
	teamRepo repositories.TeamRepository,
	leaderboardRepo repositories.LeaderboardRepository,
	logger *slog.Logger,
) ContestService {
	return &contestService{
		txBeginner:      txBeginner,
		contestRepo:     contestRepo,
		teamRepo:        teamRepo,
		leaderboardRepo: leaderboardRepo,
		logger:          logger,
	}
}

func (s *contestService) CreateContest(ctx context.Context, input CreateContestInput) (*models.Contest, error) {
	if input.MatchID == "" || input.MatchName == "" || input.ContestName == "" || input.MatchStartTime == "" {
		return nil, ErrContestFieldsRequired
	}

	startTime, err := time.Parse(time.RFC3339, input.MatchStartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid match start time", ErrValidationFailed)
	}

	contestType := models.ContestType(input.ContestType)
	switch contestType {
	case models.ContestMega, models.ContestHeadToHead, models.ContestPractice, models.ContestWinnerTakesAll:
	case "":
		contestType = defaultContestType
	default:
		return nil, fmt.Errorf("%w: unknown contest type %q", ErrValidationFailed, input.ContestType)
	}

	maxParticipants := input.MaxParticipants
	if maxParticipants <= 0 {
		maxParticipants = defaultMaxParticipants
	}

	contest := &models.Contest{
		MatchID:         input.MatchID,
		MatchName:       input.MatchName,
		ContestName:     input.ContestName,
		ContestType:     contestType,
		MaxParticipants: maxParticipants,
		EntryFee:        input.EntryFee,
		PrizePool:       input.PrizePool,
		FirstPrize:      input.FirstPrize,
		Status:          models.ContestUpcoming,
		MatchStartTime:  startTime,
	}
	if err := s.contestRepo.Create(ctx, contest); err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}
	return contest, nil
}

func (s *contestService) ListContestsByMatch(ctx context.Context, matchID string) ([]*models.Contest, error) {
	contests, err := s.contestRepo.ListOpenByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	return contests, nil
}

// JoinContest validates the roster, then writes the team, its players, the
// participant counter bump and the leaderboard seed in one transaction, so
// a failure at any point leaves no partial entry behind.
func (s *contestService) JoinContest(ctx context.Context, userID, contestID int, input JoinContestInput) (*models.UserTeam, error) {
	if err := validateRoster(input); err != nil {
		return nil, err
	}

	contest, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repositories.ErrContestNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}
	if contest.Status != models.ContestUpcoming {
		return nil, ErrContestNotOpen
	}

	joined, err := s.teamRepo.ExistsByUserAndContest(ctx, userID, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}
	if joined {
		return nil, ErrAlreadyJoined
	}

	totalCredits := 0.0
	for _, p := range input.Players {
		totalCredits += p.Credits
	}
	if totalCredits > maxTeamCredits {
		return nil, ErrCreditLimitExceeded
	}

	teamName := input.TeamName
	if teamName == "" {
		teamName = defaultTeamName
	}

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	team := &models.UserTeam{
		UserID:        userID,
		ContestID:     contestID,
		MatchID:       input.MatchID,
		TeamName:      teamName,
		CaptainID:     input.CaptainID,
		ViceCaptainID: input.ViceCaptainID,
		TotalCredits:  totalCredits,
	}
	if err := s.teamRepo.Create(ctx, tx, team); err != nil {
		// The unique constraint backs up the pre-check under concurrency.
		if errors.Is(err, repositories.ErrTeamContestConflict) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	players := make([]*models.TeamPlayer, 0, len(input.Players))
	for _, p := range input.Players {
		players = append(players, &models.TeamPlayer{
			TeamID:        team.ID,
			PlayerID:      p.ID,
			PlayerName:    p.Name,
			PlayerRole:    models.NormalizeRole(p.Role),
			Credits:       p.Credits,
			IsCaptain:     p.ID == input.CaptainID,
			IsViceCaptain: p.ID == input.ViceCaptainID,
		})
	}
	if err := s.teamRepo.CreatePlayers(ctx, tx, players); err != nil {
		return nil, fmt.Errorf("failed to save team players: %w", err)
	}

	// Zero rows touched means the contest filled up between the pre-check
	// and here.
	if err := s.contestRepo.IncrementParticipants(ctx, tx, contestID); err != nil {
		if errors.Is(err, repositories.ErrContestNotFound) {
			return nil, ErrContestFull
		}
		return nil, fmt.Errorf("failed to update participant count: %w", err)
	}

	entry := &models.LeaderboardEntry{
		UserID:    userID,
		ContestID: contestID,
		TeamID:    team.ID,
	}
	if err := s.leaderboardRepo.Create(ctx, tx, entry); err != nil {
		if errors.Is(err, repositories.ErrLeaderboardEntryConflict) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to seed leaderboard entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit contest entry: %w", err)
	}

	team.Players = make([]models.TeamPlayer, len(players))
	for i, p := range players {
		team.Players[i] = *p
	}
	return team, nil
}

func validateRoster(input JoinContestInput) error {
	if len(input.Players) != rosterSize {
		return ErrRosterSize
	}
	if input.CaptainID == "" || input.ViceCaptainID == "" {
		return ErrCaptainRequired
	}
	if input.CaptainID == input.ViceCaptainID {
		return ErrCaptainDuplicate
	}

	seen := make(map[string]bool, len(input.Players))
	captainFound, viceFound := false, false
	for _, p := range input.Players {
		if seen[p.ID] {
			return ErrDuplicatePlayer
		}
		seen[p.ID] = true
		if p.ID == input.CaptainID {
			captainFound = true
		}
		if p.ID == input.ViceCaptainID {
			viceFound = true
		}
	}
	if !captainFound || !viceFound {
		return ErrCaptainNotInTeam
	}
	return nil
}

// GetLeaderboard returns entries ordered by points, ties broken by join
// time, with dense 1-based ranks assigned in that order.
func (s *contestService) GetLeaderboard(ctx context.Context, contestID int) ([]*models.LeaderboardEntry, error) {
	if _, err := s.contestRepo.GetByID(ctx, contestID); err != nil {
		if errors.Is(err, repositories.ErrContestNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to load contest: %w", err)
	}

	entries, err := s.leaderboardRepo.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}
	return entries, nil
}

func (s *contestService) ListUserTeams(ctx context.Context, userID int) ([]*models.UserTeam, error) {
	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		players, err := s.teamRepo.ListPlayers(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load players for team %d: %w", team.ID, err)
		}
		team.Players = players
	}
	return teams, nil
}

// PromoteDueContests flips upcoming contests whose match has started to
// live. The scheduler calls this on a fixed interval.
func (s *contestService) PromoteDueContests(ctx context.Context) (int, error) {
	due, err := s.contestRepo.ListByStatusDue(ctx, models.ContestUpcoming)
	if err != nil {
		return 0, fmt.Errorf("failed to list due contests: %w", err)
	}

	promoted := 0
	for _, contest := range due {
		if err := s.contestRepo.UpdateStatus(ctx, contest.ID, models.ContestLive); err != nil {
			s.logger.Warn("failed to promote contest",
				slog.Int("contest_id", contest.ID), slog.Any("error", err))
			continue
		}
		promoted++
	}
	return promoted, nil
}
