// Package cricket wraps the third-party cricket data API. Every payload is
// reshaped into a smaller normalized record before it leaves this package;
// upstream failures surface as wrapped ErrUpstream with no retries.
package cricket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Surabhi11/fantasy-cricket/fantasy"
	"golang.org/x/sync/errgroup"
)

var ErrUpstream = errors.New("cricket api request failed")

const (
	requestTimeout = 10 * time.Second

	// Upcoming matches are discovered through series starting within this
	// window; the series scan is capped to keep the fan-out bounded.
	upcomingWindow  = 60 * 24 * time.Hour
	maxSeriesToScan = 15
)

type Gateway interface {
	CurrentMatches(ctx context.Context) (*MatchesResult, error)
	LiveScores(ctx context.Context) ([]LiveScore, error)
	MatchInfo(ctx context.Context, matchID string) (*Match, error)
	MatchSquad(ctx context.Context, matchID string) ([]SquadTeam, error)
	MatchScorecard(ctx context.Context, matchID string) (*Scorecard, error)
	MatchPoints(ctx context.Context, matchID string) (json.RawMessage, error)
	SeriesList(ctx context.Context, offset int) (*SeriesResult, error)
	PlayerInfo(ctx context.Context, playerID string) (json.RawMessage, error)
}

type apiGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewGateway(baseURL, apiKey string, logger *slog.Logger) Gateway {
	return &apiGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// upstreamMatch is the raw match shape shared by currentMatches,
// match_info, and series_info matchList payloads.
type upstreamMatch struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	MatchType      string         `json:"matchType"`
	Status         string         `json:"status"`
	Venue          string         `json:"venue"`
	Date           string         `json:"date"`
	DateTimeGMT    string         `json:"dateTimeGMT"`
	Teams          []string       `json:"teams"`
	TeamInfo       []TeamInfo     `json:"teamInfo"`
	Score          []InningsScore `json:"score"`
	TossWinner     string         `json:"tossWinner"`
	TossChoice     string         `json:"tossChoice"`
	MatchWinner    string         `json:"matchWinner"`
	SeriesID       string         `json:"series_id"`
	FantasyEnabled bool           `json:"fantasyEnabled"`
	HasSquad       bool           `json:"hasSquad"`
	MatchStarted   bool           `json:"matchStarted"`
	MatchEnded     bool           `json:"matchEnded"`
}

func (g *apiGateway) CurrentMatches(ctx context.Context) (*MatchesResult, error) {
	var (
		current    []upstreamMatch
		seriesList []Series
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.fetchInto(egCtx, "/currentMatches", map[string]string{"offset": "0"}, &current)
	})
	eg.Go(func() error {
		return g.fetchInto(egCtx, "/series", map[string]string{"offset": "0"}, &seriesList)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	allMatches := make([]Match, 0, len(current))
	seen := make(map[string]bool, len(current))
	for _, m := range current {
		allMatches = append(allMatches, g.normalizeMatch(m, "", ""))
		seen[m.ID] = true
	}

	upcoming := g.collectUpcoming(ctx, seriesList, seen)

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DateTimeGMT < upcoming[j].DateTimeGMT
	})

	result := &MatchesResult{
		Live:      make([]Match, 0),
		Upcoming:  upcoming,
		Completed: make([]Match, 0),
		Total:     len(allMatches) + len(upcoming),
	}
	for _, m := range allMatches {
		switch {
		case m.MatchStarted && !m.MatchEnded:
			result.Live = append(result.Live, m)
		case m.MatchEnded:
			result.Completed = append(result.Completed, m)
		}
	}
	return result, nil
}

// collectUpcoming walks soon-starting series and gathers their unstarted
// matches. Per-series failures are logged and skipped so one bad series
// does not empty the whole lobby.
func (g *apiGateway) collectUpcoming(ctx context.Context, seriesList []Series, seen map[string]bool) []Match {
	now := time.Now()
	cutoff := now.Add(upcomingWindow)

	candidates := make([]Series, 0, maxSeriesToScan)
	for _, s := range seriesList {
		start, err := time.Parse("2006-01-02", s.StartDate)
		if err != nil {
			continue
		}
		if start.Before(now) || start.After(cutoff) {
			continue
		}
		candidates = append(candidates, s)
		if len(candidates) == maxSeriesToScan {
			break
		}
	}

	upcoming := make([]Match, 0)
	for _, s := range candidates {
		var info struct {
			MatchList []upstreamMatch `json:"matchList"`
		}
		if err := g.fetchInto(ctx, "/series_info", map[string]string{"id": s.ID}, &info); err != nil {
			g.logger.Warn("failed to fetch series matches",
				slog.String("series_id", s.ID), slog.Any("error", err))
			continue
		}
		for _, m := range info.MatchList {
			if m.MatchStarted || m.MatchEnded || seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			upcoming = append(upcoming, g.normalizeMatch(m, s.ID, s.Name))
		}
	}
	return upcoming
}

func (g *apiGateway) LiveScores(ctx context.Context) ([]LiveScore, error) {
	var raw []struct {
		ID          string `json:"id"`
		MatchType   string `json:"matchType"`
		Status      string `json:"status"`
		MS          string `json:"ms"`
		T1          string `json:"t1"`
		T2          string `json:"t2"`
		T1S         string `json:"t1s"`
		T2S         string `json:"t2s"`
		T1Img       string `json:"t1img"`
		T2Img       string `json:"t2img"`
		Series      string `json:"series"`
		DateTimeGMT string `json:"dateTimeGMT"`
	}
	if err := g.fetchInto(ctx, "/cricScore", nil, &raw); err != nil {
		return nil, err
	}

	scores := make([]LiveScore, 0, len(raw))
	for _, m := range raw {
		scores = append(scores, LiveScore{
			ID:          m.ID,
			MatchType:   strings.ToUpper(m.MatchType),
			Status:      m.Status,
			MatchStatus: m.MS,
			Team1:       m.T1,
			Team2:       m.T2,
			Team1Score:  m.T1S,
			Team2Score:  m.T2S,
			Team1Img:    m.T1Img,
			Team2Img:    m.T2Img,
			Series:      m.Series,
			DateTimeGMT: m.DateTimeGMT,
			DateTimeIST: FormatIST(m.DateTimeGMT),
		})
	}
	return scores, nil
}

func (g *apiGateway) MatchInfo(ctx context.Context, matchID string) (*Match, error) {
	var raw upstreamMatch
	if err := g.fetchInto(ctx, "/match_info", map[string]string{"id": matchID}, &raw); err != nil {
		return nil, err
	}
	match := g.normalizeMatch(raw, "", "")
	return &match, nil
}

func (g *apiGateway) MatchSquad(ctx context.Context, matchID string) ([]SquadTeam, error) {
	var squads []SquadTeam
	if err := g.fetchInto(ctx, "/match_squad", map[string]string{"id": matchID}, &squads); err != nil {
		return nil, err
	}

	for ti := range squads {
		for pi := range squads[ti].Players {
			p := &squads[ti].Players[pi]
			if p.Role == "" {
				p.Role = "Unknown"
			}
			p.Credits = fantasy.EstimateCredits(p.Role, p.Name)
		}
	}
	return squads, nil
}

func (g *apiGateway) MatchScorecard(ctx context.Context, matchID string) (*Scorecard, error) {
	var card Scorecard
	if err := g.fetchInto(ctx, "/match_scorecard", map[string]string{"id": matchID}, &card); err != nil {
		return nil, err
	}
	card.MatchType = strings.ToUpper(card.MatchType)
	return &card, nil
}

func (g *apiGateway) MatchPoints(ctx context.Context, matchID string) (json.RawMessage, error) {
	env, err := g.fetch(ctx, "/match_points", map[string]string{"id": matchID})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (g *apiGateway) SeriesList(ctx context.Context, offset int) (*SeriesResult, error) {
	env, err := g.fetch(ctx, "/series", map[string]string{"offset": fmt.Sprintf("%d", offset)})
	if err != nil {
		return nil, err
	}
	var series []Series
	if err := json.Unmarshal(env.Data, &series); err != nil {
		return nil, fmt.Errorf("failed to decode series payload: %w", err)
	}
	return &SeriesResult{Series: series, Total: env.Info.TotalRows}, nil
}

func (g *apiGateway) PlayerInfo(ctx context.Context, playerID string) (json.RawMessage, error) {
	env, err := g.fetch(ctx, "/players_info", map[string]string{"id": playerID})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (g *apiGateway) normalizeMatch(m upstreamMatch, seriesID, seriesName string) Match {
	if seriesID == "" {
		seriesID = m.SeriesID
	}
	score := m.Score
	if score == nil {
		score = []InningsScore{}
	}
	return Match{
		ID:             m.ID,
		Name:           m.Name,
		MatchType:      strings.ToUpper(m.MatchType),
		Status:         m.Status,
		Venue:          m.Venue,
		Date:           m.Date,
		DateTimeGMT:    m.DateTimeGMT,
		DateTimeIST:    FormatIST(m.DateTimeGMT),
		Teams:          m.Teams,
		TeamInfo:       m.TeamInfo,
		Score:          score,
		TossWinner:     m.TossWinner,
		TossChoice:     m.TossChoice,
		MatchWinner:    m.MatchWinner,
		SeriesID:       seriesID,
		SeriesName:     seriesName,
		FantasyEnabled: m.FantasyEnabled,
		HasSquad:       m.HasSquad,
		MatchStarted:   m.MatchStarted,
		MatchEnded:     m.MatchEnded,
	}
}

func (g *apiGateway) fetch(ctx context.Context, path string, params map[string]string) (*apiEnvelope, error) {
	query := url.Values{}
	query.Set("apikey", g.apiKey)
	for k, v := range params {
		query.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrUpstream, path, resp.StatusCode)
	}

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decoding %s response: %v", ErrUpstream, path, err)
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("%w: %s returned status %q", ErrUpstream, path, env.Status)
	}
	return &env, nil
}

func (g *apiGateway) fetchInto(ctx context.Context, path string, params map[string]string, dest interface{}) error {
	env, err := g.fetch(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", path, err)
	}
	return nil
}

// FormatIST renders an upstream GMT timestamp as the Indian-time display
// string the front end shows (+5h30m).
func FormatIST(dateTimeGMT string) string {
	if dateTimeGMT == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02T15:04:05", dateTimeGMT)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, dateTimeGMT); err != nil {
			return ""
		}
	}
	return t.Add(330 * time.Minute).Format("02 Jan 2006, 03:04 PM")
}
