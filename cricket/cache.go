package cricket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs per feed. Fast-moving feeds stay short so live pages do not
// show stale scores; squads and series barely change between polls.
const (
	ttlMatches   = 2 * time.Minute
	ttlLive      = 30 * time.Second
	ttlMatchInfo = 2 * time.Minute
	ttlSquad     = 30 * time.Minute
	ttlScorecard = 30 * time.Second
	ttlPoints    = time.Minute
	ttlSeries    = 30 * time.Minute
	ttlPlayer    = 24 * time.Hour
)

// cachedGateway is a read-through decorator over another Gateway. Cache
// errors are logged and treated as misses, never surfaced to callers.
type cachedGateway struct {
	next   Gateway
	rdb    *redis.Client
	logger *slog.Logger
}

func NewCachedGateway(next Gateway, rdb *redis.Client, logger *slog.Logger) Gateway {
	return &cachedGateway{next: next, rdb: rdb, logger: logger}
}

func (c *cachedGateway) CurrentMatches(ctx context.Context) (*MatchesResult, error) {
	return cached(ctx, c, "cricket:matches", ttlMatches, c.next.CurrentMatches)
}

func (c *cachedGateway) LiveScores(ctx context.Context) ([]LiveScore, error) {
	scores, err := cached(ctx, c, "cricket:live", ttlLive, func(ctx context.Context) (*[]LiveScore, error) {
		s, err := c.next.LiveScores(ctx)
		if err != nil {
			return nil, err
		}
		return &s, nil
	})
	if err != nil {
		return nil, err
	}
	return *scores, nil
}

func (c *cachedGateway) MatchInfo(ctx context.Context, matchID string) (*Match, error) {
	key := "cricket:match:" + matchID
	return cached(ctx, c, key, ttlMatchInfo, func(ctx context.Context) (*Match, error) {
		return c.next.MatchInfo(ctx, matchID)
	})
}

func (c *cachedGateway) MatchSquad(ctx context.Context, matchID string) ([]SquadTeam, error) {
	key := "cricket:squad:" + matchID
	squads, err := cached(ctx, c, key, ttlSquad, func(ctx context.Context) (*[]SquadTeam, error) {
		s, err := c.next.MatchSquad(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return &s, nil
	})
	if err != nil {
		return nil, err
	}
	return *squads, nil
}

func (c *cachedGateway) MatchScorecard(ctx context.Context, matchID string) (*Scorecard, error) {
	key := "cricket:scorecard:" + matchID
	return cached(ctx, c, key, ttlScorecard, func(ctx context.Context) (*Scorecard, error) {
		return c.next.MatchScorecard(ctx, matchID)
	})
}

func (c *cachedGateway) MatchPoints(ctx context.Context, matchID string) (json.RawMessage, error) {
	key := "cricket:points:" + matchID
	raw, err := cached(ctx, c, key, ttlPoints, func(ctx context.Context) (*json.RawMessage, error) {
		p, err := c.next.MatchPoints(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return *raw, nil
}

func (c *cachedGateway) SeriesList(ctx context.Context, offset int) (*SeriesResult, error) {
	key := fmt.Sprintf("cricket:series:%d", offset)
	return cached(ctx, c, key, ttlSeries, func(ctx context.Context) (*SeriesResult, error) {
		return c.next.SeriesList(ctx, offset)
	})
}

func (c *cachedGateway) PlayerInfo(ctx context.Context, playerID string) (json.RawMessage, error) {
	key := "cricket:player:" + playerID
	raw, err := cached(ctx, c, key, ttlPlayer, func(ctx context.Context) (*json.RawMessage, error) {
		p, err := c.next.PlayerInfo(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return *raw, nil
}

func cached[T any](ctx context.Context, c *cachedGateway, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	blob, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var value T
		if err := json.Unmarshal(blob, &value); err == nil {
			return &value, nil
		}
		c.logger.Warn("discarding undecodable cache entry", slog.String("key", key))
	} else if err != redis.Nil {
		c.logger.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if blob, err := json.Marshal(value); err == nil {
		if err := c.rdb.Set(ctx, key, blob, ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return value, nil
}
