package live

import (
	"context"
	"log/slog"
	"time"

	"github.com/Surabhi11/fantasy-cricket/cricket"
)

const messageTypeScoreUpdate = "SCORE_UPDATE"

// Poller periodically pulls the live ticker feed and broadcasts it through
// the hub. Polls that fail are logged and skipped; the next tick retries.
type Poller struct {
	gateway  cricket.Gateway
	hub      *Hub
	interval time.Duration
	logger   *slog.Logger
}

func NewPoller(gateway cricket.Gateway, hub *Hub, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{gateway: gateway, hub: hub, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	scores, err := p.gateway.LiveScores(pollCtx)
	if err != nil {
		p.logger.Warn("live score poll failed", slog.Any("error", err))
		return
	}
	p.hub.Broadcast(Message{Type: messageTypeScoreUpdate, Payload: scores})
}
