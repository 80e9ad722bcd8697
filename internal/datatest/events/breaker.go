package events

import (
	"context"
	"errors"
	"log/slog"

	"datatests/pkg/platform/circuit"
)

// BreakerPublisher sends events to a remote sink and diverts them to a local
// fallback while the sink keeps failing, so a broker outage costs one
// timeout per cooldown instead of one per run.
type BreakerPublisher struct {
	primary  Publisher
	fallback Publisher
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewBreakerPublisher(primary, fallback Publisher, breaker *circuit.Breaker, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakerPublisher{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (p *BreakerPublisher) Publish(ctx context.Context, e RunEvent) error {
	if !p.breaker.Allow() {
		return p.fallback.Publish(ctx, e)
	}

	err := p.primary.Publish(ctx, e)
	if err == nil {
		if _, change := p.breaker.RecordSuccess(); change.Closed {
			p.logger.InfoContext(ctx, "event sink recovered", "sink", p.breaker.Name())
		}
		return nil
	}

	useFallback, change := p.breaker.RecordFailure()
	if change.Opened {
		p.logger.WarnContext(ctx, "event sink failing, diverting to fallback",
			"sink", p.breaker.Name(),
			"error", err,
		)
	}
	if !useFallback {
		return err
	}
	return p.fallback.Publish(ctx, e)
}

func (p *BreakerPublisher) Close() error {
	return errors.Join(p.primary.Close(), p.fallback.Close())
}
