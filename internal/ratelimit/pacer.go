// Package ratelimit paces outbound requests so the scrape stays polite.
package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// Pacer sleeps a randomized interval between sources and a fixed pause
// between article pages on the same source. Randomizing the source gap
// keeps the run from hitting every site on a rigid clock.
type Pacer struct {
	articlePause time.Duration
	sourceMin    time.Duration
	sourceMax    time.Duration
	rng          *rand.Rand
}

func NewPacer(articlePause, sourceMin, sourceMax time.Duration) *Pacer {
	if sourceMax < sourceMin {
		sourceMax = sourceMin
	}
	return &Pacer{
		articlePause: articlePause,
		sourceMin:    sourceMin,
		sourceMax:    sourceMax,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BetweenArticles pauses before the next article page fetch.
func (p *Pacer) BetweenArticles(ctx context.Context) error {
	return p.sleep(ctx, p.articlePause)
}

// BetweenSources pauses a random interval in [sourceMin, sourceMax]
// before moving on to the next source.
func (p *Pacer) BetweenSources(ctx context.Context) error {
	delay := p.sourceMin
	if spread := p.sourceMax - p.sourceMin; spread > 0 {
		delay += time.Duration(p.rng.Int63n(int64(spread) + 1))
	}
	return p.sleep(ctx, delay)
}

func (p *Pacer) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
