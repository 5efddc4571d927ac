package storage

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/gsuconnect/ingest/internal/news"
)

type listFunc func(ctx context.Context, campusID int64) ([]news.Stored, error)

// sharedLister collapses concurrent "list articles for campus" calls into
// one underlying query. The flight is keyed by campus, set when the first
// caller arrives, shared with everyone who joins while it is in the air,
// and cleared as soon as it settles, so later calls query fresh.
type sharedLister struct {
	group singleflight.Group
	fetch listFunc
}

func newSharedLister(fetch listFunc) *sharedLister {
	return &sharedLister{fetch: fetch}
}

func (l *sharedLister) list(ctx context.Context, campusID int64) ([]news.Stored, error) {
	key := strconv.FormatInt(campusID, 10)
	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		return l.fetch(ctx, campusID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]news.Stored), nil
}
