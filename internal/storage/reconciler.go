package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gsuconnect/ingest/internal/logger"
	"github.com/gsuconnect/ingest/internal/news"
)

// Result aggregates what happened to one batch of candidates.
type Result struct {
	Inserted   int
	Updated    int
	Duplicates int
	Errors     int
}

// Reconciler classifies candidates against the store and performs at most
// one write per candidate.
type Reconciler struct {
	store Store
	log   *slog.Logger
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{
		store: store,
		log:   logger.With("reconciler"),
	}
}

// Reconcile writes one batch of candidates for a campus. A write failure
// for one candidate is logged and counted; the rest of the batch goes
// through. Only a campus lookup or store read failure aborts the batch.
func (r *Reconciler) Reconcile(ctx context.Context, campusName string, candidates []news.Article) (Result, error) {
	var res Result
	if len(candidates) == 0 {
		return res, nil
	}

	campusID, err := r.store.GetOrCreateCampus(ctx, campusName)
	if err != nil {
		return res, fmt.Errorf("campus %q: %w", campusName, err)
	}

	existing, err := r.store.ListByCampus(ctx, campusID)
	if err != nil {
		return res, fmt.Errorf("list articles for %q: %w", campusName, err)
	}
	r.log.Info("reconciling batch", "campus", campusName, "candidates", len(candidates), "existing", len(existing))

	for _, candidate := range candidates {
		m := news.Classify(candidate, existing)
		switch m.Verdict {
		case news.VerdictNew:
			id, err := r.store.Insert(ctx, campusID, candidate)
			if err != nil {
				r.log.Error("insert failed", "title", candidate.Title, "error", err)
				res.Errors++
				continue
			}
			res.Inserted++
			// Make the new row visible to the rest of the batch, with its
			// real id so a later richer candidate can update it in place.
			existing = append(existing, news.Stored{
				ID:          id,
				Title:       candidate.Title,
				Content:     candidate.Content,
				SourceURL:   candidate.SourceURL,
				ImageURL:    candidate.ImageURL,
				PublishedAt: candidate.PublishedAt,
			})
		case news.VerdictUpdate:
			if err := r.store.Update(ctx, m.Existing.ID, candidate); err != nil {
				r.log.Error("update failed", "title", candidate.Title, "error", err)
				res.Errors++
				continue
			}
			res.Updated++
			m.Existing.Content = candidate.Content
			if candidate.ImageURL != "" {
				m.Existing.ImageURL = candidate.ImageURL
			}
		case news.VerdictDuplicate:
			r.log.Debug("skipping duplicate", "title", candidate.Title, "reason", m.Reason)
			res.Duplicates++
		}
	}

	r.log.Info("batch complete",
		"campus", campusName,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"duplicates", res.Duplicates,
		"errors", res.Errors,
	)
	return res, nil
}
