// Package app wires the pipeline together and drives one full run:
// every configured source is scraped, normalized and reconciled in turn.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gsuconnect/ingest/internal/config"
	"github.com/gsuconnect/ingest/internal/fetcher"
	"github.com/gsuconnect/ingest/internal/logger"
	"github.com/gsuconnect/ingest/internal/metrics"
	"github.com/gsuconnect/ingest/internal/news"
	"github.com/gsuconnect/ingest/internal/ratelimit"
	"github.com/gsuconnect/ingest/internal/retry"
	"github.com/gsuconnect/ingest/internal/scraper"
	"github.com/gsuconnect/ingest/internal/storage"
)

// App holds the long-lived pieces of one pipeline run.
type App struct {
	cfg        *config.Config
	fetch      *fetcher.Client
	reconciler *storage.Reconciler
	pacer      *ratelimit.Pacer
	log        *slog.Logger
}

// Run executes one complete scrape-and-reconcile cycle over all
// configured sources. Sources are processed sequentially; one failing
// source is logged and skipped, it never takes the run down.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.With("app")

	sources, err := config.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}

	// Supabase pauses idle projects; give the database a few chances to
	// wake up before giving up on the run.
	var store *storage.PostgresStore
	err = retry.Do(ctx, retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}, func() error {
		s, openErr := storage.Open(dsn)
		if openErr != nil {
			log.Warn("database not ready", "error", openErr)
			return openErr
		}
		store = s
		return nil
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	a := &App{
		cfg:        cfg,
		fetch:      fetcher.New(cfg.RequestTimeout),
		reconciler: storage.NewReconciler(store),
		pacer:      ratelimit.NewPacer(cfg.ArticlePause, cfg.SourceDelayMin, cfg.SourceDelayMax),
		log:        log,
	}

	start := time.Now()
	var total storage.Result
	for i, src := range sources {
		if i > 0 {
			if err := a.pacer.BetweenSources(ctx); err != nil {
				return err
			}
		}

		res, err := a.processSource(ctx, src)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Error("source failed, moving on", "source", src.Name, "error", err)
			metrics.Global.SetError(err.Error())
			continue
		}

		total.Inserted += res.Inserted
		total.Updated += res.Updated
		total.Duplicates += res.Duplicates
		total.Errors += res.Errors
	}

	metrics.Global.RecordRunDuration(time.Since(start))
	metrics.Global.SetLastRun()

	log.Info("run complete",
		"sources", len(sources),
		"inserted", total.Inserted,
		"updated", total.Updated,
		"duplicates", total.Duplicates,
		"errors", total.Errors,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// processSource scrapes one campus site end to end and reconciles what
// it found. A homepage failure aborts the source; a single article page
// failure only drops that article.
func (a *App) processSource(ctx context.Context, src config.Source) (storage.Result, error) {
	ex, err := scraper.ForSource(src.Extractor, src.Name, src.Homepage)
	if err != nil {
		return storage.Result{}, err
	}

	a.log.Info("scraping source", "source", src.Name, "homepage", src.Homepage)

	doc, err := a.fetch.Document(ctx, src.Homepage)
	if err != nil {
		return storage.Result{}, fmt.Errorf("homepage: %w", err)
	}
	metrics.Global.AddPagesFetched(1)

	pageLinks := ex.DiscoverLinks(doc)

	feedLinks, err := scraper.FeedLinks(ctx, src.Feed)
	if err != nil {
		// The feed is a supplementary discovery channel; homepage links
		// alone still make a valid run.
		a.log.Warn("feed discovery failed", "source", src.Name, "error", err)
	}

	links := scraper.MergeLinks(pageLinks, feedLinks)
	a.log.Info("discovered links", "source", src.Name, "homepage", len(pageLinks), "feed", len(feedLinks), "merged", len(links))

	candidates := a.collectArticles(ctx, ex, src, links)
	metrics.Global.AddArticlesExtracted(len(candidates))

	res, err := a.reconciler.Reconcile(ctx, src.Name, candidates)
	if err != nil {
		return res, err
	}
	metrics.Global.AddArticlesInserted(res.Inserted)
	metrics.Global.AddArticlesUpdated(res.Updated)
	metrics.Global.AddDuplicatesFiltered(res.Duplicates)
	return res, nil
}

// collectArticles fetches and extracts each discovered link, pausing
// between pages. Broken or incomplete articles are skipped.
func (a *App) collectArticles(ctx context.Context, ex scraper.Extractor, src config.Source, links []string) []news.Article {
	var out []news.Article
	for i, link := range links {
		if ctx.Err() != nil {
			return out
		}
		if i > 0 {
			if err := a.pacer.BetweenArticles(ctx); err != nil {
				return out
			}
		}

		doc, err := a.fetch.Document(ctx, link)
		if err != nil {
			a.log.Warn("article fetch failed", "url", link, "error", err)
			metrics.Global.AddExtractionErrors(1)
			continue
		}
		metrics.Global.AddPagesFetched(1)

		candidate, err := ex.ExtractArticle(doc, link)
		if err != nil {
			if errors.Is(err, scraper.ErrMissingField) {
				a.log.Debug("incomplete article skipped", "url", link, "error", err)
			} else {
				a.log.Warn("extraction failed", "url", link, "error", err)
			}
			metrics.Global.AddExtractionErrors(1)
			continue
		}

		article, err := news.Normalize(candidate, src.Homepage)
		if err != nil {
			a.log.Warn("normalization failed", "url", link, "error", err)
			metrics.Global.AddExtractionErrors(1)
			continue
		}
		out = append(out, article)
	}
	return out
}
