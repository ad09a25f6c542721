// Package ingest processes lists of dictionary-page URLs: pages are fetched
// and extracted on a worker pool and the resulting paradigms are written to
// SQLite in batched transactions.
package ingest

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/etamarw/hebforms/pkg/db"
	"github.com/etamarw/hebforms/pkg/fetch"
	"github.com/etamarw/hebforms/pkg/paradigm"
	"github.com/etamarw/hebforms/pkg/translit"
)

// Ingester drives bulk extraction runs.
type Ingester struct {
	DB      *sql.DB
	Fetcher *fetch.Client
	Options translit.Options

	Workers   int
	BatchSize int

	// Logger reports per-page failures; nil silences them.
	Logger *log.Logger
	// OnProgress is called after every finished page with done and total counts.
	OnProgress func(done, total int)
}

// NewIngester returns an Ingester with default concurrency settings.
func NewIngester(conn *sql.DB, fetcher *fetch.Client) *Ingester {
	return &Ingester{
		DB:        conn,
		Fetcher:   fetcher,
		Workers:   4,
		BatchSize: 25,
	}
}

type pageResult struct {
	URL    string
	Result paradigm.Result
	Err    error
}

// Run fetches, extracts and stores every URL. Per-page failures are logged
// and skipped; Run returns the number of pages stored and the first
// database-side error, if any.
func (ig *Ingester) Run(ctx context.Context, urls []string) (int, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(ig.Workers, ig.Workers*2)
	pool.Start(ctx)

	results := make(chan pageResult, ig.Workers*2)
	bw := NewBatchWriter(ig.DB, ig.BatchSize, 100*time.Millisecond)

	total := len(urls)
	stored := 0
	var consumerErr error
	var consumerWG sync.WaitGroup
	consumerWG.Add(1)
	go func() {
		defer consumerWG.Done()
		done := 0
		for res := range results {
			done++
			if res.Err != nil {
				if ig.Logger != nil {
					ig.Logger.Printf("skip %s: %v", res.URL, res.Err)
				}
			} else {
				r := res.Result
				u := res.URL
				err := bw.Submit(func(tx *sql.Tx) error {
					_, err := db.SaveResult(tx, u, r)
					return err
				})
				if err != nil {
					consumerErr = err
					cancel()
				} else {
					stored++
				}
			}
			if ig.OnProgress != nil {
				ig.OnProgress(done, total)
			}
		}
	}()

	for _, u := range urls {
		pageURL := u
		job := func(ctx context.Context) {
			res := ig.processPage(ctx, pageURL)
			select {
			case results <- res:
			case <-ctx.Done():
			}
		}
		if err := pool.Submit(ctx, job); err != nil {
			break
		}
	}

	pool.Close()
	close(results)
	consumerWG.Wait()

	if err := bw.Close(); err != nil && consumerErr == nil {
		consumerErr = err
	}
	if ctx.Err() != nil && consumerErr == nil {
		consumerErr = ctx.Err()
	}
	return stored, consumerErr
}

func (ig *Ingester) processPage(ctx context.Context, pageURL string) pageResult {
	doc, err := ig.Fetcher.FetchDocument(ctx, pageURL)
	if err != nil {
		return pageResult{URL: pageURL, Err: err}
	}
	res, err := paradigm.Extract(doc, pageURL, "")
	if err != nil {
		return pageResult{URL: pageURL, Err: err}
	}
	return pageResult{URL: pageURL, Result: res.Normalized(ig.Options)}
}
