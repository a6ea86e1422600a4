package crawl

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/daily-almanac/internal/entrylog"
	"github.com/jonathan/daily-almanac/internal/extraction"
	"github.com/jonathan/daily-almanac/internal/fetch"
)

// DefaultWorkers bounds the number of concurrent fetch+extract tasks.
const DefaultWorkers = 8

// Crawler diffs source listings against the known-link set and runs one
// fetch+extract task per new link on a bounded worker pool.
type Crawler struct {
	Extractor    extraction.Extractor
	Workers      int
	FetchOptions *fetch.Options
	UseBrowser   bool
	Verbose      bool
}

// GetUpdates returns one entry per newly discovered link across all
// sources. Links already present in known are never re-fetched, whether
// or not their earlier extraction succeeded. Task failures are absorbed
// into recorded-failure entries, so a single bad page never aborts the
// batch. All tasks are awaited before returning; the result order is
// completion order and carries no meaning — callers must treat it as a
// set.
func (c *Crawler) GetUpdates(ctx context.Context, known []entrylog.Entry, sources []SourceSpec) ([]entrylog.Entry, error) {
	seen := entrylog.Links(known)

	var newLinks []string
	for _, src := range sources {
		links, err := c.listingLinks(ctx, src)
		if err != nil {
			// A dead listing page should not sink the other sources.
			log.Printf("warning: %v", err)
			continue
		}
		fresh := 0
		for _, link := range links {
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			newLinks = append(newLinks, link)
			fresh++
		}
		if c.Verbose {
			log.Printf("[VERBOSE] source %s: %d candidate links, %d new", src.Name, len(links), fresh)
		}
	}

	if len(newLinks) == 0 {
		return nil, nil
	}

	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	entries := make([]entrylog.Entry, 0, len(newLinks))

	for _, link := range newLinks {
		g.Go(func() error {
			entry := c.crawlOne(gctx, link)
			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
			return nil
		})
	}

	// Tasks never return errors; failures are recorded inside entries.
	_ = g.Wait()

	return entries, nil
}

// crawlOne fetches a single article page, extracts its text and runs
// entity extraction. Every failure mode collapses to an entry with nil
// entities and a recorded reason — the link still counts as seen.
func (c *Crawler) crawlOne(ctx context.Context, link string) entrylog.Entry {
	result, err := fetch.URL(ctx, link, c.FetchOptions)
	if err != nil {
		return entrylog.Entry{Link: link, Error: err.Error()}
	}

	text, err := fetch.ExtractText(result.HTML)
	if err != nil {
		return entrylog.Entry{Link: link, Error: err.Error()}
	}

	if c.UseBrowser && fetch.ShouldUseBrowser(text) {
		html, berr := fetch.WithBrowser(ctx, link, fetch.DefaultTimeout, c.Verbose)
		if berr == nil {
			if rendered, terr := fetch.ExtractText(html); terr == nil {
				text = rendered
			}
		}
	}

	entities, err := c.Extractor.Extract(ctx, text)
	if err != nil {
		return entrylog.Entry{Link: link, Error: err.Error()}
	}
	if entities == nil {
		entities = map[string][]string{}
	}
	return entrylog.Entry{Link: link, Entities: entities}
}
