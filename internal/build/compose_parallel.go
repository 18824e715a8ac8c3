package build

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/helpbundler/internal/compose"
	"git.home.luguber.info/inful/helpbundler/internal/docmodel"
)

// composeParallel renders content pages on a bounded worker pool, then
// appends the generated pages. Output order matches the sequential composer:
// sorted content pages, section indexes, table of contents, landing page.
func composeParallel(ctx context.Context, composer *compose.Composer, docs *docmodel.DocumentSet, workers int) ([]compose.Page, error) {
	if workers < 1 {
		workers = 1
	}
	sorted := docs.Sorted()

	type job struct {
		index int
		doc   *docmodel.Document
	}
	type result struct {
		index int
		page  compose.Page
		err   error
	}

	jobs := make(chan job)
	results := make(chan result)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				page, err := composer.ContentPage(j.doc)
				results <- result{index: j.index, page: page, err: err}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i, doc := range sorted {
			select {
			case jobs <- job{index: i, doc: doc}:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	contentPages := make([]compose.Page, len(sorted))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		contentPages[res.index] = res.page
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages := append(contentPages, composer.IndexPages()...)
	if err := compose.UniqueOutputs(pages); err != nil {
		return nil, err
	}
	return pages, nil
}
