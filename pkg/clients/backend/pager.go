package backend

import (
	"context"
	"iter"
	"strconv"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// PageFetcher loads the page behind url; the first call receives the start path
// and its query, later calls the absolute next URL returned by the backend.
type PageFetcher[T any] func(ctx context.Context, url string, query Query) (models.Page[T], error)

type pageResult[T any] struct {
	page models.Page[T]
	err  error
}

// Pager walks a paginated collection lazily by following next links. A Pager
// is not safe for concurrent use.
type Pager[T any] struct {
	fetch    PageFetcher[T]
	next     string
	query    Query
	started  bool
	done     bool
	prefetch bool
	pending  chan pageResult[T]
}

// PagerOption tunes a Pager.
type PagerOption func(*pagerOptions)

type pagerOptions struct {
	prefetch bool
}

// WithPrefetch loads the following page in the background while the caller
// works on the current one.
func WithPrefetch() PagerOption {
	return func(o *pagerOptions) { o.prefetch = true }
}

// NewPager starts a walk at start with the given query.
func NewPager[T any](start string, query Query, fetch PageFetcher[T], opts ...PagerOption) *Pager[T] {
	var o pagerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Pager[T]{fetch: fetch, next: start, query: query, prefetch: o.prefetch}
}

// Next returns the next page of items. ok is false once the collection is
// exhausted; a failed fetch ends the walk.
func (p *Pager[T]) Next(ctx context.Context) (items []T, ok bool, err error) {
	if p.done {
		return nil, false, nil
	}

	var res pageResult[T]
	if p.pending != nil {
		select {
		case res = <-p.pending:
		case <-ctx.Done():
			p.done = true
			return nil, false, ctx.Err()
		}
		p.pending = nil
	} else {
		if err := ctx.Err(); err != nil {
			p.done = true
			return nil, false, err
		}
		query := p.query
		if p.started {
			query = nil
		}
		p.started = true
		res = p.load(ctx, p.next, query)
	}

	if res.err != nil {
		p.done = true
		return nil, false, res.err
	}

	p.next = res.page.NextURL()
	if p.next == "" {
		p.done = true
	} else if p.prefetch {
		pending := make(chan pageResult[T], 1)
		p.pending = pending
		next := p.next
		go func() { pending <- p.load(ctx, next, nil) }()
	}

	return res.page.Results, true, nil
}

func (p *Pager[T]) load(ctx context.Context, url string, query Query) pageResult[T] {
	page, err := p.fetch(ctx, url, query)
	return pageResult[T]{page: page, err: err}
}

// All yields every item of every remaining page. A fetch error is yielded once
// with a zero item and stops the iteration.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			items, ok, err := p.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Collect gathers the remaining items. On error it returns what was gathered
// before the failure together with the error.
func (p *Pager[T]) Collect(ctx context.Context) ([]T, error) {
	var out []T
	for item, err := range p.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

// paged builds a Pager over a backend list endpoint.
func paged[T any](c *Client, op, path string, query Query, opts ...PagerOption) *Pager[T] {
	if query == nil {
		query = Query{}
	}
	if c.pageSize > 0 {
		query["page_size"] = strconv.Itoa(c.pageSize)
	}
	return NewPager[T](path, query, func(ctx context.Context, url string, q Query) (models.Page[T], error) {
		body, err := c.get(ctx, op, url, q)
		if err != nil {
			return models.Page[T]{}, err
		}
		return decodePage[T](op, body)
	}, opts...)
}
