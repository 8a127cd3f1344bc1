package driver

import (
	"context"

	"github.com/dataline-io/tap-autopilot/constants"
	"github.com/dataline-io/tap-autopilot/types"
	"github.com/dataline-io/tap-autopilot/utils/logger"
)

var _ types.Iterable = (*Paginator)(nil)

// Paginator stitches the pages of one resource into a single record
// sequence with pull-based semantics (types.Iterable). It is single-pass:
// once exhausted a fresh Paginator re-fetches from page one unless a
// starting bookmark is supplied.
type Paginator struct {
	ctx      context.Context
	client   *Client
	resource Resource
	url      string
	params   *RequestParams

	buffer []map[string]any
	pos    int
	count  int
	done   bool
	err    error
}

func NewPaginator(ctx context.Context, client *Client, resource Resource, url string, params *RequestParams) *Paginator {
	if params == nil {
		params = &RequestParams{}
	}

	return &Paginator{
		ctx:      ctx,
		client:   client,
		resource: resource,
		url:      url,
		params:   params,
		pos:      -1,
	}
}

// Next advances to the next record, fetching the next page when the buffer
// is exhausted. A page holding fewer than the fixed page size terminates
// the sequence even when it carries a continuation token.
func (p *Paginator) Next() bool {
	if p.err != nil {
		return false
	}

	if p.pos+1 < len(p.buffer) {
		p.pos++
		return true
	}

	if p.done {
		return false
	}

	page, err := p.client.Fetch(p.ctx, p.resource, p.url, p.params)
	if err != nil {
		p.err = err
		return false
	}

	if endpoints[p.resource].bookmarked {
		// the bookmark only continues contact-flavoured resources; its
		// absence clears continuation state even on a full-sized page
		if page.Bookmark != "" {
			p.params = &RequestParams{Bookmark: page.Bookmark}
		} else {
			p.params = &RequestParams{}
		}
	}

	if len(page.Records) < constants.PerPage {
		p.params = &RequestParams{}
		p.done = true
	}

	p.count += len(page.Records)
	p.buffer = page.Records
	p.pos = 0

	if len(p.buffer) == 0 {
		p.logCounter()
		return false
	}

	if p.done {
		p.logCounter()
	}
	return true
}

func (p *Paginator) Record() map[string]any {
	return p.buffer[p.pos]
}

func (p *Paginator) Err() error {
	return p.err
}

// Count is the number of records yielded so far
func (p *Paginator) Count() int {
	return p.count
}

func (p *Paginator) logCounter() {
	logger.Metric(map[string]any{
		"type":     "counter",
		"metric":   "record_count",
		"endpoint": string(p.resource),
		"value":    p.count,
	})
}
