// Package connectivity reports whether the network is currently reachable.
// The gate is a precondition check for enrichment, not a success
// guarantee: a true reading may go stale between the check and the lookup,
// which is accepted because the lookup itself degrades to a placeholder.
package connectivity

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Gate is the online/offline signal consulted before enrichment.
type Gate interface {
	Online(ctx context.Context) bool
}

// Probe checks reachability with one short-timeout HTTP request per call.
// Any HTTP response counts as reachable regardless of status; only a
// transport-level failure reports offline. Nothing is cached between calls.
type Probe struct {
	client *resty.Client
	url    string
}

func NewProbe(url string, timeout time.Duration) *Probe {
	return &Probe{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

func (p *Probe) Online(ctx context.Context) bool {
	_, err := p.client.R().SetContext(ctx).Get(p.url)
	return err == nil
}

// Static is a fixed gate for tests and forced-offline runs.
type Static bool

func (s Static) Online(context.Context) bool { return bool(s) }
