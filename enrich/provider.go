// ABOUTME: Enrichment provider interface and concurrent fetch
// ABOUTME: Fetches all sources in parallel; merge order is decided later
package enrich

import (
	"context"
	"errors"
	"sync"

	"github.com/jaynip-cloud/personapro/models"
)

var (
	// ErrMissingCredential means the provider has no API key or configuration.
	// Surfaced distinctly so callers can prompt for setup instead of retrying.
	ErrMissingCredential = errors.New("enrichment credential not configured")

	// ErrTransport means the provider was reachable in principle but the
	// network call failed.
	ErrTransport = errors.New("enrichment transport failure")

	// ErrSourceUnavailable means the provider answered but returned nothing
	// usable.
	ErrSourceUnavailable = errors.New("enrichment source unavailable")
)

// Provider is one enrichment source. Each provider owns its own
// authentication and rate-limit contract; the pipeline treats them uniformly.
type Provider interface {
	Name() string
	Kind() string
	Fetch(ctx context.Context) (models.FieldSet, error)
}

// SourceResult pairs one provider's contribution with its fetch outcome.
type SourceResult struct {
	Source models.EnrichmentSource
	Err    error
}

// FetchAll runs every provider concurrently and returns results in the
// providers' input order. A provider failure is captured per-result, never
// returned as an error: partial enrichment is the normal case.
func FetchAll(ctx context.Context, providers []Provider) []SourceResult {
	results := make([]SourceResult, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			fields, err := p.Fetch(ctx)
			results[i] = SourceResult{
				Source: models.EnrichmentSource{Name: p.Name(), Kind: p.Kind(), Fields: fields},
				Err:    err,
			}
		}(i, p)
	}
	wg.Wait()

	return results
}

// FailureReason maps a fetch error onto the audit reason enum.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return models.FailureMissingCredential
	case errors.Is(err, ErrTransport):
		return models.FailureTransportError
	default:
		return models.FailureProviderError
	}
}
