// ABOUTME: Tests for the priority-ordered merge reducer
// ABOUTME: Covers precedence, totality, array union, and audit recording
package enrich

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaynip-cloud/personapro/models"
)

func TestMergePrecedence(t *testing.T) {
	current := models.ClientProfile{OwnerID: "user-1", Company: "Acme"}

	higher := SourceResult{Source: models.EnrichmentSource{
		Name: "clearbit", Kind: models.SourceProvider,
		Fields: models.FieldSet{Scalars: map[string]string{models.FieldIndustry: "Fintech"}},
	}}
	lower := SourceResult{Source: models.EnrichmentSource{
		Name: "crawler", Kind: models.SourceWebsite,
		Fields: models.FieldSet{Scalars: map[string]string{
			models.FieldIndustry:    "Finance",
			models.FieldCompanySize: "50-100",
		}},
	}}

	// Call order must not matter; only priority order does.
	for name, results := range map[string][]SourceResult{
		"higher first": {higher, lower},
		"lower first":  {lower, higher},
	} {
		merged, _ := Merge(current, results)
		assert.Equal(t, "Fintech", merged.Industry, name)
		assert.Equal(t, "50-100", merged.CompanySize, name)
	}
}

func TestMergeNeverOverwritesFilledField(t *testing.T) {
	current := models.ClientProfile{OwnerID: "user-1", Company: "Acme", Industry: "Robotics"}

	result := SourceResult{Source: models.EnrichmentSource{
		Name: "clearbit", Kind: models.SourceProvider,
		Fields: models.FieldSet{Scalars: map[string]string{models.FieldIndustry: "Fintech"}},
	}}

	merged, _ := Merge(current, []SourceResult{result})
	assert.Equal(t, "Robotics", merged.Industry)
}

func TestMergeUnionsArraysCaseInsensitively(t *testing.T) {
	current := models.ClientProfile{Tags: []string{"Fintech"}}

	results := []SourceResult{
		{Source: models.EnrichmentSource{
			Name: "crawler", Kind: models.SourceWebsite,
			Fields: models.FieldSet{Tags: []string{"fintech", "Payments"}, Technologies: []string{"Go"}},
		}},
		{Source: models.EnrichmentSource{
			Name: "social", Kind: models.SourceSocial,
			Fields: models.FieldSet{Tags: []string{"PAYMENTS", "B2B"}, SocialLinks: []string{"https://x.com/acme"}},
		}},
	}

	merged, _ := Merge(current, results)
	assert.Equal(t, []string{"Fintech", "Payments", "B2B"}, merged.Tags)
	assert.Equal(t, []string{"Go"}, merged.Technologies)
	assert.Equal(t, []string{"https://x.com/acme"}, merged.SocialLinks)
}

func TestMergeTotalityOnAllFailures(t *testing.T) {
	current := models.ClientProfile{OwnerID: "user-1", Company: "Acme", Tags: []string{"fintech"}}

	results := []SourceResult{
		{Source: models.EnrichmentSource{Name: "clearbit", Kind: models.SourceProvider},
			Err: fmt.Errorf("fetch clearbit: %w", ErrMissingCredential)},
		{Source: models.EnrichmentSource{Name: "crawler", Kind: models.SourceWebsite},
			Err: fmt.Errorf("fetch site: %w", ErrTransport)},
	}

	merged, audit := Merge(current, results)
	assert.Equal(t, current, merged, "merge must return the profile unchanged when every source fails")

	require.Len(t, audit.Entries, 2)
	for _, e := range audit.Entries {
		assert.False(t, e.Available)
		assert.Zero(t, e.FieldCount)
	}
	summary := audit.Summarize()
	assert.Equal(t, models.FailureMissingCredential, summary.FailureReasons["clearbit"])
	assert.Equal(t, models.FailureTransportError, summary.FailureReasons["crawler"])
}

func TestMergePartialFailureStillMerges(t *testing.T) {
	current := models.ClientProfile{OwnerID: "user-1", Company: "Acme"}

	results := []SourceResult{
		{Source: models.EnrichmentSource{Name: "clearbit", Kind: models.SourceProvider},
			Err: errors.New("upstream 500")},
		{Source: models.EnrichmentSource{
			Name: "crawler", Kind: models.SourceWebsite,
			Fields: models.FieldSet{Scalars: map[string]string{models.FieldLocation: "Chicago"}},
		}},
	}

	merged, audit := Merge(current, results)
	assert.Equal(t, "Chicago", merged.Location)

	summary := audit.Summarize()
	assert.Equal(t, models.FailureProviderError, summary.FailureReasons["clearbit"])
	assert.True(t, summary.AvailabilityFlags["crawler"])
	assert.Equal(t, 1, summary.PerSourceCounts["crawler"])
}

func TestMergeIgnoresUnknownKeys(t *testing.T) {
	current := models.ClientProfile{Company: "Acme"}

	result := SourceResult{Source: models.EnrichmentSource{
		Name: "crawler", Kind: models.SourceWebsite,
		Fields: models.FieldSet{Scalars: map[string]string{
			"employee_mood": "great",
			"industry":      "Fintech",
		}},
	}}

	merged, audit := Merge(current, []SourceResult{result})
	assert.Equal(t, "Fintech", merged.Industry)
	assert.Equal(t, 1, audit.Entries[0].FieldCount, "unknown keys must not count as contributions")
}

type stubProvider struct {
	name   string
	kind   string
	fields models.FieldSet
	err    error
}

func (s stubProvider) Name() string { return s.name }
func (s stubProvider) Kind() string { return s.kind }
func (s stubProvider) Fetch(ctx context.Context) (models.FieldSet, error) {
	return s.fields, s.err
}

func TestFetchAllPreservesInputOrder(t *testing.T) {
	providers := []Provider{
		stubProvider{name: "a", kind: models.SourceSocial},
		stubProvider{name: "b", kind: models.SourceManual, err: ErrTransport},
		stubProvider{name: "c", kind: models.SourceWebsite},
	}

	results := FetchAll(context.Background(), providers)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Source.Name)
	assert.Equal(t, "b", results[1].Source.Name)
	assert.Equal(t, "c", results[2].Source.Name)
	assert.Error(t, results[1].Err)
}

func TestFailureReasonMapping(t *testing.T) {
	assert.Equal(t, "", FailureReason(nil))
	assert.Equal(t, models.FailureMissingCredential, FailureReason(fmt.Errorf("x: %w", ErrMissingCredential)))
	assert.Equal(t, models.FailureTransportError, FailureReason(fmt.Errorf("x: %w", ErrTransport)))
	assert.Equal(t, models.FailureProviderError, FailureReason(errors.New("boom")))
}
