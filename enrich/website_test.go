// ABOUTME: Tests for the website source adapter
// ABOUTME: Covers metadata mapping, social-link extraction, and empty-page handling
package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaynip-cloud/personapro/models"
)

type stubFetcher struct {
	page PageData
	err  error
}

func (f stubFetcher) Fetch(ctx context.Context, target string) (PageData, error) {
	return f.page, f.err
}

func TestWebsiteSourceMapsMetadata(t *testing.T) {
	src := WebsiteSource{
		Target: "https://acme.example",
		Fetcher: stubFetcher{page: PageData{
			Description: "Industrial robots for mid-market factories.",
			Metadata: map[string]string{
				"Industry": "Robotics",
				"Location": "Chicago",
				"mascot":   "a helpful robot",
			},
			Links: []string{
				"https://acme.example/pricing",
				"https://linkedin.com/company/acme",
			},
		}},
	}

	fields, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Robotics", fields.Scalars[models.FieldIndustry])
	assert.Equal(t, "Chicago", fields.Scalars[models.FieldLocation])
	assert.Equal(t, "Industrial robots for mid-market factories.", fields.Scalars[models.FieldOverview])
	assert.NotContains(t, fields.Scalars, "mascot")
	assert.Equal(t, []string{"https://linkedin.com/company/acme"}, fields.SocialLinks)
}

func TestWebsiteSourceEmptyPage(t *testing.T) {
	src := WebsiteSource{Target: "https://acme.example", Fetcher: stubFetcher{}}

	_, err := src.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}

func TestWebsiteSourceFetchError(t *testing.T) {
	src := WebsiteSource{
		Target:  "https://acme.example",
		Fetcher: stubFetcher{err: ErrTransport},
	}

	_, err := src.Fetch(context.Background())
	assert.Equal(t, models.FailureTransportError, FailureReason(err))
}

func TestManualSourceOutranksEverything(t *testing.T) {
	manual := ManualSource{Fields: models.FieldSet{
		Scalars: map[string]string{models.FieldIndustry: "Fintech"},
	}}

	results := FetchAll(context.Background(), []Provider{
		WebsiteSource{Target: "https://acme.example", Fetcher: stubFetcher{page: PageData{
			Metadata: map[string]string{"industry": "Finance"},
		}}},
		manual,
	})

	merged, _ := Merge(models.ClientProfile{}, results)
	assert.Equal(t, "Fintech", merged.Industry)
}
