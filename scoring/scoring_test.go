// ABOUTME: Tests for the composite scoring bands
// ABOUTME: Covers the worked example, bounds, and determinism
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaynip-cloud/personapro/models"
)

func TestScoreWorkedExample(t *testing.T) {
	profile := &models.ClientProfile{
		Tags: []string{"automation", "robotics", "mid-market", "repeat-buyer"},
	}

	result := Score(profile, 0.75, 3, 60000)

	assert.Equal(t, 30, result.Factors.ServiceTags)
	assert.Equal(t, 30, result.Factors.Sentiment)
	assert.Equal(t, 20, result.Factors.RecentEngagement)
	assert.Equal(t, 11, result.Factors.HealthScore, "70 * 0.15 = 10.5 rounds to 11")
	assert.Equal(t, 10, result.Factors.ProjectSize)
	assert.Equal(t, 100, result.FitScore, "101 clamps to 100")
	assert.Equal(t, 70, result.HealthScore)
}

func TestScoreDeterminism(t *testing.T) {
	profile := &models.ClientProfile{Tags: []string{"a", "b"}}

	first := Score(profile, 0.8, 5, 120000)
	second := Score(profile, 0.8, 5, 120000)
	assert.Equal(t, first, second)
}

func TestScoreBounds(t *testing.T) {
	cases := []struct {
		name      string
		profile   *models.ClientProfile
		sentiment float64
		days      int
		deal      int64
	}{
		{"all minimum", &models.ClientProfile{}, -1, 365, 0},
		{"all maximum", &models.ClientProfile{Tags: []string{"a", "b", "c", "d", "e"}}, 1, 0, 500000},
		{"negative sentiment", &models.ClientProfile{}, -0.5, 10, 30000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(tc.profile, tc.sentiment, tc.days, tc.deal)
			assert.GreaterOrEqual(t, result.FitScore, 0)
			assert.LessOrEqual(t, result.FitScore, 100)
			assert.GreaterOrEqual(t, result.HealthScore, 0)
			assert.LessOrEqual(t, result.HealthScore, 100)
		})
	}
}

func TestSentimentBands(t *testing.T) {
	profile := &models.ClientProfile{}
	assert.Equal(t, 30, Score(profile, 0.7, 60, 0).Factors.Sentiment)
	assert.Equal(t, 20, Score(profile, 0.4, 60, 0).Factors.Sentiment)
	assert.Equal(t, 10, Score(profile, 0.0, 60, 0).Factors.Sentiment)
	assert.Equal(t, 0, Score(profile, -0.1, 60, 0).Factors.Sentiment)
}

func TestRecencyBands(t *testing.T) {
	profile := &models.ClientProfile{}
	assert.Equal(t, 20, Score(profile, -1, 7, 0).Factors.RecentEngagement)
	assert.Equal(t, 15, Score(profile, -1, 14, 0).Factors.RecentEngagement)
	assert.Equal(t, 10, Score(profile, -1, 30, 0).Factors.RecentEngagement)
	assert.Equal(t, 5, Score(profile, -1, 31, 0).Factors.RecentEngagement)
}

func TestDealSizeBands(t *testing.T) {
	profile := &models.ClientProfile{}
	assert.Equal(t, 15, Score(profile, -1, 60, 100000).Factors.ProjectSize)
	assert.Equal(t, 10, Score(profile, -1, 60, 50000).Factors.ProjectSize)
	assert.Equal(t, 5, Score(profile, -1, 60, 25000).Factors.ProjectSize)
	assert.Equal(t, 0, Score(profile, -1, 60, 24999).Factors.ProjectSize)
}

func TestStoredHealthScoreCarried(t *testing.T) {
	health := 40
	profile := &models.ClientProfile{HealthScore: &health}

	result := Score(profile, 0, 60, 0)
	assert.Equal(t, 40, result.HealthScore)
	assert.Equal(t, 6, result.Factors.HealthScore, "40 * 0.15 = 6")
}
