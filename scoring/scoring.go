// ABOUTME: Deterministic composite fit and health scoring
// ABOUTME: Fixed banded heuristics; identical inputs always yield identical output
package scoring

import (
	"math"

	"github.com/jaynip-cloud/personapro/models"
)

const defaultHealthScore = 70

// Score computes the composite fit score and carries the health score from
// the profile's stored assessment (defaulting when absent). Sentiment is in
// [-1, 1]; lastEngagementDays counts days since the last interaction;
// dealSize is the opportunity value in whole currency units.
//
// The weights are fixed business bands, applied literally. Callers wanting
// simulated inputs randomize outside this function.
func Score(profile *models.ClientProfile, sentiment float64, lastEngagementDays int, dealSize int64) models.ScoreResult {
	health := defaultHealthScore
	if profile.HealthScore != nil {
		health = *profile.HealthScore
	}

	factors := models.ScoreFactors{
		ServiceTags:      tagRichness(len(profile.Tags)),
		Sentiment:        sentimentBand(sentiment),
		RecentEngagement: recencyBand(lastEngagementDays),
		HealthScore:      int(math.Round(float64(health) * 0.15)),
		ProjectSize:      dealSizeBand(dealSize),
	}

	fit := factors.ServiceTags + factors.Sentiment + factors.RecentEngagement +
		factors.HealthScore + factors.ProjectSize

	return models.ScoreResult{
		FitScore:    clamp(fit, 0, 100),
		HealthScore: clamp(health, 0, 100),
		Factors:     factors,
	}
}

func tagRichness(count int) int {
	score := count * 10
	if score > 30 {
		return 30
	}
	return score
}

func sentimentBand(sentiment float64) int {
	switch {
	case sentiment >= 0.7:
		return 30
	case sentiment >= 0.4:
		return 20
	case sentiment >= 0:
		return 10
	}
	return 0
}

func recencyBand(days int) int {
	switch {
	case days <= 7:
		return 20
	case days <= 14:
		return 15
	case days <= 30:
		return 10
	}
	return 5
}

func dealSizeBand(size int64) int {
	switch {
	case size >= 100000:
		return 15
	case size >= 50000:
		return 10
	case size >= 25000:
		return 5
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
