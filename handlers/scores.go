// ABOUTME: Client scoring MCP tool handler
// ABOUTME: Implements the score_client tool producing a fit score and factor breakdown
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/scoring"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ScoreHandlers struct {
	db      *sql.DB
	ownerID string
}

func NewScoreHandlers(database *sql.DB, ownerID string) *ScoreHandlers {
	return &ScoreHandlers{db: database, ownerID: ownerID}
}

type ScoreClientInput struct {
	ClientID           string  `json:"client_id" jsonschema:"Client ID (required)"`
	Sentiment          float64 `json:"sentiment,omitempty" jsonschema:"Latest interaction sentiment in [-1,1]"`
	LastEngagementDays int     `json:"last_engagement_days,omitempty" jsonschema:"Days since the most recent engagement"`
	DealSize           int64   `json:"deal_size,omitempty" jsonschema:"Current deal or project size in whole currency units"`
}

type ScoreFactorsOutput struct {
	ServiceTags      int `json:"service_tags"`
	Sentiment        int `json:"sentiment"`
	RecentEngagement int `json:"recent_engagement"`
	HealthScore      int `json:"health_score"`
	ProjectSize      int `json:"project_size"`
}

type ScoreClientOutput struct {
	ClientID    string             `json:"client_id"`
	FitScore    int                `json:"fit_score"`
	HealthScore int                `json:"health_score"`
	Factors     ScoreFactorsOutput `json:"factors"`
}

func (h *ScoreHandlers) ScoreClient(_ context.Context, request *mcp.CallToolRequest, input ScoreClientInput) (*mcp.CallToolResult, ScoreClientOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, ScoreClientOutput{}, err
	}
	if input.Sentiment < -1 || input.Sentiment > 1 {
		return nil, ScoreClientOutput{}, fmt.Errorf("sentiment must be in [-1,1], got %v", input.Sentiment)
	}

	result := scoring.Score(client, input.Sentiment, input.LastEngagementDays, input.DealSize)

	// First scoring run pins the default health score onto the profile so
	// later runs and synthesis see the same value.
	if client.HealthScore == nil {
		health := result.HealthScore
		client.HealthScore = &health
		if err := db.UpdateClient(h.db, client); err != nil {
			return nil, ScoreClientOutput{}, fmt.Errorf("failed to save health score: %w", err)
		}
	}

	return nil, ScoreClientOutput{
		ClientID:    client.ID.String(),
		FitScore:    result.FitScore,
		HealthScore: result.HealthScore,
		Factors: ScoreFactorsOutput{
			ServiceTags:      result.Factors.ServiceTags,
			Sentiment:        result.Factors.Sentiment,
			RecentEngagement: result.Factors.RecentEngagement,
			HealthScore:      result.Factors.HealthScore,
			ProjectSize:      result.Factors.ProjectSize,
		},
	}, nil
}
