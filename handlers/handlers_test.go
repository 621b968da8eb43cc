// ABOUTME: Shared test helpers for MCP tool handler tests
// ABOUTME: Provides an isolated database and generator stubs
package handlers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/intel"
	"github.com/jaynip-cloud/personapro/models"
)

const testOwner = "test-owner"

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "handlers.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func createTestClient(t *testing.T, database *sql.DB) *models.ClientProfile {
	t.Helper()
	client := &models.ClientProfile{
		OwnerID:  testOwner,
		Company:  "Acme Robotics",
		Industry: "Manufacturing",
	}
	if err := db.CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	return client
}

// canned responses keyed by response hint, mirroring how the JSON and text
// paths diverge in the real generator.
type stubGenerator struct {
	jsonResponse string
	textResponse string
	err          error
	prompts      []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, hint intel.ResponseHint) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if hint == intel.HintJSON {
		return s.jsonResponse, nil
	}
	return s.textResponse, nil
}

const currentInsightJSON = `{
  "executiveSummary": {
    "headline": "Strong expansion candidate",
    "sections": {
      "companyProfile": "Mid-size manufacturer modernizing operations",
      "marketIntelligence": "Sector consolidating around automation",
      "relationshipHealth": "Stable",
      "behavioralInsights": "Responds best to data-backed proposals",
      "opportunities": "Automation rollout",
      "actionPlan": "Schedule technical workshop",
      "keyMetrics": "Healthy margins",
      "signals": "Recent plant expansion",
      "dataAnalysis": "Two incumbent vendors in the account"
    }
  }
}`

const shortPitchJSON = `{
  "title": "Automation Partnership",
  "openingHook": "Your plant expansion doubles throughput needs",
  "problemFraming": "Manual QA cannot keep pace",
  "proposedSolution": "Phased automation rollout",
  "valueOutcomes": ["30% faster QA", "Lower defect rates", "Freed-up operators"],
  "credibility": "Deployed at three comparable plants",
  "callToAction": "Book a scoping workshop"
}`
