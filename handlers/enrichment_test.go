// ABOUTME: Tests for the merge_profile MCP tool handler
// ABOUTME: Validates source precedence, audit recording, and persistence
package handlers

import (
	"context"
	"testing"

	"github.com/jaynip-cloud/personapro/enrich"
	"github.com/jaynip-cloud/personapro/models"
)

type stubFetcher struct {
	page enrich.PageData
	err  error
}

func (s stubFetcher) Fetch(_ context.Context, _ string) (enrich.PageData, error) {
	return s.page, s.err
}

func TestMergeProfileManualFields(t *testing.T) {
	database := setupTestDB(t)
	client := createTestClient(t, database)
	handler := NewEnrichHandlers(database, testOwner, nil, nil)

	_, out, err := handler.MergeProfile(context.Background(), nil, MergeProfileInput{
		ClientID: client.ID.String(),
		Fields:   map[string]string{models.FieldLocation: "Chicago, IL", models.FieldBudgetRange: "$50k-$100k"},
		Tags:     []string{"automation", "consulting"},
	})
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}
	if out.Client.Location != "Chicago, IL" {
		t.Errorf("Expected location merged, got %q", out.Client.Location)
	}
	if out.Client.BudgetRange != "$50k-$100k" {
		t.Errorf("Expected budget merged, got %q", out.Client.BudgetRange)
	}
	if len(out.Client.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %v", out.Client.Tags)
	}
	if len(out.Audit) != 1 || out.Audit[0].Source != "manual" || !out.Audit[0].Available {
		t.Errorf("Unexpected audit: %+v", out.Audit)
	}
}

func TestMergeProfileNeverOverwritesExisting(t *testing.T) {
	database := setupTestDB(t)
	client := createTestClient(t, database)
	handler := NewEnrichHandlers(database, testOwner, nil, nil)

	// Industry is already "Manufacturing" on the test client.
	_, out, err := handler.MergeProfile(context.Background(), nil, MergeProfileInput{
		ClientID: client.ID.String(),
		Fields:   map[string]string{models.FieldIndustry: "Retail"},
	})
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}
	if out.Client.Industry != "Manufacturing" {
		t.Errorf("Existing field was overwritten: %q", out.Client.Industry)
	}
}

func TestMergeProfileWebsiteSource(t *testing.T) {
	database := setupTestDB(t)
	client := createTestClient(t, database)
	fetcher := stubFetcher{page: enrich.PageData{
		Description: "Industrial robotics integrator",
		Metadata:    map[string]string{"location": "Detroit, MI"},
		Links:       []string{"https://linkedin.com/company/acme", "https://acme.example/about"},
	}}
	handler := NewEnrichHandlers(database, testOwner, fetcher, nil)

	_, out, err := handler.MergeProfile(context.Background(), nil, MergeProfileInput{
		ClientID:   client.ID.String(),
		WebsiteURL: "https://acme.example",
	})
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}
	if out.Client.Overview != "Industrial robotics integrator" {
		t.Errorf("Expected overview from website, got %q", out.Client.Overview)
	}
	if out.Client.Location != "Detroit, MI" {
		t.Errorf("Expected location from metadata, got %q", out.Client.Location)
	}
	if len(out.Client.SocialLinks) != 1 {
		t.Errorf("Expected only the social link kept, got %v", out.Client.SocialLinks)
	}
}

func TestMergeProfileRecordsFailedSource(t *testing.T) {
	database := setupTestDB(t)
	client := createTestClient(t, database)
	fetcher := stubFetcher{err: enrich.ErrTransport}
	handler := NewEnrichHandlers(database, testOwner, fetcher, nil)

	_, out, err := handler.MergeProfile(context.Background(), nil, MergeProfileInput{
		ClientID:   client.ID.String(),
		Fields:     map[string]string{models.FieldPhone: "555-0100"},
		WebsiteURL: "https://acme.example",
	})
	if err != nil {
		t.Fatalf("MergeProfile failed: %v", err)
	}
	if out.Client.Phone != "555-0100" {
		t.Errorf("Manual field should still merge, got %q", out.Client.Phone)
	}

	var website *SourceAuditEntryOutput
	for i := range out.Audit {
		if out.Audit[i].Source == "website" {
			website = &out.Audit[i]
		}
	}
	if website == nil {
		t.Fatal("Website entry missing from audit")
	}
	if website.Available || website.FailureReason != models.FailureTransportError {
		t.Errorf("Unexpected website audit entry: %+v", website)
	}
}

func TestMergeProfileRejectsEmptyRequest(t *testing.T) {
	database := setupTestDB(t)
	client := createTestClient(t, database)
	handler := NewEnrichHandlers(database, testOwner, nil, nil)

	if _, _, err := handler.MergeProfile(context.Background(), nil, MergeProfileInput{ClientID: client.ID.String()}); err == nil {
		t.Error("Expected error for empty merge request")
	}
}
