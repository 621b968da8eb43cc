// ABOUTME: Profile enrichment MCP tool handler
// ABOUTME: Implements the merge_profile tool combining manual, website, and provider sources
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/enrich"
	"github.com/jaynip-cloud/personapro/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type EnrichHandlers struct {
	db        *sql.DB
	ownerID   string
	fetcher   enrich.WebFetcher
	providers []enrich.Provider
}

// NewEnrichHandlers wires the merge tool. Extra providers (data vendors,
// social lookups) run on every merge alongside the per-request sources.
func NewEnrichHandlers(database *sql.DB, ownerID string, fetcher enrich.WebFetcher, providers []enrich.Provider) *EnrichHandlers {
	return &EnrichHandlers{db: database, ownerID: ownerID, fetcher: fetcher, providers: providers}
}

type MergeProfileInput struct {
	ClientID     string            `json:"client_id" jsonschema:"Client ID (required)"`
	Fields       map[string]string `json:"fields,omitempty" jsonschema:"Manually entered field values keyed by canonical field name"`
	Tags         []string          `json:"tags,omitempty" jsonschema:"Manually entered service tags"`
	Technologies []string          `json:"technologies,omitempty" jsonschema:"Manually entered technologies"`
	WebsiteURL   string            `json:"website_url,omitempty" jsonschema:"Company website to crawl for metadata"`
}

type SourceAuditEntryOutput struct {
	Source        string `json:"source"`
	FieldCount    int    `json:"field_count"`
	Available     bool   `json:"available"`
	FailureReason string `json:"failure_reason,omitempty"`
}

type MergeProfileOutput struct {
	Client ClientOutput             `json:"client"`
	Audit  []SourceAuditEntryOutput `json:"audit"`
}

func (h *EnrichHandlers) MergeProfile(ctx context.Context, request *mcp.CallToolRequest, input MergeProfileInput) (*mcp.CallToolResult, MergeProfileOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, MergeProfileOutput{}, err
	}

	providers := h.buildProviders(input)
	if len(providers) == 0 {
		return nil, MergeProfileOutput{}, fmt.Errorf("nothing to merge: provide fields, tags, or a website_url")
	}

	results := enrich.FetchAll(ctx, providers)
	merged, audit := enrich.Merge(*client, results)

	if err := db.UpdateClient(h.db, &merged); err != nil {
		return nil, MergeProfileOutput{}, fmt.Errorf("failed to save merged profile: %w", err)
	}
	if err := db.InsertAudit(h.db, &audit); err != nil {
		return nil, MergeProfileOutput{}, fmt.Errorf("failed to record source audit: %w", err)
	}

	entries := make([]SourceAuditEntryOutput, len(audit.Entries))
	for i, e := range audit.Entries {
		entries[i] = SourceAuditEntryOutput{
			Source:        e.Source,
			FieldCount:    e.FieldCount,
			Available:     e.Available,
			FailureReason: e.FailureReason,
		}
	}
	return nil, MergeProfileOutput{Client: clientToOutput(&merged), Audit: entries}, nil
}

func (h *EnrichHandlers) buildProviders(input MergeProfileInput) []enrich.Provider {
	var providers []enrich.Provider

	manual := models.FieldSet{
		Scalars:      input.Fields,
		Tags:         input.Tags,
		Technologies: input.Technologies,
	}
	if !manual.Empty() {
		providers = append(providers, enrich.ManualSource{Fields: manual})
	}
	if input.WebsiteURL != "" && h.fetcher != nil {
		providers = append(providers, enrich.WebsiteSource{Fetcher: h.fetcher, Target: input.WebsiteURL})
	}
	providers = append(providers, h.providers...)
	return providers
}
