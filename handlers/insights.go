// ABOUTME: Insight and pitch synthesis MCP tool handlers
// ABOUTME: Implements refresh_insights, get_insights, generate_pitch, and data_coverage tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/intel"
	"github.com/jaynip-cloud/personapro/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type InsightHandlers struct {
	db       *sql.DB
	ownerID  string
	contract *intel.Contract
	catalog  intel.CapabilityCatalog
}

func NewInsightHandlers(database *sql.DB, ownerID string, contract *intel.Contract, catalog intel.CapabilityCatalog) *InsightHandlers {
	return &InsightHandlers{db: database, ownerID: ownerID, contract: contract, catalog: catalog}
}

type OpportunityInput struct {
	Name        string `json:"name,omitempty" jsonschema:"Opportunity name"`
	Description string `json:"description,omitempty" jsonschema:"What the opportunity involves"`
	Value       string `json:"value,omitempty" jsonschema:"Estimated value"`
	Stage       string `json:"stage,omitempty" jsonschema:"Pipeline stage"`
	Timeline    string `json:"timeline,omitempty" jsonschema:"Expected timeline"`
}

type ProjectInput struct {
	Name        string `json:"name,omitempty" jsonschema:"Project name"`
	Status      string `json:"status,omitempty" jsonschema:"Current status"`
	Description string `json:"description,omitempty" jsonschema:"What the project covers"`
}

type RefreshInsightsInput struct {
	ClientID      string            `json:"client_id" jsonschema:"Client ID (required)"`
	Tone          string            `json:"tone,omitempty" jsonschema:"Synthesis tone: formal or casual (default formal)"`
	SchemaVersion string            `json:"schema_version,omitempty" jsonschema:"Insight schema: legacy or current (default current)"`
	Opportunity   *OpportunityInput `json:"opportunity,omitempty" jsonschema:"Active opportunity context"`
	Project       *ProjectInput     `json:"project,omitempty" jsonschema:"Active project context (used when no opportunity)"`
	CustomContext string            `json:"custom_context,omitempty" jsonschema:"Free-form context (used when no opportunity or project)"`
}

type InsightOutput struct {
	ClientID    string                 `json:"client_id"`
	Shape       string                 `json:"shape"`
	GeneratedAt string                 `json:"generated_at"`
	Legacy      *models.LegacyInsight  `json:"legacy,omitempty"`
	Current     *models.CurrentInsight `json:"current,omitempty"`
	Evidence    string                 `json:"evidence,omitempty"`
}

func insightToOutput(doc *models.InsightDocument, evidence string) InsightOutput {
	return InsightOutput{
		ClientID:    doc.ClientID.String(),
		Shape:       doc.Shape(),
		GeneratedAt: doc.GeneratedAt.Format(time.RFC3339),
		Legacy:      doc.Legacy,
		Current:     doc.Current,
		Evidence:    evidence,
	}
}

func (h *InsightHandlers) RefreshInsights(ctx context.Context, request *mcp.CallToolRequest, input RefreshInsightsInput) (*mcp.CallToolResult, InsightOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, InsightOutput{}, err
	}

	layers := intel.AssembleLayers(client, opportunityFromInput(input.Opportunity, input.Project, input.CustomContext), h.catalog)
	doc, err := h.contract.SynthesizeInsight(ctx, layers, intel.Options{
		Tone:          input.Tone,
		SchemaVersion: input.SchemaVersion,
	})
	if err != nil {
		return nil, InsightOutput{}, fmt.Errorf("insight synthesis failed: %w", err)
	}

	doc.ClientID = client.ID
	doc.OwnerID = h.ownerID
	if err := db.SaveInsight(h.db, doc); err != nil {
		return nil, InsightOutput{}, fmt.Errorf("failed to save insight: %w", err)
	}

	return nil, insightToOutput(doc, h.evidenceFooter(client)), nil
}

type GetInsightsInput struct {
	ClientID string `json:"client_id" jsonschema:"Client ID (required)"`
}

func (h *InsightHandlers) GetInsights(_ context.Context, request *mcp.CallToolRequest, input GetInsightsInput) (*mcp.CallToolResult, InsightOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, InsightOutput{}, err
	}
	doc, err := db.GetInsight(h.db, h.ownerID, client.ID)
	if err != nil {
		return nil, InsightOutput{}, fmt.Errorf("failed to load insight: %w", err)
	}
	if doc == nil {
		return nil, InsightOutput{}, fmt.Errorf("no insight generated yet for client %s", input.ClientID)
	}
	return nil, insightToOutput(doc, h.evidenceFooter(client)), nil
}

type GeneratePitchInput struct {
	ClientID      string            `json:"client_id" jsonschema:"Client ID (required)"`
	Tone          string            `json:"tone,omitempty" jsonschema:"Pitch tone: formal or casual (default formal)"`
	Length        string            `json:"length,omitempty" jsonschema:"Pitch length: short or long (default short)"`
	Opportunity   *OpportunityInput `json:"opportunity,omitempty" jsonschema:"Active opportunity context"`
	Project       *ProjectInput     `json:"project,omitempty" jsonschema:"Active project context (used when no opportunity)"`
	CustomContext string            `json:"custom_context,omitempty" jsonschema:"Free-form context (used when no opportunity or project)"`
}

type PitchOutput struct {
	ClientID         string   `json:"client_id"`
	GeneratedAt      string   `json:"generated_at"`
	Title            string   `json:"title"`
	OpeningHook      string   `json:"opening_hook"`
	ProblemFraming   string   `json:"problem_framing"`
	ProposedSolution string   `json:"proposed_solution"`
	ValueOutcomes    []string `json:"value_outcomes"`
	Credibility      string   `json:"credibility"`
	CallToAction     string   `json:"call_to_action"`
}

func pitchToOutput(doc *models.PitchDocument) PitchOutput {
	return PitchOutput{
		ClientID:         doc.ClientID.String(),
		GeneratedAt:      doc.GeneratedAt.Format(time.RFC3339),
		Title:            doc.Title,
		OpeningHook:      doc.OpeningHook,
		ProblemFraming:   doc.ProblemFraming,
		ProposedSolution: doc.ProposedSolution,
		ValueOutcomes:    doc.ValueOutcomes,
		Credibility:      doc.Credibility,
		CallToAction:     doc.CallToAction,
	}
}

func (h *InsightHandlers) GeneratePitch(ctx context.Context, request *mcp.CallToolRequest, input GeneratePitchInput) (*mcp.CallToolResult, PitchOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, PitchOutput{}, err
	}

	layers := intel.AssembleLayers(client, opportunityFromInput(input.Opportunity, input.Project, input.CustomContext), h.catalog)
	doc, err := h.contract.SynthesizePitch(ctx, layers, intel.Options{
		Tone:   input.Tone,
		Length: input.Length,
	})
	if err != nil {
		return nil, PitchOutput{}, fmt.Errorf("pitch synthesis failed: %w", err)
	}

	doc.ClientID = client.ID
	doc.OwnerID = h.ownerID
	if err := db.SavePitch(h.db, doc); err != nil {
		return nil, PitchOutput{}, fmt.Errorf("failed to save pitch: %w", err)
	}

	return nil, pitchToOutput(doc), nil
}

type DataCoverageInput struct {
	ClientID  string `json:"client_id" jsonschema:"Client ID (required)"`
	Contacts  int    `json:"contacts,omitempty" jsonschema:"Number of known contacts for this client"`
	Meetings  int    `json:"meetings,omitempty" jsonschema:"Number of recorded meetings"`
	Projects  int    `json:"projects,omitempty" jsonschema:"Number of tracked projects"`
	Documents int    `json:"documents,omitempty" jsonschema:"Number of shared documents"`
}

type DataCoverageOutput struct {
	ClientID      string                   `json:"client_id"`
	Gaps          []string                 `json:"gaps,omitempty"`
	NeedsMoreData bool                     `json:"needs_more_data"`
	Evidence      string                   `json:"evidence"`
	Sources       []SourceAuditEntryOutput `json:"sources,omitempty"`
}

func (h *InsightHandlers) DataCoverage(_ context.Context, request *mcp.CallToolRequest, input DataCoverageInput) (*mcp.CallToolResult, DataCoverageOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, DataCoverageOutput{}, err
	}

	audit, err := db.GetLatestAudit(h.db, h.ownerID, client.ID)
	if err != nil {
		return nil, DataCoverageOutput{}, fmt.Errorf("failed to load source audit: %w", err)
	}

	coverage := intel.Coverage{
		Contacts:  input.Contacts,
		Meetings:  input.Meetings,
		Projects:  input.Projects,
		Documents: input.Documents,
	}
	var summary models.AuditSummary
	var sources []SourceAuditEntryOutput
	if audit != nil {
		summary = audit.Summarize()
		for _, e := range audit.Entries {
			sources = append(sources, SourceAuditEntryOutput{
				Source:        e.Source,
				FieldCount:    e.FieldCount,
				Available:     e.Available,
				FailureReason: e.FailureReason,
			})
			if e.Available && e.Source != "manual" && e.Source != "website" {
				coverage.MarketIntel = true
			}
		}
	}

	return nil, DataCoverageOutput{
		ClientID:      client.ID.String(),
		Gaps:          coverage.Gaps(),
		NeedsMoreData: coverage.NeedsMoreData(),
		Evidence:      intel.EvidenceFooter(summary),
		Sources:       sources,
	}, nil
}

func (h *InsightHandlers) evidenceFooter(client *models.ClientProfile) string {
	audit, err := db.GetLatestAudit(h.db, h.ownerID, client.ID)
	if err != nil || audit == nil {
		return ""
	}
	return intel.EvidenceFooter(audit.Summarize())
}

func opportunityFromInput(opp *OpportunityInput, proj *ProjectInput, custom string) intel.OpportunityInput {
	out := intel.OpportunityInput{CustomContext: custom}
	if opp != nil {
		out.Opportunity = &intel.Opportunity{
			Name:        opp.Name,
			Description: opp.Description,
			Value:       opp.Value,
			Stage:       opp.Stage,
			Timeline:    opp.Timeline,
		}
	}
	if proj != nil {
		out.Project = &intel.Project{
			Name:        proj.Name,
			Status:      proj.Status,
			Description: proj.Description,
		}
	}
	return out
}
