// ABOUTME: Data models for the intelligence synthesis pipeline
// ABOUTME: Defines ClientProfile, enrichment, scoring, document, and conversation types
package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientProfile is the canonical per-client record. Each field holds exactly
// one value; merge resolves multi-source conflicts before anything is stored.
type ClientProfile struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Company        string    `json:"company"`
	Industry       string    `json:"industry,omitempty"`
	CompanySize    string    `json:"company_size,omitempty"`
	Location       string    `json:"location,omitempty"`
	FoundedYear    string    `json:"founded_year,omitempty"`
	ContactName    string    `json:"contact_name,omitempty"`
	ContactRole    string    `json:"contact_role,omitempty"`
	Email          string    `json:"email,omitempty"`
	AltEmail       string    `json:"alt_email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	AltPhone       string    `json:"alt_phone,omitempty"`
	ShortTermGoals string    `json:"short_term_goals,omitempty"`
	LongTermGoals  string    `json:"long_term_goals,omitempty"`
	Expectations   string    `json:"expectations,omitempty"`
	BudgetRange    string    `json:"budget_range,omitempty"`
	Overview       string    `json:"overview,omitempty"`
	SocialLinks    []string  `json:"social_links,omitempty"`
	Technologies   []string  `json:"technologies,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	HealthScore    *int      `json:"health_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Canonical scalar field names accepted from enrichment sources. Unknown keys
// in a source payload are ignored at ingestion.
const (
	FieldCompany        = "company"
	FieldIndustry       = "industry"
	FieldCompanySize    = "company_size"
	FieldLocation       = "location"
	FieldFoundedYear    = "founded_year"
	FieldContactName    = "contact_name"
	FieldContactRole    = "contact_role"
	FieldEmail          = "email"
	FieldAltEmail       = "alt_email"
	FieldPhone          = "phone"
	FieldAltPhone       = "alt_phone"
	FieldShortTermGoals = "short_term_goals"
	FieldLongTermGoals  = "long_term_goals"
	FieldExpectations   = "expectations"
	FieldBudgetRange    = "budget_range"
	FieldOverview       = "overview"
)

// Source kind constants, in descending merge priority.
const (
	SourceManual   = "manual"
	SourceProvider = "provider"
	SourceWebsite  = "website"
	SourceSocial   = "social"
)

// SourcePriority returns the merge rank for a source kind; lower wins.
// Unknown kinds sort after every known one.
func SourcePriority(kind string) int {
	switch kind {
	case SourceManual:
		return 1
	case SourceProvider:
		return 2
	case SourceWebsite:
		return 3
	case SourceSocial:
		return 4
	}
	return 5
}

// FieldSet is the partial contribution one enrichment source offers.
type FieldSet struct {
	Scalars      map[string]string `json:"scalars,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Technologies []string          `json:"technologies,omitempty"`
	SocialLinks  []string          `json:"social_links,omitempty"`
}

// Empty reports whether the set contributes nothing usable.
func (f FieldSet) Empty() bool {
	for _, v := range f.Scalars {
		if v != "" {
			return false
		}
	}
	return len(f.Tags) == 0 && len(f.Technologies) == 0 && len(f.SocialLinks) == 0
}

// EnrichmentSource is one provider's result, consumed once by the merger.
type EnrichmentSource struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Fields FieldSet `json:"fields"`
}

// ScoreFactors are the bounded sub-scores behind a fit score.
type ScoreFactors struct {
	ServiceTags      int `json:"service_tags"`
	Sentiment        int `json:"sentiment"`
	RecentEngagement int `json:"recent_engagement"`
	HealthScore      int `json:"health_score"`
	ProjectSize      int `json:"project_size"`
}

// ScoreResult is the composite scoring output.
type ScoreResult struct {
	FitScore    int          `json:"fit_score"`
	HealthScore int          `json:"health_score"`
	Factors     ScoreFactors `json:"factors"`
}

// Insight shape constants.
const (
	ShapeLegacy  = "legacy"
	ShapeCurrent = "current"
)

// LegacyInsight is the flat-key document shape still produced by older
// prompt revisions. Kept readable as-is; never up-converted.
type LegacyInsight struct {
	BehavioralAnalysis string `json:"behavioralAnalysis,omitempty"`
	SentimentAnalysis  string `json:"sentimentAnalysis,omitempty"`
	RelationshipHealth string `json:"relationshipHealth,omitempty"`
	CommunicationStyle string `json:"communicationStyle,omitempty"`
	Opportunities      string `json:"opportunities,omitempty"`
	Risks              string `json:"risks,omitempty"`
	Recommendations    string `json:"recommendations,omitempty"`
}

// InsightSections are the named sub-sections of the current shape. Any
// individual section may be absent when the generator had no evidence.
type InsightSections struct {
	CompanyProfile     string `json:"companyProfile,omitempty"`
	MarketIntelligence string `json:"marketIntelligence,omitempty"`
	RelationshipHealth string `json:"relationshipHealth,omitempty"`
	BehavioralInsights string `json:"behavioralInsights,omitempty"`
	Opportunities      string `json:"opportunities,omitempty"`
	ActionPlan         string `json:"actionPlan,omitempty"`
	KeyMetrics         string `json:"keyMetrics,omitempty"`
	Signals            string `json:"signals,omitempty"`
	DataAnalysis       string `json:"dataAnalysis,omitempty"`
}

// ExecutiveSummary wraps the sectioned current shape.
type ExecutiveSummary struct {
	Headline string          `json:"headline,omitempty"`
	Sections InsightSections `json:"sections"`
}

// CurrentInsight is the sectioned document shape.
type CurrentInsight struct {
	ExecutiveSummary ExecutiveSummary `json:"executiveSummary"`
}

// InsightDocument is the generated analysis attached to a client. Exactly one
// of Legacy or Current is set; a document never mixes shapes.
type InsightDocument struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	OwnerID     string          `json:"owner_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Legacy      *LegacyInsight  `json:"legacy,omitempty"`
	Current     *CurrentInsight `json:"current,omitempty"`
}

// Shape reports which schema the document carries.
func (d *InsightDocument) Shape() string {
	if d.Current != nil {
		return ShapeCurrent
	}
	return ShapeLegacy
}

// PitchDocument is a generated sales pitch. All seven content fields are
// mandatory; validation rejects the whole document when any is missing.
type PitchDocument struct {
	ID               uuid.UUID `json:"id"`
	ClientID         uuid.UUID `json:"client_id"`
	OwnerID          string    `json:"owner_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	Title            string    `json:"title"`
	OpeningHook      string    `json:"openingHook"`
	ProblemFraming   string    `json:"problemFraming"`
	ProposedSolution string    `json:"proposedSolution"`
	ValueOutcomes    []string  `json:"valueOutcomes"`
	Credibility      string    `json:"credibility"`
	CallToAction     string    `json:"callToAction"`
}

// Message role constants.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation mode constants.
const (
	ModeQuick = "quick"
	ModeDeep  = "deep"
)

// ConversationMessage is one exchange entry, scoped to a client and owner.
// History is append-only except for the bulk clear operation.
type ConversationMessage struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	OwnerID   string    `json:"owner_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Mode      string    `json:"mode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Failure reason constants for source audits.
const (
	FailureMissingCredential = "unavailable_credential"
	FailureProviderError     = "provider_error"
	FailureTransportError    = "transport_error"
	FailureNotApplicable     = "not_applicable"
)

// SourceAuditEntry records one source's outcome for a run.
type SourceAuditEntry struct {
	Source        string `json:"source"`
	FieldCount    int    `json:"field_count"`
	Available     bool   `json:"available"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// SourceAudit records which data sources were actually available at
// synthesis time so downstream consumers can gauge confidence.
type SourceAudit struct {
	ID       uuid.UUID          `json:"id"`
	ClientID uuid.UUID          `json:"client_id"`
	OwnerID  string             `json:"owner_id"`
	RunAt    time.Time          `json:"run_at"`
	Entries  []SourceAuditEntry `json:"entries"`
}

// AuditSummary is the condensed availability view of one audit.
type AuditSummary struct {
	PerSourceCounts   map[string]int    `json:"per_source_counts"`
	AvailabilityFlags map[string]bool   `json:"availability_flags"`
	FailureReasons    map[string]string `json:"failure_reasons"`
}

// Summarize condenses the audit entries into per-source counts and flags.
func (a *SourceAudit) Summarize() AuditSummary {
	s := AuditSummary{
		PerSourceCounts:   make(map[string]int),
		AvailabilityFlags: make(map[string]bool),
		FailureReasons:    make(map[string]string),
	}
	for _, e := range a.Entries {
		s.PerSourceCounts[e.Source] = e.FieldCount
		s.AvailabilityFlags[e.Source] = e.Available
		if e.FailureReason != "" {
			s.FailureReasons[e.Source] = e.FailureReason
		}
	}
	return s
}
