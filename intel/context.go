// ABOUTME: Three-layer intelligence context assembly
// ABOUTME: Pure data-to-text shaping with explicit placeholders for missing data
package intel

import (
	"fmt"
	"strings"

	"github.com/jaynip-cloud/personapro/models"
)

const (
	notSpecified = "Not specified"
	noData       = "No data"
)

// Opportunity is an explicit sales opportunity supplied for a synthesis run.
type Opportunity struct {
	Name        string
	Description string
	Value       string
	Stage       string
	Timeline    string
}

// Project is an active engagement supplied in place of an opportunity.
type Project struct {
	Name        string
	Status      string
	Description string
}

// Service is one offering in the organization's catalog.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CaseStudy is one reference engagement.
type CaseStudy struct {
	Client  string `json:"client"`
	Summary string `json:"summary"`
	Outcome string `json:"outcome"`
}

// CapabilityCatalog is the organization's service catalog and case-study
// library used for the capability layer.
type CapabilityCatalog struct {
	Services    []Service   `json:"services"`
	CaseStudies []CaseStudy `json:"case_studies"`
}

// OpportunityInput carries the mutually exclusive inputs for the opportunity
// layer. Selection precedence: Opportunity, then Project, then CustomContext,
// then a default placeholder.
type OpportunityInput struct {
	Opportunity   *Opportunity
	Project       *Project
	CustomContext string
}

// Layers is the assembled three-layer context for one synthesis call.
// Layers are never persisted; they are built just-in-time per request.
type Layers struct {
	Client      string
	Opportunity string
	Capability  string
}

// AssembleLayers builds the three labeled text layers. Missing fields render
// as explicit placeholders so the generator always sees the same section
// skeleton. No network or generation calls happen here.
func AssembleLayers(profile *models.ClientProfile, opp OpportunityInput, catalog CapabilityCatalog) Layers {
	return Layers{
		Client:      ClientLayer(profile),
		Opportunity: opportunityLayer(opp),
		Capability:  capabilityLayer(catalog),
	}
}

// ClientLayer renders the canonical profile as a labeled section block.
func ClientLayer(profile *models.ClientProfile) string {
	var b strings.Builder
	b.WriteString("=== CLIENT PROFILE ===\n")
	writeField(&b, "Company", profile.Company)
	writeField(&b, "Industry", profile.Industry)
	writeField(&b, "Company Size", profile.CompanySize)
	writeField(&b, "Location", profile.Location)
	writeField(&b, "Founded", profile.FoundedYear)
	writeField(&b, "Primary Contact", joinNonEmpty(profile.ContactName, profile.ContactRole, ", "))
	writeField(&b, "Email", joinNonEmpty(profile.Email, profile.AltEmail, " / "))
	writeField(&b, "Phone", joinNonEmpty(profile.Phone, profile.AltPhone, " / "))
	writeField(&b, "Short-Term Goals", profile.ShortTermGoals)
	writeField(&b, "Long-Term Goals", profile.LongTermGoals)
	writeField(&b, "Expectations", profile.Expectations)
	writeField(&b, "Budget Range", profile.BudgetRange)
	writeList(&b, "Tags", profile.Tags)
	writeList(&b, "Technologies", profile.Technologies)
	writeList(&b, "Social Links", profile.SocialLinks)
	writeField(&b, "Overview", profile.Overview)
	return b.String()
}

func opportunityLayer(input OpportunityInput) string {
	var b strings.Builder
	b.WriteString("=== OPPORTUNITY ===\n")

	switch {
	case input.Opportunity != nil:
		opp := input.Opportunity
		writeField(&b, "Opportunity", opp.Name)
		writeField(&b, "Description", opp.Description)
		writeField(&b, "Value", opp.Value)
		writeField(&b, "Stage", opp.Stage)
		writeField(&b, "Timeline", opp.Timeline)
	case input.Project != nil:
		proj := input.Project
		writeField(&b, "Project", proj.Name)
		writeField(&b, "Status", proj.Status)
		writeField(&b, "Description", proj.Description)
	case strings.TrimSpace(input.CustomContext) != "":
		writeField(&b, "Context", strings.TrimSpace(input.CustomContext))
	default:
		b.WriteString("No specific opportunity identified; analyze general relationship potential.\n")
	}

	return b.String()
}

func capabilityLayer(catalog CapabilityCatalog) string {
	var b strings.Builder
	b.WriteString("=== ORGANIZATION CAPABILITIES ===\n")

	if len(catalog.Services) == 0 && len(catalog.CaseStudies) == 0 {
		b.WriteString("Capabilities not documented.\n")
		return b.String()
	}

	if len(catalog.Services) > 0 {
		b.WriteString("Services:\n")
		for _, s := range catalog.Services {
			b.WriteString(fmt.Sprintf("  - %s", s.Name))
			if s.Description != "" {
				b.WriteString(fmt.Sprintf(": %s", s.Description))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("Services: not documented\n")
	}

	if len(catalog.CaseStudies) > 0 {
		b.WriteString("Case Studies:\n")
		for _, cs := range catalog.CaseStudies {
			b.WriteString(fmt.Sprintf("  - %s: %s", cs.Client, cs.Summary))
			if cs.Outcome != "" {
				b.WriteString(fmt.Sprintf(" (outcome: %s)", cs.Outcome))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("Case Studies: not documented\n")
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = notSpecified
	}
	b.WriteString(fmt.Sprintf("%s: %s\n", label, value))
}

func writeList(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		b.WriteString(fmt.Sprintf("%s: %s\n", label, noData))
		return
	}
	b.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(values, ", ")))
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "" && b == "":
		return ""
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + sep + b
}
