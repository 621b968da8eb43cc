// ABOUTME: Insight, pitch, and coverage CLI commands
// ABOUTME: Runs synthesis against the configured generator and prints results
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"strings"

	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/intel"
	"github.com/jaynip-cloud/personapro/models"
)

// RefreshInsightsCommand regenerates the insight document for a client.
func RefreshInsightsCommand(database *sql.DB, ownerID string, contract *intel.Contract, catalog intel.CapabilityCatalog, args []string) error {
	fs := flag.NewFlagSet("refresh-insights", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	tone := fs.String("tone", "", "Synthesis tone: formal or casual")
	schema := fs.String("schema", "", "Insight schema: legacy or current")
	contextText := fs.String("context", "", "Free-form opportunity context")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	layers := intel.AssembleLayers(client, intel.OpportunityInput{CustomContext: *contextText}, catalog)
	doc, err := contract.SynthesizeInsight(context.Background(), layers, intel.Options{
		Tone:          *tone,
		SchemaVersion: *schema,
	})
	if err != nil {
		return fmt.Errorf("insight synthesis failed: %w", err)
	}

	doc.ClientID = client.ID
	doc.OwnerID = ownerID
	if err := db.SaveInsight(database, doc); err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}

	printInsight(doc)
	printEvidence(database, ownerID, client)
	return nil
}

// ShowInsightsCommand prints the stored insight document.
func ShowInsightsCommand(database *sql.DB, ownerID string, args []string) error {
	fs := flag.NewFlagSet("show-insights", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}
	doc, err := db.GetInsight(database, ownerID, client.ID)
	if err != nil {
		return fmt.Errorf("failed to load insight: %w", err)
	}
	if doc == nil {
		fmt.Println("No insight generated yet; run refresh-insights first")
		return nil
	}

	printInsight(doc)
	printEvidence(database, ownerID, client)
	return nil
}

// PitchCommand generates and prints a pitch document.
func PitchCommand(database *sql.DB, ownerID string, contract *intel.Contract, catalog intel.CapabilityCatalog, args []string) error {
	fs := flag.NewFlagSet("pitch", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	tone := fs.String("tone", "", "Pitch tone: formal or casual")
	length := fs.String("length", "", "Pitch length: short or long")
	contextText := fs.String("context", "", "Free-form opportunity context")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	layers := intel.AssembleLayers(client, intel.OpportunityInput{CustomContext: *contextText}, catalog)
	doc, err := contract.SynthesizePitch(context.Background(), layers, intel.Options{
		Tone:   *tone,
		Length: *length,
	})
	if err != nil {
		return fmt.Errorf("pitch synthesis failed: %w", err)
	}

	doc.ClientID = client.ID
	doc.OwnerID = ownerID
	if err := db.SavePitch(database, doc); err != nil {
		return fmt.Errorf("failed to save pitch: %w", err)
	}

	fmt.Printf("# %s\n\n", doc.Title)
	fmt.Printf("%s\n\n", doc.OpeningHook)
	fmt.Printf("Problem: %s\n\n", doc.ProblemFraming)
	fmt.Printf("Solution: %s\n\n", doc.ProposedSolution)
	fmt.Println("Outcomes:")
	for _, outcome := range doc.ValueOutcomes {
		fmt.Printf("  - %s\n", outcome)
	}
	fmt.Printf("\nCredibility: %s\n", doc.Credibility)
	fmt.Printf("Next step: %s\n", doc.CallToAction)
	return nil
}

// CoverageCommand prints data coverage gaps and the source evidence line.
func CoverageCommand(database *sql.DB, ownerID string, args []string) error {
	fs := flag.NewFlagSet("coverage", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	contacts := fs.Int("contacts", 0, "Number of known contacts")
	meetings := fs.Int("meetings", 0, "Number of recorded meetings")
	projects := fs.Int("projects", 0, "Number of tracked projects")
	documents := fs.Int("documents", 0, "Number of shared documents")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	coverage := intel.Coverage{
		Contacts:  *contacts,
		Meetings:  *meetings,
		Projects:  *projects,
		Documents: *documents,
	}
	audit, err := db.GetLatestAudit(database, ownerID, client.ID)
	if err != nil {
		return fmt.Errorf("failed to load source audit: %w", err)
	}
	var summary models.AuditSummary
	if audit != nil {
		summary = audit.Summarize()
		for _, entry := range audit.Entries {
			if entry.Available && entry.Source != "manual" && entry.Source != "website" {
				coverage.MarketIntel = true
			}
		}
	}

	if gaps := coverage.Gaps(); len(gaps) > 0 {
		fmt.Printf("Gaps: %s\n", strings.Join(gaps, ", "))
	} else {
		fmt.Println("Coverage complete")
	}
	fmt.Println(intel.EvidenceFooter(summary))
	return nil
}

func printInsight(doc *models.InsightDocument) {
	switch {
	case doc.Current != nil:
		fmt.Printf("# %s\n\n", doc.Current.ExecutiveSummary.Headline)
		s := doc.Current.ExecutiveSummary.Sections
		printSection("Company profile", s.CompanyProfile)
		printSection("Market intelligence", s.MarketIntelligence)
		printSection("Relationship health", s.RelationshipHealth)
		printSection("Behavioral insights", s.BehavioralInsights)
		printSection("Opportunities", s.Opportunities)
		printSection("Action plan", s.ActionPlan)
		printSection("Key metrics", s.KeyMetrics)
		printSection("Signals", s.Signals)
		printSection("Data analysis", s.DataAnalysis)
	case doc.Legacy != nil:
		printSection("Behavioral analysis", doc.Legacy.BehavioralAnalysis)
		printSection("Sentiment analysis", doc.Legacy.SentimentAnalysis)
		printSection("Relationship health", doc.Legacy.RelationshipHealth)
		printSection("Communication style", doc.Legacy.CommunicationStyle)
		printSection("Opportunities", doc.Legacy.Opportunities)
		printSection("Risks", doc.Legacy.Risks)
		printSection("Recommendations", doc.Legacy.Recommendations)
	}
}

func printSection(label, text string) {
	if text == "" {
		return
	}
	fmt.Printf("%s:\n  %s\n", label, text)
}

func printEvidence(database *sql.DB, ownerID string, client *models.ClientProfile) {
	audit, err := db.GetLatestAudit(database, ownerID, client.ID)
	if err != nil || audit == nil {
		return
	}
	fmt.Printf("\n%s\n", intel.EvidenceFooter(audit.Summarize()))
}
