// ABOUTME: Client profile CLI commands
// ABOUTME: Human-friendly commands for adding, listing, merging, and scoring clients
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/enrich"
	"github.com/jaynip-cloud/personapro/models"
	"github.com/jaynip-cloud/personapro/scoring"
)

// AddClientCommand adds a new client profile.
func AddClientCommand(database *sql.DB, ownerID string, args []string) error {
	fs := flag.NewFlagSet("add-client", flag.ExitOnError)
	company := fs.String("company", "", "Company name (required)")
	industry := fs.String("industry", "", "Industry")
	location := fs.String("location", "", "Primary location")
	contact := fs.String("contact", "", "Main contact person")
	role := fs.String("role", "", "Contact's role")
	email := fs.String("email", "", "Contact email")
	phone := fs.String("phone", "", "Contact phone")
	overview := fs.String("overview", "", "Free-form overview")
	_ = fs.Parse(args)

	if *company == "" {
		return fmt.Errorf("--company is required")
	}

	client := &models.ClientProfile{
		OwnerID:     ownerID,
		Company:     *company,
		Industry:    *industry,
		Location:    *location,
		ContactName: *contact,
		ContactRole: *role,
		Email:       *email,
		Phone:       *phone,
		Overview:    *overview,
	}
	if err := db.CreateClient(database, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	fmt.Printf("Created client: %s (%s)\n", client.Company, client.ID)
	return nil
}

// ListClientsCommand lists client profiles.
func ListClientsCommand(database *sql.DB, ownerID string, args []string) error {
	fs := flag.NewFlagSet("list-clients", flag.ExitOnError)
	query := fs.String("query", "", "Search by company or contact name")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	clients, err := db.FindClients(database, ownerID, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to find clients: %w", err)
	}

	if len(clients) == 0 {
		fmt.Println("No clients found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tINDUSTRY\tCONTACT\tHEALTH\tID")
	_, _ = fmt.Fprintln(w, "-------\t--------\t-------\t------\t--")
	for _, client := range clients {
		health := "-"
		if client.HealthScore != nil {
			health = fmt.Sprintf("%d", *client.HealthScore)
		}
		industry := client.Industry
		if industry == "" {
			industry = "-"
		}
		contact := client.ContactName
		if contact == "" {
			contact = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			client.Company, industry, contact, health, client.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d client(s)\n", len(clients))
	return nil
}

// ShowClientCommand prints one full client profile.
func ShowClientCommand(database *sql.DB, ownerID string, args []string) error {
	fs := flag.NewFlagSet("show-client", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	fmt.Printf("Company:      %s\n", client.Company)
	printField("Industry", client.Industry)
	printField("Size", client.CompanySize)
	printField("Location", client.Location)
	printField("Founded", client.FoundedYear)
	printField("Contact", client.ContactName)
	printField("Role", client.ContactRole)
	printField("Email", client.Email)
	printField("Phone", client.Phone)
	printField("Budget", client.BudgetRange)
	printField("Overview", client.Overview)
	if len(client.Tags) > 0 {
		fmt.Printf("Tags:         %s\n", strings.Join(client.Tags, ", "))
	}
	if len(client.Technologies) > 0 {
		fmt.Printf("Technologies: %s\n", strings.Join(client.Technologies, ", "))
	}
	if len(client.SocialLinks) > 0 {
		fmt.Printf("Social:       %s\n", strings.Join(client.SocialLinks, ", "))
	}
	if client.HealthScore != nil {
		fmt.Printf("Health:       %d\n", *client.HealthScore)
	}
	fmt.Printf("ID:           %s\n", client.ID)
	return nil
}

// MergeClientCommand enriches a profile from manual flags and an optional
// website crawl, then prints the source audit.
func MergeClientCommand(database *sql.DB, ownerID string, fetcher enrich.WebFetcher, args []string) error {
	fs := flag.NewFlagSet("merge-client", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	website := fs.String("website", "", "Company website to crawl")
	tags := fs.String("tags", "", "Comma-separated service tags")
	techs := fs.String("technologies", "", "Comma-separated technologies")
	industry := fs.String("industry", "", "Industry")
	size := fs.String("size", "", "Company size")
	location := fs.String("location", "", "Location")
	budget := fs.String("budget", "", "Budget range")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	manual := models.FieldSet{Scalars: map[string]string{}}
	setIfPresent(manual.Scalars, models.FieldIndustry, *industry)
	setIfPresent(manual.Scalars, models.FieldCompanySize, *size)
	setIfPresent(manual.Scalars, models.FieldLocation, *location)
	setIfPresent(manual.Scalars, models.FieldBudgetRange, *budget)
	manual.Tags = splitList(*tags)
	manual.Technologies = splitList(*techs)

	var providers []enrich.Provider
	if !manual.Empty() {
		providers = append(providers, enrich.ManualSource{Fields: manual})
	}
	if *website != "" {
		if fetcher == nil {
			return fmt.Errorf("website crawl not configured (set METADATA_API_URL)")
		}
		providers = append(providers, enrich.WebsiteSource{Fetcher: fetcher, Target: *website})
	}
	if len(providers) == 0 {
		return fmt.Errorf("nothing to merge: pass field flags or --website")
	}

	results := enrich.FetchAll(context.Background(), providers)
	merged, audit := enrich.Merge(*client, results)

	if err := db.UpdateClient(database, &merged); err != nil {
		return fmt.Errorf("failed to save merged profile: %w", err)
	}
	if err := db.InsertAudit(database, &audit); err != nil {
		return fmt.Errorf("failed to record source audit: %w", err)
	}

	fmt.Printf("Merged profile for %s\n", merged.Company)
	for _, entry := range audit.Entries {
		if entry.Available {
			fmt.Printf("  %s: %d field(s)\n", entry.Source, entry.FieldCount)
		} else {
			fmt.Printf("  %s: unavailable (%s)\n", entry.Source, entry.FailureReason)
		}
	}
	return nil
}

// ScoreClientCommand computes and prints the fit score breakdown.
func ScoreClientCommand(database *sql.DB, ownerID string, args []string) error {
	fs := flag.NewFlagSet("score-client", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	sentiment := fs.Float64("sentiment", 0, "Latest interaction sentiment in [-1,1]")
	days := fs.Int("days", 0, "Days since last engagement")
	deal := fs.Int64("deal", 0, "Deal size in whole currency units")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}
	if *sentiment < -1 || *sentiment > 1 {
		return fmt.Errorf("--sentiment must be in [-1,1]")
	}

	result := scoring.Score(client, *sentiment, *days, *deal)
	if client.HealthScore == nil {
		health := result.HealthScore
		client.HealthScore = &health
		if err := db.UpdateClient(database, client); err != nil {
			return fmt.Errorf("failed to save health score: %w", err)
		}
	}

	fmt.Printf("Fit score:    %d\n", result.FitScore)
	fmt.Printf("Health score: %d\n", result.HealthScore)
	fmt.Printf("Factors:\n")
	fmt.Printf("  service tags:      %d\n", result.Factors.ServiceTags)
	fmt.Printf("  sentiment:         %d\n", result.Factors.Sentiment)
	fmt.Printf("  recent engagement: %d\n", result.Factors.RecentEngagement)
	fmt.Printf("  health:            %d\n", result.Factors.HealthScore)
	fmt.Printf("  project size:      %d\n", result.Factors.ProjectSize)
	return nil
}

func resolveClient(database *sql.DB, ownerID, rawID string) (*models.ClientProfile, error) {
	if rawID == "" {
		return nil, fmt.Errorf("--id is required")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID: %w", err)
	}
	client, err := db.GetClient(database, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found: %s", rawID)
	}
	return client, nil
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-13s %s\n", label+":", value)
}

func setIfPresent(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
