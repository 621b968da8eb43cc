// ABOUTME: Entry point for the client intelligence MCP server and CLI
// ABOUTME: Routes to the MCP server or CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/jaynip-cloud/personapro/agent"
	"github.com/jaynip-cloud/personapro/cli"
	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/enrich"
	"github.com/jaynip-cloud/personapro/intel"
)

const version = "0.1.0"

func main() {
	// Local overrides for API keys and endpoints; absence is not an error.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/personapro/personapro.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("personapro version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	database, err := db.OpenDatabase(getDatabasePath(*dbPath))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Println("Database initialized successfully")
		os.Exit(0)
	}

	ownerID := getOwnerID()
	gen := intel.NewOpenAIGenerator(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))
	fetcher := getFetcher()
	catalog, err := intel.LoadCatalog(os.Getenv("PERSONAPRO_CATALOG"))
	if err != nil {
		log.Fatalf("Failed to load capability catalog: %v", err)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(database, ownerID, gen, fetcher, catalog); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "add-client":
		run(cli.AddClientCommand(database, ownerID, commandArgs))
	case "list-clients":
		run(cli.ListClientsCommand(database, ownerID, commandArgs))
	case "show-client":
		run(cli.ShowClientCommand(database, ownerID, commandArgs))
	case "merge-client":
		run(cli.MergeClientCommand(database, ownerID, fetcher, commandArgs))
	case "score-client":
		run(cli.ScoreClientCommand(database, ownerID, commandArgs))

	case "refresh-insights":
		run(cli.RefreshInsightsCommand(database, ownerID, intel.NewContract(gen), catalog, commandArgs))
	case "show-insights":
		run(cli.ShowInsightsCommand(database, ownerID, commandArgs))
	case "pitch":
		run(cli.PitchCommand(database, ownerID, intel.NewContract(gen), catalog, commandArgs))
	case "coverage":
		run(cli.CoverageCommand(database, ownerID, commandArgs))

	case "ask":
		run(cli.AskCommand(database, ownerID, agent.New(database, gen), commandArgs))
	case "history":
		run(cli.HistoryCommand(database, ownerID, agent.New(database, gen), commandArgs))
	case "clear-history":
		run(cli.ClearHistoryCommand(database, ownerID, agent.New(database, gen), commandArgs))

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(err error) {
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "personapro", "personapro.db")
}

func getOwnerID() string {
	if owner := os.Getenv("PERSONAPRO_OWNER"); owner != "" {
		return owner
	}
	return "local"
}

func getFetcher() enrich.WebFetcher {
	endpoint := os.Getenv("METADATA_API_URL")
	if endpoint == "" {
		return nil
	}
	return enrich.NewMetadataFetcher(endpoint, os.Getenv("METADATA_API_KEY"))
}

func printUsage() {
	fmt.Printf(`personapro v%s - Client intelligence toolkit

USAGE:
  personapro [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/personapro/personapro.db)
  --init                 Initialize database and exit

ENVIRONMENT:
  OPENAI_API_KEY         API key for insight, pitch, and ask commands
  OPENAI_MODEL           Override the generation model
  METADATA_API_URL       Page-metadata service for website enrichment
  METADATA_API_KEY       Credential for the metadata service
  PERSONAPRO_OWNER       Owner ID scoping all data (default: local)
  PERSONAPRO_CATALOG     Path to a JSON capability catalog

COMMANDS:
  mcp                    Start MCP server (for Claude Desktop integration)

  add-client             Add a new client profile
    --company <name>       Company name (required)
    --industry <industry>  Industry
    --location <location>  Primary location
    --contact <name>       Main contact person
    --role <role>          Contact's role
    --email <email>        Contact email
    --phone <phone>        Contact phone
    --overview <text>      Free-form overview

  list-clients           List client profiles
    --query <text>         Search by company or contact name
    --limit <n>            Max results (default: 50)

  show-client            Print one full client profile
    --id <client-id>       Client ID (required)

  merge-client           Enrich a profile from manual flags and website crawl
    --id <client-id>       Client ID (required)
    --website <url>        Company website to crawl
    --tags <a,b>           Comma-separated service tags
    --technologies <a,b>   Comma-separated technologies
    --industry <industry>  Industry
    --size <size>          Company size
    --location <location>  Location
    --budget <range>       Budget range

  score-client           Compute the client fit score
    --id <client-id>       Client ID (required)
    --sentiment <-1..1>    Latest interaction sentiment
    --days <n>             Days since last engagement
    --deal <amount>        Deal size in whole currency units

  refresh-insights       Regenerate the insight document
    --id <client-id>       Client ID (required)
    --tone <tone>          formal or casual
    --schema <schema>      legacy or current
    --context <text>       Free-form opportunity context

  show-insights          Print the stored insight document
    --id <client-id>       Client ID (required)

  pitch                  Generate a pitch document
    --id <client-id>       Client ID (required)
    --tone <tone>          formal or casual
    --length <length>      short or long
    --context <text>       Free-form opportunity context

  coverage               Report data coverage gaps
    --id <client-id>       Client ID (required)
    --contacts <n>         Known contacts
    --meetings <n>         Recorded meetings
    --projects <n>         Tracked projects
    --documents <n>        Shared documents

  ask                    Ask a question about a client
    --id <client-id>       Client ID (required)
    --mode <mode>          quick or deep
    <question>             The question text

  history                Print the conversation thread
    --id <client-id>       Client ID (required)

  clear-history          Delete the conversation thread
    --id <client-id>       Client ID (required)
    --confirm              Confirm deletion
`, version)
}
