// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the intelligence pipeline as MCP tools over stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/jaynip-cloud/personapro/agent"
	"github.com/jaynip-cloud/personapro/enrich"
	"github.com/jaynip-cloud/personapro/handlers"
	"github.com/jaynip-cloud/personapro/intel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(db *sql.DB, ownerID string, gen intel.TextGenerator, fetcher enrich.WebFetcher, catalog intel.CapabilityCatalog) error {
	log.Println("Starting client intelligence MCP server...")

	clientHandlers := handlers.NewClientHandlers(db, ownerID)
	enrichHandlers := handlers.NewEnrichHandlers(db, ownerID, fetcher, nil)
	scoreHandlers := handlers.NewScoreHandlers(db, ownerID)
	insightHandlers := handlers.NewInsightHandlers(db, ownerID, intel.NewContract(gen), catalog)
	conversationHandlers := handlers.NewConversationHandlers(db, ownerID, agent.New(db, gen))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "personapro",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_client",
		Description: "Add a new client profile",
	}, clientHandlers.AddClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_clients",
		Description: "Search client profiles by company or contact name",
	}, clientHandlers.FindClients)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_client",
		Description: "Fetch one client profile by ID",
	}, clientHandlers.GetClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_client",
		Description: "Delete a client and all derived documents (requires confirm)",
	}, clientHandlers.DeleteClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_profile",
		Description: "Enrich a client profile from manual fields, website crawl, and configured providers",
	}, enrichHandlers.MergeProfile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "score_client",
		Description: "Compute the client fit score with its factor breakdown",
	}, scoreHandlers.ScoreClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_insights",
		Description: "Regenerate the structured insight document for a client",
	}, insightHandlers.RefreshInsights)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_insights",
		Description: "Fetch the stored insight document for a client",
	}, insightHandlers.GetInsights)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_pitch",
		Description: "Generate a structured pitch document for a client",
	}, insightHandlers.GeneratePitch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "data_coverage",
		Description: "Report data coverage gaps and the source evidence behind insights",
	}, insightHandlers.DataCoverage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_client",
		Description: "Ask a question about a client in the context of their profile",
	}, conversationHandlers.AskClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "conversation_history",
		Description: "Fetch the conversation thread for a client",
	}, conversationHandlers.ConversationHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_conversation",
		Description: "Delete the conversation thread for a client (requires confirm)",
	}, conversationHandlers.ClearConversation)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
