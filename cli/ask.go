// ABOUTME: Conversational agent CLI commands
// ABOUTME: Ask questions about a client and manage the conversation thread
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	"github.com/jaynip-cloud/personapro/agent"
	"github.com/jaynip-cloud/personapro/models"
)

// AskCommand asks the agent a question about a client.
func AskCommand(database *sql.DB, ownerID string, ag *agent.Agent, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	mode := fs.String("mode", "", "Response depth: quick or deep")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: ask --id <client-id> [--mode quick|deep] <question>")
	}
	question := fs.Arg(0)
	for i := 1; i < fs.NArg(); i++ {
		question += " " + fs.Arg(i)
	}

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	reply, err := ag.Ask(context.Background(), client, question, *mode)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}
	fmt.Println(reply.Content)
	return nil
}

// HistoryCommand prints the conversation thread for a client.
func HistoryCommand(database *sql.DB, ownerID string, ag *agent.Agent, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	_ = fs.Parse(args)

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}

	messages, err := ag.LoadHistory(ownerID, client.ID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(messages) == 0 {
		fmt.Println("No conversation yet")
		return nil
	}

	for _, msg := range messages {
		label := "You"
		if msg.Role == models.RoleAssistant {
			label = "Agent"
		}
		fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("2006-01-02 15:04"), label, msg.Content)
	}
	return nil
}

// ClearHistoryCommand deletes the conversation thread for a client.
func ClearHistoryCommand(database *sql.DB, ownerID string, ag *agent.Agent, args []string) error {
	fs := flag.NewFlagSet("clear-history", flag.ExitOnError)
	id := fs.String("id", "", "Client ID (required)")
	confirm := fs.Bool("confirm", false, "Confirm deletion")
	_ = fs.Parse(args)

	if !*confirm {
		return fmt.Errorf("pass --confirm to delete the conversation history")
	}

	client, err := resolveClient(database, ownerID, *id)
	if err != nil {
		return err
	}
	if err := ag.ClearHistory(ownerID, client.ID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("Conversation cleared")
	return nil
}
