// ABOUTME: Conversational agent MCP tool handlers
// ABOUTME: Implements ask_client, conversation_history, and clear_conversation tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaynip-cloud/personapro/agent"
	"github.com/jaynip-cloud/personapro/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ConversationHandlers struct {
	db      *sql.DB
	ownerID string
	agent   *agent.Agent
}

func NewConversationHandlers(database *sql.DB, ownerID string, agent *agent.Agent) *ConversationHandlers {
	return &ConversationHandlers{db: database, ownerID: ownerID, agent: agent}
}

type AskClientInput struct {
	ClientID string `json:"client_id" jsonschema:"Client ID (required)"`
	Question string `json:"question" jsonschema:"Question about the client (required)"`
	Mode     string `json:"mode,omitempty" jsonschema:"Response depth: quick or deep (default quick)"`
}

type MessageOutput struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Mode      string `json:"mode,omitempty"`
	CreatedAt string `json:"created_at"`
}

func messageToOutput(msg *models.ConversationMessage) MessageOutput {
	return MessageOutput{
		ID:        msg.ID.String(),
		Role:      msg.Role,
		Content:   msg.Content,
		Mode:      msg.Mode,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ConversationHandlers) AskClient(ctx context.Context, request *mcp.CallToolRequest, input AskClientInput) (*mcp.CallToolResult, MessageOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, MessageOutput{}, err
	}

	reply, err := h.agent.Ask(ctx, client, input.Question, input.Mode)
	if err != nil {
		return nil, MessageOutput{}, fmt.Errorf("ask failed: %w", err)
	}
	return nil, messageToOutput(reply), nil
}

type ConversationHistoryInput struct {
	ClientID string `json:"client_id" jsonschema:"Client ID (required)"`
}

type ConversationHistoryOutput struct {
	Messages []MessageOutput `json:"messages"`
}

func (h *ConversationHandlers) ConversationHistory(_ context.Context, request *mcp.CallToolRequest, input ConversationHistoryInput) (*mcp.CallToolResult, ConversationHistoryOutput, error) {
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, ConversationHistoryOutput{}, err
	}

	messages, err := h.agent.LoadHistory(h.ownerID, client.ID)
	if err != nil {
		return nil, ConversationHistoryOutput{}, fmt.Errorf("failed to load history: %w", err)
	}

	result := make([]MessageOutput, len(messages))
	for i := range messages {
		result[i] = messageToOutput(&messages[i])
	}
	return nil, ConversationHistoryOutput{Messages: result}, nil
}

type ClearConversationInput struct {
	ClientID string `json:"client_id" jsonschema:"Client ID (required)"`
	Confirm  bool   `json:"confirm" jsonschema:"Must be true to delete the conversation history"`
}

type ClearConversationOutput struct {
	Cleared bool `json:"cleared"`
}

func (h *ConversationHandlers) ClearConversation(_ context.Context, request *mcp.CallToolRequest, input ClearConversationInput) (*mcp.CallToolResult, ClearConversationOutput, error) {
	if !input.Confirm {
		return nil, ClearConversationOutput{}, fmt.Errorf("confirm must be true to clear a conversation")
	}
	client, err := lookupClient(h.db, h.ownerID, input.ClientID)
	if err != nil {
		return nil, ClearConversationOutput{}, err
	}
	if err := h.agent.ClearHistory(h.ownerID, client.ID); err != nil {
		return nil, ClearConversationOutput{}, fmt.Errorf("failed to clear history: %w", err)
	}
	return nil, ClearConversationOutput{Cleared: true}, nil
}
