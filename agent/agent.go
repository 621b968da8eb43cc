// ABOUTME: Mode-scoped conversational query agent
// ABOUTME: Persists the question before generation so a crash never loses it
package agent

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/intel"
	"github.com/jaynip-cloud/personapro/models"
)

// Agent answers ad hoc questions about one client. Each exchange is durably
// logged per (client, owner); history is append-only except for ClearHistory.
type Agent struct {
	database *sql.DB
	gen      intel.TextGenerator
}

func New(database *sql.DB, gen intel.TextGenerator) *Agent {
	return &Agent{database: database, gen: gen}
}

// Ask submits a question in the given mode and returns the assistant reply.
// The user message is persisted before the generation call begins; a
// generation failure therefore leaves the question visible with no reply
// rather than rolling it back.
func (a *Agent) Ask(ctx context.Context, client *models.ClientProfile, question, mode string) (*models.ConversationMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}
	if mode == "" {
		mode = models.ModeQuick
	}
	if mode != models.ModeQuick && mode != models.ModeDeep {
		return nil, fmt.Errorf("invalid mode: %s (valid: quick, deep)", mode)
	}

	userMsg := &models.ConversationMessage{
		ClientID:  client.ID,
		OwnerID:   client.OwnerID,
		Role:      models.RoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	}
	if err := db.InsertMessage(a.database, userMsg); err != nil {
		return nil, fmt.Errorf("failed to persist question: %w", err)
	}

	answer, err := a.gen.Generate(ctx, buildQueryPrompt(client, question, mode), intel.HintText)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	reply := &models.ConversationMessage{
		ClientID:  client.ID,
		OwnerID:   client.OwnerID,
		Role:      models.RoleAssistant,
		Content:   answer,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
	if err := db.InsertMessage(a.database, reply); err != nil {
		return nil, fmt.Errorf("failed to persist answer: %w", err)
	}

	return reply, nil
}

// LoadHistory returns the conversation ordered by timestamp ascending.
// The read is idempotent and safe to restart.
func (a *Agent) LoadHistory(ownerID string, clientID uuid.UUID) ([]models.ConversationMessage, error) {
	return db.ListMessages(a.database, ownerID, clientID)
}

// ClearHistory irreversibly deletes all messages for the (client, owner)
// pair. Callers are expected to confirm before invoking; clearing an empty
// history succeeds.
func (a *Agent) ClearHistory(ownerID string, clientID uuid.UUID) error {
	return db.DeleteMessages(a.database, ownerID, clientID)
}

func buildQueryPrompt(client *models.ClientProfile, question, mode string) string {
	var b strings.Builder
	b.WriteString("Answer a question about the client described below.\n\n")
	b.WriteString(intel.ClientLayer(client))
	b.WriteString("\n")

	// Mode is advisory: it shapes the requested depth, nothing else.
	if mode == models.ModeDeep {
		b.WriteString("Reason carefully and answer in depth, citing which profile fields support each point.\n\n")
	} else {
		b.WriteString("Answer concisely in a few sentences.\n\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
