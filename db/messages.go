// ABOUTME: Conversation message database operations
// ABOUTME: Append-only history with ordered reads and per-client bulk clear
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/models"
)

func InsertMessage(db *sql.DB, msg *models.ConversationMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	var mode interface{}
	if msg.Mode != "" {
		mode = msg.Mode
	}

	_, err := db.Exec(`
		INSERT INTO conversation_messages (id, client_id, owner_id, role, content, mode, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.ID.String(), msg.ClientID.String(), msg.OwnerID, msg.Role, msg.Content, mode, msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessages returns all messages for a (client, owner) pair ordered by
// timestamp ascending. Ordering is by persisted timestamp, not submission
// order, so racing submissions may interleave.
func ListMessages(db *sql.DB, ownerID string, clientID uuid.UUID) ([]models.ConversationMessage, error) {
	rows, err := db.Query(`
		SELECT id, client_id, owner_id, role, content, mode, created_at
		FROM conversation_messages
		WHERE client_id = ? AND owner_id = ?
		ORDER BY created_at ASC, id ASC
	`, clientID.String(), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ConversationMessage
	for rows.Next() {
		var msg models.ConversationMessage
		var mode sql.NullString

		if err := rows.Scan(&msg.ID, &msg.ClientID, &msg.OwnerID, &msg.Role, &msg.Content, &mode, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if mode.Valid {
			msg.Mode = mode.String
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// DeleteMessages removes every message for the (client, owner) pair.
// Deleting an already-empty history is not an error.
func DeleteMessages(db *sql.DB, ownerID string, clientID uuid.UUID) error {
	_, err := db.Exec(`
		DELETE FROM conversation_messages WHERE client_id = ? AND owner_id = ?
	`, clientID.String(), ownerID)
	if err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}
