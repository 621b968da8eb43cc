// ABOUTME: Source audit database operations
// ABOUTME: Insert-only log of per-run data source availability
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/models"
)

func InsertAudit(db *sql.DB, audit *models.SourceAudit) error {
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if audit.RunAt.IsZero() {
		audit.RunAt = time.Now()
	}

	entries, err := json.Marshal(audit.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entries: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO source_audits (id, client_id, owner_id, entries, run_at)
		VALUES (?, ?, ?, ?, ?)
	`, audit.ID.String(), audit.ClientID.String(), audit.OwnerID, string(entries), audit.RunAt)

	if err != nil {
		return fmt.Errorf("failed to insert audit: %w", err)
	}
	return nil
}

// GetLatestAudit returns the most recent audit for a client, or nil when the
// client has never been through a merge run.
func GetLatestAudit(db *sql.DB, ownerID string, clientID uuid.UUID) (*models.SourceAudit, error) {
	audit := &models.SourceAudit{ClientID: clientID, OwnerID: ownerID}
	var entries string

	err := db.QueryRow(`
		SELECT id, entries, run_at
		FROM source_audits WHERE client_id = ? AND owner_id = ?
		ORDER BY run_at DESC LIMIT 1
	`, clientID.String(), ownerID).Scan(&audit.ID, &entries, &audit.RunAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(entries), &audit.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit entries: %w", err)
	}

	return audit, nil
}
