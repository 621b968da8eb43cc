// ABOUTME: Insight and pitch document database operations
// ABOUTME: Replace-wholesale writes keyed by (client, owner), never partial patches
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/models"
)

// SaveInsight replaces the client's insight document wholesale. The previous
// document is untouched if marshalling fails before the write.
func SaveInsight(db *sql.DB, doc *models.InsightDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	var body []byte
	var err error
	switch doc.Shape() {
	case models.ShapeCurrent:
		body, err = json.Marshal(doc.Current)
	default:
		body, err = json.Marshal(doc.Legacy)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal insight document: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO insight_documents (client_id, owner_id, id, shape, body, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(client_id, owner_id) DO UPDATE SET
			id = excluded.id, shape = excluded.shape, body = excluded.body, generated_at = excluded.generated_at
	`, doc.ClientID.String(), doc.OwnerID, doc.ID.String(), doc.Shape(), string(body), doc.GeneratedAt)

	if err != nil {
		return fmt.Errorf("failed to save insight document: %w", err)
	}
	return nil
}

func GetInsight(db *sql.DB, ownerID string, clientID uuid.UUID) (*models.InsightDocument, error) {
	doc := &models.InsightDocument{}
	var shape, body string

	err := db.QueryRow(`
		SELECT id, shape, body, generated_at
		FROM insight_documents WHERE client_id = ? AND owner_id = ?
	`, clientID.String(), ownerID).Scan(&doc.ID, &shape, &body, &doc.GeneratedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doc.ClientID = clientID
	doc.OwnerID = ownerID

	switch shape {
	case models.ShapeCurrent:
		doc.Current = &models.CurrentInsight{}
		err = json.Unmarshal([]byte(body), doc.Current)
	default:
		doc.Legacy = &models.LegacyInsight{}
		err = json.Unmarshal([]byte(body), doc.Legacy)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal insight document: %w", err)
	}

	return doc, nil
}

// SavePitch replaces the client's pitch document wholesale.
func SavePitch(db *sql.DB, doc *models.PitchDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal pitch document: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO pitch_documents (client_id, owner_id, id, body, generated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(client_id, owner_id) DO UPDATE SET
			id = excluded.id, body = excluded.body, generated_at = excluded.generated_at
	`, doc.ClientID.String(), doc.OwnerID, doc.ID.String(), string(body), doc.GeneratedAt)

	if err != nil {
		return fmt.Errorf("failed to save pitch document: %w", err)
	}
	return nil
}

func GetPitch(db *sql.DB, ownerID string, clientID uuid.UUID) (*models.PitchDocument, error) {
	var body string
	err := db.QueryRow(`
		SELECT body FROM pitch_documents WHERE client_id = ? AND owner_id = ?
	`, clientID.String(), ownerID).Scan(&body)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	doc := &models.PitchDocument{}
	if err := json.Unmarshal([]byte(body), doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pitch document: %w", err)
	}

	return doc, nil
}
