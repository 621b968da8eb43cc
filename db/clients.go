// ABOUTME: Client profile database operations
// ABOUTME: Handles CRUD for canonical client profiles, scoped by owner
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/models"
)

func CreateClient(db *sql.DB, client *models.ClientProfile) error {
	client.ID = uuid.New()
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	socials, techs, tags, err := marshalLists(client)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO clients (
			id, owner_id, company, industry, company_size, location, founded_year,
			contact_name, contact_role, email, alt_email, phone, alt_phone,
			short_term_goals, long_term_goals, expectations, budget_range, overview,
			social_links, technologies, tags, health_score, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, client.ID.String(), client.OwnerID, client.Company, client.Industry, client.CompanySize,
		client.Location, client.FoundedYear, client.ContactName, client.ContactRole,
		client.Email, client.AltEmail, client.Phone, client.AltPhone,
		client.ShortTermGoals, client.LongTermGoals, client.Expectations, client.BudgetRange,
		client.Overview, socials, techs, tags, client.HealthScore, client.CreatedAt, client.UpdatedAt)

	return err
}

func GetClient(db *sql.DB, ownerID string, id uuid.UUID) (*models.ClientProfile, error) {
	row := db.QueryRow(`
		SELECT id, owner_id, company, industry, company_size, location, founded_year,
			contact_name, contact_role, email, alt_email, phone, alt_phone,
			short_term_goals, long_term_goals, expectations, budget_range, overview,
			social_links, technologies, tags, health_score, created_at, updated_at
		FROM clients WHERE id = ? AND owner_id = ?
	`, id.String(), ownerID)

	client, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func FindClients(db *sql.DB, ownerID, query string, limit int) ([]models.ClientProfile, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		rows, err = db.Query(`
			SELECT id, owner_id, company, industry, company_size, location, founded_year,
				contact_name, contact_role, email, alt_email, phone, alt_phone,
				short_term_goals, long_term_goals, expectations, budget_range, overview,
				social_links, technologies, tags, health_score, created_at, updated_at
			FROM clients
			WHERE owner_id = ? AND (LOWER(company) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?)
			ORDER BY created_at ASC
			LIMIT ?
		`, ownerID, pattern, pattern, pattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, owner_id, company, industry, company_size, location, founded_year,
				contact_name, contact_role, email, alt_email, phone, alt_phone,
				short_term_goals, long_term_goals, expectations, budget_range, overview,
				social_links, technologies, tags, health_score, created_at, updated_at
			FROM clients
			WHERE owner_id = ?
			ORDER BY created_at ASC
			LIMIT ?
		`, ownerID, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.ClientProfile
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}

	return clients, rows.Err()
}

func UpdateClient(db *sql.DB, client *models.ClientProfile) error {
	client.UpdatedAt = time.Now()

	socials, techs, tags, err := marshalLists(client)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		UPDATE clients
		SET company = ?, industry = ?, company_size = ?, location = ?, founded_year = ?,
			contact_name = ?, contact_role = ?, email = ?, alt_email = ?, phone = ?, alt_phone = ?,
			short_term_goals = ?, long_term_goals = ?, expectations = ?, budget_range = ?, overview = ?,
			social_links = ?, technologies = ?, tags = ?, health_score = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?
	`, client.Company, client.Industry, client.CompanySize, client.Location, client.FoundedYear,
		client.ContactName, client.ContactRole, client.Email, client.AltEmail, client.Phone, client.AltPhone,
		client.ShortTermGoals, client.LongTermGoals, client.Expectations, client.BudgetRange, client.Overview,
		socials, techs, tags, client.HealthScore, client.UpdatedAt, client.ID.String(), client.OwnerID)

	return err
}

func DeleteClient(db *sql.DB, ownerID string, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	for _, stmt := range []string{
		`DELETE FROM conversation_messages WHERE client_id = ? AND owner_id = ?`,
		`DELETE FROM insight_documents WHERE client_id = ? AND owner_id = ?`,
		`DELETE FROM pitch_documents WHERE client_id = ? AND owner_id = ?`,
		`DELETE FROM source_audits WHERE client_id = ? AND owner_id = ?`,
		`DELETE FROM clients WHERE id = ? AND owner_id = ?`,
	} {
		if _, err := tx.Exec(stmt, id.String(), ownerID); err != nil {
			return fmt.Errorf("failed to delete client data: %w", err)
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*models.ClientProfile, error) {
	client := &models.ClientProfile{}
	var socials, techs, tags sql.NullString
	var health sql.NullInt64

	err := row.Scan(
		&client.ID, &client.OwnerID, &client.Company, &client.Industry, &client.CompanySize,
		&client.Location, &client.FoundedYear, &client.ContactName, &client.ContactRole,
		&client.Email, &client.AltEmail, &client.Phone, &client.AltPhone,
		&client.ShortTermGoals, &client.LongTermGoals, &client.Expectations, &client.BudgetRange,
		&client.Overview, &socials, &techs, &tags, &health, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalList(socials, &client.SocialLinks); err != nil {
		return nil, err
	}
	if err := unmarshalList(techs, &client.Technologies); err != nil {
		return nil, err
	}
	if err := unmarshalList(tags, &client.Tags); err != nil {
		return nil, err
	}
	if health.Valid {
		h := int(health.Int64)
		client.HealthScore = &h
	}

	return client, nil
}

func marshalLists(client *models.ClientProfile) (string, string, string, error) {
	socials, err := json.Marshal(client.SocialLinks)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal social links: %w", err)
	}
	techs, err := json.Marshal(client.Technologies)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal technologies: %w", err)
	}
	tags, err := json.Marshal(client.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(socials), string(techs), string(tags), nil
}

func unmarshalList(col sql.NullString, dst *[]string) error {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), dst)
}
