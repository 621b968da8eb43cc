// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	company TEXT NOT NULL,
	industry TEXT,
	company_size TEXT,
	location TEXT,
	founded_year TEXT,
	contact_name TEXT,
	contact_role TEXT,
	email TEXT,
	alt_email TEXT,
	phone TEXT,
	alt_phone TEXT,
	short_term_goals TEXT,
	long_term_goals TEXT,
	expectations TEXT,
	budget_range TEXT,
	overview TEXT,
	social_links TEXT,
	technologies TEXT,
	tags TEXT,
	health_score INTEGER,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id);
CREATE INDEX IF NOT EXISTS idx_clients_company ON clients(company);

CREATE TABLE IF NOT EXISTS conversation_messages (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('user', 'assistant')),
	content TEXT NOT NULL,
	mode TEXT CHECK(mode IN ('quick', 'deep')),
	created_at DATETIME NOT NULL,
	FOREIGN KEY (client_id) REFERENCES clients(id)
);

CREATE INDEX IF NOT EXISTS idx_messages_client_owner ON conversation_messages(client_id, owner_id);
CREATE INDEX IF NOT EXISTS idx_messages_created ON conversation_messages(created_at);

CREATE TABLE IF NOT EXISTS insight_documents (
	client_id TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	id TEXT NOT NULL,
	shape TEXT NOT NULL CHECK(shape IN ('legacy', 'current')),
	body TEXT NOT NULL,
	generated_at DATETIME NOT NULL,
	PRIMARY KEY (client_id, owner_id),
	FOREIGN KEY (client_id) REFERENCES clients(id)
);

CREATE TABLE IF NOT EXISTS pitch_documents (
	client_id TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	id TEXT NOT NULL,
	body TEXT NOT NULL,
	generated_at DATETIME NOT NULL,
	PRIMARY KEY (client_id, owner_id),
	FOREIGN KEY (client_id) REFERENCES clients(id)
);

CREATE TABLE IF NOT EXISTS source_audits (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	entries TEXT NOT NULL,
	run_at DATETIME NOT NULL,
	FOREIGN KEY (client_id) REFERENCES clients(id)
);

CREATE INDEX IF NOT EXISTS idx_audits_client ON source_audits(client_id, run_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
