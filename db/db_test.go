// ABOUTME: Tests for database open, schema, and repository operations
// ABOUTME: Uses temp-dir SQLite files, one per test
package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jaynip-cloud/personapro/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	database, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer database.Close()

	// Verify database file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Verify schema was initialized
	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count < 5 {
		t.Errorf("Expected at least 5 tables, got %d", count)
	}

	// Verify WAL mode
	var mode string
	err = database.QueryRow("PRAGMA journal_mode").Scan(&mode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	dbPath := "/invalid/nonexistent/path/that/cannot/be/created/test.db"

	_, err := OpenDatabase(dbPath)
	if err == nil {
		t.Errorf("Expected error for invalid path, but OpenDatabase succeeded")
	}
}

func TestClientRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	health := 82
	client := &models.ClientProfile{
		OwnerID:      "user-1",
		Company:      "Acme Robotics",
		Industry:     "Manufacturing",
		Email:        "ops@acme.example",
		Tags:         []string{"Automation", "Robotics"},
		Technologies: []string{"Go", "PLC"},
		SocialLinks:  []string{"https://linkedin.com/company/acme"},
		HealthScore:  &health,
	}
	if err := CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	got, err := GetClient(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if got == nil {
		t.Fatal("client not found after create")
	}
	if got.Company != "Acme Robotics" || got.Industry != "Manufacturing" {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "Automation" {
		t.Errorf("tags did not round-trip: %v", got.Tags)
	}
	if got.HealthScore == nil || *got.HealthScore != 82 {
		t.Errorf("health score did not round-trip: %v", got.HealthScore)
	}

	// Owner scoping: another owner never sees the row.
	other, err := GetClient(database, "user-2", client.ID)
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if other != nil {
		t.Error("client leaked across owner boundary")
	}
}

func TestUpdateClient(t *testing.T) {
	database := setupTestDB(t)

	client := &models.ClientProfile{OwnerID: "user-1", Company: "Initech"}
	if err := CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	client.Industry = "Fintech"
	client.Tags = []string{"saas"}
	if err := UpdateClient(database, client); err != nil {
		t.Fatalf("UpdateClient failed: %v", err)
	}

	got, err := GetClient(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("GetClient failed: %v", err)
	}
	if got.Industry != "Fintech" || len(got.Tags) != 1 {
		t.Errorf("update did not persist: %+v", got)
	}
}

func TestMessageOrderingAndClear(t *testing.T) {
	database := setupTestDB(t)

	client := &models.ClientProfile{OwnerID: "user-1", Company: "Initech"}
	if err := CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	base := time.Now().Add(-time.Minute)
	for i, content := range []string{"q1", "a1", "q2"} {
		role := models.RoleUser
		mode := ""
		if i == 1 {
			role = models.RoleAssistant
			mode = models.ModeQuick
		}
		msg := &models.ConversationMessage{
			ClientID:  client.ID,
			OwnerID:   "user-1",
			Role:      role,
			Content:   content,
			Mode:      mode,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := InsertMessage(database, msg); err != nil {
			t.Fatalf("InsertMessage failed: %v", err)
		}
	}

	messages, err := ListMessages(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].CreatedAt.Before(messages[i-1].CreatedAt) {
			t.Error("messages not ordered by timestamp ascending")
		}
	}
	if messages[1].Mode != models.ModeQuick {
		t.Errorf("assistant mode not persisted: %q", messages[1].Mode)
	}

	// Clear twice; second clear must also succeed on empty history.
	if err := DeleteMessages(database, "user-1", client.ID); err != nil {
		t.Fatalf("DeleteMessages failed: %v", err)
	}
	if err := DeleteMessages(database, "user-1", client.ID); err != nil {
		t.Fatalf("second DeleteMessages failed: %v", err)
	}
	messages, err = ListMessages(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(messages))
	}
}

func TestInsightReplaceWholesale(t *testing.T) {
	database := setupTestDB(t)

	client := &models.ClientProfile{OwnerID: "user-1", Company: "Initech"}
	if err := CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	legacy := &models.InsightDocument{
		ClientID:    client.ID,
		OwnerID:     "user-1",
		GeneratedAt: time.Now(),
		Legacy:      &models.LegacyInsight{BehavioralAnalysis: "responds quickly"},
	}
	if err := SaveInsight(database, legacy); err != nil {
		t.Fatalf("SaveInsight failed: %v", err)
	}

	current := &models.InsightDocument{
		ClientID:    client.ID,
		OwnerID:     "user-1",
		GeneratedAt: time.Now(),
		Current: &models.CurrentInsight{ExecutiveSummary: models.ExecutiveSummary{
			Sections: models.InsightSections{CompanyProfile: "mid-market"},
		}},
	}
	if err := SaveInsight(database, current); err != nil {
		t.Fatalf("SaveInsight replace failed: %v", err)
	}

	got, err := GetInsight(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("GetInsight failed: %v", err)
	}
	if got.Shape() != models.ShapeCurrent {
		t.Errorf("expected replacement with current shape, got %s", got.Shape())
	}
	if got.Legacy != nil {
		t.Error("replaced document still carries legacy body")
	}
	if got.Current.ExecutiveSummary.Sections.CompanyProfile != "mid-market" {
		t.Error("current body did not round-trip")
	}
}

func TestPitchRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	client := &models.ClientProfile{OwnerID: "user-1", Company: "Initech"}
	if err := CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	pitch := &models.PitchDocument{
		ClientID:         client.ID,
		OwnerID:          "user-1",
		GeneratedAt:      time.Now(),
		Title:            "Modernize the stack",
		OpeningHook:      "hook",
		ProblemFraming:   "problem",
		ProposedSolution: "solution",
		ValueOutcomes:    []string{"a", "b", "c"},
		Credibility:      "we did it before",
		CallToAction:     "call us",
	}
	if err := SavePitch(database, pitch); err != nil {
		t.Fatalf("SavePitch failed: %v", err)
	}

	got, err := GetPitch(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("GetPitch failed: %v", err)
	}
	if got.Title != pitch.Title || len(got.ValueOutcomes) != 3 {
		t.Errorf("pitch did not round-trip: %+v", got)
	}
}

func TestAuditInsertAndLatest(t *testing.T) {
	database := setupTestDB(t)

	client := &models.ClientProfile{OwnerID: "user-1", Company: "Initech"}
	if err := CreateClient(database, client); err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}

	older := &models.SourceAudit{
		ClientID: client.ID,
		OwnerID:  "user-1",
		RunAt:    time.Now().Add(-time.Hour),
		Entries:  []models.SourceAuditEntry{{Source: "website", FieldCount: 2, Available: true}},
	}
	newer := &models.SourceAudit{
		ClientID: client.ID,
		OwnerID:  "user-1",
		RunAt:    time.Now(),
		Entries: []models.SourceAuditEntry{
			{Source: "website", FieldCount: 5, Available: true},
			{Source: "provider", Available: false, FailureReason: models.FailureTransportError},
		},
	}
	if err := InsertAudit(database, older); err != nil {
		t.Fatalf("InsertAudit failed: %v", err)
	}
	if err := InsertAudit(database, newer); err != nil {
		t.Fatalf("InsertAudit failed: %v", err)
	}

	got, err := GetLatestAudit(database, "user-1", client.ID)
	if err != nil {
		t.Fatalf("GetLatestAudit failed: %v", err)
	}
	if got == nil || len(got.Entries) != 2 {
		t.Fatalf("expected latest audit with 2 entries, got %+v", got)
	}
	if got.Entries[0].FieldCount != 5 {
		t.Error("latest audit is not the newest run")
	}
}
