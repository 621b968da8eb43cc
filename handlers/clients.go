// ABOUTME: Client profile MCP tool handlers
// ABOUTME: Implements add_client, find_clients, get_client, and delete_client tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaynip-cloud/personapro/db"
	"github.com/jaynip-cloud/personapro/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ClientHandlers struct {
	db      *sql.DB
	ownerID string
}

func NewClientHandlers(database *sql.DB, ownerID string) *ClientHandlers {
	return &ClientHandlers{db: database, ownerID: ownerID}
}

type AddClientInput struct {
	Company     string `json:"company" jsonschema:"Company name (required)"`
	Industry    string `json:"industry,omitempty" jsonschema:"Industry the company operates in"`
	Location    string `json:"location,omitempty" jsonschema:"Primary location"`
	ContactName string `json:"contact_name,omitempty" jsonschema:"Main contact person"`
	ContactRole string `json:"contact_role,omitempty" jsonschema:"Main contact's role"`
	Email       string `json:"email,omitempty" jsonschema:"Contact email address"`
	Phone       string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Overview    string `json:"overview,omitempty" jsonschema:"Free-form overview of the client"`
}

type ClientOutput struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	Industry     string   `json:"industry,omitempty"`
	CompanySize  string   `json:"company_size,omitempty"`
	Location     string   `json:"location,omitempty"`
	FoundedYear  string   `json:"founded_year,omitempty"`
	ContactName  string   `json:"contact_name,omitempty"`
	ContactRole  string   `json:"contact_role,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Goals        string   `json:"goals,omitempty"`
	BudgetRange  string   `json:"budget_range,omitempty"`
	Overview     string   `json:"overview,omitempty"`
	SocialLinks  []string `json:"social_links,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	HealthScore  *int     `json:"health_score,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func clientToOutput(client *models.ClientProfile) ClientOutput {
	goals := client.ShortTermGoals
	if client.LongTermGoals != "" {
		if goals != "" {
			goals += "; "
		}
		goals += client.LongTermGoals
	}
	return ClientOutput{
		ID:           client.ID.String(),
		Company:      client.Company,
		Industry:     client.Industry,
		CompanySize:  client.CompanySize,
		Location:     client.Location,
		FoundedYear:  client.FoundedYear,
		ContactName:  client.ContactName,
		ContactRole:  client.ContactRole,
		Email:        client.Email,
		Phone:        client.Phone,
		Goals:        goals,
		BudgetRange:  client.BudgetRange,
		Overview:     client.Overview,
		SocialLinks:  client.SocialLinks,
		Technologies: client.Technologies,
		Tags:         client.Tags,
		HealthScore:  client.HealthScore,
		CreatedAt:    client.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    client.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ClientHandlers) AddClient(_ context.Context, request *mcp.CallToolRequest, input AddClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	if input.Company == "" {
		return nil, ClientOutput{}, fmt.Errorf("company is required")
	}

	client := &models.ClientProfile{
		OwnerID:     h.ownerID,
		Company:     input.Company,
		Industry:    input.Industry,
		Location:    input.Location,
		ContactName: input.ContactName,
		ContactRole: input.ContactRole,
		Email:       input.Email,
		Phone:       input.Phone,
		Overview:    input.Overview,
	}
	if err := db.CreateClient(h.db, client); err != nil {
		return nil, ClientOutput{}, fmt.Errorf("failed to create client: %w", err)
	}

	return nil, clientToOutput(client), nil
}

type FindClientsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (matches company and contact name)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindClientsOutput struct {
	Clients []ClientOutput `json:"clients"`
}

func (h *ClientHandlers) FindClients(_ context.Context, request *mcp.CallToolRequest, input FindClientsInput) (*mcp.CallToolResult, FindClientsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	clients, err := db.FindClients(h.db, h.ownerID, input.Query, limit)
	if err != nil {
		return nil, FindClientsOutput{}, fmt.Errorf("failed to find clients: %w", err)
	}

	result := make([]ClientOutput, len(clients))
	for i := range clients {
		result[i] = clientToOutput(&clients[i])
	}
	return nil, FindClientsOutput{Clients: result}, nil
}

type GetClientInput struct {
	ClientID string `json:"client_id" jsonschema:"Client ID (required)"`
}

func (h *ClientHandlers) GetClient(_ context.Context, request *mcp.CallToolRequest, input GetClientInput) (*mcp.CallToolResult, ClientOutput, error) {
	client, err := h.lookupClient(input.ClientID)
	if err != nil {
		return nil, ClientOutput{}, err
	}
	return nil, clientToOutput(client), nil
}

type DeleteClientInput struct {
	ClientID string `json:"client_id" jsonschema:"Client ID (required)"`
	Confirm  bool   `json:"confirm" jsonschema:"Must be true to delete the client and all derived data"`
}

type DeleteClientOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *ClientHandlers) DeleteClient(_ context.Context, request *mcp.CallToolRequest, input DeleteClientInput) (*mcp.CallToolResult, DeleteClientOutput, error) {
	if !input.Confirm {
		return nil, DeleteClientOutput{}, fmt.Errorf("confirm must be true to delete a client")
	}
	client, err := h.lookupClient(input.ClientID)
	if err != nil {
		return nil, DeleteClientOutput{}, err
	}
	if err := db.DeleteClient(h.db, h.ownerID, client.ID); err != nil {
		return nil, DeleteClientOutput{}, fmt.Errorf("failed to delete client: %w", err)
	}
	return nil, DeleteClientOutput{Deleted: true}, nil
}

func (h *ClientHandlers) lookupClient(rawID string) (*models.ClientProfile, error) {
	return lookupClient(h.db, h.ownerID, rawID)
}

// lookupClient resolves a raw tool-input ID to an owned client profile.
func lookupClient(database *sql.DB, ownerID, rawID string) (*models.ClientProfile, error) {
	if rawID == "" {
		return nil, fmt.Errorf("client_id is required")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}
	client, err := db.GetClient(database, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found: %s", rawID)
	}
	return client, nil
}
