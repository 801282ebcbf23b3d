package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"nexus/internal/platform/models"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if client.Status == "" {
		client.Status = models.ClientStatusLead
	}
	now := time.Now().Unix()
	client.CreatedAt, client.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, company, email, phone, address, website, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, client.ID, client.Name, client.Company, client.Email, client.Phone, client.Address, client.Website, client.Notes, client.Status, client.CreatedAt, client.UpdatedAt)
	return err
}

// GetByID returns nil, nil when the client does not exist.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	client := &models.Client{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, company, email, phone, address, website, notes, status, created_at, updated_at
		FROM clients WHERE id = $1
	`, id).Scan(&client.ID, &client.Name, &client.Company, &client.Email, &client.Phone, &client.Address, &client.Website, &client.Notes, &client.Status, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]*models.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, company, email, phone, address, website, notes, status, created_at, updated_at
		FROM clients ORDER BY name ASC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []*models.Client{}
	for rows.Next() {
		c := &models.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Address, &c.Website, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPending
	}
	now := time.Now().Unix()
	project.CreatedAt, project.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, client_id, title, description, status, start_date, end_date, budget, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, project.ID, project.ClientID, project.Title, project.Description, project.Status, project.StartDate, project.EndDate, project.Budget, project.CreatedAt, project.UpdatedAt)
	return err
}

// GetByID returns nil, nil when the project does not exist.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, title, description, status, start_date, end_date, budget, created_at, updated_at
		FROM projects WHERE id = $1
	`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *ProjectRepository) ListByClient(ctx context.Context, clientID string) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, title, description, status, start_date, end_date, budget, created_at, updated_at
		FROM projects WHERE client_id = $1 ORDER BY created_at DESC
	`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(s interface {
	Scan(dest ...interface{}) error
}) (*models.Project, error) {
	var p models.Project
	var startDate, endDate sql.NullString

	err := s.Scan(&p.ID, &p.ClientID, &p.Title, &p.Description, &p.Status, &startDate, &endDate, &p.Budget, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if startDate.Valid {
		p.StartDate = &startDate.String
	}
	if endDate.Valid {
		p.EndDate = &endDate.String
	}
	return &p, nil
}
