package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus/internal/platform/database/dbtest"
	"nexus/internal/platform/models"
)

func TestClientRepository_CreateAndGet(t *testing.T) {
	db := dbtest.New(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	client := &models.Client{Name: "Jane Doe", Company: "Acme", Email: "jane@acme.test"}
	require.NoError(t, repo.Create(ctx, client))
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, models.ClientStatusLead, client.Status)

	fetched, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Acme", fetched.Company)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectRepository_OptionalFields(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	clients := NewClientRepository(db)
	projects := NewProjectRepository(db)

	client := &models.Client{Name: "Jane", Email: "jane@acme.test"}
	require.NoError(t, clients.Create(ctx, client))

	start := "2024-03-01"
	p := &models.Project{
		ClientID:  client.ID,
		Title:     "Rebrand",
		StartDate: &start,
		Budget:    decimal.NewNullDecimal(decimal.RequireFromString("4500.50")),
	}
	require.NoError(t, projects.Create(ctx, p))

	fetched, err := projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "2024-03-01", *fetched.StartDate)
	assert.Nil(t, fetched.EndDate)
	assert.True(t, fetched.Budget.Valid)
	assert.True(t, fetched.Budget.Decimal.Equal(decimal.RequireFromString("4500.5")))

	list, err := projects.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSettingsRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	empty, err := repo.GetGeneral(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", empty.CompanyName)

	require.NoError(t, repo.SaveGeneral(ctx, &models.GeneralSettings{CompanyName: "Call To Actions", Tagline: "We ship"}))
	require.NoError(t, repo.SaveGeneral(ctx, &models.GeneralSettings{CompanyName: "Call To Actions", Tagline: "We ship faster"}))

	require.NoError(t, repo.ReplaceSocial(ctx, []models.SocialLink{
		{Platform: models.PlatformLinkedIn, URL: "https://linkedin.com/company/cta"},
		{Platform: models.PlatformInstagram, URL: "https://instagram.com/cta"},
	}))

	site, err := repo.Site(ctx)
	require.NoError(t, err)
	assert.Equal(t, "We ship faster", site.General.Tagline)
	require.Len(t, site.Social, 2)
	assert.Equal(t, models.PlatformLinkedIn, site.Social[0].Platform)
	assert.Equal(t, 1, site.Social[1].Order)
}
