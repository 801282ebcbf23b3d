package proposals

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus/internal/pkg/errors"
	"nexus/internal/platform/config"
	"nexus/internal/platform/database/dbtest"
)

func newTestRepository(t *testing.T) *Repository {
	db := dbtest.New(t)
	for _, id := range []string{"c1", "c9"} {
		_, err := db.Exec(`INSERT INTO clients (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, 0, 0)`,
			id, "Client "+id, id+"@example.com")
		require.NoError(t, err)
	}
	return NewRepository(db)
}

func TestService_CRUD(t *testing.T) {
	svc := NewService(newTestRepository(t), nil)
	ctx := context.Background()

	empty := ""
	p, err := svc.CreateProposal(ctx, &Proposal{Title: "Brand strategy", Content: "Intro", ClientID: &empty})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Nil(t, p.ClientID)
	assert.False(t, p.AIGenerated)

	title := "Brand strategy v2"
	client := "c1"
	updated, err := svc.UpdateProposal(ctx, p.ID, &Patch{Title: &title, ClientID: &client})
	require.NoError(t, err)
	assert.Equal(t, "c1", *updated.ClientID)

	// Progression is not enforced.
	accepted, err := svc.ChangeStatus(ctx, p.ID, StatusAccepted)
	require.NoError(t, err)
	back, err := svc.ChangeStatus(ctx, accepted.ID, StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, back.Status)

	_, err = svc.ChangeStatus(ctx, p.ID, "archived")
	assert.True(t, stderrors.Is(err, errors.ErrValidation))

	list, err := svc.ListProposals(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Brand strategy v2", list[0].Title)

	require.NoError(t, svc.DeleteProposal(ctx, p.ID))
	_, err = svc.GetProposal(ctx, p.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestService_CreateRequiresTitle(t *testing.T) {
	svc := NewService(NewRepository(dbtest.New(t)), nil)

	_, err := svc.CreateProposal(context.Background(), &Proposal{Content: "x"})
	var verr *errors.ValidationError
	require.True(t, stderrors.As(err, &verr))
	assert.Contains(t, verr.Fields, "title")
}

func TestService_UnknownClient(t *testing.T) {
	svc := NewService(newTestRepository(t), nil)
	ctx := context.Background()

	gone := "gone"
	_, err := svc.CreateProposal(ctx, &Proposal{Title: "Pitch", ClientID: &gone})
	var verr *errors.ValidationError
	require.True(t, stderrors.As(err, &verr), "got %v", err)
	assert.Equal(t, "unknown client", verr.Fields["client_id"])

	p, err := svc.CreateProposal(ctx, &Proposal{Title: "Pitch"})
	require.NoError(t, err)
	_, err = svc.UpdateProposal(ctx, p.ID, &Patch{ClientID: &gone})
	assert.True(t, stderrors.Is(err, errors.ErrValidation), "got %v", err)
}

func TestRepository_EmptyShareTokenIsReplaced(t *testing.T) {
	repo := newTestRepository(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	p, err := svc.CreateProposal(ctx, &Proposal{Title: "Pitch"})
	require.NoError(t, err)
	_, err = repo.db.ExecContext(ctx, `UPDATE proposals SET share_token = '' WHERE id = $1`, p.ID)
	require.NoError(t, err)

	ok, err := repo.SetShareToken(ctx, p.ID, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetShareToken(ctx, p.ID, "later")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_GenerateProposal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"","content":"## Deliverables\n- Logo","client_id":""}`))
	}))
	defer srv.Close()

	gen := NewGenerator(config.GeneratorConfig{Endpoint: srv.URL, Timeout: time.Second})
	svc := NewService(newTestRepository(t), gen)

	p, err := svc.GenerateProposal(context.Background(), GenerateRequest{ClientID: "c9", Prompt: "Logo work"})
	require.NoError(t, err)
	assert.True(t, p.AIGenerated)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, untitled, p.Title)
	require.NotNil(t, p.ClientID)
	assert.Equal(t, "c9", *p.ClientID)

	stored, err := svc.GetProposal(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stored.AIGenerated)
}

func TestService_GenerateProposalValidatesPrompt(t *testing.T) {
	svc := NewService(NewRepository(dbtest.New(t)), nil)

	_, err := svc.GenerateProposal(context.Background(), GenerateRequest{})
	assert.True(t, stderrors.Is(err, errors.ErrValidation))
}
