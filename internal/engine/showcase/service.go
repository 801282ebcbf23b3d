package showcase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"nexus/internal/engine/reorder"
	"nexus/internal/pkg/errors"
	"nexus/internal/pkg/validator"
)

// Service manages the orderable collections shown on the public site. New
// entries go to the end; deletes close the gap they leave.
type Service struct {
	repo        *Repository
	coordinator *reorder.Coordinator
	now         func() time.Time
}

func NewService(repo *Repository, coordinator *reorder.Coordinator) *Service {
	return &Service{repo: repo, coordinator: coordinator, now: time.Now}
}

func (s *Service) AddPortfolioItem(ctx context.Context, item *PortfolioItem) (*PortfolioItem, error) {
	if err := validator.Struct(item); err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	item.CreatedAt = s.now().Unix()
	if err := s.repo.CreatePortfolioItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) AddTestimonial(ctx context.Context, t *Testimonial) (*Testimonial, error) {
	if t.Rating == 0 {
		t.Rating = 5
	}
	if err := validator.Struct(t); err != nil {
		return nil, err
	}
	t.ID = uuid.New().String()
	t.CreatedAt = s.now().Unix()
	if err := s.repo.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) AddClientLogo(ctx context.Context, l *ClientLogo) (*ClientLogo, error) {
	if err := validator.Struct(l); err != nil {
		return nil, err
	}
	l.ID = uuid.New().String()
	l.CreatedAt = s.now().Unix()
	if err := s.repo.CreateClientLogo(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns the collection in display order.
func (s *Service) List(ctx context.Context, c reorder.Collection) (interface{}, error) {
	switch c {
	case reorder.Portfolio:
		return s.repo.ListPortfolio(ctx)
	case reorder.Testimonials:
		return s.repo.ListTestimonials(ctx)
	case reorder.ClientLogos:
		return s.repo.ListClientLogos(ctx)
	}
	return nil, reorder.ErrUnknownCollection
}

func (s *Service) Delete(ctx context.Context, c reorder.Collection, id string) error {
	deleted, err := s.coordinator.Remove(ctx, c, id)
	if err != nil {
		log.Error().Err(err).Str("collection", string(c)).Str("id", id).Msg("failed to delete collection entry")
		return err
	}
	if !deleted {
		return errors.NewNotFound(string(c), id)
	}
	return nil
}

func (s *Service) Normalize(ctx context.Context, c reorder.Collection) (interface{}, error) {
	if _, err := s.coordinator.Normalize(ctx, c); err != nil {
		return nil, err
	}
	return s.List(ctx, c)
}

// Reorder moves one entry and returns the collection in its new order.
func (s *Service) Reorder(ctx context.Context, c reorder.Collection, from, to int) (interface{}, error) {
	if _, err := s.coordinator.Reorder(ctx, c, from, to); err != nil {
		return nil, err
	}
	return s.List(ctx, c)
}
