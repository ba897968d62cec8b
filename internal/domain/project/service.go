package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/rentledger/internal/metrics"
	"github.com/rpggio/rentledger/internal/store"
)

// Operation names reported to logs and metrics.
const (
	OpCreate = "create_project"
	OpClose  = "close_project"
	OpView   = "view_project"
)

// Service handles project operations.
type Service struct {
	store    store.Store
	logger   *slog.Logger
	observer metrics.Observer
}

// NewService creates a new project service. logger and observer may be nil.
func NewService(st store.Store, logger *slog.Logger, observer metrics.Observer) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: st, logger: logger, observer: metrics.OrNop(observer)}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title       string
	Description string
}

// Create replaces the project slot with a new active project and returns its id.
// Title and description are not validated.
func (s *Service) Create(ctx context.Context, req CreateRequest) (id uint64, err error) {
	defer s.observe(OpCreate, time.Now(), &err)

	err = s.store.Update(ctx, func(tx store.Tx) error {
		repo := NewRepository(tx)
		next, err := repo.NextID()
		if err != nil {
			return err
		}
		proj := Project{
			ID:             next,
			Title:          req.Title,
			Description:    req.Description,
			TotalResources: 0,
			Active:         true,
		}
		if err := repo.Save(proj); err != nil {
			return err
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("creating project: %w", err)
	}

	s.logger.InfoContext(ctx, "project created", "project_id", id, "title", req.Title)
	return id, nil
}

// View returns the stored project, or the sentinel when none exists.
func (s *Service) View(ctx context.Context) (proj Project, err error) {
	defer s.observe(OpView, time.Now(), &err)

	err = s.store.View(ctx, func(tx store.Tx) error {
		var err error
		proj, err = Current(NewRepository(tx))
		return err
	})
	if err != nil {
		return Project{}, fmt.Errorf("viewing project: %w", err)
	}
	return proj, nil
}

// Close marks the project inactive. It fails with ErrAlreadyClosed when the
// project is inactive or was never created.
func (s *Service) Close(ctx context.Context) (err error) {
	defer s.observe(OpClose, time.Now(), &err)

	var closed Project
	err = s.store.Update(ctx, func(tx store.Tx) error {
		repo := NewRepository(tx)
		proj, err := Current(repo)
		if err != nil {
			return err
		}
		if !proj.Active {
			s.logger.WarnContext(ctx, "project is already closed", "project_id", proj.ID)
			return ErrAlreadyClosed
		}
		proj.Active = false
		if err := repo.Save(proj); err != nil {
			return err
		}
		closed = proj
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyClosed) {
			return err
		}
		return fmt.Errorf("closing project: %w", err)
	}

	s.logger.InfoContext(ctx, "project closed", "project_id", closed.ID)
	return nil
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	s.observer.Observe(op, Outcome(*errp), time.Since(start))
}

// Outcome labels err for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrAlreadyClosed):
		return "already_closed"
	default:
		return "error"
	}
}
