package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"time"

	"github.com/rpggio/rentledger/internal/domain/project"
	"github.com/rpggio/rentledger/internal/metrics"
	"github.com/rpggio/rentledger/internal/store"
)

// Operation names reported to logs and metrics.
const (
	OpList    = "list_resource"
	OpRent    = "rent_resource"
	OpRelease = "release_resource"
	OpView    = "view_resource"
)

// Service handles resource listing and rental.
type Service struct {
	store    store.Store
	logger   *slog.Logger
	observer metrics.Observer
}

// NewService creates a new resource service. logger and observer may be nil.
func NewService(st store.Store, logger *slog.Logger, observer metrics.Observer) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: st, logger: logger, observer: metrics.OrNop(observer)}
}

// ListRequest defines listing inputs.
type ListRequest struct {
	Owner        string
	ResourceType string
	PricePerHour uint64
}

// RentRequest defines rental inputs.
type RentRequest struct {
	Renter     string
	ResourceID uint64
	Hours      uint64
}

// List records a new available resource and counts it against the current project.
func (s *Service) List(ctx context.Context, req ListRequest) (id uint64, err error) {
	defer s.observe(OpList, time.Now(), &err)

	var total uint64
	err = s.store.Update(ctx, func(tx store.Tx) error {
		repo := NewRepository(tx)
		next, err := repo.NextID()
		if err != nil {
			return err
		}

		// The sentinel is used when no project exists; it gets persisted too.
		projects := project.NewRepository(tx)
		proj, err := project.Current(projects)
		if err != nil {
			return err
		}
		proj.TotalResources++

		resources, err := repo.LoadAll()
		if err != nil {
			return err
		}
		resources[next] = Resource{
			ID:           next,
			Owner:        req.Owner,
			ResourceType: req.ResourceType,
			PricePerHour: req.PricePerHour,
			Available:    true,
		}

		if err := repo.SaveAll(resources); err != nil {
			return err
		}
		if err := projects.Save(proj); err != nil {
			return err
		}
		id, total = next, proj.TotalResources
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("listing resource: %w", err)
	}

	s.logger.InfoContext(ctx, "resource listed",
		"resource_id", id,
		"owner", req.Owner,
		"resource_type", req.ResourceType,
		"price_per_hour", req.PricePerHour,
		"project_total_resources", total,
	)
	return id, nil
}

// Rent marks an available resource as rented and returns price_per_hour * hours.
// No payment is transferred.
func (s *Service) Rent(ctx context.Context, req RentRequest) (cost uint64, err error) {
	defer s.observe(OpRent, time.Now(), &err)

	var rented Resource
	err = s.store.Update(ctx, func(tx store.Tx) error {
		repo := NewRepository(tx)
		resources, err := repo.LoadAll()
		if err != nil {
			return err
		}
		res, ok := resources[req.ResourceID]
		if !ok {
			return fmt.Errorf("%w: %d", ErrResourceNotFound, req.ResourceID)
		}
		if !res.Available {
			return fmt.Errorf("%w: %d", ErrResourceUnavailable, req.ResourceID)
		}
		total, err := Cost(res.PricePerHour, req.Hours)
		if err != nil {
			return err
		}

		res.Available = false
		resources[req.ResourceID] = res
		if err := repo.SaveAll(resources); err != nil {
			return err
		}
		cost, rented = total, res
		return nil
	})
	if err != nil {
		if isDomainErr(err) {
			return 0, err
		}
		return 0, fmt.Errorf("renting resource: %w", err)
	}

	s.logger.InfoContext(ctx, "resource rented",
		"renter", req.Renter,
		"resource_id", req.ResourceID,
		"resource_type", rented.ResourceType,
		"hours", req.Hours,
		"total_cost", cost,
	)
	return cost, nil
}

// Release makes a resource available again. Releasing an available resource is a no-op success.
func (s *Service) Release(ctx context.Context, id uint64) (err error) {
	defer s.observe(OpRelease, time.Now(), &err)

	err = s.store.Update(ctx, func(tx store.Tx) error {
		repo := NewRepository(tx)
		resources, err := repo.LoadAll()
		if err != nil {
			return err
		}
		res, ok := resources[id]
		if !ok {
			return fmt.Errorf("%w: %d", ErrResourceNotFound, id)
		}
		res.Available = true
		resources[id] = res
		return repo.SaveAll(resources)
	})
	if err != nil {
		if isDomainErr(err) {
			return err
		}
		return fmt.Errorf("releasing resource: %w", err)
	}

	s.logger.InfoContext(ctx, "resource available for rent again", "resource_id", id)
	return nil
}

// View returns the resource under id, or the sentinel when none is listed.
func (s *Service) View(ctx context.Context, id uint64) (res Resource, err error) {
	defer s.observe(OpView, time.Now(), &err)

	err = s.store.View(ctx, func(tx store.Tx) error {
		resources, err := NewRepository(tx).LoadAll()
		if err != nil {
			return err
		}
		found, ok := resources[id]
		if !ok {
			res = NotFound()
			return nil
		}
		res = found
		return nil
	})
	if err != nil {
		return Resource{}, fmt.Errorf("viewing resource: %w", err)
	}
	return res, nil
}

// Cost multiplies price by hours, failing with ErrOverflow instead of wrapping.
func Cost(pricePerHour, hours uint64) (uint64, error) {
	hi, lo := bits.Mul64(pricePerHour, hours)
	if hi != 0 {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, pricePerHour, hours)
	}
	return lo, nil
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	s.observer.Observe(op, Outcome(*errp), time.Since(start))
}

func isDomainErr(err error) bool {
	return errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrResourceUnavailable) ||
		errors.Is(err, ErrOverflow)
}

// Outcome labels err for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrResourceNotFound):
		return "resource_not_found"
	case errors.Is(err, ErrResourceUnavailable):
		return "resource_unavailable"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	default:
		return "error"
	}
}
