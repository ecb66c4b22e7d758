package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"spotbook/internal/cache"
	apperrors "spotbook/internal/errors"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

const (
	defaultPage = 1
	maxPage     = 10
	defaultSize = 20
	maxSize     = 20

	spotDetailTTL = time.Minute
)

// SpotInput holds the writable fields of a spot.
type SpotInput struct {
	Address     string
	City        string
	State       string
	Country     string
	Lat         float64
	Lng         float64
	Name        string
	Description string
	Price       decimal.Decimal
}

func (in SpotInput) apply(spot *model.Spot) {
	spot.Address = in.Address
	spot.City = in.City
	spot.State = in.State
	spot.Country = in.Country
	spot.Lat = in.Lat
	spot.Lng = in.Lng
	spot.Name = in.Name
	spot.Description = in.Description
	spot.Price = in.Price
}

// ListParams are the query parameters of the spot listing. Nil means absent.
type ListParams struct {
	Page   *int
	Size   *int
	Filter model.SpotFilter
}

// SpotPage is one page of spots. Size is the number of spots returned,
// not the requested page size.
type SpotPage struct {
	Spots []model.Spot
	Page  int
	Size  int
}

// SpotService exposes spot operations.
type SpotService interface {
	Create(ctx context.Context, ownerID uint, in SpotInput) (*model.Spot, error)
	Update(ctx context.Context, spot *model.Spot, in SpotInput) (*model.Spot, error)
	Delete(ctx context.Context, spot *model.Spot) error
	Get(ctx context.Context, id uint) (*model.SpotDetail, error)
	List(ctx context.Context, params ListParams) (*SpotPage, error)
	ListMine(ctx context.Context, ownerID uint) ([]model.Spot, error)
}

type spotService struct {
	repo  repository.SpotRepository
	cache *cache.Client
}

// NewSpotService builds a SpotService.
func NewSpotService(repo repository.SpotRepository, cache *cache.Client) SpotService {
	return &spotService{repo: repo, cache: cache}
}

func spotDetailKey(id uint) string {
	return fmt.Sprintf("spot:%d:detail", id)
}

// invalidateSpot drops the cached detail of a spot after anything shown on
// it changed: the spot itself, its images or its reviews.
func invalidateSpot(ctx context.Context, c *cache.Client, id uint) {
	_ = c.Delete(ctx, spotDetailKey(id))
}

func (s *spotService) Create(ctx context.Context, ownerID uint, in SpotInput) (*model.Spot, error) {
	spot := &model.Spot{OwnerID: ownerID}
	in.apply(spot)
	if err := s.repo.Create(ctx, spot); err != nil {
		return nil, duplicateSpot(err)
	}
	return spot, nil
}

func (s *spotService) Update(ctx context.Context, spot *model.Spot, in SpotInput) (*model.Spot, error) {
	in.apply(spot)
	if err := s.repo.Update(ctx, spot); err != nil {
		return nil, duplicateSpot(err)
	}
	invalidateSpot(ctx, s.cache, spot.ID)
	return spot, nil
}

func (s *spotService) Delete(ctx context.Context, spot *model.Spot) error {
	if err := s.repo.Delete(ctx, spot.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Spot")
		}
		return fmt.Errorf("delete spot: %w", err)
	}
	invalidateSpot(ctx, s.cache, spot.ID)
	return nil
}

// Get returns the spot with owner, review aggregates and image URLs.
func (s *spotService) Get(ctx context.Context, id uint) (*model.SpotDetail, error) {
	if data, _ := s.cache.Get(ctx, spotDetailKey(id)); data != nil {
		var cached model.SpotDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	spot, err := s.repo.FindWithOwner(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Spot")
	}
	if err != nil {
		return nil, fmt.Errorf("find spot: %w", err)
	}

	detail := &model.SpotDetail{Spot: *spot}
	if spot.Owner != nil {
		detail.Owner = spot.Owner.Safe()
	}
	detail.Spot.Owner = nil

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.Stats(gctx, id)
		detail.Stats = stats
		return err
	})
	g.Go(func() error {
		urls, err := s.repo.ImageURLs(gctx, id)
		detail.Images = urls
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load spot detail: %w", err)
	}
	if detail.Images == nil {
		detail.Images = []string{}
	}

	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, spotDetailKey(id), payload, spotDetailTTL)
	}
	return detail, nil
}

// List pages through spots. page defaults to 1 and is capped at 10; size
// defaults to 20 and is capped at 20.
func (s *spotService) List(ctx context.Context, params ListParams) (*SpotPage, error) {
	page, size, err := Paginate(params.Page, params.Size)
	if err != nil {
		return nil, err
	}

	spots, err := s.repo.List(ctx, params.Filter, size, (page-1)*size)
	if err != nil {
		return nil, fmt.Errorf("list spots: %w", err)
	}
	return &SpotPage{Spots: spots, Page: page, Size: len(spots)}, nil
}

func (s *spotService) ListMine(ctx context.Context, ownerID uint) ([]model.Spot, error) {
	spots, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list own spots: %w", err)
	}
	return spots, nil
}

// Paginate resolves the page and size query values.
func Paginate(page, size *int) (int, int, error) {
	fields := map[string]string{}
	p, sz := defaultPage, defaultSize
	if page != nil {
		if *page < 1 {
			fields["page"] = "Page must be greater than or equal to 1"
		}
		p = min(*page, maxPage)
	}
	if size != nil {
		if *size < 0 {
			fields["size"] = "Size must be greater than or equal to 0"
		}
		sz = min(*size, maxSize)
	}
	if len(fields) > 0 {
		return 0, 0, apperrors.Validation(fields)
	}
	return p, sz, nil
}

func duplicateSpot(err error) error {
	var dup *repository.DuplicateError
	if errors.As(err, &dup) {
		field := dup.Field
		if field == "" {
			field = "spot"
		}
		return apperrors.DuplicateSpot(field)
	}
	return fmt.Errorf("save spot: %w", err)
}
