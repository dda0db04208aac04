package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carebook/internal/cache"
	apperrors "carebook/internal/errors"
	"carebook/internal/model"
	"carebook/internal/repository"
)

const centerCacheTTL = 5 * time.Minute

// CenterInput carries the mutable center fields.
type CenterInput struct {
	Name         string
	District     string
	Address      string
	Location     string
	Landmark     string
	Pincode      string
	Contact      string
	Email        string
	ClinicURL    string
	GoogleMapURL string
}

// CenterService handles service-center operations.
type CenterService interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Center, error)
	List(ctx context.Context) ([]model.Center, error)
	Create(ctx context.Context, input CenterInput, actor uuid.UUID) (*model.Center, error)
	Update(ctx context.Context, id uuid.UUID, input CenterInput, actor uuid.UUID) (*model.Center, error)
	Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error
}

type centerService struct {
	repo  repository.CenterRepository
	cache *cache.Client
}

// NewCenterService creates a new center service.
func NewCenterService(repo repository.CenterRepository, cache *cache.Client) CenterService {
	return &centerService{repo: repo, cache: cache}
}

func (s *centerService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("center:%s", id.String())
}

// Get retrieves a center by ID with caching.
func (s *centerService) Get(ctx context.Context, id uuid.UUID) (*model.Center, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Center
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	center, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCenterNotFound
		}
		return nil, fmt.Errorf("find center: %w", err)
	}

	if payload, err := json.Marshal(center); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, centerCacheTTL)
	}
	return center, nil
}

// List returns all centers ordered by name.
func (s *centerService) List(ctx context.Context) ([]model.Center, error) {
	centers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	return centers, nil
}

// Create registers a new center.
func (s *centerService) Create(ctx context.Context, input CenterInput, actor uuid.UUID) (*model.Center, error) {
	contact, err := validateContact(input.Contact)
	if err != nil {
		return nil, err
	}

	center := &model.Center{
		Name:         collapseWhitespace(input.Name),
		District:     collapseWhitespace(input.District),
		Address:      collapseWhitespace(input.Address),
		Location:     collapseWhitespace(input.Location),
		Landmark:     collapseWhitespace(input.Landmark),
		Pincode:      input.Pincode,
		Contact:      contact,
		Email:        input.Email,
		ClinicURL:    input.ClinicURL,
		GoogleMapURL: input.GoogleMapURL,
	}
	if err := s.repo.Create(ctx, center); err != nil {
		return nil, fmt.Errorf("create center: %w", err)
	}
	log.Printf("center %s (%s) created by %s", center.ID, center.Name, actor)
	return center, nil
}

// Update overwrites the mutable fields of a center.
func (s *centerService) Update(ctx context.Context, id uuid.UUID, input CenterInput, actor uuid.UUID) (*model.Center, error) {
	center, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCenterNotFound
		}
		return nil, fmt.Errorf("find center: %w", err)
	}

	contact, err := validateContact(input.Contact)
	if err != nil {
		return nil, err
	}

	center.Name = collapseWhitespace(input.Name)
	center.District = collapseWhitespace(input.District)
	center.Address = collapseWhitespace(input.Address)
	center.Location = collapseWhitespace(input.Location)
	center.Landmark = collapseWhitespace(input.Landmark)
	center.Pincode = input.Pincode
	center.Contact = contact
	center.Email = input.Email
	center.ClinicURL = input.ClinicURL
	center.GoogleMapURL = input.GoogleMapURL

	if err := s.repo.Update(ctx, center); err != nil {
		return nil, fmt.Errorf("update center: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	log.Printf("center %s updated by %s", id, actor)
	return center, nil
}

// Delete removes a center.
func (s *centerService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrCenterNotFound
		}
		return fmt.Errorf("delete center: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	log.Printf("center %s deleted by %s", id, actor)
	return nil
}
