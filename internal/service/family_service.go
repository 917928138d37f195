package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/family-service/internal/domain"
	"github.com/spec-kit/family-service/internal/repository"
)

// Page describes one page of a listing.
type Page struct {
	Page  int
	Pages int
	Total int
}

// FamilyService coordinates family member CRUD and pagination.
type FamilyService struct {
	members repository.FamilyRepository
}

// NewFamilyService builds the service.
func NewFamilyService(members repository.FamilyRepository) *FamilyService {
	return &FamilyService{members: members}
}

// List returns one page of members, newest first. Page defaults to 1 and
// limit to 10 when out of range.
func (s *FamilyService) List(ctx context.Context, page, limit int) ([]domain.FamilyMember, Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	members, err := s.members.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, Page{}, err
	}
	total, err := s.members.Count(ctx)
	if err != nil {
		return nil, Page{}, err
	}

	pages := (total + limit - 1) / limit
	return members, Page{Page: page, Pages: pages, Total: total}, nil
}

// Get fetches a member by id, rejecting malformed ids before touching the
// store.
func (s *FamilyService) Get(ctx context.Context, id string) (*domain.FamilyMember, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.members.GetByID(ctx, id)
}

// Create persists a new member.
func (s *FamilyService) Create(ctx context.Context, member *domain.FamilyMember) error {
	return s.members.Create(ctx, member)
}

// Update overwrites an existing member's fields.
func (s *FamilyService) Update(ctx context.Context, member *domain.FamilyMember) error {
	if err := validateID(member.ID); err != nil {
		return err
	}
	return s.members.Update(ctx, member)
}

// Delete removes a member by id.
func (s *FamilyService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.members.Delete(ctx, id)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}
