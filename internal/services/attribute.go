package services

//go:generate mockgen -source=attribute.go -destination=mock_attribute.go -package=services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// AttributeRepository stores one kind of attribute (tags or ingredients).
type AttributeRepository interface {
	List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Attribute, error)
	Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Attribute, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.Attribute, bool, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.Attribute, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

// AttributeService manages the owner's tags or ingredients.
type AttributeService struct {
	repo AttributeRepository
	kind string // "Tag" or "Ingredient", used in messages
}

// NewAttributeService creates an AttributeService for the given kind.
func NewAttributeService(repo AttributeRepository, kind string) *AttributeService {
	return &AttributeService{repo: repo, kind: kind}
}

// List returns the owner's attributes, optionally only those used by the owner's recipes.
func (s *AttributeService) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Attribute, error) {
	attrs, err := s.repo.List(ctx, userID, assignedOnly)
	if err != nil {
		logger.Log.Errorw("failed to list attributes", "kind", s.kind, "userID", userID, "err", err)
		return nil, err
	}
	return attrs, nil
}

// Get returns one of the owner's attributes.
func (s *AttributeService) Get(ctx context.Context, userID uuid.UUID, id int64) (*models.Attribute, error) {
	attr, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, s.translate(err, userID, id)
	}
	return attr, nil
}

// Create returns the owner's attribute with the given name, creating it when it
// does not exist yet. The boolean reports whether it was created.
func (s *AttributeService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Attribute, bool, error) {
	attr, created, err := s.repo.GetOrCreate(ctx, userID, name)
	if err != nil {
		logger.Log.Errorw("failed to create attribute", "kind", s.kind, "userID", userID, "name", name, "err", err)
		return nil, false, err
	}
	return attr, created, nil
}

// Update renames one of the owner's attributes.
func (s *AttributeService) Update(ctx context.Context, userID uuid.UUID, id int64, name string) (*models.Attribute, error) {
	attr, err := s.repo.Update(ctx, userID, id, name)
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return nil, validation.NewError("name", s.kind+" with this name already exists.")
	}
	if err != nil {
		return nil, s.translate(err, userID, id)
	}
	return attr, nil
}

// Delete removes one of the owner's attributes and detaches it from recipes.
func (s *AttributeService) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return s.translate(err, userID, id)
	}
	return nil
}

func (s *AttributeService) translate(err error, userID uuid.UUID, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	logger.Log.Errorw("attribute query failed", "kind", s.kind, "userID", userID, "id", id, "err", err)
	return err
}
