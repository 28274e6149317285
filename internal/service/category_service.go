package service

import (
	"context"
	"errors"
	"fmt"

	"tailorpos/internal/imagestore"
	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"` // base64 payload, optional
}

type UpdateCategoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// CategoryService manages the product category catalog
type CategoryService interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryService struct {
	repo   repository.CategoryRepository
	images imagestore.Store
}

func NewCategoryService(repo repository.CategoryRepository, images imagestore.Store) CategoryService {
	return &categoryService{repo: repo, images: images}
}

func (s *categoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	category := &model.Category{Name: req.Name}

	if req.Image != "" {
		data, err := imagestore.DecodeBase64(req.Image)
		if err != nil {
			return nil, apperr.BadRequestf("invalid image payload")
		}
		img, err := s.images.Upload("categories", "category.png", data)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to upload category image", err)
		}
		category.ImageURL = img.URL
		category.ImagePublicID = img.PublicID
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("category name already exists")
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid category id")
	}
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, apperr.NotFoundf("category not found")
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*model.Category, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid category id")
	}

	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, apperr.NotFoundf("category not found")
	}

	if req.Name != "" {
		category.Name = req.Name
	}

	if req.Image != "" {
		data, decErr := imagestore.DecodeBase64(req.Image)
		if decErr != nil {
			return nil, apperr.BadRequestf("invalid image payload")
		}
		if category.ImagePublicID != "" {
			if err := s.images.Destroy(category.ImagePublicID); err != nil {
				return nil, apperr.Wrap(apperr.Internal, "failed to replace category image", err)
			}
		}
		img, upErr := s.images.Upload("categories", "category.png", data)
		if upErr != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to upload category image", upErr)
		}
		category.ImageURL = img.URL
		category.ImagePublicID = img.PublicID
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("category name already exists")
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return apperr.BadRequestf("invalid category id")
	}

	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return apperr.NotFoundf("category not found")
	}

	if category.ImagePublicID != "" {
		if err := s.images.Destroy(category.ImagePublicID); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to remove category image", err)
		}
	}

	return s.repo.Delete(ctx, categoryID)
}
