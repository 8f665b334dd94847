package usecase

import (
	"context"
	"strings"

	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// CategoryUseCase реализует бизнес-логику категорий каталога.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	logger       logger.Logger
}

func NewCategoryUC(categoryRepo CategoryRepository, logger logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (c *CategoryUseCase) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	const op = "CategoryUseCase.GetCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

func (c *CategoryUseCase) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	const op = "CategoryUseCase.GetCategoryByID"

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// AddCategory идемпотентно создаёт категорию по имени.
func (c *CategoryUseCase) AddCategory(ctx context.Context, req *AddCategoryReq) (*domain.Category, error) {
	const op = "CategoryUseCase.AddCategory"

	if strings.TrimSpace(req.Name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(req.Name))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}
