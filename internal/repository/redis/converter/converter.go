package converter

import (
	"github.com/vacation-shop/go-backend/internal/domain"
)

// ProductConverter преобразует товары между domain и моделью Redis.
type ProductConverter struct{}

func NewProductConverter() *ProductConverter {
	return &ProductConverter{}
}

func (c *ProductConverter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	model := &ProductRedisModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CategoryID:  entity.CategoryID,
		Price:       entity.Price,
		IsActive:    entity.IsActive,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}

	for _, img := range entity.Images {
		model.Images = append(model.Images, ProductImageRedisModel{
			ID:        img.ID,
			ProductID: img.ProductID,
			URL:       img.URL,
			IsMain:    img.IsMain,
		})
	}
	for _, mc := range entity.MonthConfigs {
		model.MonthConfigs = append(model.MonthConfigs, MonthConfigRedisModel{
			ID:           mc.ID,
			ProductID:    mc.ProductID,
			MonthNumber:  mc.MonthNumber,
			IsAvailable:  mc.IsAvailable,
			SpecialPrice: mc.SpecialPrice,
		})
	}

	return model
}

func (c *ProductConverter) ToEntity(model *ProductRedisModel) *domain.Product {
	entity := &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CategoryID:  model.CategoryID,
		Price:       model.Price,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	for _, img := range model.Images {
		entity.Images = append(entity.Images, domain.ProductImage{
			ID:        img.ID,
			ProductID: img.ProductID,
			URL:       img.URL,
			IsMain:    img.IsMain,
		})
	}
	for _, mc := range model.MonthConfigs {
		entity.MonthConfigs = append(entity.MonthConfigs, domain.MonthConfig{
			ID:           mc.ID,
			ProductID:    mc.ProductID,
			MonthNumber:  mc.MonthNumber,
			IsAvailable:  mc.IsAvailable,
			SpecialPrice: mc.SpecialPrice,
		})
	}

	return entity
}
