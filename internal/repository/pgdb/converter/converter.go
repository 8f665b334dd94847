package converter

import (
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделями PostgreSQL.
type ProductConverter struct{}

func NewProductConverter() *ProductConverter {
	return &ProductConverter{}
}

func (c *ProductConverter) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		CategoryID:  entity.CategoryID,
		Price:       entity.Price,
		IsActive:    entity.IsActive,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}

func (c *ProductConverter) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CategoryID:  model.CategoryID,
		Price:       model.Price,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (c *ProductConverter) ImageToEntity(model *ProductImageModel) domain.ProductImage {
	return domain.ProductImage{
		ID:        model.ID,
		ProductID: model.ProductID,
		URL:       model.URL,
		IsMain:    model.IsMain,
	}
}

func (c *ProductConverter) MonthConfigToEntity(model *MonthConfigModel) domain.MonthConfig {
	return domain.MonthConfig{
		ID:           model.ID,
		ProductID:    model.ProductID,
		MonthNumber:  model.MonthNumber,
		IsAvailable:  model.IsAvailable,
		SpecialPrice: model.SpecialPrice,
	}
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter struct{}

func NewCategoryConverter() *CategoryConverter {
	return &CategoryConverter{}
}

func (c *CategoryConverter) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// UserConverter преобразует сущности User между domain и моделью PostgreSQL.
type UserConverter struct{}

func NewUserConverter() *UserConverter {
	return &UserConverter{}
}

func (c *UserConverter) ToEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		IsAdmin:      model.IsAdmin,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// OrderConverter преобразует сущности Order между domain и моделями PostgreSQL.
type OrderConverter struct{}

func NewOrderConverter() *OrderConverter {
	return &OrderConverter{}
}

func (c *OrderConverter) ToEntity(model *OrderModel, items []*OrderItemModel) *domain.Order {
	order := &domain.Order{
		ID:        model.ID,
		UserID:    model.UserID,
		OrderDate: model.OrderDate,
		OrderSum:  model.OrderSum,
		Status:    model.Status,
		Items:     make([]domain.OrderItem, 0, len(items)),
	}

	for _, item := range items {
		order.Items = append(order.Items, c.ItemToEntity(item))
	}

	return order
}

func (c *OrderConverter) ItemToEntity(model *OrderItemModel) domain.OrderItem {
	return domain.OrderItem{
		ID:            model.ID,
		OrderID:       model.OrderID,
		ProductID:     model.ProductID,
		ProductName:   model.ProductName,
		ImageURL:      model.ImageURL,
		Quantity:      model.Quantity,
		DepartureDate: model.DepartureDate,
		ReturnDate:    model.ReturnDate,
		NightsCount:   model.NightsCount,
		PricePerUnit:  model.PricePerUnit,
	}
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter struct{}

func NewOutboxEventConverter() *OutboxEventConverter {
	return &OutboxEventConverter{}
}

func (c *OutboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	entities := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		entities = append(entities, c.ToEntity(model))
	}
	return entities
}
