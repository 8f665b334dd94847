package usecase

import (
	"context"

	"github.com/vacation-shop/go-backend/internal/domain"
)

type ProductUC interface {
	GetProducts(ctx context.Context, filter *ProductFilter) (*ProductPage, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	AddProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *SaveProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type CategoryUC interface {
	GetCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	AddCategory(ctx context.Context, req *AddCategoryReq) (*domain.Category, error)
}

type UserUC interface {
	Register(ctx context.Context, req *RegisterReq) (*domain.User, error)
	Login(ctx context.Context, req *LoginReq) (*LoginRes, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, req *UpdateUserReq) (*domain.User, error)
	ChangePassword(ctx context.Context, req *ChangePasswordReq) error
}

type OrderUC interface {
	AddOrder(ctx context.Context, req *AddOrderReq) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]*domain.Order, error)
	// SweepStatuses пересчитывает статусы незавершённых заказов и
	// возвращает число обновлённых.
	SweepStatuses(ctx context.Context) (int, error)
}

type EmailUC interface {
	SendOrderConfirmation(ctx context.Context, req *OrderConfirmationReq) error
}
