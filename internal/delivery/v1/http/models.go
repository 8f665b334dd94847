package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/internal/usecase"
)

// PRODUCTS

// ProductDTO — товар в ответах API. Денежные суммы — в рублях с двумя
// знаками после запятой.
type ProductDTO struct {
	ProductID    int64            `json:"productId"`
	ProductName  string           `json:"productName"`
	Description  string           `json:"description"`
	CategoryID   int64            `json:"categoryId"`
	Price        float64          `json:"price"`
	IsActive     bool             `json:"isActive"`
	MainImageURL string           `json:"mainImageUrl"`
	ImageURLs    []string         `json:"imageUrls"`
	MonthConfigs []MonthConfigDTO `json:"monthConfigs"`
}

type MonthConfigDTO struct {
	ConfigID     int64   `json:"configId"`
	MonthNumber  int     `json:"monthNumber"`
	IsAvailable  bool    `json:"isAvailable"`
	SpecialPrice float64 `json:"specialPrice"`
}

// SaveProductDTO — тело POST/PUT /products. Цены принимаются как JSON-числа
// и проверяются на точность до двух знаков.
type SaveProductDTO struct {
	ProductID    int64                `json:"productId"`
	ProductName  string               `json:"productName"`
	Description  string               `json:"description"`
	CategoryID   int64                `json:"categoryId"`
	Price        json.Number          `json:"price"`
	IsActive     *bool                `json:"isActive"`
	MainImageURL string               `json:"mainImageUrl"`
	ImageURLs    []string             `json:"imageUrls"`
	MonthConfigs []SaveMonthConfigDTO `json:"monthConfigs"`
}

type SaveMonthConfigDTO struct {
	MonthNumber  int         `json:"monthNumber"`
	IsAvailable  bool        `json:"isAvailable"`
	SpecialPrice json.Number `json:"specialPrice"`
}

// PageResponseDTO — страница каталога с метаданными пагинации.
type PageResponseDTO struct {
	Data            []ProductDTO `json:"data"`
	TotalItems      int          `json:"totalItems"`
	CurrentPage     int          `json:"currentPage"`
	PageSize        int          `json:"pageSize"`
	TotalPages      int          `json:"totalPages"`
	HasNextPage     bool         `json:"hasNextPage"`
	HasPreviousPage bool         `json:"hasPreviousPage"`
}

// CATEGORIES

type CategoryDTO struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type SaveCategoryDTO struct {
	CategoryName string `json:"categoryName"`
}

// USERS

type UserDTO struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

type RegisterDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type UpdateUserDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	Password  string `json:"password"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ORDERS

type OrderDTO struct {
	OrderID    int64          `json:"orderId"`
	UserID     int64          `json:"userId"`
	OrderDate  string         `json:"orderDate"`
	OrderSum   float64        `json:"orderSum"`
	Status     string         `json:"status"`
	OrderItems []OrderItemDTO `json:"orderItems"`
}

type OrderItemDTO struct {
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	ImageURL      string  `json:"imageUrl"`
	Quantity      int     `json:"quantity"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    string  `json:"returnDate"`
	NightsCount   int     `json:"nightsCount"`
	PricePerUnit  float64 `json:"pricePerUnit"`
}

// AddOrderDTO — тело POST /orders. Цены и количество ночей клиентские
// игнорируются: сервер пересчитывает их сам.
type AddOrderDTO struct {
	UserID     int64             `json:"userId"`
	OrderDate  string            `json:"orderDate"`
	OrderItems []AddOrderItemDTO `json:"orderItems"`
}

type AddOrderItemDTO struct {
	ProductID     int64  `json:"productId"`
	Quantity      int    `json:"quantity"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
}

// EMAIL

type EmailOrderRequestDTO struct {
	To           string      `json:"to"`
	CustomerName string      `json:"customerName"`
	OrderNumber  string      `json:"orderNumber"`
	OrderTotal   json.Number `json:"orderTotal"`
	OrderItems   string      `json:"orderItems"`
}

// IMAGES

type UploadImagesResponseDTO struct {
	ImagesKeys []string `json:"imagesKeys"`
}

type ImageKeysDTO struct {
	Keys []string `json:"keys"`
}

// MAPPERS

// centsToAmount переводит копейки в рубли для JSON-ответа.
func centsToAmount(cents int64) float64 {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).InexactFloat64()
}

func toProductDTO(product *domain.Product) ProductDTO {
	dto := ProductDTO{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Description:  product.Description,
		CategoryID:   product.CategoryID,
		Price:        centsToAmount(product.Price),
		IsActive:     product.IsActive,
		MainImageURL: product.MainImageURL(),
		ImageURLs:    product.ImageURLs(),
		MonthConfigs: make([]MonthConfigDTO, 0, len(product.MonthConfigs)),
	}

	for _, mc := range product.MonthConfigs {
		dto.MonthConfigs = append(dto.MonthConfigs, MonthConfigDTO{
			ConfigID:     mc.ID,
			MonthNumber:  mc.MonthNumber,
			IsAvailable:  mc.IsAvailable,
			SpecialPrice: centsToAmount(mc.SpecialPrice),
		})
	}

	return dto
}

func toPageResponseDTO(page *usecase.ProductPage) PageResponseDTO {
	data := make([]ProductDTO, 0, len(page.Data))
	for _, product := range page.Data {
		data = append(data, toProductDTO(product))
	}

	return PageResponseDTO{
		Data:            data,
		TotalItems:      page.TotalItems,
		CurrentPage:     page.CurrentPage,
		PageSize:        page.PageSize,
		TotalPages:      page.TotalPages,
		HasNextPage:     page.HasNextPage,
		HasPreviousPage: page.HasPreviousPage,
	}
}

func toCategoryDTO(category *domain.Category) CategoryDTO {
	return CategoryDTO{
		CategoryID:   category.ID,
		CategoryName: category.Name,
	}
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
	}
}

func toOrderDTO(order *domain.Order) OrderDTO {
	dto := OrderDTO{
		OrderID:    order.ID,
		UserID:     order.UserID,
		OrderDate:  order.OrderDate.Format(time.RFC3339),
		OrderSum:   centsToAmount(order.OrderSum),
		Status:     order.Status,
		OrderItems: make([]OrderItemDTO, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		dto.OrderItems = append(dto.OrderItems, OrderItemDTO{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			ImageURL:      item.ImageURL,
			Quantity:      item.Quantity,
			DepartureDate: item.DepartureDate.Format(time.DateOnly),
			ReturnDate:    item.ReturnDate.Format(time.DateOnly),
			NightsCount:   item.NightsCount,
			PricePerUnit:  centsToAmount(item.PricePerUnit),
		})
	}

	return dto
}

func toOrderDTOs(orders []*domain.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}
	return dtos
}
