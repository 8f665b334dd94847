package usecase

import (
	"time"

	"github.com/vacation-shop/go-backend/internal/domain"
)

// PRODUCT USECASE

const (
	defaultPagePosition = 1
	defaultPageSize     = 10
)

// ProductFilter — параметры фильтрации и пагинации списка товаров.
type ProductFilter struct {
	Position        int
	PageSize        int
	CategoryIDs     []int64
	Search          string // подстрока в названии или описании, без учёта регистра
	MinPrice        *int64 // в копейках
	MaxPrice        *int64
	IncludeInactive bool // только для администраторов
}

// Normalize подставляет значения по умолчанию вместо неположительных.
func (f *ProductFilter) Normalize() {
	if f.Position <= 0 {
		f.Position = defaultPagePosition
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
}

// Offset возвращает смещение выборки, не меньше нуля.
func (f *ProductFilter) Offset() int {
	offset := (f.Position - 1) * f.PageSize
	if offset < 0 {
		offset = 0
	}
	return offset
}

// ProductPage — страница товаров с метаданными пагинации.
type ProductPage struct {
	Data            []*domain.Product
	TotalItems      int
	CurrentPage     int
	PageSize        int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// NewProductPage собирает страницу: totalPages = ceil(total/pageSize),
// hasNext — пока позиция меньше последней страницы.
func NewProductPage(data []*domain.Product, totalItems, position, pageSize int) *ProductPage {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	return &ProductPage{
		Data:            data,
		TotalItems:      totalItems,
		CurrentPage:     position,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasNextPage:     position < totalPages,
		HasPreviousPage: position > 1,
	}
}

// SaveProductReq — запрос на создание или полное обновление товара.
type SaveProductReq struct {
	Name         string
	Description  string
	CategoryID   int64
	Price        int64 // в копейках
	IsActive     bool
	ImageURLs    []string
	MainImageURL string
	MonthConfigs []MonthConfigReq
}

type MonthConfigReq struct {
	MonthNumber  int
	IsAvailable  bool
	SpecialPrice int64
}

// CATEGORY USECASE

type AddCategoryReq struct {
	Name string
}

// USER USECASE

type RegisterReq struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginReq struct {
	Email    string
	Password string
}

// LoginRes — пользователь и выпущенный для него токен доступа.
type LoginRes struct {
	User  *domain.User
	Token string
}

type UpdateUserReq struct {
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
	Password  string // пустая строка — пароль не меняется
}

type ChangePasswordReq struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
}

// ORDER USECASE

type AddOrderReq struct {
	UserID    int64
	OrderDate time.Time
	Items     []AddOrderItemReq
}

type AddOrderItemReq struct {
	ProductID     int64
	Quantity      int
	DepartureDate time.Time
	ReturnDate    time.Time
}

// EMAIL

// OrderConfirmationReq — данные письма с подтверждением заказа.
type OrderConfirmationReq struct {
	To           string
	CustomerName string
	OrderNumber  string
	OrderTotal   int64 // в копейках
	OrderItems   string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const OrderCreatedEvent OutboxEventType = "order.created"

// OutboxEvent — событие, публикуемое в Kafka через outbox-таблицу.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

// UploadImagesReq — запрос на загрузку изображений товара.
// Ключи объектов складываются под префиксом CategoryName/ProductName.
type UploadImagesReq struct {
	CategoryName string
	ProductName  string
	Images       []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewUploadImagesReq(categoryName, productName string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		CategoryName: categoryName,
		ProductName:  productName,
		Images:       images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{ImagesKeys: imagesKeys}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}
