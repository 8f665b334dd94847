package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// FAKES

type fakeProductRepo struct {
	ProductRepository
	list      func(ctx context.Context, filter *ProductFilter) ([]*domain.Product, int, error)
	getByID   func(ctx context.Context, id int64) (*domain.Product, error)
	setActive func(ctx context.Context, id int64, active bool) error
}

func (f *fakeProductRepo) List(ctx context.Context, filter *ProductFilter) ([]*domain.Product, int, error) {
	return f.list(ctx, filter)
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return f.getByID(ctx, id)
}

func (f *fakeProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return f.setActive(ctx, id, active)
}

type fakeCacheRepo struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	deleted  []int64
	set      chan struct{}
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{
		products: make(map[int64]*domain.Product),
		set:      make(chan struct{}, 1),
	}
}

func (f *fakeCacheRepo) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id], nil
}

func (f *fakeCacheRepo) SetProduct(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	f.products[product.ID] = product
	f.mu.Unlock()
	f.set <- struct{}{}
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(_ context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.products, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

type fakeOrderRepo struct {
	OrderRepository
	getByUserID  func(ctx context.Context, userID int64) ([]*domain.Order, error)
	listActive   func(ctx context.Context, limit int) ([]*domain.Order, error)
	updateStatus func(ctx context.Context, id int64, status string) error
}

func (f *fakeOrderRepo) GetByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return f.getByUserID(ctx, userID)
}

func (f *fakeOrderRepo) ListActive(ctx context.Context, limit int) ([]*domain.Order, error) {
	return f.listActive(ctx, limit)
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return f.updateStatus(ctx, id, status)
}

type fakeUserRepo struct {
	UserRepository
	getByID func(ctx context.Context, id int64) (*domain.User, error)
	update  func(ctx context.Context, user *domain.User) (*domain.User, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.getByID(ctx, id)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	return f.update(ctx, user)
}

// PAGINATION

func TestProductFilterNormalize(t *testing.T) {
	filter := &ProductFilter{Position: 0, PageSize: -5}
	filter.Normalize()

	assert.Equal(t, 1, filter.Position)
	assert.Equal(t, 10, filter.PageSize)

	filter = &ProductFilter{Position: 3, PageSize: 20}
	filter.Normalize()

	assert.Equal(t, 3, filter.Position)
	assert.Equal(t, 20, filter.PageSize)
}

func TestProductFilterOffset(t *testing.T) {
	tests := []struct {
		name     string
		position int
		pageSize int
		want     int
	}{
		{"first page", 1, 10, 0},
		{"third page", 3, 10, 20},
		{"custom size", 2, 25, 25},
		{"never negative", -4, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := &ProductFilter{Position: tt.position, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, filter.Offset())
		})
	}
}

func TestNewProductPage(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		position   int
		pageSize   int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of three", 25, 1, 10, 3, true, false},
		{"middle page", 25, 2, 10, 3, true, true},
		{"last partial page", 25, 3, 10, 3, false, true},
		{"exact fit", 20, 2, 10, 2, false, true},
		{"single page", 7, 1, 10, 1, false, false},
		{"empty catalog", 0, 1, 10, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewProductPage(nil, tt.totalItems, tt.position, tt.pageSize)

			assert.Equal(t, tt.totalPages, page.TotalPages)
			assert.Equal(t, tt.hasNext, page.HasNextPage)
			assert.Equal(t, tt.hasPrev, page.HasPreviousPage)
			assert.Equal(t, tt.totalItems, page.TotalItems)
		})
	}
}

// PRODUCT USECASE

func TestGetProductsReturnsPage(t *testing.T) {
	products := []*domain.Product{
		{ID: 1, Name: "Bali", Price: 10000},
		{ID: 2, Name: "Crete", Price: 15000},
	}

	repo := &fakeProductRepo{
		list: func(_ context.Context, filter *ProductFilter) ([]*domain.Product, int, error) {
			require.Equal(t, 1, filter.Position)
			require.Equal(t, 10, filter.PageSize)
			return products, 25, nil
		},
	}

	uc := NewProductUC(repo, nil, nil, newFakeCacheRepo(), logger.NewSlogLogger())

	page, err := uc.GetProducts(context.Background(), &ProductFilter{})
	require.NoError(t, err)

	assert.Equal(t, products, page.Data)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNextPage)
}

func TestGetProductByIDCache(t *testing.T) {
	product := &domain.Product{ID: 7, Name: "Santorini", Price: 12000}

	repoCalls := 0
	repo := &fakeProductRepo{
		getByID: func(_ context.Context, id int64) (*domain.Product, error) {
			repoCalls++
			require.EqualValues(t, 7, id)
			return product, nil
		},
	}
	cache := newFakeCacheRepo()

	uc := NewProductUC(repo, nil, nil, cache, logger.NewSlogLogger())

	got, err := uc.GetProductByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, product, got)
	assert.Equal(t, 1, repoCalls)

	// дождаться фоновой записи в кэш
	select {
	case <-cache.set:
	case <-time.After(time.Second):
		t.Fatal("product was not cached")
	}

	got, err = uc.GetProductByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, product, got)
	assert.Equal(t, 1, repoCalls, "second lookup must be served from cache")
}

func TestDeleteProductDeactivates(t *testing.T) {
	var deactivated int64
	repo := &fakeProductRepo{
		getByID: func(_ context.Context, id int64) (*domain.Product, error) {
			return &domain.Product{ID: id, IsActive: true}, nil
		},
		setActive: func(_ context.Context, id int64, active bool) error {
			require.False(t, active)
			deactivated = id
			return nil
		},
	}
	cache := newFakeCacheRepo()

	uc := NewProductUC(repo, nil, nil, cache, logger.NewSlogLogger())

	err := uc.DeleteProduct(context.Background(), 42)
	require.NoError(t, err)

	assert.EqualValues(t, 42, deactivated)
	assert.Equal(t, []int64{42}, cache.deleted)
}

func TestAddProductValidation(t *testing.T) {
	uc := NewProductUC(nil, nil, nil, nil, logger.NewSlogLogger())

	tests := []struct {
		name string
		req  *SaveProductReq
		want error
	}{
		{
			name: "empty name",
			req:  &SaveProductReq{Name: "   ", Price: 100},
			want: e.ErrProductNameRequired,
		},
		{
			name: "zero price",
			req:  &SaveProductReq{Name: "Bali", Price: 0},
			want: e.ErrPriceMustBePositive,
		},
		{
			name: "negative price",
			req:  &SaveProductReq{Name: "Bali", Price: -100},
			want: e.ErrPriceMustBePositive,
		},
		{
			name: "month out of range",
			req: &SaveProductReq{Name: "Bali", Price: 100, MonthConfigs: []MonthConfigReq{
				{MonthNumber: 13},
			}},
			want: e.ErrInvalidMonthNumber,
		},
		{
			name: "duplicate month",
			req: &SaveProductReq{Name: "Bali", Price: 100, MonthConfigs: []MonthConfigReq{
				{MonthNumber: 7}, {MonthNumber: 7},
			}},
			want: e.ErrDuplicateMonthConfig,
		},
		{
			name: "duplicate main image",
			req: &SaveProductReq{
				Name:         "Bali",
				Price:        100,
				ImageURLs:    []string{"a.jpg", "a.jpg"},
				MainImageURL: "a.jpg",
			},
			want: e.ErrMultipleMainImages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AddProduct(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// ORDER USECASE

func TestAddOrderValidation(t *testing.T) {
	uc := NewOrderUC(nil, nil, nil, nil, 500, logger.NewSlogLogger())

	departure := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2024, 7, 13, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *AddOrderReq
		want error
	}{
		{
			name: "missing user",
			req:  &AddOrderReq{Items: []AddOrderItemReq{{ProductID: 1, Quantity: 1, DepartureDate: departure, ReturnDate: ret}}},
			want: e.ErrUserIDRequired,
		},
		{
			name: "no items",
			req:  &AddOrderReq{UserID: 1},
			want: e.ErrOrderHasNoItems,
		},
		{
			name: "zero quantity",
			req:  &AddOrderReq{UserID: 1, Items: []AddOrderItemReq{{ProductID: 1, DepartureDate: departure, ReturnDate: ret}}},
			want: e.ErrQuantityMustBePositive,
		},
		{
			name: "missing dates",
			req:  &AddOrderReq{UserID: 1, Items: []AddOrderItemReq{{ProductID: 1, Quantity: 1}}},
			want: e.ErrInvalidDateRange,
		},
		{
			name: "return before departure",
			req:  &AddOrderReq{UserID: 1, Items: []AddOrderItemReq{{ProductID: 1, Quantity: 1, DepartureDate: ret, ReturnDate: departure}}},
			want: e.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AddOrder(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetOrdersByUserIDRecomputesStatus(t *testing.T) {
	past := time.Now().AddDate(0, 0, -10)
	pastReturn := time.Now().AddDate(0, 0, -5)

	repo := &fakeOrderRepo{
		getByUserID: func(_ context.Context, userID int64) ([]*domain.Order, error) {
			require.EqualValues(t, 5, userID)
			return []*domain.Order{
				{
					ID:     1,
					UserID: 5,
					Status: domain.StatusWaiting, // устаревший статус в БД
					Items: []domain.OrderItem{
						{DepartureDate: past, ReturnDate: pastReturn},
					},
				},
			}, nil
		},
	}

	uc := NewOrderUC(repo, nil, nil, nil, 500, logger.NewSlogLogger())

	orders, err := uc.GetOrdersByUserID(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, domain.StatusCompleted, orders[0].Status)
}

func TestSweepStatuses(t *testing.T) {
	now := time.Now()

	orders := []*domain.Order{
		{ // отпуск начался, статус устарел
			ID:     1,
			Status: domain.StatusWaiting,
			Items:  []domain.OrderItem{{DepartureDate: now.AddDate(0, 0, -1), ReturnDate: now.AddDate(0, 0, 3)}},
		},
		{ // статус актуален, запись не нужна
			ID:     2,
			Status: domain.StatusWaiting,
			Items:  []domain.OrderItem{{DepartureDate: now.AddDate(0, 0, 5), ReturnDate: now.AddDate(0, 0, 9)}},
		},
		{ // отпуск завершён
			ID:     3,
			Status: domain.StatusInVacation,
			Items:  []domain.OrderItem{{DepartureDate: now.AddDate(0, 0, -9), ReturnDate: now.AddDate(0, 0, -2)}},
		},
	}

	updates := make(map[int64]string)
	repo := &fakeOrderRepo{
		listActive: func(_ context.Context, limit int) ([]*domain.Order, error) {
			require.Equal(t, 500, limit)
			return orders, nil
		},
		updateStatus: func(_ context.Context, id int64, status string) error {
			updates[id] = status
			return nil
		},
	}

	uc := NewOrderUC(repo, nil, nil, nil, 500, logger.NewSlogLogger())

	updated, err := uc.SweepStatuses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, updated)
	assert.Equal(t, domain.StatusInVacation, updates[1])
	assert.Equal(t, domain.StatusCompleted, updates[3])
	assert.NotContains(t, updates, int64(2))
}

func TestUpdateUserEmailValidation(t *testing.T) {
	existing := &domain.User{ID: 4, Email: "ivan@shop.ru"}

	repo := &fakeUserRepo{
		getByID: func(_ context.Context, id int64) (*domain.User, error) {
			require.Equal(t, int64(4), id)
			return existing, nil
		},
		update: func(_ context.Context, user *domain.User) (*domain.User, error) {
			return user, nil
		},
	}

	uc := NewUserUC(repo, nil, logger.NewSlogLogger())

	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"empty email", "", e.ErrEmailRequired},
		{"missing domain", "ivan@", e.ErrInvalidEmail},
		{"no at sign", "ivan.shop.ru", e.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.UpdateUser(context.Background(), 4, &UpdateUserReq{Email: tt.email})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	user, err := uc.UpdateUser(context.Background(), 4, &UpdateUserReq{
		FirstName: "Ivan",
		Email:     "  Ivan.Petrov@Shop.RU ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ivan.petrov@shop.ru", user.Email)
}
