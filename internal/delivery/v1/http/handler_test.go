package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacation-shop/go-backend/internal/auth"
	"github.com/vacation-shop/go-backend/internal/cfg"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type fakeProductUC struct {
	usecase.ProductUC
	getProducts    func(ctx context.Context, filter *usecase.ProductFilter) (*usecase.ProductPage, error)
	getProductByID func(ctx context.Context, id int64) (*domain.Product, error)
	addProduct     func(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error)
}

func (f *fakeProductUC) GetProducts(ctx context.Context, filter *usecase.ProductFilter) (*usecase.ProductPage, error) {
	return f.getProducts(ctx, filter)
}

func (f *fakeProductUC) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return f.getProductByID(ctx, id)
}

func (f *fakeProductUC) AddProduct(ctx context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
	return f.addProduct(ctx, req)
}

type fakeUserUC struct {
	usecase.UserUC
	register func(ctx context.Context, req *usecase.RegisterReq) (*domain.User, error)
	login    func(ctx context.Context, req *usecase.LoginReq) (*usecase.LoginRes, error)
}

func (f *fakeUserUC) Register(ctx context.Context, req *usecase.RegisterReq) (*domain.User, error) {
	return f.register(ctx, req)
}

func (f *fakeUserUC) Login(ctx context.Context, req *usecase.LoginReq) (*usecase.LoginRes, error) {
	return f.login(ctx, req)
}

type fakeOrderUC struct {
	usecase.OrderUC
	addOrder          func(ctx context.Context, req *usecase.AddOrderReq) (*domain.Order, error)
	getOrdersByUserID func(ctx context.Context, userID int64) ([]*domain.Order, error)
}

func (f *fakeOrderUC) AddOrder(ctx context.Context, req *usecase.AddOrderReq) (*domain.Order, error) {
	return f.addOrder(ctx, req)
}

func (f *fakeOrderUC) GetOrdersByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return f.getOrdersByUserID(ctx, userID)
}

type fakeEmailUC struct {
	sent []*usecase.OrderConfirmationReq
}

func (f *fakeEmailUC) SendOrderConfirmation(_ context.Context, req *usecase.OrderConfirmationReq) error {
	f.sent = append(f.sent, req)
	return nil
}

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager(&cfg.JWTCfg{Secret: "test-secret", TTL: time.Hour})
}

func newTestRouter(t *testing.T, deps *Deps) *chi.Mux {
	t.Helper()

	log := logger.NewSlogLogger()
	mux := chi.NewRouter()
	router := NewRouter(mux, NewAuthMiddleware(newTestTokens(), log), log)
	router.Init(deps)
	return mux
}

func issueToken(t *testing.T, userID int64, email string, isAdmin bool) string {
	t.Helper()

	token, err := newTestTokens().Issue(userID, email, isAdmin)
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	mux := newTestRouter(t, &Deps{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "API is running", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGetProductByID(t *testing.T) {
	productUC := &fakeProductUC{
		getProductByID: func(_ context.Context, id int64) (*domain.Product, error) {
			if id != 7 {
				return nil, e.ErrProductNotFound
			}
			return &domain.Product{
				ID:         7,
				Name:       "Анталья",
				CategoryID: 2,
				Price:      59999,
				IsActive:   true,
				Images: []domain.ProductImage{
					{ID: 1, ProductID: 7, URL: "https://cdn/antalya.jpg", IsMain: true},
				},
			}, nil
		},
	}
	mux := newTestRouter(t, &Deps{ProductUC: productUC})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var dto ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, int64(7), dto.ProductID)
	assert.Equal(t, "Анталья", dto.ProductName)
	assert.Equal(t, 599.99, dto.Price)
	assert.Equal(t, "https://cdn/antalya.jpg", dto.MainImageURL)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/8", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductsFilter(t *testing.T) {
	var captured *usecase.ProductFilter
	productUC := &fakeProductUC{
		getProducts: func(_ context.Context, filter *usecase.ProductFilter) (*usecase.ProductPage, error) {
			captured = filter
			return usecase.NewProductPage(nil, 0, filter.Position, filter.PageSize), nil
		},
	}
	mux := newTestRouter(t, &Deps{ProductUC: productUC})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/products?position=3&skip=20&categoryIds=1&categoryIds=2&description=beach&minPrice=100.50", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, 3, captured.Position)
	assert.Equal(t, 20, captured.PageSize)
	assert.Equal(t, []int64{1, 2}, captured.CategoryIDs)
	assert.Equal(t, "beach", captured.Search)
	require.NotNil(t, captured.MinPrice)
	assert.Equal(t, int64(10050), *captured.MinPrice)
	assert.Nil(t, captured.MaxPrice)
	assert.False(t, captured.IncludeInactive, "анонимный запрос не видит скрытые товары")
}

func TestGetProductsIncludeInactive(t *testing.T) {
	var captured *usecase.ProductFilter
	productUC := &fakeProductUC{
		getProducts: func(_ context.Context, filter *usecase.ProductFilter) (*usecase.ProductPage, error) {
			captured = filter
			return usecase.NewProductPage(nil, 0, filter.Position, filter.PageSize), nil
		},
	}
	mux := newTestRouter(t, &Deps{ProductUC: productUC})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?includeInactive=true", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 1, "admin@shop.ru", true))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, captured.IncludeInactive)
}

func TestAddProductAuth(t *testing.T) {
	productUC := &fakeProductUC{
		addProduct: func(_ context.Context, req *usecase.SaveProductReq) (*domain.Product, error) {
			return &domain.Product{ID: 1, Name: req.Name, Price: req.Price, IsActive: true}, nil
		},
	}
	mux := newTestRouter(t, &Deps{ProductUC: productUC})

	body := `{"productName":"Сочи","categoryId":1,"price":150.00}`

	// без токена
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// обычный пользователь
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 2, "user@shop.ru", false))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// администратор
	req = httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 1, "admin@shop.ru", true))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto ProductDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "Сочи", dto.ProductName)
	assert.Equal(t, 150.0, dto.Price)
}

func TestRegisterAndLogin(t *testing.T) {
	userUC := &fakeUserUC{
		register: func(_ context.Context, req *usecase.RegisterReq) (*domain.User, error) {
			if req.Email == "taken@shop.ru" {
				return nil, e.ErrEmailTaken
			}
			return &domain.User{ID: 5, FirstName: req.FirstName, Email: req.Email}, nil
		},
		login: func(_ context.Context, req *usecase.LoginReq) (*usecase.LoginRes, error) {
			if req.Password != "Passw0rd" {
				return nil, e.ErrInvalidCredentials
			}
			return &usecase.LoginRes{
				User:  &domain.User{ID: 5, Email: req.Email},
				Token: "signed-token",
			}, nil
		},
	}
	mux := newTestRouter(t, &Deps{UserUC: userUC})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users",
		bytes.NewBufferString(`{"firstName":"Ivan","email":"ivan@shop.ru","password":"Passw0rd"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, int64(5), user.UserID)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users",
		bytes.NewBufferString(`{"email":"taken@shop.ru","password":"Passw0rd"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewBufferString(`{"email":"ivan@shop.ru","password":"Passw0rd"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var login LoginResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "signed-token", login.Token)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewBufferString(`{"email":"ivan@shop.ru","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddOrder(t *testing.T) {
	emailUC := &fakeEmailUC{}
	orderUC := &fakeOrderUC{
		addOrder: func(_ context.Context, req *usecase.AddOrderReq) (*domain.Order, error) {
			return &domain.Order{
				ID:        11,
				UserID:    req.UserID,
				OrderDate: req.OrderDate,
				OrderSum:  90000,
				Status:    domain.StatusWaiting,
				Items: []domain.OrderItem{
					{
						ProductID:     7,
						ProductName:   "Анталья",
						Quantity:      2,
						DepartureDate: req.Items[0].DepartureDate,
						ReturnDate:    req.Items[0].ReturnDate,
						NightsCount:   3,
						PricePerUnit:  15000,
					},
				},
			}, nil
		},
	}
	mux := newTestRouter(t, &Deps{OrderUC: orderUC, EmailUC: emailUC})

	body := `{
		"userId": 5,
		"orderDate": "2026-07-01T00:00:00Z",
		"orderItems": [
			{"productId": 7, "quantity": 2, "departureDate": "2026-07-10", "returnDate": "2026-07-13"}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 5, "ivan@shop.ru", false))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var dto OrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, int64(11), dto.OrderID)
	assert.Equal(t, 900.0, dto.OrderSum)
	assert.Equal(t, domain.StatusWaiting, dto.Status)
	require.Len(t, dto.OrderItems, 1)
	assert.Equal(t, "2026-07-10", dto.OrderItems[0].DepartureDate)
	assert.Equal(t, 3, dto.OrderItems[0].NightsCount)

	require.Len(t, emailUC.sent, 1)
	assert.Equal(t, "ivan@shop.ru", emailUC.sent[0].To)
	assert.Equal(t, int64(90000), emailUC.sent[0].OrderTotal)
}

func TestAddOrderForAnotherUser(t *testing.T) {
	mux := newTestRouter(t, &Deps{OrderUC: &fakeOrderUC{}, EmailUC: &fakeEmailUC{}})

	body := `{"userId": 9, "orderItems": [{"productId": 7, "quantity": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 5, "ivan@shop.ru", false))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetOrdersByUserID(t *testing.T) {
	orderUC := &fakeOrderUC{
		getOrdersByUserID: func(_ context.Context, userID int64) ([]*domain.Order, error) {
			return []*domain.Order{{ID: 1, UserID: userID, Status: domain.StatusCompleted}}, nil
		},
	}
	mux := newTestRouter(t, &Deps{OrderUC: orderUC})

	// свои заказы
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/user/5", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 5, "ivan@shop.ru", false))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []OrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusCompleted, orders[0].Status)

	// чужие заказы
	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders/user/9", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 5, "ivan@shop.ru", false))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// администратору можно
	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders/user/9", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 1, "admin@shop.ru", true))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSendOrderConfirmationEndpoint(t *testing.T) {
	emailUC := &fakeEmailUC{}
	mux := newTestRouter(t, &Deps{EmailUC: emailUC})

	body := `{"to":"ivan@shop.ru","customerName":"Ivan","orderNumber":"ORD-11","orderTotal":900.00,"orderItems":"Анталья x2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/email/send-order-confirmation", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+issueToken(t, 5, "ivan@shop.ru", false))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, emailUC.sent, 1)
	assert.Equal(t, "ORD-11", emailUC.sent[0].OrderNumber)
	assert.Equal(t, int64(90000), emailUC.sent[0].OrderTotal)
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	mux := newTestRouter(t, &Deps{OrderUC: &fakeOrderUC{}})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/user/5", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
