package usecase

import (
	"context"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	cacheRepo    CacheRepository
	logger       logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

// GetProducts возвращает страницу каталога под фильтром запроса.
func (p *ProductUseCase) GetProducts(ctx context.Context, filter *ProductFilter) (*ProductPage, error) {
	const op = "ProductUseCase.GetProducts"

	filter.Normalize()

	products, total, err := p.productRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductPage(products, total, filter.Position, filter.PageSize), nil
}

// GetProductByID возвращает товар, включая неактивный — для отображения
// исторических заказов. Ответ проходит через кэш.
func (p *ProductUseCase) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.GetProductByID"

	// Поиск товара в кэше; промах и ошибка кэша равнозначны
	cached, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("Product cache lookup failed: %v", e.Wrap(op, err))
	}
	if cached != nil {
		return cached, nil
	}

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление товара в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProduct(bgCtx, product); err != nil {
			p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// AddProduct создаёт товар вместе с изображениями и помесячными
// конфигами в одной транзакции. Новые товары активны по умолчанию.
func (p *ProductUseCase) AddProduct(ctx context.Context, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.AddProduct"

	var err error
	if err = p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if _, err = p.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return nil, e.Wrap(op, err)
	}

	product := domain.NewProduct(req.Name, req.Description, req.Price, req.CategoryID)
	product.Images = buildImages(req.ImageURLs, req.MainImageURL)
	product.MonthConfigs = buildMonthConfigs(req.MonthConfigs)

	created, err := p.productRepo.Create(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct целиком заменяет скалярные поля, изображения и
// помесячные конфиги товара.
func (p *ProductUseCase) UpdateProduct(ctx context.Context, id int64, req *SaveProductReq) (*domain.Product, error) {
	const op = "ProductUseCase.UpdateProduct"

	var err error
	if err = p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	existing, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.CategoryID = req.CategoryID
	existing.Price = req.Price
	existing.IsActive = req.IsActive
	existing.Images = buildImages(req.ImageURLs, req.MainImageURL)
	existing.MonthConfigs = buildMonthConfigs(req.MonthConfigs)

	updated, err := p.productRepo.Update(ctx, existing)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return updated, nil
}

// DeleteProduct выполняет мягкое удаление: товар помечается неактивным,
// строка остаётся ради исторических заказов.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "ProductUseCase.DeleteProduct"

	if _, err := p.productRepo.GetByID(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err := p.productRepo.SetActive(ctx, id, false); err != nil {
		return e.Wrap(op, err)
	}

	if err := p.cacheRepo.DeleteProducts(ctx, []int64{id}); err != nil {
		p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return nil
}

// validateProduct проверяет корректность входных данных товара.
func (p *ProductUseCase) validateProduct(req *SaveProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return e.ErrPriceMustBePositive
	}

	mainCount := 0
	for _, url := range req.ImageURLs {
		if url == req.MainImageURL && req.MainImageURL != "" {
			mainCount++
		}
	}
	if mainCount > 1 {
		return e.ErrMultipleMainImages
	}

	seen := make(map[int]struct{}, len(req.MonthConfigs))
	for _, mc := range req.MonthConfigs {
		if mc.MonthNumber < 1 || mc.MonthNumber > 12 {
			return e.ErrInvalidMonthNumber
		}
		if _, ok := seen[mc.MonthNumber]; ok {
			return e.ErrDuplicateMonthConfig
		}
		seen[mc.MonthNumber] = struct{}{}
	}

	return nil
}

// buildImages собирает изображения товара; главным становится URL из
// MainImageURL, а при его отсутствии — первое изображение.
func buildImages(urls []string, mainURL string) []domain.ProductImage {
	images := make([]domain.ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, domain.ProductImage{
			URL:    url,
			IsMain: url == mainURL || (i == 0 && mainURL == ""),
		})
	}
	return images
}

func buildMonthConfigs(reqs []MonthConfigReq) []domain.MonthConfig {
	configs := make([]domain.MonthConfig, 0, len(reqs))
	for _, mc := range reqs {
		configs = append(configs, domain.MonthConfig{
			MonthNumber:  mc.MonthNumber,
			IsAvailable:  mc.IsAvailable,
			SpecialPrice: mc.SpecialPrice,
		})
	}
	return configs
}
