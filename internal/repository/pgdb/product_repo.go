package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/internal/repository/pgdb/converter"
	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv *converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv *converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает страницу товаров под фильтром, отсортированных по
// возрастанию цены, и общее число товаров под фильтром.
func (p *ProductRepo) List(ctx context.Context, filter *usecase.ProductFilter) ([]*domain.Product, int, error) {
	where, args := buildProductWhere(filter)

	countQuery := `SELECT COUNT(*) FROM products` + where

	var total int
	if err := p.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	pageQuery := fmt.Sprintf(`
		SELECT id, name, description, category_id, price, is_active, created_at, updated_at
		FROM products
		%s
		ORDER BY price ASC, id ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, filter.Offset())

	rows, err := p.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, filter.PageSize)
	ids := make([]int64, 0, filter.PageSize)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.CategoryID,
			&model.Price, &model.IsActive, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		products = append(products, p.conv.ToEntity(&model))
		ids = append(ids, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.attachChildren(ctx, products, ids); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, total, nil
}

// GetByID возвращает товар с изображениями и помесячными конфигами.
// Неактивные товары тоже возвращаются.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, category_id, price, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Description, &model.CategoryID,
		&model.Price, &model.IsActive, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product := p.conv.ToEntity(&model)
	if err := p.attachChildren(ctx, []*domain.Product{product}, []int64{id}); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return product, nil
}

// Create сохраняет товар вместе с изображениями и помесячными конфигами.
// Должен вызываться внутри транзакции.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, description, category_id, price, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	model := p.conv.ToModel(product)
	if err := tx.QueryRow(ctx, query,
		model.Name, model.Description, model.CategoryID, model.Price, model.IsActive,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	created := p.conv.ToEntity(model)
	created.Images, err = insertImages(ctx, tx, created.ID, product.Images)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	created.MonthConfigs, err = insertMonthConfigs(ctx, tx, created.ID, product.MonthConfigs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return created, nil
}

// Update целиком заменяет товар: скалярные поля обновляются, дочерние
// строки удаляются и вставляются заново. Должен вызываться внутри
// транзакции.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, category_id = $4, price = $5,
		    is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, category_id, price, is_active, created_at, updated_at
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.Price, product.IsActive,
	).Scan(
		&model.ID, &model.Name, &model.Description, &model.CategoryID,
		&model.Price, &model.IsActive, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, product.ID); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM product_month_configs WHERE product_id = $1`, product.ID); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	updated := p.conv.ToEntity(&model)
	updated.Images, err = insertImages(ctx, tx, updated.ID, product.Images)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	updated.MonthConfigs, err = insertMonthConfigs(ctx, tx, updated.ID, product.MonthConfigs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return updated, nil
}

// SetActive переключает флаг is_active (мягкое удаление и восстановление).
func (p *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	query := `
		UPDATE products
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := p.pool.Exec(ctx, query, id, active)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// attachChildren подгружает изображения и помесячные конфиги для набора
// товаров двумя запросами.
func (p *ProductRepo) attachChildren(ctx context.Context, products []*domain.Product, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	imgQuery := `
		SELECT id, product_id, url, is_main
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, imgQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.ProductImageModel
		if err := rows.Scan(&model.ID, &model.ProductID, &model.URL, &model.IsMain); err != nil {
			return err
		}
		if product, ok := byID[model.ProductID]; ok {
			product.Images = append(product.Images, p.conv.ImageToEntity(&model))
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	mcQuery := `
		SELECT id, product_id, month_number, is_available, special_price
		FROM product_month_configs
		WHERE product_id = ANY($1)
		ORDER BY month_number
	`

	mcRows, err := p.pool.Query(ctx, mcQuery, ids)
	if err != nil {
		return err
	}
	defer mcRows.Close()

	for mcRows.Next() {
		var model converter.MonthConfigModel
		if err := mcRows.Scan(&model.ID, &model.ProductID, &model.MonthNumber, &model.IsAvailable, &model.SpecialPrice); err != nil {
			return err
		}
		if product, ok := byID[model.ProductID]; ok {
			product.MonthConfigs = append(product.MonthConfigs, p.conv.MonthConfigToEntity(&model))
		}
	}

	return mcRows.Err()
}

// buildProductWhere собирает условие WHERE и аргументы под фильтр.
func buildProductWhere(filter *usecase.ProductFilter) (string, []any) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = true")
	}
	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		conditions = append(conditions, fmt.Sprintf("category_id = ANY($%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLikePattern(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	where := " WHERE " + conditions[0]
	for _, cond := range conditions[1:] {
		where += " AND " + cond
	}

	return where, args
}

func insertImages(ctx context.Context, tx pgx.Tx, productID int64, images []domain.ProductImage) ([]domain.ProductImage, error) {
	query := `
		INSERT INTO product_images (product_id, url, is_main)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	inserted := make([]domain.ProductImage, 0, len(images))
	for _, img := range images {
		img.ProductID = productID
		if err := tx.QueryRow(ctx, query, productID, img.URL, img.IsMain).Scan(&img.ID); err != nil {
			return nil, err
		}
		inserted = append(inserted, img)
	}

	return inserted, nil
}

func insertMonthConfigs(ctx context.Context, tx pgx.Tx, productID int64, configs []domain.MonthConfig) ([]domain.MonthConfig, error) {
	query := `
		INSERT INTO product_month_configs (product_id, month_number, is_available, special_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	inserted := make([]domain.MonthConfig, 0, len(configs))
	for _, mc := range configs {
		mc.ProductID = productID
		if err := tx.QueryRow(ctx, query, productID, mc.MonthNumber, mc.IsAvailable, mc.SpecialPrice).Scan(&mc.ID); err != nil {
			return nil, err
		}
		inserted = append(inserted, mc)
	}

	return inserted, nil
}
