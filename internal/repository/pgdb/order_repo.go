package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/internal/repository/pgdb/converter"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/tr"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv *converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv *converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

// Create сохраняет заказ вместе с позициями. Должен вызываться внутри
// транзакции.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (user_id, order_date, order_sum, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	created := *order
	if err := tx.QueryRow(ctx, query,
		order.UserID, order.OrderDate, order.OrderSum, order.Status,
	).Scan(&created.ID); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemQuery := `
		INSERT INTO order_items (
			order_id, product_id, product_name, image_url, quantity,
			departure_date, return_date, nights_count, price_per_unit
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	created.Items = make([]domain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		item.OrderID = created.ID
		if err := tx.QueryRow(ctx, itemQuery,
			created.ID, item.ProductID, item.ProductName, item.ImageURL, item.Quantity,
			item.DepartureDate, item.ReturnDate, item.NightsCount, item.PricePerUnit,
		).Scan(&item.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		created.Items = append(created.Items, item)
	}

	return &created, nil
}

func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, user_id, order_date, order_sum, status
		FROM orders
		WHERE id = $1
	`

	var model converter.OrderModel
	err := o.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.UserID, &model.OrderDate, &model.OrderSum, &model.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.loadItems(ctx, []int64{id})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model, items[id]), nil
}

// GetByUserID возвращает заказы пользователя с позициями, новые первыми.
func (o *OrderRepo) GetByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, order_date, order_sum, status
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC, id DESC
	`

	rows, err := o.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, ids, err := scanOrders(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.assemble(ctx, models, ids)
}

// ListActive возвращает заказы, ещё не достигшие статуса Completed,
// вместе с позициями. Старые заказы идут первыми, чтобы фоновый проход
// добирался до них раньше.
func (o *OrderRepo) ListActive(ctx context.Context, limit int) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, order_date, order_sum, status
		FROM orders
		WHERE status <> $1
		ORDER BY order_date ASC, id ASC
		LIMIT $2
	`

	rows, err := o.pool.Query(ctx, query, domain.StatusCompleted, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, ids, err := scanOrders(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.assemble(ctx, models, ids)
}

func (o *OrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE orders
		SET status = $2
		WHERE id = $1
	`

	result, err := o.pool.Exec(ctx, query, id, status)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrOrderNotFound)
	}

	return nil
}

func (o *OrderRepo) assemble(ctx context.Context, models []*converter.OrderModel, ids []int64) ([]*domain.Order, error) {
	items, err := o.loadItems(ctx, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	orders := make([]*domain.Order, 0, len(models))
	for _, model := range models {
		orders = append(orders, o.conv.ToEntity(model, items[model.ID]))
	}

	return orders, nil
}

// loadItems подгружает позиции для набора заказов одним запросом.
func (o *OrderRepo) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]*converter.OrderItemModel, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, order_id, product_id, product_name, image_url, quantity,
		       departure_date, return_date, nights_count, price_per_unit
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := o.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int64][]*converter.OrderItemModel, len(orderIDs))
	for rows.Next() {
		var model converter.OrderItemModel
		if err := rows.Scan(
			&model.ID, &model.OrderID, &model.ProductID, &model.ProductName,
			&model.ImageURL, &model.Quantity, &model.DepartureDate, &model.ReturnDate,
			&model.NightsCount, &model.PricePerUnit,
		); err != nil {
			return nil, err
		}
		items[model.OrderID] = append(items[model.OrderID], &model)
	}

	return items, rows.Err()
}

func scanOrders(rows pgx.Rows) ([]*converter.OrderModel, []int64, error) {
	models := make([]*converter.OrderModel, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(&model.ID, &model.UserID, &model.OrderDate, &model.OrderSum, &model.Status); err != nil {
			return nil, nil, err
		}
		models = append(models, &model)
		ids = append(ids, model.ID)
	}

	return models, ids, rows.Err()
}
