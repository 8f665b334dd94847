package usecase

import (
	"context"
	"encoding/json"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// OrderUseCase реализует оформление и чтение заказов, а также
// фоновый пересчёт их статусов.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	dbPool      transaction.Transactional
	sweepBatch  int
	logger      logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	sweepBatch int,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		dbPool:      dbPool,
		sweepBatch:  sweepBatch,
		logger:      logger,
	}
}

// orderCreatedPayload — тело события order.created для Kafka.
type orderCreatedPayload struct {
	EventID   string              `json:"event_id"`
	OrderID   int64               `json:"order_id"`
	UserID    int64               `json:"user_id"`
	OrderSum  int64               `json:"order_sum"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []orderItemSnapshot `json:"items"`
}

type orderItemSnapshot struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	NightsCount   int    `json:"nights_count"`
	PricePerUnit  int64  `json:"price_per_unit"`
}

// AddOrder оформляет заказ: цены и число ночей пересчитываются на
// сервере по текущим данным товаров, заказ с позициями и outbox-событие
// сохраняются в одной транзакции.
func (o *OrderUseCase) AddOrder(ctx context.Context, req *AddOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.AddOrder"

	var err error
	if err = o.validateOrder(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	items, orderSum, err := o.buildItems(ctx, req.Items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	order := domain.NewOrder(req.UserID, orderDate, items)
	order.OrderSum = orderSum
	order.Status = domain.DeriveOrderStatus(time.Now(), items)

	created, err := o.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = o.enqueueOrderCreated(ctx, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

func (o *OrderUseCase) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	const op = "OrderUseCase.GetOrderByID"

	order, err := o.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return order, nil
}

// GetOrdersByUserID возвращает заказы пользователя, новые первыми.
// Статусы пересчитываются на текущую дату для отображения, без записи
// в БД — этим занимается фоновый проход.
func (o *OrderUseCase) GetOrdersByUserID(ctx context.Context, userID int64) ([]*domain.Order, error) {
	const op = "OrderUseCase.GetOrdersByUserID"

	if userID <= 0 {
		return nil, e.Wrap(op, e.ErrUserIDRequired)
	}

	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	now := time.Now()
	for _, order := range orders {
		order.Status = domain.DeriveOrderStatus(now, order.Items)
	}

	return orders, nil
}

// SweepStatuses пересчитывает статусы всех незавершённых заказов и
// сохраняет изменившиеся. Перезапись идемпотентна: повторный проход
// по тем же данным ничего не меняет.
func (o *OrderUseCase) SweepStatuses(ctx context.Context) (int, error) {
	const op = "OrderUseCase.SweepStatuses"

	orders, err := o.orderRepo.ListActive(ctx, o.sweepBatch)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	now := time.Now()
	updated := 0
	for _, order := range orders {
		status := domain.DeriveOrderStatus(now, order.Items)
		if status == order.Status {
			continue
		}

		if err := o.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
			// пропускаем заказ до следующего прохода
			o.logger.Warnf("Failed to update order status: order_id=%d: %v", order.ID, e.Wrap(op, err))
			continue
		}
		updated++
	}

	return updated, nil
}

// buildItems превращает запрос в позиции заказа со снимками данных
// товара и серверным расчётом цены.
func (o *OrderUseCase) buildItems(ctx context.Context, reqs []AddOrderItemReq) ([]domain.OrderItem, int64, error) {
	items := make([]domain.OrderItem, 0, len(reqs))
	var orderSum int64

	for _, ir := range reqs {
		product, err := o.productRepo.GetByID(ctx, ir.ProductID)
		if err != nil {
			return nil, 0, err
		}

		nights := domain.Nights(ir.DepartureDate, ir.ReturnDate)
		unitPrice := domain.EffectiveNightlyPrice(ir.DepartureDate, product.Price, product.MonthConfigs)

		items = append(items, domain.OrderItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ImageURL:      product.MainImageURL(),
			Quantity:      ir.Quantity,
			DepartureDate: ir.DepartureDate,
			ReturnDate:    ir.ReturnDate,
			NightsCount:   nights,
			PricePerUnit:  unitPrice,
		})

		orderSum += domain.TotalAmount(ir.DepartureDate, ir.ReturnDate, product.Price, ir.Quantity, product.MonthConfigs)
	}

	return items, orderSum, nil
}

// enqueueOrderCreated кладёт событие order.created в outbox в рамках
// текущей транзакции.
func (o *OrderUseCase) enqueueOrderCreated(ctx context.Context, order *domain.Order) error {
	eventID := uuid.NewString()

	snapshot := make([]orderItemSnapshot, 0, len(order.Items))
	for _, item := range order.Items {
		snapshot = append(snapshot, orderItemSnapshot{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			DepartureDate: item.DepartureDate.Format(time.DateOnly),
			ReturnDate:    item.ReturnDate.Format(time.DateOnly),
			NightsCount:   item.NightsCount,
			PricePerUnit:  item.PricePerUnit,
		})
	}

	payload, err := json.Marshal(orderCreatedPayload{
		EventID:   eventID,
		OrderID:   order.ID,
		UserID:    order.UserID,
		OrderSum:  order.OrderSum,
		Status:    order.Status,
		CreatedAt: order.OrderDate,
		Items:     snapshot,
	})
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(eventID, OrderCreatedEvent, order.ID, payload))
	return err
}

// validateOrder проверяет корректность запроса на оформление заказа.
func (o *OrderUseCase) validateOrder(req *AddOrderReq) error {
	if req.UserID <= 0 {
		return e.ErrUserIDRequired
	}

	if len(req.Items) == 0 {
		return e.ErrOrderHasNoItems
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return e.ErrQuantityMustBePositive
		}
		if item.DepartureDate.IsZero() || item.ReturnDate.IsZero() {
			return e.ErrInvalidDateRange
		}
		if item.ReturnDate.Before(item.DepartureDate) {
			return e.ErrInvalidDateRange
		}
	}

	return nil
}
