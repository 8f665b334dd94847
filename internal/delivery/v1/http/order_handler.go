package http

import (
	"fmt"
	"net/http"

	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	emailUsecase usecase.EmailUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, emailUsecase usecase.EmailUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		emailUsecase: emailUsecase,
		logger:       logger,
	}
}

// addOrder
//
//	@Summary		Оформление заказа
//	@Description	Цены и количество ночей пересчитываются на сервере
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		AddOrderDTO	true	"Заказ"
//	@Success		201		{object}	OrderDTO
//	@Failure		400		{object}	ErrorResponse
//	@Router			/orders [post]
func (o *OrderHandler) addOrder(w http.ResponseWriter, r *http.Request) {
	var dto AddOrderDTO
	if err := decodeJSON(r, &dto); err != nil {
		o.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	// Заказ можно оформить только от своего имени
	claims, ok := ClaimsFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthorized)
		return
	}
	if dto.UserID != claims.UserID && !claims.IsAdmin() {
		WriteError(w, e.ErrForbidden)
		return
	}

	req, err := toAddOrderReq(&dto)
	if err != nil {
		o.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	order, err := o.orderUsecase.AddOrder(r.Context(), req)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	o.logger.Infof("Order created: order_id=%d user_id=%d sum=%d items=%d",
		order.ID, order.UserID, order.OrderSum, len(order.Items))

	// Письмо-подтверждение не должно ронять оформление заказа
	o.sendConfirmation(r, claims.Email, order.ID, order.OrderSum)

	WriteSuccess(w, http.StatusCreated, toOrderDTO(order))
}

// getOrderByID
//
//	@Summary	Заказ по идентификатору
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"ID заказа"
//	@Success	200	{object}	OrderDTO
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (o *OrderHandler) getOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	order, err := o.orderUsecase.GetOrderByID(r.Context(), id)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if err := requireSelfOrAdmin(r, order.UserID); err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderDTO(order))
}

// getOrdersByUserID
//
//	@Summary	Заказы пользователя
//	@Tags		orders
//	@Produce	json
//	@Param		userId	path	int	true	"ID пользователя"
//	@Success	200		{array}	OrderDTO
//	@Router		/orders/user/{userId} [get]
func (o *OrderHandler) getOrdersByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := requireSelfOrAdmin(r, userID); err != nil {
		WriteError(w, err)
		return
	}

	orders, err := o.orderUsecase.GetOrdersByUserID(r.Context(), userID)
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderDTOs(orders))
}

// sendConfirmation отправляет письмо-подтверждение; ошибки только
// логируются.
func (o *OrderHandler) sendConfirmation(r *http.Request, email string, orderID, orderSum int64) {
	if email == "" {
		return
	}

	err := o.emailUsecase.SendOrderConfirmation(r.Context(), &usecase.OrderConfirmationReq{
		To:          email,
		OrderNumber: fmt.Sprintf("ORD-%d", orderID),
		OrderTotal:  orderSum,
	})
	if err != nil {
		o.logger.Warnf("Order confirmation email failed: order_id=%d: %s", orderID, err.Error())
	}
}

func toAddOrderReq(dto *AddOrderDTO) (*usecase.AddOrderReq, error) {
	orderDate, err := parseDate(dto.OrderDate)
	if err != nil {
		return nil, err
	}

	req := &usecase.AddOrderReq{
		UserID:    dto.UserID,
		OrderDate: orderDate,
		Items:     make([]usecase.AddOrderItemReq, 0, len(dto.OrderItems)),
	}

	for _, item := range dto.OrderItems {
		departure, err := parseDate(item.DepartureDate)
		if err != nil {
			return nil, err
		}
		ret, err := parseDate(item.ReturnDate)
		if err != nil {
			return nil, err
		}

		req.Items = append(req.Items, usecase.AddOrderItemReq{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			DepartureDate: departure,
			ReturnDate:    ret,
		})
	}

	return req, nil
}
