package http

import (
	"net/http"

	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUC
	logger       logger.Logger
}

func NewEmailHandler(emailUsecase usecase.EmailUC, logger logger.Logger) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
		logger:       logger,
	}
}

// sendOrderConfirmation
//
//	@Summary	Отправка письма с подтверждением заказа
//	@Tags		email
//	@Accept		json
//	@Produce	json
//	@Param		request	body	EmailOrderRequestDTO	true	"Данные письма"
//	@Success	200		{object}	MessageResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/email/send-order-confirmation [post]
func (em *EmailHandler) sendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var dto EmailOrderRequestDTO
	if err := decodeJSON(r, &dto); err != nil {
		em.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	total, err := parseAmount(dto.OrderTotal)
	if err != nil {
		em.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	err = em.emailUsecase.SendOrderConfirmation(r.Context(), &usecase.OrderConfirmationReq{
		To:           dto.To,
		CustomerName: dto.CustomerName,
		OrderNumber:  dto.OrderNumber,
		OrderTotal:   total,
		OrderItems:   dto.OrderItems,
	})
	if err != nil {
		em.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, MessageResponse{Message: "Confirmation email sent"})
}
