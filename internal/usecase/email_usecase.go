package usecase

import (
	"context"

	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// EmailUseCase отправляет письма-подтверждения заказов.
type EmailUseCase struct {
	emailInfra EmailInfra
	logger     logger.Logger
}

func NewEmailUC(emailInfra EmailInfra, logger logger.Logger) *EmailUseCase {
	return &EmailUseCase{
		emailInfra: emailInfra,
		logger:     logger,
	}
}

func (em *EmailUseCase) SendOrderConfirmation(ctx context.Context, req *OrderConfirmationReq) error {
	const op = "EmailUseCase.SendOrderConfirmation"

	if req.To == "" {
		return e.Wrap(op, e.ErrEmailRequired)
	}
	if !emailRe.MatchString(req.To) {
		return e.Wrap(op, e.ErrInvalidEmail)
	}

	if err := em.emailInfra.SendOrderConfirmation(ctx, req); err != nil {
		return e.Wrap(op, err)
	}

	em.logger.Infof("Order confirmation sent: order=%s to=%s", req.OrderNumber, req.To)

	return nil
}
