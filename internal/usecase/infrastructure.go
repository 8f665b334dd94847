package usecase

import (
	"context"

	"github.com/vacation-shop/go-backend/internal/domain"
)

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	GetImage(ctx context.Context, key string) (*domain.Image, error)
	ListImages(ctx context.Context, categoryName, productName string) ([]string, error)
	DeleteImage(ctx context.Context, key string) error
	CleanupImages(keys []string)
}

type EmailInfra interface {
	SendOrderConfirmation(ctx context.Context, req *OrderConfirmationReq) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
