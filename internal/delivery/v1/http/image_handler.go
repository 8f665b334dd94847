package http

import (
	"net/http"
	"strconv"

	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

// Лимиты на multipart-запрос целиком и на память парсера формы.
const (
	maxUploadBodySize   = 150 << 20
	multipartFormMemory = 32 << 20
)

type ImageHandler struct {
	imagesInfra usecase.ImagesInfra
	logger      logger.Logger
}

func NewImageHandler(imagesInfra usecase.ImagesInfra, logger logger.Logger) *ImageHandler {
	return &ImageHandler{
		imagesInfra: imagesInfra,
		logger:      logger,
	}
}

// uploadImages
//
//	@Summary		Загрузка изображений товара
//	@Description	multipart/form-data: поля category, product и до 10 файлов images
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			category	formData	string	true	"Категория"
//	@Param			product		formData	string	true	"Товар"
//	@Param			images		formData	file	true	"Изображения"
//	@Success		201			{object}	UploadImagesResponseDTO
//	@Failure		400			{object}	ErrorResponse
//	@Router			/images [post]
func (i *ImageHandler) uploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)

	if err := ensureMultipartForm(r, multipartFormMemory); err != nil {
		i.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	meta, err := parseImageUploadForm(r)
	if err != nil {
		i.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		i.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := i.imagesInfra.UploadImages(r.Context(),
		usecase.NewUploadImagesReq(meta.CategoryName, meta.ProductName, images))
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	i.logger.Infof("Images uploaded: category=%s product=%s count=%d",
		meta.CategoryName, meta.ProductName, len(res.ImagesKeys))

	WriteSuccess(w, http.StatusCreated, UploadImagesResponseDTO{ImagesKeys: res.ImagesKeys})
}

// getImage
//
//	@Summary	Получение изображения по ключу
//	@Tags		images
//	@Produce	image/jpeg
//	@Param		key	query		string	true	"Ключ объекта"
//	@Success	200	{file}		binary
//	@Failure	404	{object}	ErrorResponse
//	@Router		/images [get]
func (i *ImageHandler) getImage(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		WriteError(w, e.ErrInvalidObjectKey)
		return
	}

	image, err := i.imagesInfra.GetImage(r.Context(), key)
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if image.ContentType != nil {
		w.Header().Set("Content-Type", *image.ContentType)
	}
	if image.Size != nil {
		w.Header().Set("Content-Length", strconv.FormatInt(*image.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(image.Bytes)
}

// listImages
//
//	@Summary	Ключи изображений товара
//	@Tags		images
//	@Produce	json
//	@Param		category	query		string	true	"Категория"
//	@Param		product		query		string	true	"Товар"
//	@Success	200			{object}	ImageKeysDTO
//	@Router		/images/list [get]
func (i *ImageHandler) listImages(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	product := r.URL.Query().Get("product")
	if category == "" || product == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	keys, err := i.imagesInfra.ListImages(r.Context(), category, product)
	if err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ImageKeysDTO{Keys: keys})
}

// deleteImage
//
//	@Summary	Удаление изображения
//	@Tags		images
//	@Param		key	query	string	true	"Ключ объекта"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/images [delete]
func (i *ImageHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		WriteError(w, e.ErrInvalidObjectKey)
		return
	}

	if err := i.imagesInfra.DeleteImage(r.Context(), key); err != nil {
		i.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
