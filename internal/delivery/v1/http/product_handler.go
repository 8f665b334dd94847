package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// getProducts
//
//	@Summary		Каталог товаров
//	@Description	Возвращает страницу товаров под фильтром, по возрастанию цены
//	@Tags			products
//	@Produce		json
//	@Param			position	query		int		false	"Номер страницы (с 1)"
//	@Param			skip		query		int		false	"Размер страницы"
//	@Param			categoryIds	query		[]int	false	"Фильтр по категориям"
//	@Param			description	query		string	false	"Подстрока в названии или описании"
//	@Param			minPrice	query		number	false	"Минимальная цена"
//	@Param			maxPrice	query		number	false	"Максимальная цена"
//	@Success		200			{object}	PageResponseDTO
//	@Router			/products [get]
func (p *ProductHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	page, err := p.productUsecase.GetProducts(r.Context(), filter)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toPageResponseDTO(page))
}

// health
//
//	@Summary	Проверка живости API
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	map[string]interface{}
//	@Router		/products/health [get]
func (p *ProductHandler) health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"status":    "API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// getProductByID
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int	true	"ID товара"
//	@Success	200	{object}	ProductDTO
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.GetProductByID(r.Context(), id)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(product))
}

// addProduct
//
//	@Summary		Создание товара
//	@Description	Доступно только администраторам
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		SaveProductDTO	true	"Товар"
//	@Success		201		{object}	ProductDTO
//	@Failure		400		{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	var dto SaveProductDTO
	if err := decodeJSON(r, &dto); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	req, err := toSaveProductReq(&dto)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.AddProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductDTO(product))
}

// updateProduct
//
//	@Summary	Полное обновление товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID товара"
//	@Param		product	body		SaveProductDTO	true	"Товар"
//	@Success	200		{object}	ProductDTO
//	@Failure	404		{object}	ErrorResponse
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var dto SaveProductDTO
	if err := decodeJSON(r, &dto); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if dto.ProductID != 0 && dto.ProductID != id {
		WriteError(w, e.Wrap("id mismatch", e.ErrStatusBadRequest))
		return
	}

	req, err := toSaveProductReq(&dto)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), id, req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductDTO(product))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Мягкое удаление: товар скрывается из каталога
//	@Tags			products
//	@Param			id	path	int	true	"ID товара"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseProductFilter собирает фильтр каталога из query-параметров.
// includeInactive разрешён только администраторам.
func parseProductFilter(r *http.Request) (*usecase.ProductFilter, error) {
	query := r.URL.Query()
	filter := &usecase.ProductFilter{
		Search: query.Get("description"),
	}

	var err error
	if filter.Position, err = parseIntQuery(query.Get("position")); err != nil {
		return nil, err
	}
	if filter.PageSize, err = parseIntQuery(query.Get("skip")); err != nil {
		return nil, err
	}

	for _, raw := range query["categoryIds"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, e.Wrap("categoryIds", e.ErrStatusBadRequest)
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	if raw := query.Get("minPrice"); raw != "" {
		cents, err := parsePriceToCents(raw)
		if err != nil {
			return nil, err
		}
		filter.MinPrice = &cents
	}
	if raw := query.Get("maxPrice"); raw != "" {
		cents, err := parsePriceToCents(raw)
		if err != nil {
			return nil, err
		}
		filter.MaxPrice = &cents
	}

	if query.Get("includeInactive") == "true" {
		claims, ok := ClaimsFromCtx(r.Context())
		filter.IncludeInactive = ok && claims.IsAdmin()
	}

	return filter, nil
}

func parseIntQuery(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.Wrap(raw, e.ErrStatusBadRequest)
	}
	return v, nil
}

// toSaveProductReq переводит DTO в запрос usecase-слоя, пересчитывая
// цены в копейки.
func toSaveProductReq(dto *SaveProductDTO) (*usecase.SaveProductReq, error) {
	price, err := parseAmount(dto.Price)
	if err != nil {
		return nil, err
	}

	isActive := true
	if dto.IsActive != nil {
		isActive = *dto.IsActive
	}

	req := &usecase.SaveProductReq{
		Name:         dto.ProductName,
		Description:  dto.Description,
		CategoryID:   dto.CategoryID,
		Price:        price,
		IsActive:     isActive,
		ImageURLs:    dto.ImageURLs,
		MainImageURL: dto.MainImageURL,
		MonthConfigs: make([]usecase.MonthConfigReq, 0, len(dto.MonthConfigs)),
	}

	for _, mc := range dto.MonthConfigs {
		specialPrice, err := parseAmount(mc.SpecialPrice)
		if err != nil {
			return nil, err
		}
		req.MonthConfigs = append(req.MonthConfigs, usecase.MonthConfigReq{
			MonthNumber:  mc.MonthNumber,
			IsAvailable:  mc.IsAvailable,
			SpecialPrice: specialPrice,
		})
	}

	return req, nil
}
