package http

import (
	"net/http"

	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type CategoryHandler struct {
	categoryUsecase usecase.CategoryUC
	logger          logger.Logger
}

func NewCategoryHandler(categoryUsecase usecase.CategoryUC, logger logger.Logger) *CategoryHandler {
	return &CategoryHandler{categoryUsecase: categoryUsecase, logger: logger}
}

// getCategories
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	CategoryDTO
//	@Router		/categories [get]
func (c *CategoryHandler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categoryUsecase.GetCategories(r.Context())
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, toCategoryDTO(category))
	}

	WriteSuccess(w, http.StatusOK, dtos)
}

// getCategoryByID
//
//	@Summary	Категория по идентификатору
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		int	true	"ID категории"
//	@Success	200	{object}	CategoryDTO
//	@Failure	404	{object}	ErrorResponse
//	@Router		/categories/{id} [get]
func (c *CategoryHandler) getCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	category, err := c.categoryUsecase.GetCategoryByID(r.Context(), id)
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryDTO(category))
}

// addCategory
//
//	@Summary		Создание категории
//	@Description	Идемпотентно по имени; доступно только администраторам
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			category	body		SaveCategoryDTO	true	"Категория"
//	@Success		201			{object}	CategoryDTO
//	@Failure		400			{object}	ErrorResponse
//	@Router			/categories [post]
func (c *CategoryHandler) addCategory(w http.ResponseWriter, r *http.Request) {
	var dto SaveCategoryDTO
	if err := decodeJSON(r, &dto); err != nil {
		c.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	category, err := c.categoryUsecase.AddCategory(r.Context(), &usecase.AddCategoryReq{Name: dto.CategoryName})
	if err != nil {
		c.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toCategoryDTO(category))
}
