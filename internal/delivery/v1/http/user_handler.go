package http

import (
	"net/http"

	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type UserHandler struct {
	userUsecase usecase.UserUC
	logger      logger.Logger
}

func NewUserHandler(userUsecase usecase.UserUC, logger logger.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger}
}

// register
//
//	@Summary		Регистрация пользователя
//	@Description	Проверяет email и сложность пароля, хранит bcrypt-хэш
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		RegisterDTO	true	"Пользователь"
//	@Success		201		{object}	UserDTO
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/users [post]
func (u *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := decodeJSON(r, &dto); err != nil {
		u.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.Register(r.Context(), &usecase.RegisterReq{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Password:  dto.Password,
	})
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toUserDTO(user))
}

// login
//
//	@Summary	Вход пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		LoginDTO	true	"Учётные данные"
//	@Success	200			{object}	LoginResponseDTO
//	@Failure	401			{object}	ErrorResponse
//	@Router		/users/login [post]
func (u *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := decodeJSON(r, &dto); err != nil {
		u.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := u.userUsecase.Login(r.Context(), &usecase.LoginReq{
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, LoginResponseDTO{
		User:  toUserDTO(res.User),
		Token: res.Token,
	})
}

// getUserByID
//
//	@Summary	Пользователь по идентификатору
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"ID пользователя"
//	@Success	200	{object}	UserDTO
//	@Failure	404	{object}	ErrorResponse
//	@Router		/users/{id} [get]
func (u *UserHandler) getUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := requireSelfOrAdmin(r, id); err != nil {
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.GetUserByID(r.Context(), id)
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(user))
}

// updateUser
//
//	@Summary		Обновление профиля
//	@Description	Доступно самому пользователю или администратору
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"ID пользователя"
//	@Param			user	body		UpdateUserDTO	true	"Профиль"
//	@Success		200		{object}	UserDTO
//	@Failure		403		{object}	ErrorResponse
//	@Router			/users/{id} [put]
func (u *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := requireSelfOrAdmin(r, id); err != nil {
		WriteError(w, err)
		return
	}

	var dto UpdateUserDTO
	if err := decodeJSON(r, &dto); err != nil {
		u.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	// Флаг администратора может менять только администратор
	claims, _ := ClaimsFromCtx(r.Context())
	if dto.IsAdmin && (claims == nil || !claims.IsAdmin()) {
		WriteError(w, e.ErrForbidden)
		return
	}

	user, err := u.userUsecase.UpdateUser(r.Context(), id, &usecase.UpdateUserReq{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		IsAdmin:   dto.IsAdmin,
		Password:  dto.Password,
	})
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserDTO(user))
}

// changePassword
//
//	@Summary		Смена пароля
//	@Description	Требует текущий пароль; новый проходит проверку сложности
//	@Tags			users
//	@Accept			json
//	@Param			passwords	body	ChangePasswordDTO	true	"Пароли"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Router			/users/change-password [post]
func (u *UserHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromCtx(r.Context())
	if !ok {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	var dto ChangePasswordDTO
	if err := decodeJSON(r, &dto); err != nil {
		u.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	err := u.userUsecase.ChangePassword(r.Context(), &usecase.ChangePasswordReq{
		UserID:          claims.UserID,
		CurrentPassword: dto.CurrentPassword,
		NewPassword:     dto.NewPassword,
	})
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireSelfOrAdmin пропускает запрос, если он сделан самим
// пользователем или администратором.
func requireSelfOrAdmin(r *http.Request, userID int64) error {
	claims, ok := ClaimsFromCtx(r.Context())
	if !ok {
		return e.ErrUnauthorized
	}
	if claims.UserID != userID && !claims.IsAdmin() {
		return e.ErrForbidden
	}
	return nil
}
