package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/vacation-shop/go-backend/internal/auth"
	"github.com/vacation-shop/go-backend/internal/domain"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// normalizeEmail приводит email к нижнему регистру и проверяет формат.
func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", e.ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return "", e.ErrInvalidEmail
	}

	return email, nil
}

// UserUseCase реализует регистрацию, вход и управление профилем.
type UserUseCase struct {
	userRepo UserRepository
	tokens   *auth.TokenManager
	logger   logger.Logger
}

func NewUserUC(userRepo UserRepository, tokens *auth.TokenManager, logger logger.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register валидирует данные, хэширует пароль и создаёт пользователя.
func (u *UserUseCase) Register(ctx context.Context, req *RegisterReq) (*domain.User, error) {
	const op = "UserUseCase.Register"

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, e.Wrap(op, err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := u.userRepo.Create(ctx, domain.NewUser(req.FirstName, req.LastName, email, hash))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// Login сверяет учётные данные и выпускает токен доступа.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (u *UserUseCase) Login(ctx context.Context, req *LoginReq) (*LoginRes, error) {
	const op = "UserUseCase.Login"

	email := strings.TrimSpace(strings.ToLower(req.Email))
	password := strings.TrimSpace(req.Password)

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	token, err := u.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &LoginRes{User: user, Token: token}, nil
}

func (u *UserUseCase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	const op = "UserUseCase.GetUserByID"

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// UpdateUser обновляет профиль; непустой пароль проходит проверку
// стойкости и перехэшируется.
func (u *UserUseCase) UpdateUser(ctx context.Context, id int64, req *UpdateUserReq) (*domain.User, error) {
	const op = "UserUseCase.UpdateUser"

	existing, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = email
	existing.IsAdmin = req.IsAdmin

	if strings.TrimSpace(req.Password) != "" {
		if err := auth.ValidatePasswordStrength(req.Password); err != nil {
			return nil, e.Wrap(op, err)
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		existing.PasswordHash = hash
	}

	updated, err := u.userRepo.Update(ctx, existing)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// ChangePassword сверяет текущий пароль и устанавливает новый.
func (u *UserUseCase) ChangePassword(ctx context.Context, req *ChangePasswordReq) error {
	const op = "UserUseCase.ChangePassword"

	user, err := u.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if !auth.CheckPassword(user.PasswordHash, strings.TrimSpace(req.CurrentPassword)) {
		return e.Wrap(op, e.ErrCurrentPasswordIncorrect)
	}

	if err := auth.ValidatePasswordStrength(req.NewPassword); err != nil {
		return e.Wrap(op, err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := u.userRepo.UpdatePassword(ctx, req.UserID, hash); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
