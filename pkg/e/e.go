package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest         = fmt.Errorf("bad request")
	ErrMissingFields            = fmt.Errorf("missing required fields")
	ErrExpectedMultipart        = fmt.Errorf("expected multipart/form-data")
	ErrInvalidPrice             = fmt.Errorf("invalid price")
	ErrPricePrecision           = fmt.Errorf("price must have at most 2 decimal places")
	ErrProductNameRequired      = fmt.Errorf("product name is required")
	ErrPriceMustBePositive      = fmt.Errorf("price must be positive")
	ErrCategoryNameRequired     = fmt.Errorf("category name is required")
	ErrInvalidMonthNumber       = fmt.Errorf("month number must be between 1 and 12")
	ErrDuplicateMonthConfig     = fmt.Errorf("duplicate month number in month configs")
	ErrMultipleMainImages       = fmt.Errorf("at most one image may be marked as main")
	ErrInvalidDateRange         = fmt.Errorf("return date must not be before departure date")
	ErrQuantityMustBePositive   = fmt.Errorf("participant count must be positive")
	ErrOrderHasNoItems          = fmt.Errorf("order must contain at least one item")
	ErrUserIDRequired           = fmt.Errorf("valid userId is required")
	ErrEmailRequired            = fmt.Errorf("email is required")
	ErrInvalidEmail             = fmt.Errorf("invalid email address")
	ErrWeakPassword             = fmt.Errorf("password must be at least 8 characters and include a number and uppercase letter")
	ErrCurrentPasswordIncorrect = fmt.Errorf("current password is incorrect")
	ErrNoImages                 = fmt.Errorf("no images provided")
	ErrTooManyImages            = fmt.Errorf("too many images")
	ErrFileTooLarge             = fmt.Errorf("file too large")
	ErrUnsupportedMediaType     = fmt.Errorf("unsupported media type")
	ErrInvalidObjectKey         = fmt.Errorf("invalid object key")

	// 401 / 403
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrOrderNotFound    = fmt.Errorf("order not found")
	ErrObjectNotFound   = fmt.Errorf("object not found")

	// 409 Conflict
	ErrEmailTaken = fmt.Errorf("email is already registered")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
