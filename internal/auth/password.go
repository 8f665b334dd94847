package auth

import (
	"unicode"

	"github.com/jimlawless/whereami"
	"github.com/vacation-shop/go-backend/pkg/e"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordScore — минимально допустимая оценка пароля:
// требуются длина, цифра и заглавная буква одновременно.
const MinPasswordScore = 3

// PasswordScore оценивает стойкость пароля: по баллу за длину от 8
// символов, наличие цифры и наличие заглавной буквы.
func PasswordScore(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}

	hasDigit := false
	hasUpper := false
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if hasDigit {
		score++
	}
	if hasUpper {
		score++
	}

	return score
}

// ValidatePasswordStrength возвращает e.ErrWeakPassword для паролей,
// не добирающих минимальную оценку.
func ValidatePasswordStrength(password string) error {
	if PasswordScore(password) < MinPasswordScore {
		return e.ErrWeakPassword
	}
	return nil
}

// HashPassword возвращает bcrypt-хэш пароля.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}
	return string(hash), nil
}

// CheckPassword сверяет пароль с bcrypt-хэшем.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
