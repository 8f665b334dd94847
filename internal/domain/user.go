package domain

import "time"

// User описывает зарегистрированного пользователя.
// PasswordHash — bcrypt-хэш, исходный пароль нигде не хранится.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewUser(firstName, lastName, email, passwordHash string) *User {
	return &User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// FullName возвращает отображаемое имя пользователя.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
