package utils

import (
	"errors"
	"net/mail"
	"strings"
)

// ErrInvalidEmail e-posta adresi çözümlenemediğinde döner.
var ErrInvalidEmail = errors.New("geçersiz e-posta adresi")

// NormalizeEmail karşılaştırma ve saklama için e-postayı kırpar ve küçük harfe çevirir.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail iki adresin normalize edilmiş halleri eşit mi?
func SameEmail(a, b string) bool {
	a, b = NormalizeEmail(a), NormalizeEmail(b)
	return a != "" && a == b
}

// ValidateEmail adresin tek bir çıplak adres olduğunu doğrular ("Ad <a@b>" kabul edilmez).
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
