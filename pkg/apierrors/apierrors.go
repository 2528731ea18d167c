// Package apierrors JSON hata yanıtlarının ortak biçimini tanımlar.
package apierrors

import "github.com/gofiber/fiber/v2"

// Kind makine tarafından okunabilir, sabit hata kodu.
type Kind string

const (
	KindNotFound              Kind = "not_found"
	KindSlugConflict          Kind = "slug_conflict"
	KindUnauthorized          Kind = "unauthorized"
	KindUnauthenticated       Kind = "unauthenticated"
	KindMissingRequiredFields Kind = "missing_required_fields"
	KindCertificateLoadError  Kind = "certificate_load_error"
	KindSigningFailure        Kind = "signing_failure"
	KindTemplateNotFound      Kind = "template_not_found"
	KindStorageUnavailable    Kind = "storage_unavailable"
	KindInvalidInput          Kind = "invalid_input"
	KindEmailTaken            Kind = "email_taken"
	KindInvalidCredentials    Kind = "invalid_credentials"
	KindMethodNotAllowed      Kind = "method_not_allowed"
	KindRateLimited           Kind = "rate_limited"
	KindInternal              Kind = "internal"
)

// Response istemciye dönen hata gövdesi. Details sadece güvenli, sabit metinler taşır.
type Response struct {
	Error   string `json:"error"`
	Kind    Kind   `json:"kind"`
	Details string `json:"details,omitempty"`
}

// Respond hata gövdesini verilen durum koduyla yazar.
func Respond(c *fiber.Ctx, status int, kind Kind, message string) error {
	return c.Status(status).JSON(Response{Error: message, Kind: kind})
}

// RespondWithDetails Respond gibidir, ek olarak details alanını doldurur.
func RespondWithDetails(c *fiber.Ctx, status int, kind Kind, message, details string) error {
	return c.Status(status).JSON(Response{Error: message, Kind: kind, Details: details})
}
