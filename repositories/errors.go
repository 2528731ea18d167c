package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound kayıt bulunamadığında döner.
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrSlugConflict slug başka bir karta ait olduğunda veya benzersiz slug bulunamadığında döner.
	ErrSlugConflict = errors.New("slug başka bir kart tarafından kullanılıyor")
	// ErrStorageUnavailable veritabanı hatalarını sarar.
	ErrStorageUnavailable = errors.New("veri deposuna erişilemiyor")
	// ErrEmailTaken e-posta adresi başka bir hesapta kayıtlı olduğunda döner.
	ErrEmailTaken = errors.New("e-posta adresi zaten kayıtlı")
)

// translateError gorm hatalarını paket hatalarına çevirir. Context iptali olduğu gibi
// geçirilir; çağıran terk edilmiş bir isteği kesintiden ayırt edebilmeli.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// isDuplicateKeyError benzersiz indeks ihlalini tanır. TranslateError açık değilse
// sürücü mesajlarına bakılır.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
