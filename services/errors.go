package services

import (
	"context"
	"errors"
	"fmt"

	"cardify.app/repositories"
)

// StorageServiceError tüm servislerde ortak olan veri deposu hatası.
type StorageServiceError string

func (e StorageServiceError) Error() string { return string(e) }

// ErrStorageUnavailable veritabanına ulaşılamadığında döner. Orijinal hata zincirde kalır.
const ErrStorageUnavailable StorageServiceError = "veri deposuna erişilemiyor"

// storageError context iptalini olduğu gibi geçirir, diğer hataları ErrStorageUnavailable ile sarar.
func storageError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// cardRepoError kart deposu hatalarını servis hatalarına çevirir.
func cardRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrCardNotFound
	case errors.Is(err, repositories.ErrSlugConflict):
		return ErrSlugTaken
	}
	return storageError(err)
}
