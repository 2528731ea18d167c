package services

import (
	"fmt"
	"net/url"
	"strings"

	"cardify.app/models"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// CanonicalCardURL kartın paylaşım adresi. Pass barkodu ve QR kodu aynı adresi taşır.
func CanonicalCardURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/card/" + url.PathEscape(slug)
}

// IQRService kart QR kodu üretimi için arayüz.
type IQRService interface {
	CardQRCode(card *models.Card, size int) ([]byte, error)
}

// QRService kartın adresini PNG QR koduna çevirir.
type QRService struct {
	baseURL string
}

// NewQRService yeni bir QRService oluşturur.
func NewQRService(publicBaseURL string) *QRService {
	return &QRService{baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// CardQRCode QR kodunu PNG olarak döndürür. Boyut [128, 1024] aralığına çekilir.
func (s *QRService) CardQRCode(card *models.Card, size int) ([]byte, error) {
	switch {
	case size <= 0:
		size = DefaultQRSize
	case size < minQRSize:
		size = minQRSize
	case size > maxQRSize:
		size = maxQRSize
	}
	png, err := qrcode.Encode(CanonicalCardURL(s.baseURL, card.Slug), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("QR kodu üretilemedi: %w", err)
	}
	return png, nil
}

var _ IQRService = (*QRService)(nil)
