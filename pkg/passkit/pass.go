// Package passkit Apple Wallet (.pkpass) paketlerini üretir: pass.json modeli,
// manifest, PKCS#7 ayrık imza ve zip paketleme.
package passkit

import (
	"errors"
	"fmt"
)

// BarcodeFormat pass üzerindeki barkod türü.
type BarcodeFormat string

const (
	BarcodeFormatQR     BarcodeFormat = "PKBarcodeFormatQR"
	BarcodeFormatPDF417 BarcodeFormat = "PKBarcodeFormatPDF417"
	BarcodeFormatAztec  BarcodeFormat = "PKBarcodeFormatAztec"
)

// EncodingLatin1 barkod mesajının beyan edilen kodlaması.
const EncodingLatin1 = "iso-8859-1"

// ErrInvalidPass pass.json zorunlu alanları eksik veya tutarsız olduğunda döner.
var ErrInvalidPass = errors.New("passkit: geçersiz pass")

// Field pass üzerindeki tek bir etiket/değer alanı.
type Field struct {
	Key           string `json:"key"`
	Label         string `json:"label,omitempty"`
	Value         string `json:"value"`
	TextAlignment string `json:"textAlignment,omitempty"`
}

// Structure pass stiline ait alan grupları.
type Structure struct {
	HeaderFields    []Field `json:"headerFields,omitempty"`
	PrimaryFields   []Field `json:"primaryFields,omitempty"`
	SecondaryFields []Field `json:"secondaryFields,omitempty"`
	AuxiliaryFields []Field `json:"auxiliaryFields,omitempty"`
	BackFields      []Field `json:"backFields,omitempty"`
}

// Barcode pass üzerindeki barkod tanımı.
type Barcode struct {
	Format          BarcodeFormat `json:"format"`
	Message         string        `json:"message"`
	MessageEncoding string        `json:"messageEncoding"`
	AltText         string        `json:"altText,omitempty"`
}

// Pass pass.json içeriği. Sadece "generic" stil desteklenir.
type Pass struct {
	FormatVersion      int        `json:"formatVersion"`
	PassTypeIdentifier string     `json:"passTypeIdentifier"`
	SerialNumber       string     `json:"serialNumber"`
	TeamIdentifier     string     `json:"teamIdentifier"`
	OrganizationName   string     `json:"organizationName"`
	Description        string     `json:"description"`
	LogoText           string     `json:"logoText,omitempty"`
	ForegroundColor    string     `json:"foregroundColor,omitempty"`
	BackgroundColor    string     `json:"backgroundColor,omitempty"`
	LabelColor         string     `json:"labelColor,omitempty"`
	Barcode            *Barcode   `json:"barcode,omitempty"` // iOS 8 ve öncesi
	Barcodes           []Barcode  `json:"barcodes,omitempty"`
	Generic            *Structure `json:"generic,omitempty"`
}

// Validate Wallet'ın reddedeceği eksiklikleri paketlemeden önce yakalar.
func (p *Pass) Validate() error {
	switch {
	case p.FormatVersion != 1:
		return fmt.Errorf("%w: formatVersion 1 olmalı", ErrInvalidPass)
	case p.PassTypeIdentifier == "", p.TeamIdentifier == "":
		return fmt.Errorf("%w: pass kimlikleri eksik", ErrInvalidPass)
	case p.SerialNumber == "":
		return fmt.Errorf("%w: serialNumber eksik", ErrInvalidPass)
	case p.OrganizationName == "", p.Description == "":
		return fmt.Errorf("%w: organizationName ve description zorunlu", ErrInvalidPass)
	case p.Generic == nil:
		return fmt.Errorf("%w: pass stili tanımlı değil", ErrInvalidPass)
	}

	seen := make(map[string]struct{})
	for _, group := range [][]Field{
		p.Generic.HeaderFields, p.Generic.PrimaryFields, p.Generic.SecondaryFields,
		p.Generic.AuxiliaryFields, p.Generic.BackFields,
	} {
		for _, f := range group {
			if f.Key == "" {
				return fmt.Errorf("%w: anahtarsız alan", ErrInvalidPass)
			}
			if _, dup := seen[f.Key]; dup {
				return fmt.Errorf("%w: tekrarlanan alan anahtarı %q", ErrInvalidPass, f.Key)
			}
			seen[f.Key] = struct{}{}
		}
	}

	for _, b := range p.Barcodes {
		if b.MessageEncoding == EncodingLatin1 && !IsLatin1(b.Message) {
			return fmt.Errorf("%w: barkod mesajı iso-8859-1 ile kodlanamıyor", ErrInvalidPass)
		}
	}
	return nil
}

// IsLatin1 metnin tamamı iso-8859-1 ile temsil edilebiliyor mu?
func IsLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}
