// Package certstore Wallet pass imzalamak için gereken sertifika materyallerini
// (imzalayan sertifika, özel anahtar, WWDR ara sertifikası, parola) sağlar.
//
// Materyaller hassastır: loglanmaz, hata mesajlarına eklenmez, istemciye dönülmez.
package certstore

import (
	"context"
	"fmt"
)

// Desteklenen depolama türleri (CERT_STORE).
const (
	StoreFile = "file"
	StoreHTTP = "http"
)

// Artifact eksik veya okunamayan materyalin adı.
type Artifact string

const (
	ArtifactSignerCert Artifact = "signerCert"
	ArtifactSignerKey  Artifact = "signerKey"
	ArtifactWWDR       Artifact = "wwdr"
	ArtifactPassphrase Artifact = "passphrase"
)

// Varsayılan dosya (ve blob) adları.
const (
	DefaultSignerCertName = "passwallet.pem"
	DefaultSignerKeyName  = "pass-key.pem"
	DefaultWWDRName       = "wwdr.pem"
)

// Config sertifika sağlayıcısının ayarları.
type Config struct {
	Store       string // file | http
	Dir         string // StoreFile için dizin
	HTTPBaseURL string // StoreHTTP için blob deposu taban adresi
	HTTPToken   string // Opsiyonel bearer token
	Passphrase  string // Özel anahtar parolası (CERT_PASSWORD)
}

// Materials imzalama için gereken tam materyal seti. Kısmi set hiçbir zaman dönülmez.
type Materials struct {
	SignerCert []byte
	SignerKey  []byte
	WWDR       []byte
	Passphrase string
}

// String materyal içeriğini asla yazdırmaz.
func (m *Materials) String() string { return "certstore.Materials{redacted}" }

// GoString %#v ile yazdırıldığında da içeriği gizler.
func (m *Materials) GoString() string { return m.String() }

// Provider imzalama materyallerini yükler.
type Provider interface {
	LoadMaterials(ctx context.Context) (*Materials, error)
}

// CertificateLoadError hangi materyalin yüklenemediğini belirtir.
// Err sadece sunucu loglarına gider; içerik veya yol bilgisi istemciye dönülmemeli.
type CertificateLoadError struct {
	Artifact Artifact
	Err      error
}

func (e *CertificateLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sertifika materyali yüklenemedi: %s", e.Artifact)
	}
	return fmt.Sprintf("sertifika materyali yüklenemedi: %s: %v", e.Artifact, e.Err)
}

func (e *CertificateLoadError) Unwrap() error { return e.Err }

func loadError(a Artifact, err error) error {
	return &CertificateLoadError{Artifact: a, Err: err}
}

// NewFromConfig yapılandırmaya göre uygun sağlayıcıyı oluşturur ve önbellekle sarar.
func NewFromConfig(cfg Config) (Provider, error) {
	var p Provider
	switch cfg.Store {
	case StoreFile, "":
		p = NewFileProvider(cfg.Dir, cfg.Passphrase)
	case StoreHTTP:
		p = NewHTTPProvider(cfg.HTTPBaseURL, cfg.HTTPToken, cfg.Passphrase)
	default:
		return nil, fmt.Errorf("bilinmeyen sertifika deposu: %q", cfg.Store)
	}
	return NewCachingProvider(p), nil
}
