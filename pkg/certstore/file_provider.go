package certstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileProvider materyalleri yerel bir dizinden okur.
type FileProvider struct {
	Dir            string
	SignerCertName string
	SignerKeyName  string
	WWDRName       string
	Passphrase     string
}

// NewFileProvider varsayılan dosya adlarıyla bir FileProvider oluşturur.
func NewFileProvider(dir, passphrase string) *FileProvider {
	return &FileProvider{
		Dir:            dir,
		SignerCertName: DefaultSignerCertName,
		SignerKeyName:  DefaultSignerKeyName,
		WWDRName:       DefaultWWDRName,
		Passphrase:     passphrase,
	}
}

// LoadMaterials üç dosyayı da okur; herhangi biri eksik veya boşsa onu adlandıran
// CertificateLoadError döner.
func (p *FileProvider) LoadMaterials(ctx context.Context) (*Materials, error) {
	if p.Passphrase == "" {
		return nil, loadError(ArtifactPassphrase, errors.New("parola tanımlı değil"))
	}

	read := func(a Artifact, name string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(p.Dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, loadError(a, errors.New("dosya bulunamadı"))
			}
			return nil, loadError(a, errors.New("dosya okunamadı"))
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, loadError(a, errors.New("dosya boş"))
		}
		return data, nil
	}

	cert, err := read(ArtifactSignerCert, p.SignerCertName)
	if err != nil {
		return nil, err
	}
	key, err := read(ArtifactSignerKey, p.SignerKeyName)
	if err != nil {
		return nil, err
	}
	wwdr, err := read(ArtifactWWDR, p.WWDRName)
	if err != nil {
		return nil, err
	}

	return &Materials{SignerCert: cert, SignerKey: key, WWDR: wwdr, Passphrase: p.Passphrase}, nil
}

var _ Provider = (*FileProvider)(nil)
