package passkit

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ContentType .pkpass dosyalarının MIME türü.
const ContentType = "application/vnd.apple.pkpass"

// DefaultFilename indirme sırasında önerilen dosya adı.
const DefaultFilename = "businessCard.pkpass"

// zipModTime tüm zip girdilerine yazılan sabit zaman; aynı girdi aynı baytları üretir.
var zipModTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Package imzalanmış, indirilmeye hazır .pkpass dosyası.
type Package struct {
	Data     []byte
	Filename string
}

// ContentType HTTP yanıtı için Content-Type değeri.
func (p *Package) ContentType() string { return ContentType }

// ContentDisposition HTTP yanıtı için Content-Disposition değeri.
func (p *Package) ContentDisposition() string {
	return "attachment; filename=" + p.Filename
}

// Assemble pass.json, görseller, manifest.json ve signature dosyalarını sabit bir
// sırayla zipler. Görseller dosya adına göre sıralanır.
func Assemble(pass *Pass, images map[string][]byte, signer *Signer, filename string) (*Package, error) {
	if err := pass.Validate(); err != nil {
		return nil, err
	}
	if filename == "" {
		filename = DefaultFilename
	}

	passJSON, err := json.Marshal(pass)
	if err != nil {
		return nil, fmt.Errorf("pass.json üretilemedi: %w", err)
	}

	names := make([]string, 0, len(images))
	for name := range images {
		if name == "pass.json" || name == "manifest.json" || name == "signature" {
			return nil, fmt.Errorf("%w: ayrılmış dosya adı %q", ErrInvalidPass, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	type entry struct {
		name string
		data []byte
	}
	entries := []entry{{"pass.json", passJSON}}
	for _, name := range names {
		entries = append(entries, entry{name, images[name]})
	}

	manifest := make(map[string]string, len(entries))
	for _, e := range entries {
		sum := sha1.Sum(e.data)
		manifest[e.name] = hex.EncodeToString(sum[:])
	}
	// json.Marshal map anahtarlarını sıralar
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("manifest.json üretilemedi: %w", err)
	}

	signature, err := signer.Sign(manifestJSON)
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry{"manifest.json", manifestJSON}, entry{"signature", signature})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: zipModTime,
		})
		if err != nil {
			return nil, fmt.Errorf("zip girdisi oluşturulamadı: %w", err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("zip girdisi yazılamadı: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip kapatılamadı: %w", err)
	}

	return &Package{Data: buf.Bytes(), Filename: filename}, nil
}
