// Package passkittest testler için süreç içinde üretilen pass imzalama materyalleri sağlar.
package passkittest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cardify.app/pkg/certstore"

	"github.com/youmark/pkcs8"
)

// Passphrase üretilen imzalayan anahtarı koruyan parola.
const Passphrase = "test-passphrase"

// Materials PEM kodlu test sertifikaları. SignerKey parolayla şifrelenmiş PKCS#8'dir.
type Materials struct {
	SignerCert     []byte
	SignerKey      []byte
	PlainSignerKey []byte
	WWDR           []byte
	Passphrase     string
}

var (
	once      sync.Once
	generated Materials
	genErr    error
)

// Generate WWDR yerine geçen bir CA ve onun imzaladığı pass sertifikası üretir.
// Sonuç süreç boyunca önbellekte tutulur.
func Generate(t testing.TB) Materials {
	t.Helper()
	once.Do(func() { generated, genErr = generate() })
	if genErr != nil {
		t.Fatalf("test sertifikaları üretilemedi: %v", genErr)
	}
	return generated
}

// WriteDir materyalleri certstore'un varsayılan dosya adlarıyla dizine yazar.
func WriteDir(t testing.TB, dir string) Materials {
	t.Helper()
	m := Generate(t)
	files := map[string][]byte{
		certstore.DefaultSignerCertName: m.SignerCert,
		certstore.DefaultSignerKeyName:  m.SignerKey,
		certstore.DefaultWWDRName:       m.WWDR,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			t.Fatalf("%s yazılamadı: %v", name, err)
		}
	}
	return m
}

// StoreMaterials materyalleri certstore.Materials olarak döndürür.
func (m Materials) StoreMaterials() *certstore.Materials {
	return &certstore.Materials{
		SignerCert: m.SignerCert,
		SignerKey:  m.SignerKey,
		WWDR:       m.WWDR,
		Passphrase: m.Passphrase,
	}
}

func generate() (Materials, error) {
	now := time.Now()

	caKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return Materials{}, err
	}
	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test WWDR CA", Organization: []string{"Cardify Test"}},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	if err != nil {
		return Materials{}, err
	}
	caCert, err := x509.ParseCertificate(caDER)
	if err != nil {
		return Materials{}, err
	}

	signerKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return Materials{}, err
	}
	signerTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "Pass Type ID: pass.app.cardify.test"},
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(365 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	signerDER, err := x509.CreateCertificate(rand.Reader, signerTmpl, caCert, &signerKey.PublicKey, caKey)
	if err != nil {
		return Materials{}, err
	}

	encrypted, err := pkcs8.MarshalPrivateKey(signerKey, []byte(Passphrase), nil)
	if err != nil {
		return Materials{}, err
	}

	return Materials{
		SignerCert:     pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: signerDER}),
		SignerKey:      pem.EncodeToMemory(&pem.Block{Type: "ENCRYPTED PRIVATE KEY", Bytes: encrypted}),
		PlainSignerKey: pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(signerKey)}),
		WWDR:           pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: caDER}),
		Passphrase:     Passphrase,
	}, nil
}
