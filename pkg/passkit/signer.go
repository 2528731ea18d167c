package passkit

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/smallstep/pkcs7"
	"github.com/youmark/pkcs8"
)

// ErrSigning sertifika/anahtar çözümleme veya imzalama başarısız olduğunda döner.
// Sarılan mesajlar materyal içeriği taşımaz.
var ErrSigning = errors.New("passkit: imzalama başarısız")

// Signer manifest.json için PKCS#7 ayrık imza üretir.
type Signer struct {
	cert *x509.Certificate
	key  crypto.Signer
	wwdr *x509.Certificate

	withoutAttributes bool
}

// NewSigner PEM materyallerini çözer ve anahtarın sertifikayla eşleştiğini doğrular.
// Anahtar "ENCRYPTED PRIVATE KEY" (PKCS#8), eski tip şifreli PEM veya düz
// PKCS#1/PKCS#8/EC olabilir.
func NewSigner(certPEM, keyPEM, wwdrPEM []byte, passphrase string) (*Signer, error) {
	cert, err := parseCertificate(certPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: imzalayan sertifika: %v", ErrSigning, err)
	}
	wwdr, err := parseCertificate(wwdrPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: WWDR sertifikası: %v", ErrSigning, err)
	}
	key, err := parsePrivateKey(keyPEM, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: özel anahtar: %v", ErrSigning, err)
	}

	pub, ok := key.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(cert.PublicKey) {
		return nil, fmt.Errorf("%w: özel anahtar sertifikayla eşleşmiyor", ErrSigning)
	}

	return &Signer{cert: cert, key: key, wwdr: wwdr}, nil
}

// WithoutSigningAttributes imzalı öznitelik (signing-time) içermeyen bir kopya döndürür.
// RSA anahtarlarla aynı manifest her zaman aynı imzayı üretir.
func (s *Signer) WithoutSigningAttributes() *Signer {
	cp := *s
	cp.withoutAttributes = true
	return &cp
}

// Sign manifest için DER kodlu ayrık imzayı döndürür.
func (s *Signer) Sign(manifest []byte) ([]byte, error) {
	sd, err := pkcs7.NewSignedData(manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)

	if s.withoutAttributes {
		if err := sd.SignWithoutAttr(s.cert, s.key, pkcs7.SignerInfoConfig{}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSigning, err)
		}
		sd.AddCertificate(s.wwdr)
	} else {
		if err := sd.AddSignerChain(s.cert, s.key, []*x509.Certificate{s.wwdr}, pkcs7.SignerInfoConfig{}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSigning, err)
		}
	}

	sd.Detach()
	sig, err := sd.Finish()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return sig, nil
}

func parseCertificate(data []byte) (*x509.Certificate, error) {
	for rest := data; ; {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, errors.New("PEM sertifika bloğu bulunamadı")
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, errors.New("sertifika çözümlenemedi")
		}
		return cert, nil
	}
}

func parsePrivateKey(data []byte, passphrase string) (crypto.Signer, error) {
	var block *pem.Block
	for rest := data; ; {
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, errors.New("PEM anahtar bloğu bulunamadı")
		}
		if block.Type == "ENCRYPTED PRIVATE KEY" || block.Type == "PRIVATE KEY" ||
			block.Type == "RSA PRIVATE KEY" || block.Type == "EC PRIVATE KEY" {
			break
		}
	}

	var (
		parsed any
		err    error
	)
	switch {
	case block.Type == "ENCRYPTED PRIVATE KEY":
		parsed, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(passphrase))
		if err != nil {
			return nil, errors.New("şifreli anahtar çözülemedi (parola hatalı olabilir)")
		}
	case x509.IsEncryptedPEMBlock(block): //nolint:staticcheck // eski "Proc-Type: 4,ENCRYPTED" anahtarlar
		der, decErr := x509.DecryptPEMBlock(block, []byte(passphrase)) //nolint:staticcheck
		if decErr != nil {
			return nil, errors.New("şifreli anahtar çözülemedi (parola hatalı olabilir)")
		}
		parsed, err = parsePlainKey(der)
	default:
		parsed, err = parsePlainKey(block.Bytes)
	}
	if err != nil {
		return nil, err
	}

	switch k := parsed.(type) {
	case *rsa.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return k, nil
	default:
		return nil, errors.New("desteklenmeyen anahtar türü")
	}
}

func parsePlainKey(der []byte) (any, error) {
	if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParseECPrivateKey(der); err == nil {
		return k, nil
	}
	return nil, errors.New("anahtar çözümlenemedi")
}
