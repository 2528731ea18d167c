package certstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPProvider materyalleri bir HTTP blob deposundan (ör. imzalı URL arkasındaki
// nesne deposu) indirir: {BaseURL}/{dosya adı}.
type HTTPProvider struct {
	BaseURL        string
	Token          string
	Passphrase     string
	Timeout        time.Duration
	SignerCertName string
	SignerKeyName  string
	WWDRName       string
}

// NewHTTPProvider varsayılan blob adlarıyla bir HTTPProvider oluşturur.
func NewHTTPProvider(baseURL, token, passphrase string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Token:          token,
		Passphrase:     passphrase,
		Timeout:        defaultHTTPTimeout,
		SignerCertName: DefaultSignerCertName,
		SignerKeyName:  DefaultSignerKeyName,
		WWDRName:       DefaultWWDRName,
	}
}

// LoadMaterials üç blob'u sırayla indirir.
func (p *HTTPProvider) LoadMaterials(ctx context.Context) (*Materials, error) {
	if p.Passphrase == "" {
		return nil, loadError(ArtifactPassphrase, errors.New("parola tanımlı değil"))
	}

	cert, err := p.fetch(ctx, ArtifactSignerCert, p.SignerCertName)
	if err != nil {
		return nil, err
	}
	key, err := p.fetch(ctx, ArtifactSignerKey, p.SignerKeyName)
	if err != nil {
		return nil, err
	}
	wwdr, err := p.fetch(ctx, ArtifactWWDR, p.WWDRName)
	if err != nil {
		return nil, err
	}

	return &Materials{SignerCert: cert, SignerKey: key, WWDR: wwdr, Passphrase: p.Passphrase}, nil
}

func (p *HTTPProvider) fetch(ctx context.Context, a Artifact, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Context'in kalan süresi yapılandırılmış zaman aşımından kısaysa onu kullan
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	agent := fiber.Get(p.BaseURL + "/" + name).Timeout(timeout)
	if p.Token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+p.Token)
	}

	// Agent context'i izlemez; istek ayrı goroutine'de çalışır, context iptal edilince sonuç beklenmeden dönülür.
	// Goroutine en geç timeout dolunca sonlanır.
	type response struct {
		code int
		body []byte
		errs []error
	}
	done := make(chan response, 1)
	go func() {
		code, body, errs := agent.Bytes()
		done <- response{code: code, body: body, errs: errs}
	}()

	var res response
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	code, body, errs := res.code, res.body, res.errs
	if len(errs) > 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, loadError(a, errors.New("blob deposuna ulaşılamadı"))
	}
	switch {
	case code == http.StatusNotFound:
		return nil, loadError(a, errors.New("blob bulunamadı"))
	case code != http.StatusOK:
		return nil, loadError(a, fmt.Errorf("blob deposu beklenmeyen durum döndü: %d", code))
	case len(bytes.TrimSpace(body)) == 0:
		return nil, loadError(a, errors.New("blob boş"))
	}
	return body, nil
}

var _ Provider = (*HTTPProvider)(nil)
