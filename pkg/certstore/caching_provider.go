package certstore

import (
	"context"
	"sync"
)

// CachingProvider başarılı yüklemeyi süreç ömrü boyunca önbellekte tutar.
// Hatalar önbelleğe alınmaz; bir sonraki çağrı tekrar dener.
type CachingProvider struct {
	inner  Provider
	mu     sync.Mutex
	cached *Materials
}

// NewCachingProvider verilen sağlayıcıyı önbellekle sarar.
func NewCachingProvider(inner Provider) *CachingProvider {
	return &CachingProvider{inner: inner}
}

func (p *CachingProvider) LoadMaterials(ctx context.Context) (*Materials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return p.cached, nil
	}
	m, err := p.inner.LoadMaterials(ctx)
	if err != nil {
		return nil, err
	}
	p.cached = m
	return m, nil
}

// Reset önbelleği temizler (sertifika rotasyonu sonrası).
func (p *CachingProvider) Reset() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
}

var _ Provider = (*CachingProvider)(nil)
