package certstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMaterials(t *testing.T, dir string, skip string) {
	t.Helper()
	for _, name := range []string{DefaultSignerCertName, DefaultSignerKeyName, DefaultWWDRName} {
		if name == skip {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-----BEGIN "+name+"-----"), 0o600))
	}
}

func TestFileProvider_LoadMaterials(t *testing.T) {
	dir := t.TempDir()
	writeMaterials(t, dir, "")

	m, err := NewFileProvider(dir, "secret").LoadMaterials(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(m.SignerCert), DefaultSignerCertName)
	assert.Contains(t, string(m.SignerKey), DefaultSignerKeyName)
	assert.Contains(t, string(m.WWDR), DefaultWWDRName)
	assert.Equal(t, "secret", m.Passphrase)
}

func TestFileProvider_MissingArtifact(t *testing.T) {
	cases := map[string]Artifact{
		DefaultSignerCertName: ArtifactSignerCert,
		DefaultSignerKeyName:  ArtifactSignerKey,
		DefaultWWDRName:       ArtifactWWDR,
	}
	for file, artifact := range cases {
		t.Run(file, func(t *testing.T) {
			dir := t.TempDir()
			writeMaterials(t, dir, file)

			m, err := NewFileProvider(dir, "secret").LoadMaterials(context.Background())
			assert.Nil(t, m)
			var loadErr *CertificateLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, artifact, loadErr.Artifact)
			assert.NotContains(t, err.Error(), dir)
		})
	}
}

func TestFileProvider_MissingPassphrase(t *testing.T) {
	dir := t.TempDir()
	writeMaterials(t, dir, "")

	_, err := NewFileProvider(dir, "").LoadMaterials(context.Background())
	var loadErr *CertificateLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ArtifactPassphrase, loadErr.Artifact)
}

func TestFileProvider_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeMaterials(t, dir, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileProvider(dir, "secret").LoadMaterials(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPProvider_LoadMaterials(t *testing.T) {
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		fmt.Fprintf(w, "blob:%s", r.URL.Path)
	}))
	defer srv.Close()

	m, err := NewHTTPProvider(srv.URL+"/", "tok", "secret").LoadMaterials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "blob:/"+DefaultSignerCertName, string(m.SignerCert))
	assert.Equal(t, "blob:/"+DefaultSignerKeyName, string(m.SignerKey))
	assert.Equal(t, "blob:/"+DefaultWWDRName, string(m.WWDR))
	assert.Equal(t, "Bearer tok", auth.Load())
}

func TestHTTPProvider_MissingBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/"+DefaultWWDRName {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("pem"))
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(srv.URL, "", "secret").LoadMaterials(context.Background())
	var loadErr *CertificateLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ArtifactWWDR, loadErr.Artifact)
}

func TestHTTPProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(srv.URL, "", "secret").LoadMaterials(context.Background())
	var loadErr *CertificateLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ArtifactSignerCert, loadErr.Artifact)
}

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) LoadMaterials(ctx context.Context) (*Materials, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &Materials{SignerCert: []byte("c"), SignerKey: []byte("k"), WWDR: []byte("w"), Passphrase: "p"}, nil
}

func TestHTTPProvider_CancelStopsInFlightFetch(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	p := NewHTTPProvider(srv.URL, "", "secret")
	p.Timeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := p.LoadMaterials(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCachingProvider(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachingProvider(inner)

	first, err := p.LoadMaterials(context.Background())
	require.NoError(t, err)
	second, err := p.LoadMaterials(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, inner.calls)

	p.Reset()
	_, err = p.LoadMaterials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingProvider_FailuresNotCached(t *testing.T) {
	inner := &countingProvider{err: loadError(ArtifactSignerKey, errors.New("yok"))}
	p := NewCachingProvider(inner)

	_, err := p.LoadMaterials(context.Background())
	require.Error(t, err)

	inner.err = nil
	m, err := p.LoadMaterials(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, 2, inner.calls)
}

func TestMaterials_Redacted(t *testing.T) {
	m := &Materials{SignerKey: []byte("PRIVATE"), Passphrase: "hunter2"}
	for _, s := range []string{fmt.Sprint(m), fmt.Sprintf("%v", m), fmt.Sprintf("%#v", m), fmt.Sprintf("%s", m)} {
		assert.NotContains(t, s, "PRIVATE")
		assert.NotContains(t, s, "hunter2")
	}
}

func TestNewFromConfig(t *testing.T) {
	p, err := NewFromConfig(Config{Store: StoreFile, Dir: t.TempDir(), Passphrase: "x"})
	require.NoError(t, err)
	assert.IsType(t, &CachingProvider{}, p)

	_, err = NewFromConfig(Config{Store: "s3"})
	assert.Error(t, err)
}
