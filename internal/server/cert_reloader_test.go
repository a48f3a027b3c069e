package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atscreen/internal/config"
)

// generateCertPair returns PEM-encoded certificate and key material for a
// self-signed certificate valid over the given window.
func generateCertPair(t *testing.T, notBefore, notAfter time.Time) (certPEM, keyPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "localhost"},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM
}

func writeCertFiles(t *testing.T, certPEM, keyPEM []byte) (certFile, keyFile string) {
	t.Helper()
	dir := t.TempDir()
	certFile = filepath.Join(dir, "server.crt")
	keyFile = filepath.Join(dir, "server.key")
	require.NoError(t, os.WriteFile(certFile, certPEM, 0o600))
	require.NoError(t, os.WriteFile(keyFile, keyPEM, 0o600))
	return certFile, keyFile
}

func TestCertReloaderLoadsFromFiles(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	certFile, keyFile := writeCertFiles(t, certPEM, keyPEM)

	tlsConfig := &config.TLSConfig{
		Mode:     "server",
		CertFile: certFile,
		KeyFile:  keyFile,
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{Enabled: false}, nil, nil)
	require.NoError(t, cr.Start())

	// The watcher only runs when auto-reload is enabled.
	assert.False(t, cr.IsRunning())

	cert, err := cr.GetCertificate(&tls.ClientHelloInfo{ServerName: "localhost"})
	require.NoError(t, err)
	assert.NotNil(t, cert)

	remaining, err := cr.CheckExpiry()
	require.NoError(t, err)
	assert.Greater(t, remaining, 23*time.Hour)

	metrics := cr.GetMetrics()
	assert.Equal(t, int64(1), metrics.ReloadCount)
	assert.Equal(t, int64(1), metrics.ReloadSuccessCount)
	assert.True(t, metrics.LastReloadSuccess)
	assert.Empty(t, metrics.LastReloadError)
}

func TestCertReloaderLoadsFromContent(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))

	tlsConfig := &config.TLSConfig{
		Mode:        "server",
		CertContent: string(certPEM),
		KeyContent:  string(keyPEM),
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{Enabled: true}, nil, nil)
	require.NoError(t, cr.Start())

	// Content-based certificates have no files to watch.
	assert.False(t, cr.IsRunning())
	assert.Empty(t, cr.WatchedFiles())

	cert, err := cr.GetCertificate(&tls.ClientHelloInfo{})
	require.NoError(t, err)
	assert.NotNil(t, cert)
}

func TestCertReloaderMissingMaterial(t *testing.T) {
	cr := NewCertReloader(&config.TLSConfig{Mode: "server"}, &config.AutoReloadConfig{}, nil, nil)
	err := cr.Start()
	require.Error(t, err)

	metrics := cr.GetMetrics()
	assert.Equal(t, int64(1), metrics.ReloadFailureCount)
	assert.False(t, metrics.LastReloadSuccess)
	assert.NotEmpty(t, metrics.LastReloadError)

	_, err = cr.GetCertificate(&tls.ClientHelloInfo{})
	require.Error(t, err)

	_, err = cr.CheckExpiry()
	require.Error(t, err)
}

func TestCertReloaderRejectsExpiredCertificate(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-48*time.Hour), time.Now().Add(-time.Hour))
	certFile, keyFile := writeCertFiles(t, certPEM, keyPEM)

	tlsConfig := &config.TLSConfig{
		Mode:     "server",
		CertFile: certFile,
		KeyFile:  keyFile,
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{}, nil, nil)
	require.NoError(t, cr.Start())

	_, err := cr.GetCertificate(&tls.ClientHelloInfo{ServerName: "localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestCertReloaderMutualMode(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	certFile, keyFile := writeCertFiles(t, certPEM, keyPEM)

	caFile := filepath.Join(t.TempDir(), "ca.crt")
	require.NoError(t, os.WriteFile(caFile, certPEM, 0o600))

	tlsConfig := &config.TLSConfig{
		Mode:     "mutual",
		CertFile: certFile,
		KeyFile:  keyFile,
		CAFile:   caFile,
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{}, nil, nil)
	require.NoError(t, cr.Start())

	require.NotNil(t, cr.GetCACertPool())

	// The self-signed certificate verifies against a pool containing itself.
	block, _ := pem.Decode(certPEM)
	require.NotNil(t, block)
	require.NoError(t, cr.VerifyPeerCertificate([][]byte{block.Bytes}, nil))

	require.Error(t, cr.VerifyPeerCertificate(nil, nil))
}

func TestCertReloaderMutualModeRequiresCA(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	certFile, keyFile := writeCertFiles(t, certPEM, keyPEM)

	tlsConfig := &config.TLSConfig{
		Mode:     "mutual",
		CertFile: certFile,
		KeyFile:  keyFile,
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{}, nil, nil)
	require.Error(t, cr.Start())
}

func TestCertReloaderReloadCallback(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	certFile, keyFile := writeCertFiles(t, certPEM, keyPEM)

	tlsConfig := &config.TLSConfig{
		Mode:     "server",
		CertFile: certFile,
		KeyFile:  keyFile,
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{}, nil, nil)
	require.NoError(t, cr.Start())

	var gotSuccess bool
	var calls int
	cr.AddReloadCallback(func(success bool, err error) {
		calls++
		gotSuccess = success
	})

	require.NoError(t, cr.reload())
	assert.Equal(t, 1, calls)
	assert.True(t, gotSuccess)
	assert.Equal(t, int64(2), cr.GetMetrics().ReloadCount)
}

func TestCertReloaderWatcherLifecycle(t *testing.T) {
	certPEM, keyPEM := generateCertPair(t, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))
	certFile, keyFile := writeCertFiles(t, certPEM, keyPEM)

	tlsConfig := &config.TLSConfig{
		Mode:     "server",
		CertFile: certFile,
		KeyFile:  keyFile,
	}
	cr := NewCertReloader(tlsConfig, &config.AutoReloadConfig{
		Enabled:       true,
		DebounceDelay: 10 * time.Millisecond,
	}, nil, nil)
	require.NoError(t, cr.Start())

	assert.True(t, cr.IsRunning())
	assert.Equal(t, []string{certFile, keyFile}, cr.WatchedFiles())

	require.NoError(t, cr.Stop())
	assert.False(t, cr.IsRunning())

	// A second stop is a no-op.
	require.NoError(t, cr.Stop())
}
