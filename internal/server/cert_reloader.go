package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"atscreen/internal/config"
	"atscreen/internal/errors"
	"atscreen/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called when certificates are reloaded
type ReloadCallback func(success bool, err error)

// CertificateMetrics holds metrics about certificate operations
type CertificateMetrics struct {
	ReloadCount        int64
	ReloadSuccessCount int64
	ReloadFailureCount int64
	LastReloadTime     time.Time
	LastReloadSuccess  bool
	LastReloadError    string
}

// CertReloader keeps the server certificate current by watching the
// certificate files and reloading on change. Certificates supplied as
// content (from Vault) are loaded once and never watched.
type CertReloader struct {
	mu sync.RWMutex

	serverCert *tls.Certificate
	caCertPool *x509.CertPool
	certExpiry time.Time

	config           *config.TLSConfig
	autoReloadConfig *config.AutoReloadConfig

	watcher *fsnotify.Watcher
	done    chan struct{}
	running bool

	reloadCallbacks []ReloadCallback
	logger          *errors.Logger
	om              *observability.ObservabilityManager

	reloadCount        int64
	reloadSuccessCount int64
	reloadFailureCount int64
	lastReloadTime     time.Time
	lastReloadSuccess  bool
	lastReloadError    string
}

// NewCertReloader creates a certificate reloader for the given TLS config
func NewCertReloader(tlsConfig *config.TLSConfig, autoReloadConfig *config.AutoReloadConfig, om *observability.ObservabilityManager, logger *errors.Logger) *CertReloader {
	return &CertReloader{
		config:           tlsConfig,
		autoReloadConfig: autoReloadConfig,
		om:               om,
		logger:           logger,
		done:             make(chan struct{}),
		reloadCallbacks:  make([]ReloadCallback, 0),
	}
}

// Start loads the initial certificates and begins watching the certificate
// files when auto-reload is enabled and file paths are configured
func (cr *CertReloader) Start() error {
	if err := cr.reload(); err != nil {
		return fmt.Errorf("failed to load initial certificates: %w", err)
	}

	if cr.autoReloadConfig == nil || !cr.autoReloadConfig.Enabled {
		return nil
	}
	if cr.config.CertFile == "" && cr.config.KeyFile == "" {
		// Content-based certificates have nothing on disk to watch
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	cr.watcher = watcher

	// Watch parent directories so atomic renames (the common way
	// certificates are rotated) are seen as well.
	dirs := make(map[string]bool)
	for _, f := range []string{cr.config.CertFile, cr.config.KeyFile, cr.config.CAFile} {
		if f == "" {
			continue
		}
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	cr.mu.Lock()
	cr.running = true
	cr.mu.Unlock()

	go cr.watchLoop()

	if cr.logger != nil {
		cr.logger.Info("Certificate file watcher started",
			"cert_file", cr.config.CertFile,
			"key_file", cr.config.KeyFile,
			"ca_file", cr.config.CAFile,
			"debounce_delay", cr.autoReloadConfig.DebounceDelay)
	}

	return nil
}

// watchLoop handles file change events with debouncing so a cert and key
// replaced in quick succession trigger a single reload
func (cr *CertReloader) watchLoop() {
	watched := map[string]bool{}
	for _, f := range []string{cr.config.CertFile, cr.config.KeyFile, cr.config.CAFile} {
		if f != "" {
			watched[filepath.Clean(f)] = true
		}
	}

	var timer *time.Timer
	delay := cr.autoReloadConfig.DebounceDelay
	if delay <= 0 {
		delay = time.Second
	}

	for {
		select {
		case event, ok := <-cr.watcher.Events:
			if !ok {
				return
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(delay, func() {
				if err := cr.reload(); err != nil && cr.logger != nil {
					cr.logger.LogError(err, "Certificate reload failed after file change")
				}
			})
		case err, ok := <-cr.watcher.Errors:
			if !ok {
				return
			}
			if cr.logger != nil {
				cr.logger.LogError(err, "Certificate watcher error")
			}
		case <-cr.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop stops the file watcher
func (cr *CertReloader) Stop() error {
	cr.mu.Lock()
	wasRunning := cr.running
	cr.running = false
	cr.mu.Unlock()

	if !wasRunning {
		return nil
	}

	close(cr.done)
	if cr.watcher != nil {
		if err := cr.watcher.Close(); err != nil {
			return err
		}
	}
	if cr.logger != nil {
		cr.logger.Info("Certificate reloader stopped")
	}
	return nil
}

// IsRunning reports whether the file watcher is active
func (cr *CertReloader) IsRunning() bool {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.running
}

// WatchedFiles returns the certificate files being watched
func (cr *CertReloader) WatchedFiles() []string {
	files := make([]string, 0, 3)
	for _, f := range []string{cr.config.CertFile, cr.config.KeyFile, cr.config.CAFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// GetCertificate returns the current server certificate for TLS handshakes
func (cr *CertReloader) GetCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.serverCert == nil {
		return nil, fmt.Errorf("no server certificate available")
	}
	if !cr.certExpiry.IsZero() && time.Now().After(cr.certExpiry) {
		if cr.logger != nil {
			cr.logger.LogError(fmt.Errorf("server certificate expired"), "Server certificate expired",
				"expiry", cr.certExpiry,
				"server_name", hello.ServerName)
		}
		return nil, fmt.Errorf("server certificate expired")
	}

	return cr.serverCert, nil
}

// GetCACertPool returns the current CA certificate pool
func (cr *CertReloader) GetCACertPool() *x509.CertPool {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.caCertPool
}

// VerifyPeerCertificate verifies peer certificates using the current CA pool
func (cr *CertReloader) VerifyPeerCertificate(rawCerts [][]byte, verifiedChains [][]*x509.Certificate) error {
	if len(rawCerts) == 0 {
		return fmt.Errorf("no peer certificates provided")
	}

	cert, err := x509.ParseCertificate(rawCerts[0])
	if err != nil {
		return fmt.Errorf("failed to parse peer certificate: %w", err)
	}

	caCertPool := cr.GetCACertPool()
	if caCertPool == nil {
		return fmt.Errorf("no CA certificate pool available")
	}

	_, err = cert.Verify(x509.VerifyOptions{Roots: caCertPool})
	if err != nil {
		return fmt.Errorf("peer certificate verification failed: %w", err)
	}

	return nil
}

// AddReloadCallback adds a callback to be called when certificates are reloaded
func (cr *CertReloader) AddReloadCallback(callback ReloadCallback) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.reloadCallbacks = append(cr.reloadCallbacks, callback)
}

// CheckExpiry returns the time until the server certificate expires
func (cr *CertReloader) CheckExpiry() (time.Duration, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.certExpiry.IsZero() {
		return 0, fmt.Errorf("no certificates loaded")
	}
	return time.Until(cr.certExpiry), nil
}

// GetMetrics returns certificate reload metrics
func (cr *CertReloader) GetMetrics() *CertificateMetrics {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return &CertificateMetrics{
		ReloadCount:        cr.reloadCount,
		ReloadSuccessCount: cr.reloadSuccessCount,
		ReloadFailureCount: cr.reloadFailureCount,
		LastReloadTime:     cr.lastReloadTime,
		LastReloadSuccess:  cr.lastReloadSuccess,
		LastReloadError:    cr.lastReloadError,
	}
}

// reload loads certificates from content or files and swaps them in atomically
func (cr *CertReloader) reload() error {
	cert, expiry, err := cr.loadKeyPair()
	if err != nil {
		cr.recordReload(false, err)
		return err
	}

	caPool, err := cr.loadCAPool()
	if err != nil {
		cr.recordReload(false, err)
		return err
	}

	cr.mu.Lock()
	cr.serverCert = cert
	cr.certExpiry = expiry
	cr.caCertPool = caPool
	cr.mu.Unlock()

	cr.recordReload(true, nil)

	if cr.logger != nil {
		cr.logger.Info("Certificates loaded",
			"cert_expiry", expiry,
			"mutual_tls", caPool != nil)
	}
	return nil
}

// loadKeyPair loads the server certificate, preferring content over files
func (cr *CertReloader) loadKeyPair() (*tls.Certificate, time.Time, error) {
	var cert tls.Certificate
	var err error

	switch {
	case cr.config.CertContent != "" && cr.config.KeyContent != "":
		cert, err = tls.X509KeyPair([]byte(cr.config.CertContent), []byte(cr.config.KeyContent))
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to load server cert/key from content: %w", err)
		}
	case cr.config.CertFile != "" && cr.config.KeyFile != "":
		cert, err = tls.LoadX509KeyPair(cr.config.CertFile, cr.config.KeyFile)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to load server cert/key from files: %w", err)
		}
	default:
		return nil, time.Time{}, fmt.Errorf("TLS certificate and key are required (provide either files or content)")
	}

	expiry, err := certificateExpiry(&cert)
	if err != nil {
		return nil, time.Time{}, err
	}
	return &cert, expiry, nil
}

// loadCAPool loads the CA pool for mutual TLS; nil when not in mutual mode
func (cr *CertReloader) loadCAPool() (*x509.CertPool, error) {
	if cr.config.Mode != "mutual" {
		return nil, nil
	}

	var caPEM []byte
	switch {
	case cr.config.CAContent != "":
		caPEM = []byte(cr.config.CAContent)
	case cr.config.CAFile != "":
		data, err := os.ReadFile(cr.config.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		caPEM = data
	default:
		return nil, fmt.Errorf("CA certificate is required for mutual TLS mode (provide either caFile or caContent)")
	}

	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(caPEM); !ok {
		return nil, fmt.Errorf("failed to append CA cert")
	}
	return pool, nil
}

// recordReload updates internal counters, otel metrics and callbacks
func (cr *CertReloader) recordReload(success bool, reloadErr error) {
	cr.mu.Lock()
	cr.reloadCount++
	cr.lastReloadTime = time.Now()
	cr.lastReloadSuccess = success
	if success {
		cr.reloadSuccessCount++
		cr.lastReloadError = ""
	} else {
		cr.reloadFailureCount++
		cr.lastReloadError = reloadErr.Error()
	}
	callbacks := make([]ReloadCallback, len(cr.reloadCallbacks))
	copy(callbacks, cr.reloadCallbacks)
	expiry := cr.certExpiry
	cr.mu.Unlock()

	observability.RecordCertReload(context.Background(), expiry, cr.om)

	for _, cb := range callbacks {
		cb(success, reloadErr)
	}
}

// certificateExpiry parses the leaf certificate's NotAfter timestamp
func certificateExpiry(cert *tls.Certificate) (time.Time, error) {
	if len(cert.Certificate) == 0 {
		return time.Time{}, fmt.Errorf("certificate chain is empty")
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return leaf.NotAfter, nil
}
