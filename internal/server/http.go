package server

import (
	"fmt"
	"time"

	"atscreen/internal/config"
	atsErrors "atscreen/internal/errors"
	"atscreen/internal/journal"
	"atscreen/internal/notify"
	"atscreen/internal/scoring"
)

// AnalyzeRequest represents the request body for the analyze endpoint
type AnalyzeRequest struct {
	ResumeText  string `json:"resumeText"`
	JobCategory string `json:"jobCategory,omitempty"`
}

// DetectRequest represents the request body for the detect endpoint
type DetectRequest struct {
	Text string `json:"text"`
}

// ScreenRequest represents the request body for the screen endpoint
type ScreenRequest struct {
	ResumeText     string `json:"resumeText"`
	JobCategory    string `json:"jobCategory,omitempty"`
	CandidateName  string `json:"candidateName,omitempty"`
	CandidateEmail string `json:"candidateEmail,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertReloader *CertReloader

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Scoring pipeline and its sidecars
	Engine   *scoring.Engine
	Notifier *notify.Sender
	Journal  *journal.Journal

	// Logger
	Logger *atsErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *atsErrors.Logger) (*Server, error) {
	engine, err := scoring.NewEngine(appCfg.Scoring.Weights, appCfg.Scoring.Thresholds, appCfg.Scoring.Screening)
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring engine: %w", err)
	}

	notifier, err := notify.NewSender(&appCfg.Notify, appCfg.Scoring.Screening.MinFinalScore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build notification sender: %w", err)
	}

	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Engine:         engine,
		Notifier:       notifier,
		Journal:        journal.New(&appCfg.Journal, logger),
		Logger:         logger,
	}, nil
}
