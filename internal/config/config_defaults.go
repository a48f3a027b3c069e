package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Scoring Configuration - criterion weights (must sum to 100)
	v.SetDefault("scoring.weights.format", 25)
	v.SetDefault("scoring.weights.keywords", 30)
	v.SetDefault("scoring.weights.readability", 20)
	v.SetDefault("scoring.weights.structure", 15)
	v.SetDefault("scoring.weights.contact", 10)

	// Scoring Configuration - rating thresholds
	v.SetDefault("scoring.thresholds.excellent", 85)
	v.SetDefault("scoring.thresholds.good", 70)
	v.SetDefault("scoring.thresholds.average", 55)
	v.SetDefault("scoring.thresholds.poor", 40)

	// Scoring Configuration - screening policy (weights must sum to 100)
	v.SetDefault("scoring.screening.atsWeight", 30)
	v.SetDefault("scoring.screening.keywordWeight", 25)
	v.SetDefault("scoring.screening.experienceWeight", 20)
	v.SetDefault("scoring.screening.educationWeight", 15)
	v.SetDefault("scoring.screening.skillsWeight", 10)
	v.SetDefault("scoring.screening.minKeywordRelevance", 40.0)
	v.SetDefault("scoring.screening.minFinalScore", 60.0)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)

	// TLS Configuration defaults
	v.SetDefault("server.tls.mode", "disabled") // disabled, server, mutual
	v.SetDefault("server.tls.certFile", "")
	v.SetDefault("server.tls.keyFile", "")
	v.SetDefault("server.tls.caFile", "")
	v.SetDefault("server.tls.minVersion", "1.2")           // TLS 1.2 minimum
	v.SetDefault("server.tls.cipherSuites", []string{})    // Use Go defaults
	v.SetDefault("server.tls.clientAuthPolicy", "require") // require, request, verify

	// Certificate auto-reload defaults
	v.SetDefault("server.tls.autoReload.enabled", true)
	v.SetDefault("server.tls.autoReload.debounceDelay", time.Second)

	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB

	// Notification Configuration
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.smtpHost", "")
	v.SetDefault("notify.smtpPort", 587)
	v.SetDefault("notify.username", "")
	v.SetDefault("notify.password", "")
	v.SetDefault("notify.senderName", "ATS Resume Screening")
	v.SetDefault("notify.senderEmail", "")
	v.SetDefault("notify.companyName", "")
	v.SetDefault("notify.companyWebsite", "")
	v.SetDefault("notify.hrEmail", "")

	// Notification circuit breaker defaults
	v.SetDefault("notify.circuitBreaker.enabled", true)
	v.SetDefault("notify.circuitBreaker.maxRequests", 3)
	v.SetDefault("notify.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("notify.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("notify.circuitBreaker.minRequests", 3)
	v.SetDefault("notify.circuitBreaker.failureThreshold", 0.6)

	// Journal Configuration
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.submissionsFile", "submissions.jsonl")
	v.SetDefault("journal.analysisCsvFile", "analysis_log.csv")

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.smtpPassword", "")
	v.SetDefault("vault.secrets.tlsCerts", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "atscreen")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.scoringOperations.enabled", true)
	v.SetDefault("observability.customMetrics.scoringOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.scoringOperations.trackScores", true)
	v.SetDefault("observability.customMetrics.scoringOperations.trackCategories", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackPassRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackCertExpiry", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
