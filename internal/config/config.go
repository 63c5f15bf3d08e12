package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/dgallion1/yellowpad/internal/document"
)

type Config struct {
	Port string

	// Auth. Empty disables bearer auth on /api.
	APIKey string

	LogLevel string

	// Upload limits
	MaxUploadBytes int64

	// Document state
	DocumentTTL        time.Duration
	CleanupInterval    time.Duration
	MaxJobsPerDocument int

	// Extraction
	PDFFallbackPdftotext bool
	DetectStyle          bool

	// Fallback style when the source carries no run formatting.
	HeadingFont      string
	HeadingSize      string
	HeadingBold      bool
	HeadingUnderline bool
	BodyFont         string
	BodySize         string
	BodySpacing      string
}

func Load() Config {
	def := document.DefaultStyle()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("YELLOWPAD_API_KEY"),

		LogLevel: envOr("LOG_LEVEL", "info"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DocumentTTL:        envDuration("DOCUMENT_TTL", 1*time.Hour),
		CleanupInterval:    envDuration("CLEANUP_INTERVAL", 5*time.Minute),
		MaxJobsPerDocument: envInt("MAX_JOBS_PER_DOCUMENT", 100),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
		DetectStyle:          envBool("DETECT_STYLE", true),

		HeadingFont:      envOr("HEADING_FONT", def.Heading.FontFamily),
		HeadingSize:      envOr("HEADING_SIZE", def.Heading.FontSize),
		HeadingBold:      envBool("HEADING_BOLD", def.Heading.Bold),
		HeadingUnderline: envBool("HEADING_UNDERLINE", def.Heading.Underline),
		BodyFont:         envOr("BODY_FONT", def.Body.FontFamily),
		BodySize:         envOr("BODY_SIZE", def.Body.FontSize),
		BodySpacing:      envOr("BODY_SPACING", def.Spacing),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DocumentTTL <= 0 {
		cfg.DocumentTTL = 1 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.MaxJobsPerDocument <= 0 {
		cfg.MaxJobsPerDocument = 100
	}

	return cfg
}

var pointSize = regexp.MustCompile(`(?i)^\d+(\.\d+)?pt$`)

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MaxJobsPerDocument, validation.Required, validation.Min(1)),
		validation.Field(&c.HeadingFont, validation.Required),
		validation.Field(&c.BodyFont, validation.Required),
		validation.Field(&c.HeadingSize, validation.Required, validation.Match(pointSize).Error("must be a point size such as 12pt")),
		validation.Field(&c.BodySize, validation.Required, validation.Match(pointSize).Error("must be a point size such as 11pt")),
	)
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Style is the fallback document style.
func (c Config) Style() document.Style {
	s := document.DefaultStyle()
	s.Heading = document.TextStyle{
		Bold:       c.HeadingBold,
		Underline:  c.HeadingUnderline,
		FontSize:   c.HeadingSize,
		FontFamily: c.HeadingFont,
	}
	s.Body = document.TextStyle{
		FontSize:   c.BodySize,
		FontFamily: c.BodyFont,
	}
	s.Spacing = c.BodySpacing
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
