// Package config loads docrank settings from defaults, an optional YAML file,
// DOCRANK_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys shared with command-line flag binding.
const (
	KeyInputDir           = "input_dir"
	KeyOutputFile         = "output_file"
	KeyPersonaFile        = "persona_file"
	KeyJobFile            = "job_file"
	KeyDefaultPersona     = "default_persona"
	KeyDefaultJob         = "default_job"
	KeyExtensions         = "extensions"
	KeyTopSections        = "top_sections"
	KeySubsectionSections = "subsection_sections"
	KeyMaxSubsections     = "max_subsections"
	KeyWindowSize         = "window_size"
	KeyMaxExcerptChars    = "max_excerpt_chars"
	KeyMaxFeatures        = "max_features"
	KeyPDFFallback        = "pdf.fallback_pdftotext"
	KeyPDFValidate        = "pdf.validate"
	KeyPort               = "port"
	KeyAPIKey             = "api_key"
	KeyWorkerCount        = "worker_count"
	KeyMaxQueueSize       = "max_queue_size"
	KeyMaxUploadBytes     = "max_upload_bytes"
	KeyJobTTL             = "job_ttl"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DOCRANK"

type Config struct {
	// Batch input and output
	InputDir    string
	OutputFile  string
	PersonaFile string
	JobFile     string

	DefaultPersona string
	DefaultJob     string

	// Enabled input formats, e.g. ".pdf".
	Extensions []string

	// Result shape
	TopSections        int
	SubsectionSections int
	MaxSubsections     int
	WindowSize         int
	MaxExcerptChars    int

	// Vector model
	MaxFeatures int

	// PDF
	PDFFallbackPdftotext bool
	PDFValidate          bool

	// HTTP server
	Port           string
	APIKey         string
	WorkerCount    int
	MaxQueueSize   int
	MaxUploadBytes int64
	JobTTL         time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyInputDir, "input")
	v.SetDefault(KeyOutputFile, "output/analysis.json")
	v.SetDefault(KeyPersonaFile, "persona.txt")
	v.SetDefault(KeyJobFile, "job.txt")
	v.SetDefault(KeyDefaultPersona, "PhD Researcher in Computational Biology")
	v.SetDefault(KeyDefaultJob, "Prepare a comprehensive literature review")
	v.SetDefault(KeyExtensions, []string{".pdf"})

	v.SetDefault(KeyTopSections, 15)
	v.SetDefault(KeySubsectionSections, 20)
	v.SetDefault(KeyMaxSubsections, 3)
	v.SetDefault(KeyWindowSize, 3)
	v.SetDefault(KeyMaxExcerptChars, 500)
	v.SetDefault(KeyMaxFeatures, 1000)

	v.SetDefault(KeyPDFFallback, true)
	v.SetDefault(KeyPDFValidate, false)

	v.SetDefault(KeyPort, "8090")
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyWorkerCount, 4)
	v.SetDefault(KeyMaxQueueSize, 100)
	v.SetDefault(KeyMaxUploadBytes, int64(52428800)) // 50MB
	v.SetDefault(KeyJobTTL, time.Hour)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the effective configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		InputDir:       v.GetString(KeyInputDir),
		OutputFile:     v.GetString(KeyOutputFile),
		PersonaFile:    v.GetString(KeyPersonaFile),
		JobFile:        v.GetString(KeyJobFile),
		DefaultPersona: v.GetString(KeyDefaultPersona),
		DefaultJob:     v.GetString(KeyDefaultJob),
		Extensions:     normalizeExtensions(v.GetStringSlice(KeyExtensions)),

		TopSections:        v.GetInt(KeyTopSections),
		SubsectionSections: v.GetInt(KeySubsectionSections),
		MaxSubsections:     v.GetInt(KeyMaxSubsections),
		WindowSize:         v.GetInt(KeyWindowSize),
		MaxExcerptChars:    v.GetInt(KeyMaxExcerptChars),
		MaxFeatures:        v.GetInt(KeyMaxFeatures),

		PDFFallbackPdftotext: v.GetBool(KeyPDFFallback),
		PDFValidate:          v.GetBool(KeyPDFValidate),

		Port:           v.GetString(KeyPort),
		APIKey:         v.GetString(KeyAPIKey),
		WorkerCount:    v.GetInt(KeyWorkerCount),
		MaxQueueSize:   v.GetInt(KeyMaxQueueSize),
		MaxUploadBytes: v.GetInt64(KeyMaxUploadBytes),
		JobTTL:         v.GetDuration(KeyJobTTL),

		LogLevel:  strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects non-positive limits and unknown log settings.
func (c Config) Validate() error {
	positive := []struct {
		key string
		val int64
	}{
		{KeyTopSections, int64(c.TopSections)},
		{KeySubsectionSections, int64(c.SubsectionSections)},
		{KeyMaxSubsections, int64(c.MaxSubsections)},
		{KeyWindowSize, int64(c.WindowSize)},
		{KeyMaxExcerptChars, int64(c.MaxExcerptChars)},
		{KeyMaxFeatures, int64(c.MaxFeatures)},
		{KeyWorkerCount, int64(c.WorkerCount)},
		{KeyMaxQueueSize, int64(c.MaxQueueSize)},
		{KeyMaxUploadBytes, c.MaxUploadBytes},
		{KeyJobTTL, int64(c.JobTTL)},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.key, p.val)
		}
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%s must list at least one file extension", KeyExtensions)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: unknown level %q", KeyLogLevel, c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%s: unknown format %q", KeyLogFormat, c.LogFormat)
	}
	return nil
}

// normalizeExtensions lower-cases extensions and ensures a leading dot.
func normalizeExtensions(exts []string) []string {
	var out []string
	for _, e := range exts {
		for _, part := range strings.Split(e, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if !strings.HasPrefix(part, ".") {
				part = "." + part
			}
			out = append(out, part)
		}
	}
	return out
}
