package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Site names accepted by Require.
const (
	SiteSSPanel = "sspanel"
	SiteHashiqi = "hashiqi"
)

const (
	defaultPushPlusURL = "http://www.pushplus.plus/send"
	defaultMirrorURL   = "https://ikuuu.club"
	defaultHashiqiURL  = "https://vip.ioshashiqi.com/aspx3/mobile/qiandao.aspx?action=list&s=&no="
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
)

// Config holds all check-in configuration.
type Config struct {
	SSPanel SSPanelConfig
	Hashiqi HashiqiConfig
	Notify  NotifyConfig
	HTTP    HTTPConfig
	Log     LogConfig
	Metrics MetricsConfig
	// Jitter is the upper bound of a random pause before each account. Zero disables it.
	Jitter time.Duration
}

// SSPanelConfig holds settings for SSPANEL-based panels.
type SSPanelConfig struct {
	Accounts  []string // IKUUU
	Host      string   // SSPANEL_HOST, trailing slash stripped
	MirrorURL string
}

// HashiqiConfig holds settings for the legacy VIP portal.
type HashiqiConfig struct {
	Cookies        []string
	URL            string // check-in page
	RequireSession bool   // drop cookies without ASP.NET_SessionId
}

// NotifyConfig holds push-notification webhook settings.
type NotifyConfig struct {
	Token string
	URL   string
	// ArchiveFile, when set, receives every notification as an NDJSON line.
	ArchiveFile string
	// ArchiveMaxMB is the archive size that triggers rotation. Zero keeps the default.
	ArchiveMaxMB int
}

// HTTPConfig holds outbound request settings.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string // "debug", "info", "warn", "error"
	File  string
}

// MetricsConfig holds the optional Prometheus textfile destination.
type MetricsConfig struct {
	File string
}

// MissingError reports required environment variables that are absent.
type MissingError struct {
	Site string
	Vars []string
}

func (e *MissingError) Error() string {
	return "config: " + e.Site + ": missing required environment variable(s): " + strings.Join(e.Vars, ", ")
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is merged in first; variables already
// set in the environment take precedence.
func Load() Config {
	loadDotEnv(".env")

	return Config{
		SSPanel: SSPanelConfig{
			Accounts:  SplitAccounts(os.Getenv("IKUUU")),
			Host:      strings.TrimRight(strings.TrimSpace(os.Getenv("SSPANEL_HOST")), "/"),
			MirrorURL: getenv("SSPANEL_MIRROR_URL", defaultMirrorURL),
		},
		Hashiqi: HashiqiConfig{
			Cookies:        hashiqiCookies(),
			URL:            getenv("HASHIQI_URL", defaultHashiqiURL),
			RequireSession: getenvBool("HASHIQI_REQUIRE_SESSION", true),
		},
		Notify: NotifyConfig{
			Token: strings.TrimSpace(os.Getenv("PUSHPLUS_TOKEN")),
			URL:   getenv("PUSHPLUS_URL", defaultPushPlusURL),

			ArchiveFile:  os.Getenv("CHECKIN_ARCHIVE_FILE"),
			ArchiveMaxMB: getenvInt("CHECKIN_ARCHIVE_MAX_MB", 0),
		},
		HTTP: HTTPConfig{
			Timeout:   getenvDuration("CHECKIN_TIMEOUT", 10*time.Second),
			UserAgent: getenv("CHECKIN_USER_AGENT", defaultUserAgent),
		},
		Log: LogConfig{
			Level: getenv("CHECKIN_LOG_LEVEL", "info"),
			File:  os.Getenv("CHECKIN_LOG_FILE"),
		},
		Metrics: MetricsConfig{
			File: os.Getenv("CHECKIN_METRICS_FILE"),
		},
		Jitter: getenvDuration("CHECKIN_JITTER", 0),
	}
}

// Require checks that the variables a site cannot run without are present.
// SSPANEL needs an account list; the legacy portal needs at least one cookie
// and a webhook token, since its results are only delivered by push.
func (c Config) Require(site string) error {
	var missing []string
	switch site {
	case SiteSSPanel:
		if len(c.SSPanel.Accounts) == 0 {
			missing = append(missing, "IKUUU")
		}
	case SiteHashiqi:
		if len(c.Hashiqi.Cookies) == 0 {
			missing = append(missing, "HASHIQI_COOKIES (or HASHIQI_TOKENS/HASHIQI_TOKENS_2)")
		}
		if c.Notify.Token == "" {
			missing = append(missing, "PUSHPLUS_TOKEN")
		}
	}
	if len(missing) > 0 {
		return &MissingError{Site: site, Vars: missing}
	}
	return nil
}

// SplitAccounts splits a multi-account value on '&' and newlines, trimming
// whitespace and dropping empty items. Order is preserved.
func SplitAccounts(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '&' || r == '\n' || r == '\r'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// hashiqiCookies merges the multi-line variable with the two fixed slots.
func hashiqiCookies() []string {
	cookies := SplitAccounts(os.Getenv("HASHIQI_COOKIES"))
	for _, key := range []string{"HASHIQI_TOKENS", "HASHIQI_TOKENS_2"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cookies = append(cookies, v)
		}
	}
	return cookies
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable env file", "path", path, "error", err)
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
