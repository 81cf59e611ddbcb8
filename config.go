package mindchat

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SessionConfig holds the tunables of a ConversationSession.
// The quota, batch range, reveal interval and history window vary
// across deployments; treat them as configuration, not invariants.
type SessionConfig struct {
	// StartingQuota is the number of user submissions per session.
	StartingQuota int
	// VoiceCount is the exact number of profiles the generation step
	// must produce.
	VoiceCount int
	// BatchMin/BatchMax bound the reply batch cardinality. Batches
	// above BatchMax are truncated; a batch that is empty after
	// filtering counts as a provider failure.
	BatchMin int
	BatchMax int
	// RevealInterval spaces out the staged delivery of a reply batch.
	RevealInterval time.Duration
	// HistoryWindow is how many trailing non-system entries are passed
	// to the provider as conversational context.
	HistoryWindow int
	// ProviderTimeout is the hard timeout on every provider call.
	ProviderTimeout time.Duration
	// StoreKey is the persistence key for the session snapshot.
	StoreKey string
	// WelcomeText seeds the log when a session activates.
	WelcomeText string

	// Logger receives state transitions and degradations.
	// Defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultSessionConfig returns the reference configuration:
// quota 10, 8 voices, 1-8 replies per batch, 1.5s reveal interval,
// 10-entry history window, 30s provider timeout.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		StartingQuota:   10,
		VoiceCount:      8,
		BatchMin:        1,
		BatchMax:        8,
		RevealInterval:  1500 * time.Millisecond,
		HistoryWindow:   10,
		ProviderTimeout: 30 * time.Second,
		StoreKey:        "mindchat_session",
		WelcomeText:     "Your voices are ready. Tell them anything; they will answer from their own perspectives.",
		Logger:          zerolog.Nop(),
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	d := DefaultSessionConfig()
	if c.StartingQuota <= 0 {
		c.StartingQuota = d.StartingQuota
	}
	if c.VoiceCount <= 0 {
		c.VoiceCount = d.VoiceCount
	}
	if c.BatchMin <= 0 {
		c.BatchMin = d.BatchMin
	}
	if c.BatchMax <= 0 {
		c.BatchMax = d.BatchMax
	}
	if c.RevealInterval <= 0 {
		c.RevealInterval = d.RevealInterval
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = d.HistoryWindow
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = d.ProviderTimeout
	}
	if c.StoreKey == "" {
		c.StoreKey = d.StoreKey
	}
	if c.WelcomeText == "" {
		c.WelcomeText = d.WelcomeText
	}
	return c
}

// ──────────────────────────────────────────────
// Provider configuration
// ──────────────────────────────────────────────

// ProviderConfig configures the AnthropicProvider.
// Use NewProviderConfigFromEnv() to load from environment variables
// (.env file supported).
type ProviderConfig struct {
	// APIKey for the Anthropic Messages API.
	APIKey string
	// BaseURL of the API (default https://api.anthropic.com).
	BaseURL string
	// ProfileModel generates the voice profiles; ChatModel generates
	// chat replies. Both accept the tier aliases "haiku" and "sonnet".
	ProfileModel string
	ChatModel    string
	// MaxTokens caps each completion.
	MaxTokens int
	// Timeout bounds the underlying HTTP request.
	Timeout time.Duration
	// Debug enables verbose request logging.
	Debug bool
}

// Model tier aliases. The profile step defaults to the cheaper tier;
// quality on that step matters less than on chat replies.
var modelAliases = map[string]string{
	"haiku":  "claude-3-5-haiku-20241022",
	"sonnet": "claude-sonnet-4-20250514",
}

// NewProviderConfigFromEnv loads provider configuration from
// environment variables: ANTHROPIC_API_KEY (required),
// ANTHROPIC_BASE_URL, MINDCHAT_PROFILE_MODEL, MINDCHAT_CHAT_MODEL,
// MINDCHAT_MAX_TOKENS, MINDCHAT_TIMEOUT_SEC, DEBUG.
func NewProviderConfigFromEnv() (*ProviderConfig, error) {
	loadDotEnv()

	apiKey := getEnv("ANTHROPIC_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("api key not configured: set ANTHROPIC_API_KEY in environment")
	}

	maxTokens, _ := strconv.Atoi(getEnv("MINDCHAT_MAX_TOKENS", "4000"))
	timeoutSec, _ := strconv.Atoi(getEnv("MINDCHAT_TIMEOUT_SEC", "45"))

	return &ProviderConfig{
		APIKey:       apiKey,
		BaseURL:      getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		ProfileModel: getEnv("MINDCHAT_PROFILE_MODEL", "haiku"),
		ChatModel:    getEnv("MINDCHAT_CHAT_MODEL", "haiku"),
		MaxTokens:    maxTokens,
		Timeout:      time.Duration(timeoutSec) * time.Second,
		Debug:        toBool(getEnv("DEBUG", "false")),
	}, nil
}

// Summary returns a human-readable configuration summary with the key masked.
func (c *ProviderConfig) Summary() string {
	keyDisplay := c.APIKey
	if len(keyDisplay) > 10 {
		keyDisplay = keyDisplay[:10] + "..."
	}
	return fmt.Sprintf("Key: %s | Profile: %s | Chat: %s | Debug: %v",
		keyDisplay, c.ProfileModel, c.ChatModel, c.Debug)
}

// resolveModel expands a tier alias into a concrete model id.
func resolveModel(name string) string {
	if concrete, ok := modelAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return concrete
	}
	return name
}

// --- internal helpers ---

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}

func toBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// loadDotEnv attempts to load a .env file from the current directory.
// It silently ignores errors (file not found, parse errors).
func loadDotEnv() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}
