package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration. It is built once at process start
// and handed to the components that need it.
type Config struct {
	Port            string
	Env             string
	Debug           bool
	CORSAllowOrigin []string

	GeminiAPIKey   string
	GeminiModel    string
	LLMTemperature float32
	LLMTopK        float32
	LLMMaxAttempts int
	GitHubToken    string
	GitHubAPIURL   string
	GitHubTimeout  time.Duration
	UseRealGitHub  bool
	ChromeBin      string
	RenderTimeout  time.Duration
	ThemeFile      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	origins := splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"))
	if frontend := strings.TrimSpace(os.Getenv("FRONTEND_URL")); frontend != "" && !contains(origins, frontend) {
		origins = append(origins, frontend)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		Debug:           getBool("DEBUG", false),
		CORSAllowOrigin: origins,
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTemperature:  float32(getFloat("LLM_TEMPERATURE", 0.1)),
		LLMTopK:         float32(getFloat("LLM_TOP_K", 40)),
		LLMMaxAttempts:  getInt("LLM_MAX_ATTEMPTS", 3),
		GitHubToken:     getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:    strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
		GitHubTimeout:   time.Duration(getInt("GITHUB_TIMEOUT_SECONDS", 15)) * time.Second,
		UseRealGitHub:   getBool("USE_REAL_GITHUB", true),
		ChromeBin:       getEnv("CHROME_BIN", ""),
		RenderTimeout:   time.Duration(getInt("RENDER_TIMEOUT_SECONDS", 30)) * time.Second,
		ThemeFile:       getEnv("RENDER_THEME_FILE", ""),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 0.2),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 5),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return def
	}
	return parsed
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
