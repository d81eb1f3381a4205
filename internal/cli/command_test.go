package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vide/internal/translation"
)

func TestCreateRootCommand(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "vide [text]" {
		t.Errorf("Expected Use to be 'vide [text]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Vietnamese-German") {
		t.Errorf("Expected Short description to mention Vietnamese-German, got %q", cmd.Short)
	}

	// Test that flags are set up
	flagTests := []string{
		"config", "verbose", "direction", "swap", "batch", "json", "image-links",
		"list-models", "history", "no-history", "archive-history", "history-db", "provider", "model",
		"temperature", "max-attempts", "base-delay", "glossary-size", "strict",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" || name == "verbose" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestCreateRootCommand_Args(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := CreateRootCommand(NewFlags())
	if err := cmd.Args(cmd, []string{"a", "b"}); err == nil {
		t.Error("Expected error for more than one argument")
	}
	if err := cmd.Args(cmd, []string{"Xin chào"}); err != nil {
		t.Errorf("Unexpected error for one argument: %v", err)
	}
}

func TestSetupFlags(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	historyFlag := cmd.Flags().Lookup("history-db")
	if historyFlag == nil {
		t.Fatal("history-db flag not found")
	}

	home, _ := os.UserHomeDir()
	expectedDefault := filepath.Join(home, ".local", "state", "vide", "history.db")
	if historyFlag.DefValue != expectedDefault {
		t.Errorf("Expected default history db to be %s, got %s", expectedDefault, historyFlag.DefValue)
	}

	directionFlag := cmd.Flags().ShorthandLookup("d")
	if directionFlag == nil || directionFlag.DefValue != "vi-de" {
		t.Errorf("Expected -d shorthand with default vi-de")
	}

	delayFlag := cmd.Flags().Lookup("base-delay")
	if delayFlag == nil || delayFlag.DefValue != "1s" {
		t.Errorf("Expected base-delay default 1s")
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		check     func(t *testing.T)
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `backend:
  provider: openai
  openai_key: test-key
glossary:
  size: 10
  strict: true
retry:
  base_delay: 250ms`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			check: func(t *testing.T) {
				if viper.GetString("backend.provider") != "openai" {
					t.Errorf("Expected provider openai, got %q", viper.GetString("backend.provider"))
				}
				if viper.GetInt("glossary.size") != 10 || !viper.GetBool("glossary.strict") {
					t.Error("Glossary settings not loaded")
				}
				if viper.GetDuration("retry.base_delay") != 250*time.Millisecond {
					t.Errorf("Expected 250ms base delay, got %v", viper.GetDuration("retry.base_delay"))
				}
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
			check: func(t *testing.T) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()
			defer viper.Reset()

			InitConfig(tt.setupFunc(t))
			tt.check(t)

			// Test environment variable prefix
			t.Setenv("VIDE_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			t.Setenv("OPENAI_API_KEY", tt.envKey)
			if tt.configKey != "" {
				viper.Set("backend.openai_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	tests := []struct {
		name      string
		gemini    string
		google    string
		configKey string
		expected  string
	}{
		{"gemini env first", "gemini-key", "google-key", "config-key", "gemini-key"},
		{"google env fallback", "", "google-key", "config-key", "google-key"},
		{"config fallback", "", "", "config-key", "config-key"},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("GOOGLE_API_KEY", tt.google)
			if tt.configKey != "" {
				viper.Set("backend.gemini_key", tt.configKey)
			}

			if got := GetGeminiKey(); got != tt.expected {
				t.Errorf("GetGeminiKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("provider", "openai")
	cmd.Flags().Set("glossary-size", "10")
	cmd.Flags().Set("base-delay", "2s")
	cmd.Flags().Set("strict", "true")

	if viper.GetString("backend.provider") != "openai" {
		t.Errorf("Expected backend.provider to be openai, got %s", viper.GetString("backend.provider"))
	}
	if viper.GetInt("glossary.size") != 10 {
		t.Errorf("Expected glossary.size to be 10, got %d", viper.GetInt("glossary.size"))
	}
	if viper.GetDuration("retry.base_delay") != 2*time.Second {
		t.Errorf("Expected retry.base_delay to be 2s, got %v", viper.GetDuration("retry.base_delay"))
	}
	if !viper.GetBool("glossary.strict") {
		t.Error("Expected glossary.strict to be true")
	}
}

func TestBackendConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("GEMINI_API_KEY", "gem")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "oai")

	viper.Set("backend.provider", "openai")
	viper.Set("backend.model", "gpt-4o")
	viper.Set("backend.temperature", 0.5)
	viper.Set("backend.timeout", "10s")
	viper.Set("backend.breaker_failures", 0)
	viper.Set("backend.openai_base_url", "http://localhost:8080/v1")

	config := BackendConfig()
	if config.Provider != "openai" || config.Model != "gpt-4o" {
		t.Errorf("Unexpected provider/model: %s/%s", config.Provider, config.Model)
	}
	if config.Temperature != 0.5 {
		t.Errorf("Expected temperature 0.5, got %v", config.Temperature)
	}
	if config.Timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", config.Timeout)
	}
	if config.BreakerFailures != 0 {
		t.Errorf("Expected breaker disabled, got %d", config.BreakerFailures)
	}
	if config.GeminiKey != "gem" || config.OpenAIKey != "oai" {
		t.Errorf("Unexpected keys: %q %q", config.GeminiKey, config.OpenAIKey)
	}
	if config.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("Unexpected base URL %q", config.OpenAIBaseURL)
	}
}

func TestBackendConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	config := BackendConfig()
	if config.Provider != "gemini" {
		t.Errorf("Expected gemini provider, got %s", config.Provider)
	}
	if config.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", config.Temperature)
	}
	if config.BreakerFailures != 5 {
		t.Errorf("Expected 5 breaker failures, got %d", config.BreakerFailures)
	}
}

func TestRetryPolicy(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	policy := RetryPolicy()
	if policy.MaxAttempts != 3 || policy.BaseDelay != time.Second {
		t.Errorf("Unexpected default policy: %+v", policy)
	}

	viper.Set("retry.max_attempts", 5)
	viper.Set("retry.base_delay", "200ms")
	viper.Set("retry.max_delay", "1s")
	policy = RetryPolicy()
	if policy.MaxAttempts != 5 || policy.BaseDelay != 200*time.Millisecond || policy.MaxDelay != time.Second {
		t.Errorf("Unexpected configured policy: %+v", policy)
	}
}

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		swap      bool
		want      translation.Direction
		wantErr   bool
	}{
		{"default", "vi-de", false, translation.ViToDe, false},
		{"german source", "de-vi", false, translation.DeToVi, false},
		{"swapped", "vi-de", true, translation.DeToVi, false},
		{"swapped back", "DE-VI", true, translation.ViToDe, false},
		{"invalid", "en-de", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			flags := NewFlags()
			flags.Direction = tt.direction
			flags.Swap = tt.swap

			got, err := ResolveDirection(flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDirection() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveDirection() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := NewLogger(verbose)
		if err != nil {
			t.Fatalf("NewLogger(%v) failed: %v", verbose, err)
		}
		if got := logger.Core().Enabled(-1); got != verbose {
			t.Errorf("NewLogger(%v): debug enabled = %v", verbose, got)
		}
	}
}

func TestInitConfig_NestedEnvKeys(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("VIDE_BACKEND_PROVIDER", "openai")
	t.Setenv("VIDE_GLOSSARY_SIZE", "7")
	t.Setenv("VIDE_RETRY_BASE_DELAY", "300ms")

	InitConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	if got := viper.GetString("backend.provider"); got != "openai" {
		t.Errorf("backend.provider = %q, want openai", got)
	}
	if got := viper.GetInt("glossary.size"); got != 7 {
		t.Errorf("glossary.size = %d, want 7", got)
	}
	if got := RetryPolicy().BaseDelay; got != 300*time.Millisecond {
		t.Errorf("retry base delay = %v, want 300ms", got)
	}
	if got := BackendConfig().Provider; got != "openai" {
		t.Errorf("BackendConfig().Provider = %q, want openai", got)
	}
}
