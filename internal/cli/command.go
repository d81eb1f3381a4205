package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"codeberg.org/snonux/vide/internal"
	"codeberg.org/snonux/vide/internal/backend"
	"codeberg.org/snonux/vide/internal/backoff"
	"codeberg.org/snonux/vide/internal/history"
	"codeberg.org/snonux/vide/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vide [text]",
		Short: "Vietnamese-German translator with cultural notes",
		Long: `vide translates between Vietnamese and German using a generative
model. Every translation comes with a cultural note written in Vietnamese
and a glossary of the German terms the note refers to, each with its
article and Vietnamese meaning.

Examples:
  vide "Xin chào"                    # Vietnamese to German
  vide -d de-vi "Guten Morgen"       # German to Vietnamese
  vide --swap "Guten Morgen"         # same, by swapping the default direction
  vide --batch phrases.txt           # one request per line
  vide --history 20                  # show the last 20 translations
  vide --archive-history             # start a fresh history database`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vide.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose logging to stderr")

	// Local flags
	cmd.Flags().StringVarP(&flags.Direction, "direction", "d", flags.Direction, "Translation direction: vi-de or de-vi")
	cmd.Flags().BoolVarP(&flags.Swap, "swap", "s", false, "Swap the translation direction")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate requests from file (one per line, optional vi-de:/de-vi: prefix)")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&flags.ImageLinks, "image-links", flags.ImageLinks, "Show an image search link for every related term")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available models for the configured provider")
	cmd.Flags().IntVar(&flags.ShowHistory, "history", 0, "Show the last N translations and exit")
	cmd.Flags().BoolVar(&flags.NoHistory, "no-history", false, "Do not record translations in the history database")
	cmd.Flags().BoolVar(&flags.Archive, "archive-history", false, "Move the history database into the archive directory and exit")
	cmd.Flags().StringVar(&flags.HistoryPath, "history-db", history.DefaultPath(), "History database path")

	// Backend flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Backend provider: gemini or openai")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default depends on provider)")
	cmd.Flags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature")

	// Retry flags
	cmd.Flags().IntVar(&flags.MaxAttempts, "max-attempts", flags.MaxAttempts, "Maximum backend attempts per request")
	cmd.Flags().DurationVar(&flags.BaseDelay, "base-delay", flags.BaseDelay, "Delay after the first failed attempt, doubled after each further failure")

	// Glossary flags
	cmd.Flags().IntVar(&flags.GlossarySize, "glossary-size", 0, "Exact number of related terms (0 lets the note decide)")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Retry when the glossary does not match the terms in the note")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("direction", cmd.Flags().Lookup("direction"))
	viper.BindPFlag("output.json", cmd.Flags().Lookup("json"))
	viper.BindPFlag("output.image_links", cmd.Flags().Lookup("image-links"))
	viper.BindPFlag("backend.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("backend.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("backend.temperature", cmd.Flags().Lookup("temperature"))
	viper.BindPFlag("retry.max_attempts", cmd.Flags().Lookup("max-attempts"))
	viper.BindPFlag("retry.base_delay", cmd.Flags().Lookup("base-delay"))
	viper.BindPFlag("glossary.size", cmd.Flags().Lookup("glossary-size"))
	viper.BindPFlag("glossary.strict", cmd.Flags().Lookup("strict"))
	viper.BindPFlag("history.path", cmd.Flags().Lookup("history-db"))
	viper.BindPFlag("history.disabled", cmd.Flags().Lookup("no-history"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".vide" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vide")
	}

	// Environment variables
	viper.SetEnvPrefix("VIDE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return viper.GetString("backend.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("backend.openai_key")
}

// BackendConfig assembles the backend configuration from viper and the environment
func BackendConfig() *backend.Config {
	config := backend.DefaultConfig()

	if provider := viper.GetString("backend.provider"); provider != "" {
		config.Provider = provider
	}
	config.Model = viper.GetString("backend.model")
	if viper.IsSet("backend.temperature") {
		config.Temperature = float32(viper.GetFloat64("backend.temperature"))
	}
	if timeout := viper.GetDuration("backend.timeout"); timeout > 0 {
		config.Timeout = timeout
	}
	if viper.IsSet("backend.breaker_failures") {
		config.BreakerFailures = viper.GetUint32("backend.breaker_failures")
	}

	config.GeminiKey = GetGeminiKey()
	config.OpenAIKey = GetOpenAIKey()
	config.OpenAIBaseURL = viper.GetString("backend.openai_base_url")

	return config
}

// RetryPolicy returns the backoff policy configured in viper
func RetryPolicy() backoff.Policy {
	policy := backoff.DefaultPolicy()
	if n := viper.GetInt("retry.max_attempts"); n > 0 {
		policy.MaxAttempts = n
	}
	if d := viper.GetDuration("retry.base_delay"); d > 0 {
		policy.BaseDelay = d
	}
	policy.MaxDelay = viper.GetDuration("retry.max_delay")
	return policy
}

// HistoryPath returns the configured history database path
func HistoryPath() string {
	if path := viper.GetString("history.path"); path != "" {
		return path
	}
	return history.DefaultPath()
}

// ResolveDirection parses the configured direction and applies --swap
func ResolveDirection(flags *Flags) (translation.Direction, error) {
	raw := viper.GetString("direction")
	if raw == "" {
		raw = flags.Direction
	}

	dir, err := translation.ParseDirection(raw)
	if err != nil {
		return "", err
	}
	if flags.Swap {
		dir = dir.Reverse()
	}
	return dir, nil
}

// NewLogger builds a JSON logger on stderr, at debug level when verbose.
// Quiet runs only log warnings and errors.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
