package cli

import (
	"time"

	"codeberg.org/snonux/vide/internal/backend"
	"codeberg.org/snonux/vide/internal/backoff"
	"codeberg.org/snonux/vide/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	Direction   string
	Swap        bool
	BatchFile   string
	JSON        bool
	ImageLinks  bool
	ListModels  bool
	ShowHistory int
	NoHistory   bool
	Archive     bool
	HistoryPath string
	Verbose     bool

	// Backend flags
	Provider    string
	Model       string
	Temperature float64

	// Retry flags
	MaxAttempts int
	BaseDelay   time.Duration

	// Glossary flags
	GlossarySize int
	Strict       bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	defaults := backend.DefaultConfig()
	policy := backoff.DefaultPolicy()

	return &Flags{
		Direction:   string(translation.ViToDe),
		ImageLinks:  true,
		Provider:    defaults.Provider,
		Temperature: 0.2,
		MaxAttempts: policy.MaxAttempts,
		BaseDelay:   policy.BaseDelay,
	}
}
