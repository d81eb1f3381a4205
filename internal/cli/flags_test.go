package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Direction", flags.Direction, "vi-de"},
		{"Provider", flags.Provider, "gemini"},
		{"Temperature", flags.Temperature, 0.2},
		{"MaxAttempts", flags.MaxAttempts, 3},
		{"BaseDelay", flags.BaseDelay, time.Second},
		{"GlossarySize", flags.GlossarySize, 0},
		{"ImageLinks", flags.ImageLinks, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Swap", flags.Swap},
		{"JSON", flags.JSON},
		{"ListModels", flags.ListModels},
		{"NoHistory", flags.NoHistory},
		{"Archive", flags.Archive},
		{"Strict", flags.Strict},
		{"Verbose", flags.Verbose},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"BatchFile", flags.BatchFile},
		{"Model", flags.Model},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %q, want empty string", tt.name, tt.value)
			}
		})
	}
}
