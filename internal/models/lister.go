package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"codeberg.org/snonux/vide/internal/backend"
)

// Lister handles listing available backend models
type Lister struct {
	config *backend.Config
	out    io.Writer
}

// NewLister creates a new model lister writing to out
func NewLister(config *backend.Config, out io.Writer) *Lister {
	if config == nil {
		config = backend.DefaultConfig()
	}
	return &Lister{config: config, out: out}
}

// ListAvailableModels prints the text generation models of the configured provider
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	var (
		ids []string
		err error
	)

	switch l.config.Provider {
	case backend.ProviderGemini, "":
		if l.config.GeminiKey == "" {
			return fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY environment variable or configure in .vide.yaml")
		}
		ids, err = l.listGemini(ctx)
	case backend.ProviderOpenAI:
		if l.config.OpenAIKey == "" {
			return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .vide.yaml")
		}
		ids, err = l.listOpenAI(ctx)
	default:
		return fmt.Errorf("unknown backend provider: %s", l.config.Provider)
	}
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	PrintModels(l.out, l.config.Provider, l.config.ModelName(), ids)
	return nil
}

func (l *Lister) listGemini(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     l.config.GeminiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: l.config.Timeout},
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		if supportsGenerateContent(model.SupportedActions) {
			ids = append(ids, strings.TrimPrefix(model.Name, "models/"))
		}
	}
	return FilterChatModels(ids), nil
}

func (l *Lister) listOpenAI(ctx context.Context) ([]string, error) {
	clientConfig := openai.DefaultConfig(l.config.OpenAIKey)
	if l.config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = l.config.OpenAIBaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Models))
	for _, model := range list.Models {
		ids = append(ids, model.ID)
	}
	return FilterChatModels(ids), nil
}

func supportsGenerateContent(actions []string) bool {
	// Older API responses omit the list entirely
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if a == "generateContent" {
			return true
		}
	}
	return false
}

// FilterChatModels keeps text generation models and drops embedding, audio,
// image and moderation models. The result is sorted.
func FilterChatModels(ids []string) []string {
	var out []string
	for _, id := range ids {
		lower := strings.ToLower(id)
		if strings.Contains(lower, "embed") || strings.Contains(lower, "tts") ||
			strings.Contains(lower, "audio") || strings.Contains(lower, "image") ||
			strings.Contains(lower, "dall-e") || strings.Contains(lower, "whisper") ||
			strings.Contains(lower, "moderation") || strings.Contains(lower, "transcribe") {
			continue
		}
		if strings.Contains(lower, "gemini") || strings.Contains(lower, "gemma") ||
			strings.Contains(lower, "gpt") || strings.Contains(lower, "chat") ||
			strings.HasPrefix(lower, "o1") || strings.HasPrefix(lower, "o3") || strings.HasPrefix(lower, "o4") {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// PrintModels prints ids, marking the currently configured model
func PrintModels(out io.Writer, provider, current string, ids []string) {
	fmt.Fprintf(out, "Available %s models for translation:\n", provider)
	if len(ids) == 0 {
		fmt.Fprintln(out, "  No text generation models found")
		return
	}
	for _, id := range ids {
		marker := " "
		if id == current {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %s\n", marker, id)
	}
}
