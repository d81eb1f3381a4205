package backend

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"codeberg.org/snonux/vide/internal/translation"
)

// OpenAIBackend calls an OpenAI chat model with a strict JSON schema
type OpenAIBackend struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIBackend creates a new OpenAI backend
func NewOpenAIBackend(config *Config) *OpenAIBackend {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIBackend{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       config.ModelName(),
		temperature: config.Temperature,
	}
}

// Invoke sends one chat completion request constrained to schema
func (b *OpenAIBackend) Invoke(ctx context.Context, instructions string, schema *translation.Schema) (string, error) {
	def := ToJSONSchema(schema)
	req := openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: instructions,
			},
		},
		Temperature: b.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "translation_result",
				Schema: &def,
				Strict: true,
			},
		},
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: OpenAI API error: %w", translation.ErrBackendRequest, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: no response from OpenAI", translation.ErrBackendRequest)
	}

	return resp.Choices[0].Message.Content, nil
}

// ToJSONSchema converts a schema descriptor for OpenAI structured outputs.
// Strict mode needs every property listed as required and no additional
// properties, so optional fields come back as empty strings instead.
func ToJSONSchema(s *translation.Schema) jsonschema.Definition {
	if s == nil {
		return jsonschema.Definition{}
	}

	def := jsonschema.Definition{Description: s.Description}

	switch s.Type {
	case translation.TypeObject:
		def.Type = jsonschema.Object
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for _, name := range propertyNames(s) {
			def.Properties[name] = ToJSONSchema(s.Properties[name])
			def.Required = append(def.Required, name)
		}
		def.AdditionalProperties = false
	case translation.TypeArray:
		def.Type = jsonschema.Array
		if s.Items != nil {
			items := ToJSONSchema(s.Items)
			def.Items = &items
		}
	default:
		def.Type = jsonschema.String
	}

	return def
}

// propertyNames returns object properties in their declared order, followed
// by any property missing from PropertyOrdering
func propertyNames(s *translation.Schema) []string {
	seen := make(map[string]bool, len(s.Properties))
	var names []string
	for _, name := range s.PropertyOrdering {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
