package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/vide/internal"
	"codeberg.org/snonux/vide/internal/backoff"
)

// Backend performs one round trip to a generative model. The reply must be
// text matching schema. Implementations wrap every failure in ErrBackendRequest.
type Backend interface {
	Invoke(ctx context.Context, instructions string, schema *Schema) (string, error)
}

// BackendFunc adapts a function to the Backend interface
type BackendFunc func(ctx context.Context, instructions string, schema *Schema) (string, error)

// Invoke calls f
func (f BackendFunc) Invoke(ctx context.Context, instructions string, schema *Schema) (string, error) {
	return f(ctx, instructions, schema)
}

// Translator handles Vietnamese↔German translation requests. It holds no
// per-request state and is safe for concurrent use.
type Translator struct {
	backend Backend
	builder *Builder
	policy  backoff.Policy
	logger  *zap.Logger
	strict  bool
}

// Option configures a Translator
type Option func(*Translator)

// WithPolicy overrides the default retry policy (3 attempts, 1s base delay)
func WithPolicy(p backoff.Policy) Option {
	return func(t *Translator) {
		if p.Sleeper == nil {
			p.Sleeper = t.policy.Sleeper
		}
		t.policy = p
	}
}

// WithSleeper replaces the sleeper used between attempts
func WithSleeper(s backoff.Sleeper) Option {
	return func(t *Translator) { t.policy.Sleeper = s }
}

// WithLogger sets the logger for per-attempt failures
func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithGlossarySize pins the related terms list to n items. Zero means the
// note decides.
func WithGlossarySize(n int) Option {
	return func(t *Translator) { t.builder = NewBuilder(n) }
}

// WithStrictConsistency makes a note/glossary mismatch a retryable
// malformed response instead of a logged warning
func WithStrictConsistency(strict bool) Option {
	return func(t *Translator) { t.strict = strict }
}

// NewTranslator creates a new translator on top of backend
func NewTranslator(backend Backend, opts ...Option) *Translator {
	t := &Translator{
		backend: backend,
		builder: NewBuilder(0),
		policy:  backoff.DefaultPolicy(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TranslateAndSearch translates text in direction dir and returns the
// translation with its cultural note and related German terms.
//
// Invalid input fails at once with ErrInvalidInput and never reaches the
// backend. Backend and malformed-response failures are retried; when every
// attempt fails the error is an *UnavailableError.
func (t *Translator) TranslateAndSearch(ctx context.Context, text string, dir Direction) (*Result, error) {
	if err := t.builder.Validate(text, dir); err != nil {
		return nil, err
	}

	requestID := internal.GenerateRequestID(text)
	log := t.logger.With(zap.String("request_id", requestID), zap.String("direction", string(dir)))

	var result *Result
	err := t.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		res, err := t.attempt(ctx, text, dir, log)
		if err != nil {
			if !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}, func(attempt int, err error, delay time.Duration) {
		log.Warn("Translation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", t.policy.Attempts()),
			zap.Duration("retry_in", delay),
			zap.Error(err))
	})

	if err != nil {
		var exhausted *backoff.ExhaustedError
		if errors.As(err, &exhausted) {
			log.Error("Translation unavailable", zap.Int("attempts", exhausted.Attempts), zap.Error(exhausted.Last))
			return nil, &UnavailableError{Attempts: exhausted.Attempts, Last: exhausted.Last}
		}
		return nil, err
	}

	log.Debug("Translation succeeded", zap.Int("related_terms", len(result.RelatedTerms)))
	return result, nil
}

// attempt runs build, invoke and normalize once. Errors other than backend
// and malformed-response failures end the retry loop.
func (t *Translator) attempt(ctx context.Context, text string, dir Direction, log *zap.Logger) (*Result, error) {
	prompt, err := t.builder.Build(text, dir)
	if err != nil {
		return nil, err
	}

	raw, err := t.backend.Invoke(ctx, prompt.Instructions, prompt.Schema)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, ErrBackendRequest) {
			err = fmt.Errorf("%w: %w", ErrBackendRequest, err)
		}
		return nil, err
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrBackendRequest)
	}

	result, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	if report := CheckConsistency(result); !report.OK() {
		if t.strict {
			return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, report)
		}
		log.Warn("Glossary does not match note", zap.Stringer("report", report))
	}

	return result, nil
}
