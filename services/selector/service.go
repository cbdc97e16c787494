package selector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/probelabs/llm-probe/services/providers"
	"github.com/probelabs/llm-probe/services/providers/gemini"
	"github.com/probelabs/llm-probe/services/providers/groq"
	"github.com/probelabs/llm-probe/services/providers/openai"
	"go.uber.org/zap"
)

// Config holds the explicit inputs for the selection policy: one
// configuration per provider plus the optional forced directive. All env
// reads happen before construction, so selection itself is deterministic.
type Config struct {
	Gemini providers.ProviderConfig
	OpenAI providers.ProviderConfig
	Groq   providers.ProviderConfig

	// ForcedProvider, when non-empty, selects exactly that provider and
	// disables fallback. Matched case-insensitively against the provider
	// identifier set; unrecognized values fail the whole operation.
	ForcedProvider string
}

// Metrics receives per-attempt outcomes from the selection loop.
type Metrics interface {
	ObserveAttempt(provider providers.ProviderID, outcome string, duration time.Duration)
}

// Attempt outcomes reported to Metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Service owns the ordered fallback policy over the provider adapters.
// The priority order is fixed at build time: gemini, then groq, then
// openai. Candidates are tried one at a time, never raced.
type Service struct {
	candidates []providers.HelloProvider
	byID       map[providers.ProviderID]providers.HelloProvider
	forced     string
	logger     *zap.Logger
	metrics    Metrics
}

// New creates a selector service from explicit configuration, building
// one adapter per provider in the fixed priority order.
func New(cfg Config, logger *zap.Logger) *Service {
	return NewWithProviders(cfg.ForcedProvider, logger,
		gemini.New(cfg.Gemini),
		groq.New(cfg.Groq),
		openai.New(cfg.OpenAI),
	)
}

// NewWithProviders creates a selector over an explicit candidate list.
// The slice order is the auto-selection priority order.
func NewWithProviders(forced string, logger *zap.Logger, candidates ...providers.HelloProvider) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	byID := make(map[providers.ProviderID]providers.HelloProvider, len(candidates))
	for _, c := range candidates {
		byID[c.Name()] = c
	}

	return &Service{
		candidates: candidates,
		byID:       byID,
		forced:     forced,
		logger:     logger,
	}
}

// WithMetrics attaches an attempt-outcome observer and returns the service.
func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

// Hello runs one selection using the configured directive.
func (s *Service) Hello(ctx context.Context) (*providers.HelloResult, error) {
	return s.HelloWithDirective(ctx, s.forced)
}

// HelloWithDirective runs one selection. A non-empty directive forces that
// provider exclusively; an empty directive falls through to auto-selection
// over the fixed priority order.
func (s *Service) HelloWithDirective(ctx context.Context, directive string) (*providers.HelloResult, error) {
	directive = strings.ToLower(strings.TrimSpace(directive))

	if directive != "" {
		id, err := providers.ParseProviderID(directive)
		if err != nil {
			// Invalid directives never fall through to auto-selection.
			return nil, err
		}
		return s.helloForced(ctx, id)
	}

	return s.helloAuto(ctx)
}

// helloForced calls exactly one provider; its success or failure is the
// operation's outcome. No fallback is attempted even on failure.
func (s *Service) helloForced(ctx context.Context, id providers.ProviderID) (*providers.HelloResult, error) {
	candidate, ok := s.byID[id]
	if !ok {
		return nil, providers.NewProviderError(id, providers.CodeUnsupportedProvider,
			fmt.Sprintf("provider %s is not registered", id), 0, nil)
	}

	s.logger.Debug("provider forced by directive", zap.String("provider", id.String()))

	result, err := s.invoke(ctx, candidate)
	if err != nil {
		s.logger.Warn("forced provider failed",
			zap.String("provider", id.String()),
			zap.Error(err))
		return nil, err
	}

	return result, nil
}

// attempt records the outcome of one candidate invocation in the auto
// path. Failures are collected here instead of transferring control, and
// only the synthesized exhaustion error ever reaches the caller.
type attempt struct {
	provider providers.ProviderID
	err      error
}

// helloAuto evaluates candidates in the fixed priority order, skipping any
// without a credential and advancing past any that fail, returning the
// first success.
func (s *Service) helloAuto(ctx context.Context) (*providers.HelloResult, error) {
	var attempts []attempt

	for _, candidate := range s.candidates {
		id := candidate.Name()

		if !candidate.HasCredential() {
			s.logger.Debug("skipping provider without credential",
				zap.String("provider", id.String()))
			if s.metrics != nil {
				s.metrics.ObserveAttempt(id, OutcomeSkipped, 0)
			}
			continue
		}

		result, err := s.invoke(ctx, candidate)
		if err == nil {
			s.logger.Info("provider selected",
				zap.String("provider", id.String()),
				zap.String("model", result.Model),
				zap.Int("failed_attempts", len(attempts)))
			return result, nil
		}

		s.logger.Warn("provider attempt failed, trying next candidate",
			zap.String("provider", id.String()),
			zap.Error(err))
		attempts = append(attempts, attempt{provider: id, err: err})
	}

	expected := make([]string, 0, len(s.candidates))
	for _, c := range s.candidates {
		expected = append(expected, providers.CredentialEnvVar(c.Name()))
	}

	return nil, providers.NewProviderError("", providers.CodeNoProviderAvailable,
		fmt.Sprintf("no provider available after %d attempts (set one of: %s)",
			len(attempts), strings.Join(expected, ", ")), 0, nil)
}

// invoke calls a single candidate and records the attempt outcome.
func (s *Service) invoke(ctx context.Context, candidate providers.HelloProvider) (*providers.HelloResult, error) {
	start := time.Now()
	result, err := candidate.Hello(ctx)

	if s.metrics != nil {
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		}
		s.metrics.ObserveAttempt(candidate.Name(), outcome, time.Since(start))
	}

	return result, err
}

// Ready reports whether a selection could plausibly succeed: a forced
// directive is configured, or at least one candidate has a credential.
func (s *Service) Ready() bool {
	if strings.TrimSpace(s.forced) != "" {
		return true
	}
	for _, c := range s.candidates {
		if c.HasCredential() {
			return true
		}
	}
	return false
}

// Candidates returns the provider identifiers in priority order.
func (s *Service) Candidates() []providers.ProviderID {
	ids := make([]providers.ProviderID, len(s.candidates))
	for i, c := range s.candidates {
		ids[i] = c.Name()
	}
	return ids
}
