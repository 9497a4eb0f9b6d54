package scenario

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/v0xg/featuregen/internal/ai"
	"github.com/v0xg/featuregen/internal/markup"
)

// Method records how a document's scenarios were produced.
type Method string

const (
	MethodGenerative Method = "generative"
	MethodRuleBased  Method = "rule-based"
)

const (
	FormatGherkin = "gherkin"

	DefaultTimeout      = 30 * time.Second
	DefaultProbeTimeout = 5 * time.Second
)

// Options control one Synthesize call.
type Options struct {
	UseGenerative bool
	Timeout       time.Duration // bounds the single Complete call
	ProbeTimeout  time.Duration // bounds the availability probe
	Frameworks    []string      // extra framework names, e.g. from a directory scan
}

// Result is the synthesized feature document plus its metadata.
type Result struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	Format        string     `json:"format"`
	Method        Method     `json:"generation_method"`
	Model         string     `json:"model,omitempty"`
	ScenarioCount int        `json:"scenarios_count"`
	Scenarios     []Scenario `json:"scenarios"`
	Summary       Summary    `json:"analysis_summary"`
	GeneratedAt   time.Time  `json:"generated_at"`
}

// Synthesizer turns catalogs into a Gherkin feature document. The provider
// is optional; without one every call takes the rule-based path.
type Synthesizer struct {
	provider ai.Provider
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Synthesizer)

func WithLogger(l *slog.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		if now != nil {
			s.now = now
		}
	}
}

func New(provider ai.Provider, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		provider: provider,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synthesizer) Name() string { return FormatGherkin }

// CanGenerate reports whether there is anything to synthesize from.
func (s *Synthesizer) CanGenerate(results int) bool {
	return results > 0
}

// Synthesize never fails. Collaborator errors, timeouts and unparseable
// responses all select the rule-based scenarios.
func (s *Synthesizer) Synthesize(ctx context.Context, catalogs []*markup.Catalog, opts Options) *Result {
	view := Combine(catalogs, opts.Frameworks...)
	for _, path := range view.Failed {
		s.logger.Warn("skipping unreadable document", "path", path)
	}

	method := MethodRuleBased
	model := ""
	scenarios := s.generate(ctx, view, opts)
	if len(scenarios) > 0 {
		method = MethodGenerative
		model = s.provider.Model()
	} else {
		scenarios = RuleBased(view)
	}

	summary := view.Summary()
	generatedAt := s.now()
	content := Render(FeatureName(view.Frameworks), scenarios, Metadata{
		Method:      method,
		Model:       model,
		Summary:     summary,
		GeneratedAt: generatedAt,
	})

	s.logger.Info("synthesized scenarios",
		"method", method,
		"scenarios", len(scenarios),
		"files", summary.TotalFiles,
	)

	return &Result{
		ID:            uuid.NewString(),
		Content:       content,
		Format:        FormatGherkin,
		Method:        method,
		Model:         model,
		ScenarioCount: len(scenarios),
		Scenarios:     scenarios,
		Summary:       summary,
		GeneratedAt:   generatedAt,
	}
}

// generate makes at most one Complete call and returns nil whenever the
// fallback should be used.
func (s *Synthesizer) generate(ctx context.Context, view *CombinedView, opts Options) []Scenario {
	if !opts.UseGenerative || s.provider == nil {
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, durationOr(opts.ProbeTimeout, DefaultProbeTimeout))
	available := s.provider.Available(probeCtx)
	cancel()
	if !available {
		s.logger.Warn("generative provider not available, using rule-based scenarios",
			"provider", s.provider.Name(), "error", ai.ErrUnavailable)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, durationOr(opts.Timeout, DefaultTimeout))
	defer cancel()

	text, err := s.provider.Complete(callCtx, BuildPrompt(view))
	if err != nil {
		s.logger.Warn("generative request failed, using rule-based scenarios",
			"provider", s.provider.Name(), "error", err)
		return nil
	}

	scenarios := ParseResponse(text)
	if len(scenarios) == 0 {
		s.logger.Warn("generative response contained no scenarios, using rule-based scenarios",
			"provider", s.provider.Name())
		return nil
	}
	s.logger.Debug("parsed generative response", "scenarios", len(scenarios))
	return scenarios
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
