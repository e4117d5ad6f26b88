// Package narrative turns computed statements into natural-language
// commentary via the configured LLM provider.
package narrative

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finlens/finlens/internal/format"
	"github.com/finlens/finlens/internal/llm"
	"github.com/finlens/finlens/internal/statement"
)

// DisabledMessage is returned when no provider is configured. It is a
// display-ready diagnostic, not an error: callers show whatever text comes
// back, success or not.
const DisabledMessage = "AI analysis is disabled: no LLM API key is configured. " +
	"Set llm.api_key (FINLENS_LLM_API_KEY) to enable it."

// Service requests commentary on a computed statement.
type Service struct {
	provider llm.Provider
	tmpl     *template.Template
}

// NewService builds a narrative service. provider may be nil, in which case
// Analyze returns DisabledMessage.
func NewService(provider llm.Provider, prompts Prompts) (*Service, error) {
	tmpl, err := template.New("analysis").Parse(prompts.Analysis)
	if err != nil {
		return nil, eris.Wrap(err, "narrative: parse analysis template")
	}
	return &Service{provider: provider, tmpl: tmpl}, nil
}

// promptData is what the analysis template renders.
type promptData struct {
	Table           string
	ShortTermGrowth string
	PriorRatio      string
	CurrentRatio    string
}

// Analyze builds the fixed-template prompt from the computed statement and
// liquidity snapshot and returns the provider's commentary. It always
// returns display-ready text: transport and quota failures come back as
// human-readable error strings, never as an error value.
func (s *Service) Analyze(ctx context.Context, st *statement.Statement, snap statement.Snapshot) string {
	if s.provider == nil {
		return DisabledMessage
	}

	prompt, err := s.buildPrompt(st, snap)
	if err != nil {
		zap.L().Error("narrative: build prompt", zap.Error(err))
		return fmt.Sprintf("Could not prepare the analysis request: %v", err)
	}

	reply, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		zap.L().Warn("narrative: generation failed",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		return fmt.Sprintf("The AI request failed: %v. Check the API key or the provider's usage limits.", err)
	}

	return reply
}

func (s *Service) buildPrompt(st *statement.Statement, snap statement.Snapshot) (string, error) {
	data := promptData{
		Table:           MarkdownTable(st),
		ShortTermGrowth: format.Unavailable,
		PriorRatio:      format.Ratio(snap.Prior),
		CurrentRatio:    format.Ratio(snap.Current),
	}
	if sta, err := st.Find(statement.ShortTermAssetsItem); err == nil {
		data.ShortTermGrowth = format.Percent(sta.Growth)
	}

	var b strings.Builder
	if err := s.tmpl.Execute(&b, data); err != nil {
		return "", eris.Wrap(err, "execute template")
	}
	return b.String(), nil
}

// MarkdownTable serializes the augmented table in a form the model reads
// well: a markdown table with the raw and derived columns.
func MarkdownTable(st *statement.Statement) string {
	var b strings.Builder
	b.WriteString("| Line item | Prior year | Current year | Growth | Prior weight | Current weight |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, r := range st.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			r.Name,
			format.Value(r.Prior),
			format.Value(r.Current),
			format.Percent(r.Growth),
			format.Percent(r.PriorWeight),
			format.Percent(r.CurrentWeight),
		)
	}
	return b.String()
}
