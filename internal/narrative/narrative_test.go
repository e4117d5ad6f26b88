package narrative

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlens/finlens/internal/llm"
	"github.com/finlens/finlens/internal/statement"
)

// fakeProvider records prompts and returns a canned reply or error.
type fakeProvider struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) NewConversation(context.Context) (llm.Conversation, error) {
	return nil, eris.New("fake: no conversations")
}

func computedSample(t *testing.T) (*statement.Statement, statement.Snapshot) {
	t.Helper()
	st, err := statement.Compute(&statement.Statement{Rows: []statement.Row{
		{Name: "TOTAL ASSETS", Prior: 100, Current: 200},
		{Name: "SHORT-TERM ASSETS", Prior: 40, Current: 120},
		{Name: "SHORT-TERM LIABILITIES", Prior: 20, Current: 40},
	}})
	require.NoError(t, err)
	return st, statement.Liquidity(st)
}

func TestAnalyze_EmbedsTableAndKeyFigures(t *testing.T) {
	fake := &fakeProvider{reply: "Solid growth, improving liquidity."}
	svc, err := NewService(fake, DefaultPrompts())
	require.NoError(t, err)

	st, snap := computedSample(t)
	out := svc.Analyze(context.Background(), st, snap)

	assert.Equal(t, "Solid growth, improving liquidity.", out)
	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "| TOTAL ASSETS | 100 | 200 |")
	assert.Contains(t, prompt, "Short-term asset growth: 200.00%")
	assert.Contains(t, prompt, "Current ratio, prior year: 2.00")
	assert.Contains(t, prompt, "Current ratio, current year: 3.00")
}

func TestAnalyze_TransportFailureIsDisplayText(t *testing.T) {
	fake := &fakeProvider{err: eris.New("429 too many requests")}
	svc, err := NewService(fake, DefaultPrompts())
	require.NoError(t, err)

	st, snap := computedSample(t)
	out := svc.Analyze(context.Background(), st, snap)

	assert.Contains(t, out, "The AI request failed")
	assert.Contains(t, out, "429 too many requests")
}

func TestAnalyze_NilProviderReturnsDiagnostic(t *testing.T) {
	svc, err := NewService(nil, DefaultPrompts())
	require.NoError(t, err)

	st, snap := computedSample(t)
	assert.Equal(t, DisabledMessage, svc.Analyze(context.Background(), st, snap))
}

func TestAnalyze_MissingShortTermRowsReportedAsNA(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	svc, err := NewService(fake, DefaultPrompts())
	require.NoError(t, err)

	st, err := statement.Compute(&statement.Statement{Rows: []statement.Row{
		{Name: "TOTAL ASSETS", Prior: 100, Current: 200},
	}})
	require.NoError(t, err)

	svc.Analyze(context.Background(), st, statement.Liquidity(st))

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "Short-term asset growth: N/A")
	assert.Contains(t, fake.prompts[0], "Current ratio, prior year: N/A")
}

func TestLoadPrompts_OverridesAnalysis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: \"Summarize: {{.Table}}\"\n"), 0o644))

	p, err := LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, "Summarize: {{.Table}}", p.Analysis)
}

func TestLoadPrompts_EmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	p, err := LoadPrompts(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompts().Analysis, p.Analysis)
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	_, err := LoadPrompts(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestMarkdownTable_Shape(t *testing.T) {
	st, _ := computedSample(t)
	table := MarkdownTable(st)

	assert.Contains(t, table, "| Line item | Prior year | Current year |")
	assert.Contains(t, table, "| SHORT-TERM ASSETS | 40 | 120 | 200.00% | 40.00% | 60.00% |")
}
