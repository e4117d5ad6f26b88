package narrative

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Prompts holds the narrative prompt template. The analysis template is a
// text/template body receiving .Table, .ShortTermGrowth, .PriorRatio and
// .CurrentRatio.
type Prompts struct {
	Analysis string `yaml:"analysis"`
}

const defaultAnalysis = `You are a professional financial analyst. Based on the figures below, write an objective, concise commentary (3-4 paragraphs) on the company's financial position. Focus on growth rates, shifts in the asset structure, and current-ratio liquidity.

Analyzed statement:
{{.Table}}

Key figures:
- Short-term asset growth: {{.ShortTermGrowth}}
- Current ratio, prior year: {{.PriorRatio}}
- Current ratio, current year: {{.CurrentRatio}}
`

// DefaultPrompts returns the compiled-in prompt set.
func DefaultPrompts() Prompts {
	return Prompts{Analysis: defaultAnalysis}
}

// LoadPrompts reads a prompt override file. Keys left empty in the file keep
// their defaults.
func LoadPrompts(path string) (Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, eris.Wrapf(err, "narrative: read prompts %s", path)
	}

	p := DefaultPrompts()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prompts{}, eris.Wrap(err, "narrative: parse prompts")
	}
	if p.Analysis == "" {
		p.Analysis = defaultAnalysis
	}

	return p, nil
}
