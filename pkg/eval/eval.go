package eval

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/env"
	"github.com/walteh/amps/pkg/scan"
)

// Result is the outcome of a render.
type Result struct {
	Output      string
	Diagnostics diagnostic.List
}

// Run executes every segment in order against environment. It never fails:
// problems are returned as diagnostics next to whatever output was produced.
func Run(ctx context.Context, meta scan.Metainfo, environment env.Environment) *Result {
	c := NewContext(environment)

	for _, seg := range meta {
		c.Exec(seg)
	}
	c.Finish()

	logger := zerolog.Ctx(ctx)
	for _, d := range c.diags {
		logger.Trace().
			Str("category", string(d.Category)).
			Int("line", d.Line).
			Msg(d.Message)
	}

	return &Result{
		Output:      c.Output(),
		Diagnostics: c.Diagnostics(),
	}
}
