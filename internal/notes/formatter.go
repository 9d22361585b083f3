// Package notes relays pasted field-note text to a language model for
// reformatting. The model does the work; this package only carries the
// contract and returns whatever comes back.
package notes

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ubck/survey-cli/pkg/anthropic"
)

// systemPrompt fixes the reformatting contract: two-column species/count
// rows in, one "{name} <{count}>" line out, nothing else. The model must
// not validate, reorder or annotate.
const systemPrompt = `You are a bird-survey result formatter.

The input is text copied and pasted from a spreadsheet. Each row has two
columns: the species name in column 1 and the observed count (a numeric
string) in column 2. Columns may be separated by tabs; rows are separated
by newlines.

Task:
- Process the rows top to bottom, in order.
- Convert each row to a fragment of the form: {name} <{count}>
- Join all fragments with ", " (comma and space) into a single line.

Hard rules:
- Output only the final single line, nothing else.
- No explanations, greetings, headers, footers, code blocks, quotes,
  bullets, extra sentences or line breaks.
- Do not validate or correct the input; use the strings exactly as given.
- Never change the order.
- The only brackets allowed are the "<" and ">" around each count.`

const defaultMaxTokens = 2048

// Formatter reformats raw survey notes through the Anthropic API.
type Formatter struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
}

// NewFormatter creates a Formatter for the given model. Calls are rate
// limited to stay under the API's per-minute ceiling when an organizer
// pastes many sheets in a row.
func NewFormatter(client anthropic.Client, model string) *Formatter {
	return &Formatter{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Format sends the pasted text through the model and returns the single
// formatted line.
func (f *Formatter) Format(ctx context.Context, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", eris.New("notes: empty input")
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "notes: rate limit wait")
	}

	temp := 0.1
	resp, err := f.client.CreateMessage(ctx, anthropic.Request{
		Model:       f.model,
		MaxTokens:   defaultMaxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: raw},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "notes: format")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", eris.New("notes: model returned no text")
	}

	zap.L().Debug("notes formatted",
		zap.String("model", resp.Model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)
	return text, nil
}
