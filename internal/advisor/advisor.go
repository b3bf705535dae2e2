package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"qualiboard/internal/board"
)

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("analysis advisor is disabled")

const defaultModel = "gemini-2.0-flash"

// Advisor produces a natural-language health summary of a board using
// the Gemini API: column load, overdue work and critical tasks.
type Advisor struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Advisor, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Advisor{client: client, model: model}, nil
}

// SummarizeBoard asks the model for a short board assessment in Spanish.
func (a *Advisor) SummarizeBoard(ctx context.Context, state *board.State) (string, error) {
	if a == nil {
		return "", ErrDisabled
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	prompt := BuildPrompt(state, time.Now())
	result, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("board analysis failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("empty analysis response")
	}
	return text, nil
}

// BuildPrompt renders the board into the analysis prompt. Exported so
// the prompt shape stays under test without network calls.
func BuildPrompt(state *board.State, now time.Time) string {
	var b strings.Builder
	b.WriteString("Eres un analista de gestión de calidad de una planta industrial. ")
	b.WriteString("Resume en un párrafo breve el estado del tablero siguiente, ")
	b.WriteString("destacando tareas críticas y vencidas:\n\n")

	for _, col := range state.Columns {
		tasks := state.Tasks[col.ID]
		fmt.Fprintf(&b, "Columna %q (%d tareas):\n", col.Title, len(tasks))
		for _, t := range tasks {
			fmt.Fprintf(&b, "- %s [prioridad %s]", t.Title, t.Priority)
			if t.DueDate != nil && t.DueDate.Before(now) {
				fmt.Fprintf(&b, " VENCIDA el %s", t.DueDate.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
