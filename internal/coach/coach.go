package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/evaluate"
	"github.com/rsuresh/quizcraft/internal/llm"
)

const systemPrompt = `You are a security-awareness tutor embedded in a quiz tool.
A learner just answered an exercise incorrectly. Explain in 2-3 short
sentences why their answer is wrong and what the right mental model is.
Be concrete and plain; never reveal the exact correct answer outright.`

// maxNoteTokens bounds the remediation note length.
const maxNoteTokens = 300

// Service produces short remediation notes for incorrect answers. It is
// optional: sessions run fine without one.
type Service struct {
	provider llm.Provider
}

// New creates a coach backed by the given provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Explain asks the LLM for a remediation note about an incorrect response.
// misconceptionID may be empty when no detector matched.
func (s *Service) Explain(ctx context.Context, item bank.Item, resp evaluate.Response, misconceptionID string) (string, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPrompt(item, resp, misconceptionID)},
		},
		Purpose:   "coach-explain",
		MaxTokens: maxNoteTokens,
	}

	out, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate remediation note: %w", err)
	}

	note := strings.TrimSpace(out.Text)
	if note == "" {
		return "", fmt.Errorf("empty remediation note")
	}
	return note, nil
}

// buildPrompt renders the item and the learner's answer as plain text.
func buildPrompt(item bank.Item, resp evaluate.Response, misconceptionID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise (%s): %s\n\n", item.Mechanic, item.Stimulus)

	switch item.Mechanic {
	case bank.MechanicDecisionLab:
		for _, c := range item.Choices {
			fmt.Fprintf(&b, "- %s: %s\n", c.ID, c.Label)
		}
		fmt.Fprintf(&b, "\nLearner chose: %s\n", resp.ChoiceID)
		if resp.Rationale != "" {
			fmt.Fprintf(&b, "Their rationale: %s\n", resp.Rationale)
		}

	case bank.MechanicSequencer:
		for _, st := range item.Steps {
			fmt.Fprintf(&b, "- %s: %s\n", st.ID, st.Label)
		}
		fmt.Fprintf(&b, "\nLearner's order: %s\n", strings.Join(resp.Order, " > "))

	case bank.MechanicMatchPairs:
		for _, l := range item.Lefts {
			fmt.Fprintf(&b, "- %s matched to %s\n", l.Label, labelFor(item.Rights, resp.Pairs[l.ID]))
		}

	case bank.MechanicTriage:
		for _, bin := range item.BinNames {
			fmt.Fprintf(&b, "Bin %q:", bin)
			for _, cardID := range resp.Bins[bin] {
				fmt.Fprintf(&b, " %s;", labelForCards(item.Cards, cardID))
			}
			b.WriteString("\n")
		}
	}

	if misconceptionID != "" {
		fmt.Fprintf(&b, "\nLikely misconception: %s\n", misconceptionID)
	}
	return b.String()
}

func labelFor(entries []bank.PairEntry, id string) string {
	for _, e := range entries {
		if e.ID == id {
			return e.Label
		}
	}
	return id
}

func labelForCards(cards []bank.Card, id string) string {
	for _, c := range cards {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}
