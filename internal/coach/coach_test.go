package coach

import (
	"context"
	"strings"
	"testing"

	"github.com/rsuresh/quizcraft/internal/bank"
	"github.com/rsuresh/quizcraft/internal/evaluate"
	"github.com/rsuresh/quizcraft/internal/llm"
)

func decisionItem() bank.Item {
	return bank.Item{
		ID:          "q-sql",
		ObjectiveID: "obj-inj",
		Mechanic:    bank.MechanicDecisionLab,
		Stimulus:    "How should user input reach a SQL query?",
		Choices: []bank.Choice{
			{ID: "concat", Label: "Concatenate it into the query string"},
			{ID: "param", Label: "Bind it as a query parameter"},
		},
		AnswerKey: bank.AnswerKey{ChoiceID: "param"},
	}
}

func TestExplainReturnsNote(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Concatenation lets input become code.  "})
	svc := New(mock)

	note, err := svc.Explain(context.Background(), decisionItem(),
		evaluate.Response{ChoiceID: "concat", Rationale: "seems simpler"}, "string-building")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if note != "Concatenation lets input become code." {
		t.Errorf("note = %q, want trimmed mock text", note)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("CallCount = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Purpose != "coach-explain" {
		t.Errorf("Purpose = %q", req.Purpose)
	}
	prompt := req.Messages[0].Content
	for _, want := range []string{"How should user input reach a SQL query?", "Learner chose: concat", "seems simpler", "string-building"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestExplainEmptyNoteIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "   "})
	svc := New(mock)

	if _, err := svc.Explain(context.Background(), decisionItem(),
		evaluate.Response{ChoiceID: "concat"}, ""); err == nil {
		t.Error("Explain accepted an empty note")
	}
}

func TestExplainPropagatesProviderError(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue returns ErrProviderUnavailable
	svc := New(mock)

	if _, err := svc.Explain(context.Background(), decisionItem(),
		evaluate.Response{ChoiceID: "concat"}, ""); err == nil {
		t.Error("Explain swallowed the provider error")
	}
}

func TestPromptRendersSequencerOrder(t *testing.T) {
	item := bank.Item{
		ID:       "q-ir",
		Mechanic: bank.MechanicSequencer,
		Stimulus: "Order the incident response steps.",
		Steps: []bank.Step{
			{ID: "contain", Label: "Contain"},
			{ID: "detect", Label: "Detect"},
		},
		AnswerKey: bank.AnswerKey{Order: []string{"detect", "contain"}},
	}

	prompt := buildPrompt(item, evaluate.Response{Order: []string{"contain", "detect"}}, "")
	if !strings.Contains(prompt, "contain > detect") {
		t.Errorf("prompt missing learner order:\n%s", prompt)
	}
}
