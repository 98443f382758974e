package agent

import "context"

// ScriptedAgent plays from a fixed script. Choices are consumed in
// order and normalized against the offered list; an exhausted script
// falls back to the first choice. Used for deterministic games and
// tests.
type ScriptedAgent struct {
	Choices    []string
	Statements []string

	choiceIdx    int
	statementIdx int
}

// NewScriptedAgent creates an agent with the given choice and
// statement scripts.
func NewScriptedAgent(choices, statements []string) *ScriptedAgent {
	return &ScriptedAgent{Choices: choices, Statements: statements}
}

// Choose returns the next scripted choice
func (a *ScriptedAgent) Choose(_ context.Context, _ string, choices []string) (string, error) {
	if a.choiceIdx < len(a.Choices) {
		raw := a.Choices[a.choiceIdx]
		a.choiceIdx++
		return NormalizeChoice(raw, choices), nil
	}
	if len(choices) == 0 {
		return SkipChoice, nil
	}
	return choices[0], nil
}

// ChooseWithReasoning returns the next scripted choice without reasoning
func (a *ScriptedAgent) ChooseWithReasoning(ctx context.Context, prompt string, choices []string) (string, string, error) {
	choice, err := a.Choose(ctx, prompt, choices)
	return choice, "", err
}

// Statement returns the next scripted statement, or a neutral line
// once the script runs out.
func (a *ScriptedAgent) Statement(_ context.Context, _ string) (string, string, error) {
	if a.statementIdx < len(a.Statements) {
		s := a.Statements[a.statementIdx]
		a.statementIdx++
		return s, "", nil
	}
	return "I have nothing to add right now.", "", nil
}
