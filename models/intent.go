package models

import "strings"

// Intent is the classified category of a user message
type Intent string

const (
	IntentUnclassified Intent = ""
	IntentPidanaQA     Intent = "PIDANA_QA"
	IntentLawyerRec    Intent = "LAWYER_REC"
	IntentSapa         Intent = "SAPA"
	IntentNonPidana    Intent = "NON_PIDANA"
)

// Intents lists every terminal intent
var Intents = []Intent{IntentPidanaQA, IntentLawyerRec, IntentSapa, IntentNonPidana}

// ParseIntent normalizes a raw classifier label. Unknown labels report false.
func ParseIntent(raw string) (Intent, bool) {
	label := Intent(strings.ToUpper(strings.TrimSpace(raw)))
	for _, intent := range Intents {
		if label == intent {
			return intent, true
		}
	}
	return IntentNonPidana, false
}

// AgentState is the context threaded through one routing run
type AgentState struct {
	Question     string
	Intent       Intent
	Person       *Person
	ExtraContext string
	Answer       *string
}

// Done reports whether a handler has produced the final answer
func (s *AgentState) Done() bool {
	return s.Answer != nil
}
