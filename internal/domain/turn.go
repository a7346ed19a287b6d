package domain

// Clarification slots the engine may ask the host UI to fill.
const (
	ClarifyCategory = "category"
	ClarifyBrand    = "brand"
)

// TurnRequest is one user turn. AnswersSlot tags the utterance as the answer
// to a previously issued clarification ("category" or "brand"); the host UI
// sets it when feeding a clarification answer back.
type TurnRequest struct {
	Utterance   string `json:"utterance" binding:"required"`
	AnswersSlot string `json:"answers_slot,omitempty"`
}

// TurnResult is the engine's answer for one turn: either a ranked shortlist or
// a clarification request. ClarifySlot is set when a required slot is still
// missing; the host must prompt for it and tag the next turn accordingly.
type TurnResult struct {
	State       PreferenceState `json:"state"`
	Results     []ScoredProduct `json:"results,omitempty"`
	ClarifySlot string          `json:"clarify_slot,omitempty"`
	Message     string          `json:"message,omitempty"`
}
