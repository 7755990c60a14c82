package counselor

// Phase represents the stage of the guided career-discovery conversation.
type Phase string

const (
	PhaseWelcome           Phase = "welcome"
	PhaseBasicInfo         Phase = "basic_info"
	PhaseInterests         Phase = "interests"
	PhaseStrengths         Phase = "strengths"
	PhasePreferences       Phase = "preferences"
	PhaseCareerExploration Phase = "career_exploration"
	PhaseSummary           Phase = "summary"

	// PhaseComplete is never emitted by the model. The conversation service
	// enters it once, after a report has been parsed and the accompanying
	// speech has finished. Only a full reset leaves it.
	PhaseComplete Phase = "complete"
)

// modelPhases are the values a <PHASE> tag may carry. PhaseComplete is
// deliberately absent so a reply cannot jump the conversation to its
// terminal state.
var modelPhases = map[Phase]bool{
	PhaseWelcome:           true,
	PhaseBasicInfo:         true,
	PhaseInterests:         true,
	PhaseStrengths:         true,
	PhasePreferences:       true,
	PhaseCareerExploration: true,
	PhaseSummary:           true,
}

// IsValid reports whether p is a phase the model is allowed to announce.
func (p Phase) IsValid() bool {
	return modelPhases[p]
}

// Note categories the model is instructed to use. Categories are stored
// verbatim even when they fall outside this set; the set exists for the
// prompt contract and for consumers that want to group notes.
const (
	CategoryBasicInfo   = "basic_info"
	CategoryInterests   = "interests"
	CategoryStrengths   = "strengths"
	CategoryPreferences = "preferences"
	CategoryCareerMatch = "career_match"
)
