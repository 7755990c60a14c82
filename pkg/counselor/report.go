package counselor

import "time"

// StudentSnapshot is the profile section of a career report, filled in by the
// model from facts gathered during the conversation.
type StudentSnapshot struct {
	Name         string   `json:"name"`
	Grade        string   `json:"grade"`
	Board        string   `json:"board"`
	Country      string   `json:"country"`
	TopInterests []string `json:"topInterests"`
	KeyStrengths []string `json:"keyStrengths"`
}

// CareerPath is one recommended path in a report. The model supplies the
// required fields; the optional ones may be backfilled from the static
// education tables when absent.
type CareerPath struct {
	Name              string   `json:"name"`
	Cluster           string   `json:"cluster"`
	FitReasons        []string `json:"fitReasons"`
	ApplicationHints  []string `json:"applicationHints"`
	DayInLifeVideo    string   `json:"dayInLifeVideo,omitempty"`
	SuggestedCourses  []string `json:"suggestedCourses,omitempty"`
	SuggestedColleges []string `json:"suggestedColleges,omitempty"`
}

// PersonalityBadge is an optional archetype the model may attach to a report.
type PersonalityBadge struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji,omitempty"`
	Color       string `json:"color,omitempty"`
}

// CareerReport is the final structured output of a conversation.
type CareerReport struct {
	StudentSnapshot  StudentSnapshot   `json:"studentSnapshot"`
	RecommendedPaths []CareerPath      `json:"recommendedPaths"`
	PersonalityBadge *PersonalityBadge `json:"personalityBadge,omitempty"`
	GeneratedAt      time.Time         `json:"generatedAt"`
}

// Note is one structured fact extracted from an assistant reply.
type Note struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
