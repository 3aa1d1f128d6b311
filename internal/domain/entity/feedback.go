package entity

// FeedbackKind tipo de mensaje de feedback.
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback mensaje efímero ligado al resultado de la última mutación.
type Feedback struct {
	Message string
	Kind    FeedbackKind
}
