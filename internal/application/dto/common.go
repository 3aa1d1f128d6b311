package dto

// ErrorResponse cuerpo de error HTTP. Feedback se incluye cuando el error proviene de una
// mutación del catálogo (el mismo mensaje que ve el panel).
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Feedback *FeedbackResponse `json:"feedback,omitempty"`
}

// FeedbackResponse mensaje efímero del panel.
type FeedbackResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"` // success | error
}
