package models

type EmailNotificationRequest struct {
	// From overrides the configured default sender when set.
	From        string   `json:"from,omitempty" validate:"omitempty,email"`
	To          string   `json:"to" validate:"required,email"`
	CC          []string `json:"cc,omitempty"`
	BCC         []string `json:"bcc,omitempty"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
}
