package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RecommendedSessionEmailItem is one recommended session line in the email.
type RecommendedSessionEmailItem struct {
	Name      string
	Speaker   string
	StartTime time.Time
}

// RecommendationEmailData holds data for the session recommendation email.
type RecommendationEmailData struct {
	Email        string
	AttendeeName string
	Sessions     []RecommendedSessionEmailItem
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRecommendations(ctx context.Context, data *RecommendationEmailData) error
}
