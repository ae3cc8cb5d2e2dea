package services

import (
	"context"
	"fmt"
	"log"

	"conferencehub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRecommendations sends the session recommendation email using the
// "recommendations" template and the given data.
func (s *emailService) SendRecommendations(ctx context.Context, data *domain.RecommendationEmailData) error {
	if data == nil {
		return fmt.Errorf("recommendation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("recommendations", data)
	if err != nil {
		return fmt.Errorf("failed to render recommendations template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send recommendations email: %w", err)
	}
	log.Printf("[EMAIL] Recommendations sent to %s", data.Email)
	return nil
}
