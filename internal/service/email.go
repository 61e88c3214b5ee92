package service

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/platemate/platemate-backend/config"
	"github.com/platemate/platemate-backend/internal/models"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
}

func NewEmailService(cfg *config.Config) IEmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
	}
}

// SendFeedbackNotification tells a restaurant owner that new feedback
// arrived.
func (s *EmailService) SendFeedbackNotification(feedback *models.Feedback, owner *models.User, restaurantName string) error {
	subject := fmt.Sprintf("New %s feedback for %s", feedback.Type, restaurantName)
	body := fmt.Sprintf(
		"You have new feedback for %s.\r\n\r\nType: %s\r\nPriority: %s\r\n\r\n%s\r\n",
		restaurantName, feedback.Type, feedback.Priority, feedback.Message,
	)
	return s.SendEmail(owner.Email, subject, body)
}

// SendEmail delivers a plain-text message. When SMTP is not configured the
// message is logged and dropped, so development setups work without a
// mail server.
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.smtpHost == "" {
		log.Printf("smtp not configured, dropping email to %s: %s", to, subject)
		return nil
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.fromEmail, to, subject, body))
	addr := s.smtpHost + ":" + s.smtpPort

	var auth smtp.Auth
	if s.smtpUsername != "" {
		auth = smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	}
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
