package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	// Branding injected into every template.
	AppName string
	LogoURL string
}

func NewEmailSender(host string, port int, user, password, from, appName, logoURL string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		AppName:  appName,
		LogoURL:  logoURL,
	}
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.From, s.AppName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email over SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) SendVerificationOTP(to, code string) error {
	body, err := s.renderOTP("Verify Your Email",
		"Use the OTP below to complete your registration. The OTP is valid for 30 minutes.",
		"If you did not request this, you can safely ignore this email.",
		code)
	if err != nil {
		return err
	}
	return s.send(to, "Verify your email", body)
}

func (s *EmailSender) SendPasswordResetOTP(to, code string) error {
	body, err := s.renderOTP("Reset Password Request",
		"We received a request to reset your password. Use the OTP below to continue. The OTP is valid for 30 minutes.",
		"If you did not request this password reset, please ignore this email.",
		code)
	if err != nil {
		return err
	}
	return s.send(to, "Reset your password", body)
}

func (s *EmailSender) SendFollowUpReminder(to string, lead *entity.Lead) error {
	body, err := s.renderReminder(lead)
	if err != nil {
		return err
	}
	return s.send(to, "Follow-up Reminder (5 Minutes)", body)
}

func (s *EmailSender) SendImportSummary(to, name, fileName string, report *entity.ImportReport) error {
	body, err := s.renderImportSummary(name, fileName, report)
	if err != nil {
		return err
	}
	return s.send(to, "Bulk import completed", body)
}
