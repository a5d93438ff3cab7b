package email

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/campusreg/internal/app/models"
)

// SubmissionNotice identifies the recipient of a sign-up acknowledgement
type SubmissionNotice struct {
	Name  string
	Email string
}

// Notifier defines the notifications sent during the institution review workflow
type Notifier interface {
	SendSubmissionReceived(ctx context.Context, notice SubmissionNotice) error
	SendApprovalNotice(ctx context.Context, inst *models.Institution) error
	SendRejectionNotice(ctx context.Context, inst *models.Institution) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL linked from emails
}

// siteName is shown in subjects and bodies
const siteName = "Campus Registry"

// SMTPNotifier implements Notifier over SMTP
type SMTPNotifier struct {
	config  SMTPConfig
	logger  zerolog.Logger
	deliver func(ctx context.Context, msg Message) error
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{
		config: config,
		logger: logger.With().Str("component", "email").Logger(),
	}
	n.deliver = n.sendHTMLEmail
	return n
}

// SendSubmissionReceived tells the applicant that the registration is pending review
func (n *SMTPNotifier) SendSubmissionReceived(ctx context.Context, notice SubmissionNotice) error {
	msg, err := buildSubmissionReceived(siteName, n.config.BaseURL, notice)
	if err != nil {
		return err
	}
	return n.send(ctx, "submission_received", msg)
}

// SendApprovalNotice tells the institution it was approved
func (n *SMTPNotifier) SendApprovalNotice(ctx context.Context, inst *models.Institution) error {
	msg, err := buildApproval(siteName, n.config.BaseURL, inst.Email, inst.Name)
	if err != nil {
		return err
	}
	return n.send(ctx, "approval", msg)
}

// SendRejectionNotice tells the institution it was denied
func (n *SMTPNotifier) SendRejectionNotice(ctx context.Context, inst *models.Institution) error {
	msg, err := buildRejection(siteName, n.config.BaseURL, inst.Email, inst.Name)
	if err != nil {
		return err
	}
	return n.send(ctx, "rejection", msg)
}

func (n *SMTPNotifier) send(ctx context.Context, kind string, msg Message) error {
	// Without credentials nothing is delivered (development only)
	if n.config.Username == "" || n.config.Password == "" {
		n.logger.Warn().
			Str("kind", kind).
			Str("toEmail", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP credentials not configured - email not sent.")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := n.deliver(ctx, msg); err != nil {
		return err
	}

	n.logger.Info().Str("kind", kind).Str("toEmail", msg.To).Msg("Email sent")
	return nil
}
