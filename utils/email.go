// utils/email.go
package utils

import (
	"fmt"

	"github.com/keighl/postmark"

	"github.com/Ankitshukla6121/pizzapal/models"
)

// EmailService sends transactional email through Postmark. A nil
// *EmailService is valid and silently skips sending, so email stays
// optional in deployments without an API token.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService returns a service bound to the given API token and
// sender address, or nil when the token is empty.
func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		return nil
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmation notifies a customer that their order was
// received.
func (es *EmailService) SendOrderConfirmation(toEmail string, order models.Order) error {
	subject := "Order Confirmation - PizzaPal"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your order! Your order (ID: %s) is <strong>%s</strong> and will be delivered to %s.<br><br>Enjoy your pizza!",
		order.CustomerName,
		order.ID.Hex(),
		order.Status,
		order.Address,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
