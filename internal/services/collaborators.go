package services

import "ordersystem/internal/models"

// Mailer is the outbound notification collaborator. Send failures are
// reported to the caller, which decides whether they are fatal (they never
// are for a committed order).
type Mailer interface {
	SendVerificationEmail(toEmail, username, verifyURL string) error
	SendOrderConfirmation(toEmail string, order *models.Order) error
}

// EventPublisher is the order event collaborator (RabbitMQ in production).
// A nil publisher is tolerated; publishing is always best-effort.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}
