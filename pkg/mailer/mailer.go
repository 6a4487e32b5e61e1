package mailer

import (
	"fmt"
	"strings"

	"ordersystem/internal/models"

	"github.com/wneessen/go-mail"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// Client sends transactional mail over SMTP.
type Client struct {
	cfg Config
}

// NewClient creates a new mail client. The connection is dialed per send,
// so construction never fails.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// SendVerificationEmail mails the signed verification link to a freshly
// registered user.
func (c *Client) SendVerificationEmail(toEmail, username, verifyURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome! Please verify your email address by visiting the link below:\n\n%s\n\nThe link expires in one hour. If you did not register, you can ignore this message.\n",
		username, verifyURL)
	return c.send(toEmail, "Verify Your Email", body)
}

// SendOrderConfirmation mails the line items and total of a committed order.
func (c *Client) SendOrderConfirmation(toEmail string, order *models.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\nOrder %s\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  product %s  x%d  @ $%.2f\n", item.ProductID, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", order.TotalAmount)
	return c.send(toEmail, "Order Confirmation", b.String())
}

func (c *Client) send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(c.cfg.Sender); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", c.cfg.Sender, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if c.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.Username),
			mail.WithPassword(c.cfg.Password),
		)
	}
	client, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
