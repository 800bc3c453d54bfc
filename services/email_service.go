package services

import (
	"fmt"
	"html"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
	"motodealer-api/config"
	"motodealer-api/models"
)

// Mailer sends the transactional emails of the back office.
type Mailer interface {
	SendWelcomeEmail(email, name string) error
	SendSaleReceipt(sale *models.Sale) error
}

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

// NewEmailService returns a gomail backed Mailer. Without an SMTP host every send is a
// logged no-op.
func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}
	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	return service
}

func (es *EmailService) SendWelcomeEmail(email, name string) error {
	return es.send(email, fmt.Sprintf("%s - Welcome", es.config.FromName), es.welcomeBody(name))
}

func (es *EmailService) SendSaleReceipt(sale *models.Sale) error {
	return es.send(sale.CustomerEmail, fmt.Sprintf("%s - Purchase confirmation", es.config.FromName), receiptBody(sale))
}

// welcomeBody and receiptBody escape every caller supplied value.
func (es *EmailService) welcomeBody(name string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Welcome, %s!</h2>
    <p>Your %s account is ready. You can now sign in and browse the available motorcycles.</p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(es.config.FromName))
}

func receiptBody(sale *models.Sale) string {
	vehicle := "your motorcycle"
	if sale.Motorcycle != nil {
		vehicle = fmt.Sprintf("%s %s (%d)", sale.Motorcycle.Brand, sale.Motorcycle.Model, sale.Motorcycle.Year)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Thank you for your purchase, %s!</h2>
    <p>This confirms the sale of %s.</p>
    <table>
        <tr><td>Sale</td><td>%s</td></tr>
        <tr><td>Price</td><td>%s</td></tr>
        <tr><td>Payment method</td><td>%s</td></tr>
        <tr><td>Installments</td><td>%d</td></tr>
    </table>
</body>
</html>`,
		html.EscapeString(sale.CustomerName),
		html.EscapeString(vehicle),
		html.EscapeString(sale.ID),
		sale.SalePrice.StringFixed(2),
		html.EscapeString(sale.PaymentMethod),
		sale.Installments,
	)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	if es.dialer == nil {
		log.WithFields(log.Fields{"to": to, "subject": subject}).Debug("SMTP not configured, skipping email")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent")
	return nil
}

// sendAsync runs a mail send off the request path and only logs failures.
func sendAsync(kind string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.WithError(err).WithField("email", kind).Warn("Failed to send email")
		}
	}()
}
