package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	return &EmailService{dialer: gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)}, nil
}

// SendOrderConfirmation mails the customer a receipt. Best-effort: the
// order is already persisted when this runs.
func (s *EmailService) SendOrderConfirmation(toEmail string, order *Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order %s received", order.OrderNumber()))

	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Thanks for your order, %s!</h2>
	<p>We received order <strong>%s</strong> and will confirm it shortly.</p>
	<table cellpadding="6">
		<tr><td>Size</td><td>%s</td></tr>
		<tr><td>Quantity</td><td>%d</td></tr>
		<tr><td>Subtotal</td><td>%.0f</td></tr>
		<tr><td>Shipping (%s)</td><td>%.0f</td></tr>
		<tr><td><strong>Total</strong></td><td><strong>%.0f</strong></td></tr>
	</table>
	<p>Delivery to: %s, %s</p>
</body>
</html>`,
		order.Name, order.OrderNumber(), order.Size, order.ProductCount,
		order.Subtotal, order.Shipping, order.ShippingCost, order.TotalCost,
		order.Address, order.District)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
