package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/keighl/postmark"

	"github.com/clarkeinon-bit/ecommerce1/internal/models"
)

// MailService sends transactional email through Postmark. A missing API
// token disables sending without failing the caller; order placement never
// blocks on the notification sink.
type MailService struct {
	client  *postmark.Client
	sender  string
	baseURL string
}

// NewMailService constructs a MailService. token may be empty in development.
func NewMailService(token, sender, baseURL string) *MailService {
	svc := &MailService{sender: sender, baseURL: baseURL}
	if token != "" {
		svc.client = postmark.NewClient(token, "")
	}
	return svc
}

// SendOrderPlaced emails the customer an order confirmation.
func (s *MailService) SendOrderPlaced(order *models.Order, toEmail string) error {
	if s.client == nil {
		log.Println("[Mail] Postmark token not configured, skipping order email")
		return nil
	}

	subject := fmt.Sprintf("Order confirmation %s", order.ID)
	html := s.buildOrderPlacedBody(order)

	_, err := s.client.SendEmail(postmark.Email{
		From:     s.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: html,
	})
	if err != nil {
		return fmt.Errorf("send order email: %w", err)
	}
	return nil
}

func (s *MailService) buildOrderPlacedBody(order *models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf("<li>%s &times; %d — %s %s</li>",
			item.Name, item.Quantity, item.TotalAmount.StringFixed(2), strings.ToUpper(order.Currency)))
	}

	orderURL := fmt.Sprintf("%s/api/checkout/success?order_id=%s", s.baseURL, order.ID)

	return fmt.Sprintf(`<h2>Thanks for your order!</h2>
<p>Your order has been placed and is now being processed.</p>
<ul>%s</ul>
<p><strong>Grand total: %s %s</strong></p>
<p><a href="%s">View your order</a></p>`,
		items.String(), order.GrandTotal.StringFixed(2), strings.ToUpper(order.Currency), orderURL)
}
