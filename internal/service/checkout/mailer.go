package checkout

import (
	"context"
	"fmt"

	"optic-storefront/internal/domain"

	"github.com/wneessen/go-mail"
)

// MailSettings configures the SMTP relay used for order notifications.
type MailSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Mailer e-mails a copy of each order message to the shop.
type Mailer struct {
	settings MailSettings
	shopName string
	send     func(ctx context.Context, msg *mail.Msg) error
}

func NewMailer(settings MailSettings, shopName string) *Mailer {
	m := &Mailer{settings: settings, shopName: shopName}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) NotifyOrder(ctx context.Context, order domain.Order) error {
	msg, err := m.buildMessage(order)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *Mailer) buildMessage(order domain.Order) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.settings.From); err != nil {
		return nil, fmt.Errorf("order mail from: %w", err)
	}
	if err := msg.To(m.settings.To); err != nil {
		return nil, fmt.Errorf("order mail to: %w", err)
	}
	msg.Subject(fmt.Sprintf("%s order %s (%s)", m.shopName, order.ID, domain.NewMoney(order.Quote.Total)))
	msg.SetBodyString(mail.TypeTextPlain, order.Message+"\n\n"+order.URL)
	return msg, nil
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.settings.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.settings.Username),
			mail.WithPassword(m.settings.Password),
		)
	}
	client, err := mail.NewClient(m.settings.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
