package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/donaldgifford/group-post-monitor/internal/metrics"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// EmailConfig holds the SMTP settings for an EmailNotifier.
type EmailConfig struct {
	Sender   string
	Receiver string
	Host     string
	Port     int
	Password string
	Timeout  time.Duration
}

// EmailConfigFromSettings builds an EmailConfig from monitor settings.
func EmailConfigFromSettings(s *domain.Settings, timeout time.Duration) EmailConfig {
	return EmailConfig{
		Sender:   s.EmailSender,
		Receiver: s.EmailReceiver,
		Host:     s.SMTPServer,
		Port:     s.SMTPPort,
		Password: s.EmailPassword,
		Timeout:  timeout,
	}
}

// mailSender is the subset of *mail.Client used to deliver messages.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

// EmailNotifier implements Notifier over SMTP. Each message opens a fresh
// connection, upgrades it with STARTTLS, and authenticates with PLAIN auth
// as the sender.
type EmailNotifier struct {
	cfg       EmailConfig
	newSender func(EmailConfig) (mailSender, error)
}

// NewEmailNotifier creates a new EmailNotifier.
func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	if cfg.Port == 0 {
		cfg.Port = domain.DefaultSMTPPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &EmailNotifier{cfg: cfg, newSender: dialSMTP}
}

func dialSMTP(cfg EmailConfig) (mailSender, error) {
	c, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}
	return c, nil
}

// Send delivers msg from the configured sender to the configured receiver.
func (e *EmailNotifier) Send(ctx context.Context, msg *Message) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	if err := e.send(ctx, msg); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return err
	}
	metrics.NotificationsSentTotal.Inc()
	return nil
}

func (e *EmailNotifier) send(ctx context.Context, msg *Message) error {
	m, err := e.buildMsg(msg)
	if err != nil {
		return err
	}

	sender, err := e.newSender(e.cfg)
	if err != nil {
		return err
	}

	if err := sender.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending email via %s:%d: %w", e.cfg.Host, e.cfg.Port, err)
	}
	return nil
}

func (e *EmailNotifier) buildMsg(msg *Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(e.cfg.Sender); err != nil {
		return nil, fmt.Errorf("setting sender address: %w", err)
	}
	if err := m.To(e.cfg.Receiver); err != nil {
		return nil, fmt.Errorf("setting receiver address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}
