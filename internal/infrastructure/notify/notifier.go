package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pd-tracker/internal/domain"
	"github.com/pd-tracker/internal/infrastructure/smtp"
	"github.com/pd-tracker/internal/infrastructure/sns"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencyPrefix matches the display units of the upstream feed.
const currencyPrefix = "R$"

// amountPrinter groups thousands the way the site renders amounts.
var amountPrinter = message.NewPrinter(language.English)

// Sink delivers a rendered notification to one surface.
type Sink interface {
	Deliver(ctx context.Context, n domain.Notification) error
}

// Notifier renders donation events into local alerts and fans them out to
// every configured sink. Delivery is fire-and-forget: sink failures are
// logged and never propagated, and nothing is retried.
type Notifier struct {
	sinks []Sink
}

func NewNotifier(sinks ...Sink) *Notifier {
	return &Notifier{sinks: sinks}
}

// Build renders the alert for a donation event. Incoming donations and
// outbound transfers get different framing; the free-text message is
// included verbatim when present.
func Build(e domain.DonationEvent) domain.Notification {
	amount := FormatAmount(e.Amount)

	title := fmt.Sprintf("🎉 New Donation: %s%s", currencyPrefix, amount)
	if e.TransactionType != domain.TransactionIncoming {
		title = fmt.Sprintf("💸 Transfer: %s%s", currencyPrefix, amount)
	}

	body := fmt.Sprintf("%s sent %s%s", e.SenderDisplayName, currencyPrefix, amount)
	if e.Message != "" {
		body += fmt.Sprintf("\n%q", e.Message)
	}

	return domain.Notification{
		Title:    title,
		Body:     body,
		Priority: domain.PriorityHigh,
	}
}

// FormatAmount renders an amount with locale-aware thousands separation.
// Amounts are already in display units; no precision is truncated.
func FormatAmount(amount float64) string {
	return amountPrinter.Sprintf("%v", number.Decimal(amount))
}

// Notify builds and delivers the alert for a new donation event. The caller
// observes no result.
func (n *Notifier) Notify(ctx context.Context, e domain.DonationEvent) {
	alert := Build(e)
	for _, sink := range n.sinks {
		if err := sink.Deliver(ctx, alert); err != nil {
			slog.Warn("notification delivery failed", "title", alert.Title, "err", err)
		}
	}
}

// LogSink writes notifications to the process log. Always configured, so a
// bare deployment still surfaces new donations somewhere.
type LogSink struct{}

func (LogSink) Deliver(_ context.Context, n domain.Notification) error {
	slog.Info("donation alert", "title", n.Title, "body", n.Body, "priority", n.Priority)
	return nil
}

// snsSink adapts an SNS publisher into a Sink.
type snsSink struct {
	publisher sns.Publisher
}

func NewSNSSink(publisher sns.Publisher) Sink {
	return &snsSink{publisher: publisher}
}

func (s *snsSink) Deliver(ctx context.Context, n domain.Notification) error {
	return s.publisher.Publish(ctx, n)
}

// emailSink adapts a Mailer into a Sink with a fixed recipient.
type emailSink struct {
	mailer smtp.Mailer
	to     string
}

func NewEmailSink(mailer smtp.Mailer, to string) Sink {
	return &emailSink{mailer: mailer, to: to}
}

func (s *emailSink) Deliver(_ context.Context, n domain.Notification) error {
	return s.mailer.SendEmail(s.to, n.Title, n.Body)
}
