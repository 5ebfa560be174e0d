// Package reminder builds and delivers payment reminder emails for
// outstanding settlements.
package reminder

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitapp/internal/calculator"
	"github.com/mmynk/splitapp/internal/models"
)

var (
	// ErrNoSettlement means the debtor does not owe the creditor anything.
	ErrNoSettlement = errors.New("no outstanding settlement")
	// ErrNoEmail means the debtor has no email address on file.
	ErrNoEmail = errors.New("member has no email address")
	// ErrThrottled means a reminder for the same pair was sent recently.
	ErrThrottled = errors.New("reminder sent recently")
	// ErrDelivery wraps mail transport failures.
	ErrDelivery = errors.New("reminder delivery failed")
)

// Reminder is a rendered message ready to send.
type Reminder struct {
	GroupID    string
	Debtor     string
	Creditor   string
	To         string
	Amount     decimal.Decimal
	SenderName string
	Subject    string
	Body       string
}

// Key identifies the (group, debtor, creditor) pair for throttling. Parts
// are quoted because member names may contain the separator.
func (r *Reminder) Key() string {
	return "reminder:" + strconv.Quote(r.GroupID) + ":" + strconv.Quote(r.Debtor) + ":" + strconv.Quote(r.Creditor)
}

var bodyTemplate = template.Must(template.New("reminder").Parse(`<p>Hello {{.Debtor}},</p>
<p>This is a friendly reminder that you owe {{.Creditor}} ${{.Amount}} in {{.Group}}.</p>
<p>Please arrange the payment at your earliest convenience.</p>
<p>Best regards,<br/>Split App</p>
`))

// Build renders the reminder for an outstanding settlement. The debtor must
// be a group member with an email address.
func Build(group *models.Group, s calculator.Settlement) (*Reminder, error) {
	debtor, ok := group.FindMember(s.From)
	if !ok || debtor.Email == "" {
		return nil, fmt.Errorf("%s: %w", s.From, ErrNoEmail)
	}

	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		Debtor, Creditor, Amount, Group string
	}{s.From, s.To, calculator.Money(s.Amount), group.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to render reminder: %w", err)
	}

	return &Reminder{
		GroupID:    group.ID,
		Debtor:     s.From,
		Creditor:   s.To,
		To:         debtor.Email,
		Amount:     s.Amount.Round(2),
		SenderName: s.To,
		Subject:    "Payment Reminder from " + s.To,
		Body:       body.String(),
	}, nil
}
