package service

import (
	"strings"
	"time"

	"github.com/mmynk/splitapp/internal/calculator"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/reminder"
	"github.com/mmynk/splitapp/pkg/api"
)

func groupToAPI(g *models.Group) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = &api.Member{Name: m.Name, Email: m.Email}
	}
	return &api.Group{
		Id:         g.ID,
		Name:       g.Name,
		OwnerEmail: g.OwnerEmail,
		Members:    members,
		CreatedAt:  g.CreatedAt,
	}
}

func membersFromAPI(in []*api.Member) []models.Member {
	members := make([]models.Member, 0, len(in))
	for _, m := range in {
		if m == nil {
			continue
		}
		members = append(members, models.Member{
			Name:  strings.TrimSpace(m.Name),
			Email: strings.TrimSpace(m.Email),
		})
	}
	return members
}

func expenseToAPI(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:          e.ID,
		GroupId:     e.GroupID,
		Amount:      calculator.Money(e.Amount),
		Description: e.Description,
		PaidBy:      e.PaidBy,
		Date:        e.Date.UTC().Format(api.DateLayout),
		SplitWith:   e.SplitWith,
		CreatedAt:   e.CreatedAt,
	}
}

// parseDate reads an optional YYYY-MM-DD date; empty means today (UTC).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	d, err := time.Parse(api.DateLayout, s)
	if err != nil {
		return time.Time{}, &models.ValidationError{Field: "date", Reason: "date must be YYYY-MM-DD"}
	}
	return d, nil
}

func itemsFromAPI(in []*api.ReceiptItem) []models.ReceiptItem {
	items := make([]models.ReceiptItem, 0, len(in))
	for _, it := range in {
		if it == nil {
			continue
		}
		items = append(items, models.ReceiptItem{
			Name:       strings.TrimSpace(it.Name),
			Amount:     it.Amount,
			SharedWith: it.SharedWith,
		})
	}
	return items
}

func extractionToAPI(r *models.ReceiptExtraction) *api.ReceiptExtraction {
	items := make([]*api.ReceiptItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = &api.ReceiptItem{Name: it.Name, Amount: it.Amount, SharedWith: it.SharedWith}
	}
	return &api.ReceiptExtraction{
		Receipt: &api.ReceiptHeader{
			StoreName: r.Receipt.StoreName,
			Total:     r.Receipt.Total,
			Payer:     r.Receipt.Payer,
			Date:      r.Receipt.Date,
		},
		Items: items,
	}
}

func reminderToAPI(r *reminder.Reminder) *api.Reminder {
	return &api.Reminder{
		To:         r.To,
		Subject:    r.Subject,
		Body:       r.Body,
		Amount:     calculator.Money(r.Amount),
		SenderName: r.SenderName,
	}
}
