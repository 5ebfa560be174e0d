package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/reminder"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

// ReminderService previews and sends payment reminders for outstanding
// settlements.
type ReminderService struct {
	apiconnect.UnimplementedReminderServiceHandler
	store    storage.Store
	notifier *reminder.Notifier
}

func NewReminderService(store storage.Store, notifier *reminder.Notifier) *ReminderService {
	return &ReminderService{store: store, notifier: notifier}
}

func checkPair(debtor, creditor string) error {
	if debtor == "" {
		return &models.ValidationError{Field: "debtor", Reason: "debtor is required"}
	}
	if creditor == "" {
		return &models.ValidationError{Field: "creditor", Reason: "creditor is required"}
	}
	return nil
}

// PreviewReminder renders the reminder without sending it.
func (s *ReminderService) PreviewReminder(ctx context.Context, req *connect.Request[api.PreviewReminderRequest]) (*connect.Response[api.PreviewReminderResponse], error) {
	group, err := loadGroup(ctx, s.store, "PreviewReminder", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	if err := checkPair(req.Msg.Debtor, req.Msg.Creditor); err != nil {
		return nil, toConnectError("PreviewReminder", err)
	}

	r, err := s.notifier.Preview(ctx, group, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, toConnectError("PreviewReminder", err)
	}

	return connect.NewResponse(&api.PreviewReminderResponse{Reminder: reminderToAPI(r)}), nil
}

// SendReminder emails the debtor about what they currently owe the
// creditor. The amount is recomputed here, never taken from the caller.
func (s *ReminderService) SendReminder(ctx context.Context, req *connect.Request[api.SendReminderRequest]) (*connect.Response[api.SendReminderResponse], error) {
	slog.Info("SendReminder request received",
		"group_id", req.Msg.GroupId,
		"debtor", req.Msg.Debtor,
		"creditor", req.Msg.Creditor,
	)

	group, err := loadGroup(ctx, s.store, "SendReminder", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}
	if err := checkPair(req.Msg.Debtor, req.Msg.Creditor); err != nil {
		return nil, toConnectError("SendReminder", err)
	}

	r, err := s.notifier.Send(ctx, group, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, toConnectError("SendReminder", err)
	}

	slog.Info("Reminder sent", "group_id", group.ID, "to", r.To)

	return connect.NewResponse(&api.SendReminderResponse{Reminder: reminderToAPI(r)}), nil
}
