package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitapp/internal/calculator"
	"github.com/mmynk/splitapp/internal/metrics"
	"github.com/mmynk/splitapp/internal/models"
	"github.com/mmynk/splitapp/internal/receipt"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/pkg/api"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

// ReceiptService scans receipt photos and turns confirmed receipts into
// expenses.
type ReceiptService struct {
	apiconnect.UnimplementedReceiptServiceHandler
	store     storage.Store
	extractor receipt.Extractor
	metrics   *metrics.Metrics
}

// NewReceiptService creates the service. extractor may be nil when no
// extraction backend is configured; scans then fail with Unavailable.
func NewReceiptService(store storage.Store, extractor receipt.Extractor, m *metrics.Metrics) *ReceiptService {
	return &ReceiptService{store: store, extractor: extractor, metrics: m}
}

// ScanReceipt extracts line items from an uploaded image.
func (s *ReceiptService) ScanReceipt(ctx context.Context, req *connect.Request[api.ScanReceiptRequest]) (*connect.Response[api.ScanReceiptResponse], error) {
	slog.Info("ScanReceipt request received", "bytes", len(req.Msg.Image), "mime_type", req.Msg.MimeType)

	if _, err := callerEmail(ctx); err != nil {
		return nil, err
	}

	extraction, err := s.scan(ctx, req.Msg.Image, req.Msg.MimeType)
	if err != nil {
		return nil, toConnectError("ScanReceipt", err)
	}

	return connect.NewResponse(&api.ScanReceiptResponse{Extraction: extractionToAPI(extraction)}), nil
}

func (s *ReceiptService) scan(ctx context.Context, image []byte, mimeType string) (*models.ReceiptExtraction, error) {
	if s.extractor == nil {
		return nil, receipt.ErrUnavailable
	}

	extraction, err := s.extractor.Extract(ctx, image, mimeType)
	switch {
	case err == nil:
		s.metrics.ObserveExtraction(metrics.ResultOK)
		slog.Info("Receipt scanned", "store", extraction.Receipt.StoreName, "items", len(extraction.Items))
	case errors.Is(err, receipt.ErrUnreadable):
		s.metrics.ObserveExtraction(metrics.ResultUnread)
	case !models.IsValidation(err):
		s.metrics.ObserveExtraction(metrics.ResultError)
	}
	return extraction, err
}

// PreviewReceiptSplit shows what each sharer would owe the payer, without
// touching the store.
func (s *ReceiptService) PreviewReceiptSplit(ctx context.Context, req *connect.Request[api.PreviewReceiptSplitRequest]) (*connect.Response[api.PreviewReceiptSplitResponse], error) {
	if _, err := callerEmail(ctx); err != nil {
		return nil, err
	}

	items := itemsFromAPI(req.Msg.Items)
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	shares := calculator.ReceiptShares(items, req.Msg.Payer)
	out := make([]*api.Share, len(shares))
	for i, sh := range shares {
		out[i] = &api.Share{Name: sh.Name, Amount: calculator.Money(sh.Amount)}
	}

	return connect.NewResponse(&api.PreviewReceiptSplitResponse{
		Total:  calculator.Money(total),
		Shares: out,
	}), nil
}

// ConfirmReceipt assembles the reviewed receipt into a single expense paid
// by the payer and stores it.
func (s *ReceiptService) ConfirmReceipt(ctx context.Context, req *connect.Request[api.ConfirmReceiptRequest]) (*connect.Response[api.ConfirmReceiptResponse], error) {
	slog.Info("ConfirmReceipt request received",
		"group_id", req.Msg.GroupId,
		"payer", req.Msg.Payer,
		"items", len(req.Msg.Items),
	)

	group, err := loadGroup(ctx, s.store, "ConfirmReceipt", req.Msg.GroupId)
	if err != nil {
		return nil, err
	}

	expense, err := calculator.AssembleReceiptExpense(req.Msg.StoreName, itemsFromAPI(req.Msg.Items), req.Msg.Payer)
	if err != nil {
		return nil, toConnectError("ConfirmReceipt", err)
	}
	expense.GroupID = group.ID
	if expense.Date, err = parseDate(req.Msg.Date); err != nil {
		return nil, toConnectError("ConfirmReceipt", err)
	}
	if err := expense.ValidateAgainst(group); err != nil {
		return nil, toConnectError("ConfirmReceipt", err)
	}

	if err := s.store.CreateExpense(ctx, &expense); err != nil {
		return nil, toConnectError("ConfirmReceipt", err)
	}

	slog.Info("Receipt confirmed", "expense_id", expense.ID, "amount", expense.Amount.String())

	return connect.NewResponse(&api.ConfirmReceiptResponse{Expense: expenseToAPI(&expense)}), nil
}

// UploadHandler accepts a multipart form with the image in field "image"
// and responds with the extraction as JSON. Mount it behind
// middleware.RequireAuthHTTP.
func (s *ReceiptService) UploadHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, receipt.MaxImageSize+1<<20)
		file, header, err := r.FormFile("image")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "no image provided or invalid file type")
			return
		}
		defer file.Close()

		image, err := io.ReadAll(io.LimitReader(file, receipt.MaxImageSize+1))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "failed to read image")
			return
		}

		extraction, err := s.scan(r.Context(), image, header.Header.Get("Content-Type"))
		if err != nil {
			status, msg := httpStatus(toConnectError("UploadReceipt", err))
			writeJSONError(w, status, msg)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(extractionToAPI(extraction))
	})
}

func httpStatus(err error) (int, string) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return http.StatusInternalServerError, errExternal.Error()
	}
	switch connectErr.Code() {
	case connect.CodeInvalidArgument:
		return http.StatusBadRequest, connectErr.Message()
	case connect.CodeUnavailable:
		return http.StatusServiceUnavailable, connectErr.Message()
	default:
		return http.StatusInternalServerError, connectErr.Message()
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
