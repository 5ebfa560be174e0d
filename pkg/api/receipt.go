package api

import "github.com/shopspring/decimal"

type ReceiptHeader struct {
	StoreName string          `json:"storeName"`
	Total     decimal.Decimal `json:"total"`
	Payer     string          `json:"payer"`
	Date      string          `json:"date"`
}

type ReceiptItem struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	SharedWith []string        `json:"sharedWith"`
}

type ReceiptExtraction struct {
	Receipt *ReceiptHeader `json:"receipt"`
	Items   []*ReceiptItem `json:"items"`
}

type ScanReceiptRequest struct {
	// Image is the raw image; base64 on the wire.
	Image    []byte `json:"image"`
	MimeType string `json:"mimeType"`
}

type ScanReceiptResponse struct {
	Extraction *ReceiptExtraction `json:"extraction"`
}

type PreviewReceiptSplitRequest struct {
	Payer string         `json:"payer"`
	Items []*ReceiptItem `json:"items"`
}

type Share struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type PreviewReceiptSplitResponse struct {
	Total  string   `json:"total"`
	Shares []*Share `json:"shares"`
}

type ConfirmReceiptRequest struct {
	GroupId   string         `json:"groupId"`
	StoreName string         `json:"storeName"`
	Payer     string         `json:"payer"`
	Date      string         `json:"date,omitempty"`
	Items     []*ReceiptItem `json:"items"`
}

type ConfirmReceiptResponse struct {
	Expense *Expense `json:"expense"`
}
