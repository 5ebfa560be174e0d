package receipt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/mmynk/splitapp/internal/models"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	prompt = "Extract the receipt data from the image. Respond with an empty object if you cannot parse the receipt image."
)

// OpenAIConfig configures the chat-completions client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIExtractor calls an OpenAI-compatible chat completions endpoint with
// the image attached and a strict JSON schema for the answer.
type OpenAIExtractor struct {
	cfg     OpenAIConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewOpenAIExtractor creates an extractor. Five consecutive failures open
// the breaker for 30 seconds.
func NewOpenAIExtractor(cfg OpenAIConfig) *OpenAIExtractor {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "receipt-extractor",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Only transport and upstream failures count against the breaker.
			return err == nil || errors.Is(err, ErrUnreadable) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &OpenAIExtractor{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
	}
}

// Extract sends the image to the model and parses its structured reply.
func (e *OpenAIExtractor) Extract(ctx context.Context, image []byte, mimeType string) (*models.ReceiptExtraction, error) {
	mimeType, err := CheckImage(image, mimeType)
	if err != nil {
		return nil, err
	}

	result, err := e.breaker.Execute(func() (interface{}, error) {
		return e.call(ctx, image, mimeType)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return result.(*models.ReceiptExtraction), nil
}

func (e *OpenAIExtractor) call(ctx context.Context, image []byte, mimeType string) (*models.ReceiptExtraction, error) {
	payload, err := json.Marshal(e.buildRequest(image, mimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		slog.Error("Receipt extraction upstream error", "status", resp.Status, "body", string(body))
		return nil, fmt.Errorf("%w: upstream status %s", ErrUnavailable, resp.Status)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("%w: failed to decode completion: %v", ErrUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", ErrUnavailable)
	}

	msg := completion.Choices[0].Message
	if msg.Refusal != "" {
		slog.Info("Receipt extraction refused", "refusal", msg.Refusal)
		return nil, ErrUnreadable
	}
	return parseReceipt(msg.Content)
}

// parseReceipt decodes the model's JSON answer. An empty object or an
// answer with neither store nor items is unreadable.
func parseReceipt(content string) (*models.ReceiptExtraction, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrUnreadable
	}

	var wire receiptData
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		slog.Warn("Receipt extraction returned malformed JSON", "error", err)
		return nil, ErrUnreadable
	}

	out := &models.ReceiptExtraction{
		Receipt: models.ReceiptHeader{
			StoreName: strings.TrimSpace(wire.Receipt.NameOfStore),
			Total:     wire.Receipt.Total,
			Payer:     strings.TrimSpace(wire.Receipt.PaidBy),
			Date:      wire.Receipt.Date,
		},
	}
	for _, item := range wire.Items {
		out.Items = append(out.Items, models.ReceiptItem{
			Name:       strings.TrimSpace(item.Name),
			Amount:     item.Amount.Round(2),
			SharedWith: item.SharedWith,
		})
	}
	if out.Empty() {
		return nil, ErrUnreadable
	}
	return out, nil
}

func (e *OpenAIExtractor) buildRequest(image []byte, mimeType string) chatRequest {
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	return chatRequest{
		Model:       e.cfg.Model,
		Temperature: 0,
		MaxTokens:   1024,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "receiptData",
				Strict: true,
				Schema: receiptSchema,
			},
		},
	}
}

// Wire types for the chat completions API.

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
}

type receiptData struct {
	Receipt struct {
		ID          string          `json:"id"`
		NameOfStore string          `json:"nameOfStore"`
		Total       decimal.Decimal `json:"total"`
		PaidBy      string          `json:"paidBy"`
		Date        string          `json:"date"`
	} `json:"receipt"`
	Items []struct {
		Name       string          `json:"name"`
		Amount     decimal.Decimal `json:"amount"`
		SharedWith []string        `json:"sharedWith"`
	} `json:"items"`
}

func object(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

var receiptSchema = object([]string{"receipt", "items"}, map[string]any{
	"receipt": object([]string{"id", "nameOfStore", "total", "paidBy", "date"}, map[string]any{
		"id":          map[string]any{"type": "string"},
		"nameOfStore": map[string]any{"type": "string"},
		"total":       map[string]any{"type": "number"},
		"paidBy":      map[string]any{"type": "string"},
		"date":        map[string]any{"type": "string"},
	}),
	"items": map[string]any{
		"type": "array",
		"items": object([]string{"name", "amount", "sharedWith"}, map[string]any{
			"name":       map[string]any{"type": "string"},
			"amount":     map[string]any{"type": "number"},
			"sharedWith": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
	},
})
