package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"audit-backend/internal/notify"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	scope          = "https://www.googleapis.com/auth/spreadsheets"
	defaultRange   = "Sheet1!A:Z"
)

// Config holds the spreadsheet target and service-account credentials.
type Config struct {
	SpreadsheetID       string
	Range               string
	ServiceAccountEmail string
	PrivateKey          string
}

// Sink appends one row per event to a Google Sheet.
type Sink struct {
	baseURL       string
	spreadsheetID string
	rangeA1       string
	httpClient    *http.Client
}

// New returns a sink authorised with a service-account JWT.
func New(ctx context.Context, cfg Config) (*Sink, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("sheets spreadsheet id is required")
	}
	if strings.TrimSpace(cfg.ServiceAccountEmail) == "" || strings.TrimSpace(cfg.PrivateKey) == "" {
		return nil, errors.New("sheets service account email and private key are required")
	}
	jwtCfg := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{scope},
		TokenURL:   google.JWTTokenURL,
	}
	// The oauth2 client keeps using ctx for token refreshes.
	return newWithClient(jwtCfg.Client(context.WithoutCancel(ctx)), defaultBaseURL, cfg.SpreadsheetID, cfg.Range), nil
}

func newWithClient(client *http.Client, baseURL, spreadsheetID, rangeA1 string) *Sink {
	if strings.TrimSpace(rangeA1) == "" {
		rangeA1 = defaultRange
	}
	return &Sink{
		baseURL:       strings.TrimRight(baseURL, "/"),
		spreadsheetID: strings.TrimSpace(spreadsheetID),
		rangeA1:       rangeA1,
		httpClient:    client,
	}
}

func (s *Sink) Name() string { return "sheets" }

func (s *Sink) appendURL() string {
	q := url.Values{}
	q.Set("valueInputOption", "RAW")
	q.Set("insertDataOption", "INSERT_ROWS")
	return fmt.Sprintf("%s/%s/values/%s:append?%s",
		s.baseURL,
		url.PathEscape(s.spreadsheetID),
		url.PathEscape(s.rangeA1),
		q.Encode(),
	)
}

type appendRequest struct {
	Values [][]any `json:"values"`
}

func (s *Sink) Send(ctx context.Context, ev notify.Event) error {
	body, err := json.Marshal(appendRequest{Values: [][]any{ev.Row()}})
	if err != nil {
		return fmt.Errorf("encode sheets row: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.appendURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sheets request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets append status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

var _ notify.Sink = (*Sink)(nil)
