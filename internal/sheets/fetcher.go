// Package sheets reads the contract spreadsheet range that grounds every
// generated answer.
package sheets

import (
	"context"
	"fmt"
	"time"

	"contratobot/core/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
	"log/slog"
)

// Options configure the spreadsheet fetcher.
type Options struct {
	ClientSecretFile string
	TokenFile        string
	SpreadsheetID    string
	ReadRange        string
}

// Snapshot holds one fetched copy of the configured range.
type Snapshot struct {
	Range     string
	Rows      [][]string
	FetchedAt time.Time
}

// Fetcher reads the configured spreadsheet range on demand. Tokens refreshed
// during a fetch are persisted back to the token file.
type Fetcher struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	readRange     string
}

// NewFetcher loads credentials, builds the authorized Sheets client, and
// returns a ready fetcher. It fails fast when the client secret or token file
// is missing or malformed.
func NewFetcher(ctx context.Context, opts Options) (*Fetcher, error) {
	oauthCfg, err := LoadOAuthConfig(opts.ClientSecretFile)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(opts.TokenFile)
	if err != nil {
		return nil, err
	}

	source := newPersistingTokenSource(
		oauthCfg.TokenSource(ctx, tok),
		opts.TokenFile,
		tok,
	)
	client := oauth2.NewClient(ctx, source)

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("sheets: build service: %w", err)
	}

	logger.Sheets.Info("fetcher ready",
		slog.String("event", "init"),
		slog.String("range", opts.ReadRange),
	)

	return &Fetcher{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		readRange:     opts.ReadRange,
	}, nil
}

// Fetch reads the configured range and returns its rows as strings. Failures
// come back as *FetchError so callers can branch on the kind.
func (f *Fetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	resp, err := f.svc.Spreadsheets.Values.Get(f.spreadsheetID, f.readRange).
		Context(ctx).
		Do()
	if err != nil {
		fe := classifyError(err)
		logger.Sheets.Error("fetch failed",
			slog.String("event", "fetch.failed"),
			slog.String("range", f.readRange),
			slog.String("err_code", string(fe.Kind)),
			slog.Bool("retryable", fe.Retryable()),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return nil, fe
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}

	logger.Sheets.Info("fetch done",
		slog.String("event", "fetch.done"),
		slog.String("range", f.readRange),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", logger.Took(start)),
	)

	return &Snapshot{
		Range:     f.readRange,
		Rows:      rows,
		FetchedAt: start,
	}, nil
}
