// Package gsheets implements sheet.Sink on top of the Google Sheets API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/rickgao/coinsheet/internal/credentials"
	"github.com/rickgao/coinsheet/internal/sheet"
)

// ValueInputRaw stores values as given, without parsing them as user input.
const ValueInputRaw = "RAW"

var (
	docURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{10,}$`)
)

// ParseSpreadsheetID accepts a full document URL or a bare spreadsheet id.
func ParseSpreadsheetID(target string) (string, error) {
	if m := docURLPattern.FindStringSubmatch(target); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(target) {
		return target, nil
	}
	return "", fmt.Errorf("cannot find spreadsheet id in %q", target)
}

// Config identifies the target document.
type Config struct {
	Target    string // document URL or id
	SheetName string // tab holding the rendered ranges; empty means the first tab
}

// Sink writes blocks with the Sheets values API.
type Sink struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	logger        *slog.Logger
}

// New creates a Sink authenticated as the given service account. Extra
// client options are appended after the credential options.
func New(ctx context.Context, cfg Config, sa *credentials.ServiceAccount, logger *slog.Logger, opts ...option.ClientOption) (*Sink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	id, err := ParseSpreadsheetID(cfg.Target)
	if err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	if sa != nil {
		keyJSON, err := sa.JSON()
		if err != nil {
			return nil, fmt.Errorf("encode service account: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(keyJSON, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("service account jwt config: %w", err)
		}
		// The token source outlives the constructor's context.
		clientOpts = append(clientOpts, option.WithTokenSource(jwt.TokenSource(context.Background())))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Sink{
		svc:           svc,
		spreadsheetID: id,
		sheetName:     cfg.SheetName,
		logger:        logger,
	}, nil
}

// SpreadsheetID returns the parsed document id.
func (s *Sink) SpreadsheetID() string { return s.spreadsheetID }

// WriteBlock replaces the block's range with a single values.update call.
func (s *Sink) WriteBlock(ctx context.Context, block sheet.Block) error {
	if err := block.Validate(); err != nil {
		return sheet.NewFatal("write", err)
	}

	rng := block.Region.A1()
	vr := &sheets.ValueRange{
		Range:          rng,
		MajorDimension: "ROWS",
		Values:         block.Values,
	}

	resp, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rng, vr).
		ValueInputOption(ValueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return classify("write "+rng, err)
	}

	s.logger.Debug("range updated",
		"range", resp.UpdatedRange,
		"cells", resp.UpdatedCells,
	)
	return nil
}

// Check fetches document metadata, which proves both that the credentials
// are accepted and that the service account can see the document.
func (s *Sink) Check(ctx context.Context) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("spreadsheetId,properties.title,sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return classify("check", err)
	}

	if s.sheetName == "" {
		// Unqualified ranges address the first tab.
		if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
			return sheet.NewFatal("check", fmt.Errorf("spreadsheet %s has no sheets", s.spreadsheetID))
		}
		s.logger.Debug("writing to first sheet", "sheet", doc.Sheets[0].Properties.Title)
	} else {
		found := false
		for _, sh := range doc.Sheets {
			if sh.Properties != nil && sh.Properties.Title == s.sheetName {
				found = true
				break
			}
		}
		if !found {
			return sheet.NewFatal("check", fmt.Errorf("sheet %q not found in spreadsheet %s", s.sheetName, s.spreadsheetID))
		}
	}

	title := ""
	if doc.Properties != nil {
		title = doc.Properties.Title
	}
	s.logger.Debug("spreadsheet reachable", "id", s.spreadsheetID, "title", title)
	return nil
}

// classify maps API, token and transport errors onto sink error kinds.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return byStatus(op, gerr.Code, err)
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		if rerr.Response != nil && rerr.Response.StatusCode >= 500 {
			return sheet.NewTransient(op, err)
		}
		return sheet.NewFatal(op, err)
	}

	// Timeouts, cancellation and network errors.
	return sheet.NewTransient(op, err)
}

func byStatus(op string, code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests,
		code == http.StatusRequestTimeout,
		code >= 500:
		return sheet.NewTransient(op, err)
	case code >= 400:
		return sheet.NewFatal(op, err)
	default:
		return sheet.NewTransient(op, err)
	}
}
