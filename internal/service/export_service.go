package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/pkg/export"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

// RosterFormat selects the rendering of an exported roster.
type RosterFormat string

// Supported roster formats.
const (
	RosterFormatCSV RosterFormat = "csv"
	RosterFormatPDF RosterFormat = "pdf"
)

// ParseRosterFormat resolves a query value; empty input means CSV.
func ParseRosterFormat(raw string) (RosterFormat, error) {
	switch f := RosterFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", RosterFormatCSV:
		return RosterFormatCSV, nil
	case RosterFormatPDF:
		return RosterFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unsupported format "+raw)
	}
}

// RosterFile is a rendered roster ready to be served.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportService renders activity rosters.
type ExportService struct {
	catalog *CatalogService
	csv     tableRenderer
	pdf     tableRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to pkg/export.
func NewExportService(catalog *CatalogService, logger *zap.Logger, csv, pdf tableRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{catalog: catalog, csv: csv, pdf: pdf, logger: logger}
}

// Roster renders the roster of activity in format.
func (s *ExportService) Roster(ctx context.Context, activity string, format RosterFormat) (*RosterFile, error) {
	a, err := s.catalog.Get(ctx, activity)
	if err != nil {
		return nil, err
	}
	table := RosterTable(*a)

	var (
		body        []byte
		contentType string
	)
	switch format {
	case RosterFormatPDF:
		body, err = s.pdf.Render(table)
		contentType = "application/pdf"
	default:
		format = RosterFormatCSV
		body, err = s.csv.Render(table)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		s.logger.Error("roster render failed", zap.String("activity", activity), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}

	return &RosterFile{
		Filename:    fmt.Sprintf("%s-roster.%s", slug(a.Name), format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// RosterTable lays out an activity roster as an export table.
func RosterTable(a models.Activity) export.Table {
	rows := make([][]string, len(a.Participants))
	for i, email := range a.Participants {
		rows[i] = []string{strconv.Itoa(i + 1), email}
	}
	return export.Table{
		Title:   a.Name,
		Summary: fmt.Sprintf("%s. %d of %d places taken.", a.Schedule, len(a.Participants), a.MaxParticipants),
		Headers: []string{"#", "Email"},
		Rows:    rows,
	}
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
