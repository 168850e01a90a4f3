// Package report serves section reports: the aggregate statements of a
// section's students as held by the LRS.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/lrs"
	"github.com/aevon-lab/xapi-connect/internal/metrics"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	defaultVerb      = "completed"
	defaultProjectID = "0"
)

var (
	// ErrMissingSection marks a request without a section label.
	ErrMissingSection = errors.New("missing section")

	// ErrUnknownSection marks a section label no course section carries.
	ErrUnknownSection = errors.New("unknown section")

	// ErrLRSQuery wraps failures of the aggregate request itself.
	ErrLRSQuery = errors.New("lrs aggregate query failed")
)

// Service builds section reports from the directory and the LRS.
type Service struct {
	dir          storage.Directory
	querier      xapi.AggregateQuerier
	creds        lrs.Credentials
	metrics      *metrics.Manager
	requiredRole string
	group        singleflight.Group
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCredentials sets the LRS credentials used for aggregate queries.
// Without them the querier's own defaults apply.
func WithCredentials(creds lrs.Credentials) Option {
	return func(s *Service) {
		s.creds = creds
	}
}

// WithMetrics records report outcomes on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRequiredRole restricts the report routes to callers holding role.
func WithRequiredRole(role string) Option {
	return func(s *Service) {
		s.requiredRole = role
	}
}

// NewService creates a new report service.
func NewService(dir storage.Directory, querier xapi.AggregateQuerier, opts ...Option) *Service {
	if dir == nil {
		panic("report: directory must not be nil")
	}
	if querier == nil {
		panic("report: querier must not be nil")
	}
	s := &Service{dir: dir, querier: querier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SectionReport answers req. Concurrent identical requests share one LRS round trip;
// nothing is cached once it returns.
func (s *Service) SectionReport(ctx context.Context, req SectionReportRequest) (*Response, error) {
	req.Section = strings.TrimSpace(req.Section)
	if req.Section == "" {
		return nil, ErrMissingSection
	}
	if req.Verb == "" {
		req.Verb = defaultVerb
	}
	if req.ProjectID == "" {
		req.ProjectID = defaultProjectID
	}

	key := req.Section + "\x00" + req.Verb + "\x00" + req.ProjectID
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.buildReport(ctx, req)
	})
	if err != nil {
		s.metrics.RecordReport(metrics.OutcomeError)
		return nil, err
	}
	if shared {
		slog.Debug("[Report] Coalesced section report", "section", req.Section, "verb", req.Verb)
	}
	s.metrics.RecordReport(metrics.OutcomeOK)
	return v.(*Response), nil
}

func (s *Service) buildReport(ctx context.Context, req SectionReportRequest) (*Response, error) {
	section, err := s.dir.Section(ctx, req.Section)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, req.Section)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section %q: %w", req.Section, err)
	}

	students, err := s.dir.UsersByRole(ctx, storage.RoleStudent, req.Section)
	if err != nil {
		return nil, fmt.Errorf("failed to list students of %q: %w", req.Section, err)
	}

	byEmail := make(map[string]storage.User, len(students))
	emails := make([]string, 0, len(students))
	for _, st := range students {
		if st.Email == "" {
			continue
		}
		byEmail[strings.ToLower(st.Email)] = st
		emails = append(emails, st.Email)
	}

	raw, err := xapi.Aggregate(ctx, s.querier, xapi.AggregateRequest{
		Emails:    emails,
		Verb:      req.Verb,
		ProjectID: projectID(req.ProjectID),
	}, s.creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLRSQuery, err)
	}

	rows, err := decodeRows(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLRSQuery, err)
	}

	totals := map[string]*StudentTotal{}
	for _, row := range rows {
		email, _ := row["email"].(string)
		user, ok := byEmail[strings.ToLower(strings.TrimPrefix(email, "mailto:"))]
		if !ok {
			row["id"] = nil
			continue
		}
		row["id"] = user.ID

		total, ok := totals[user.ID]
		if !ok {
			total = &StudentTotal{UserID: user.ID, Email: user.Email, Name: user.Name, Score: decimal.Zero}
			totals[user.ID] = total
		}
		total.Score = total.Score.Add(ExtractDecimal(row, "score"))
		total.Statements++
	}

	slog.Info("[Report] Section report built",
		"section", req.Section,
		"verb", req.Verb,
		"students", len(students),
		"rows", len(rows))

	return &Response{
		Success: true,
		Data:    &SectionReport{Result: rows, Totals: sortedTotals(totals)},
		Extra: map[string]interface{}{
			"course_grade_a_points":         section.GradeAPoints,
			"course_grade_a_project_points": section.GradeAProjectPoints,
		},
	}, nil
}

// decodeRows reads the "result" array of an aggregate response.
func decodeRows(raw []byte) ([]map[string]interface{}, error) {
	var doc struct {
		Result []map[string]interface{} `json:"result"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode aggregate response: %w", err)
	}
	if doc.Result == nil {
		doc.Result = []map[string]interface{}{}
	}
	return doc.Result, nil
}

func sortedTotals(totals map[string]*StudentTotal) []StudentTotal {
	out := make([]StudentTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Email < out[j].Email
	})
	return out
}

// projectID keeps numeric ids numeric in the projected rows.
func projectID(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
