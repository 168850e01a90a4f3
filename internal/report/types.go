package report

import (
	"github.com/shopspring/decimal"
)

// SectionReportRequest selects the statements of one course section.
type SectionReportRequest struct {
	Section   string `form:"section"`
	Verb      string `form:"verb"`       // default: "completed"
	ProjectID string `form:"project_id"` // default: "0"
}

// StudentTotal sums one student's scores across the returned rows.
type StudentTotal struct {
	UserID     string          `json:"user_id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Score      decimal.Decimal `json:"score"`
	Statements int             `json:"statements"`
}

// SectionReport is the payload under "data": the LRS rows, each with the
// directory id of its learner (null when unknown), plus per-student totals.
type SectionReport struct {
	Result []map[string]interface{} `json:"result"`
	Totals []StudentTotal           `json:"totals"`
}

// Response is the envelope every report request answers with.
type Response struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    *SectionReport         `json:"data"`
	Extra   map[string]interface{} `json:"extra"`
}
