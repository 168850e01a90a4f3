package storage

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a directory record does not exist.
var ErrNotFound = errors.New("directory record not found")

// Roles known to the directory.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// Content is a page or assessment together with the level it belongs to.
type Content struct {
	xapi.ContentItem
	Level string
}

// User is a person known to the directory.
type User struct {
	ID    string
	Email string
	Name  string
	Role  string

	// Section is the label of the course section the user belongs to, "" if none.
	Section string
}

// Identity returns the user's mailbox identity for statements.
func (u User) Identity() xapi.Identity {
	return xapi.Identity{Email: u.Email, Name: u.Name}
}

// Section is a course section and its grade settings.
type Section struct {
	UUID     string
	Name     string
	Semester string
	Year     string

	GradeAPoints        decimal.Decimal
	GradeAProjectPoints decimal.Decimal
}

// Label returns the "<year>-<semester>-<slug>" key users are assigned by.
func (s Section) Label() string {
	return SectionLabel(s.Year, s.Semester, s.Name)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses every run of other characters to a single dash.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// SectionLabel builds a section label from its parts.
func SectionLabel(year, semester, name string) string {
	return year + "-" + semester + "-" + Slug(name)
}

// Directory is the read side of the learning platform: content, categories,
// level objectives, users and course sections.
type Directory interface {
	// ContentItem returns ErrNotFound for an unknown id.
	ContentItem(ctx context.Context, id string) (*Content, error)

	// Categories returns the ordered category chain of a content item.
	Categories(ctx context.Context, contentID string) ([]xapi.Category, error)

	// LevelObjectives returns the objectives of the level posts filed under
	// categoryID with the given level. Permalink is empty when none exist.
	LevelObjectives(ctx context.Context, categoryID, level string) (xapi.ParentLevel, error)

	// User returns ErrNotFound for an unknown id.
	User(ctx context.Context, id string) (*User, error)

	// UsersByRole lists users with role, optionally restricted to one section label.
	UsersByRole(ctx context.Context, role, section string) ([]User, error)

	// Section returns the section with the given label or ErrNotFound.
	Section(ctx context.Context, label string) (*Section, error)
}
