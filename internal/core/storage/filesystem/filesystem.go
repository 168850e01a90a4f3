// Package filesystem serves the directory from a YAML fixture on disk.
package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var _ storage.Directory = (*Store)(nil)

type sectionDoc struct {
	UUID                string `yaml:"uuid"`
	Name                string `yaml:"name"`
	Semester            string `yaml:"semester"`
	Year                string `yaml:"year"`
	GradeAPoints        string `yaml:"grade_a_points"`
	GradeAProjectPoints string `yaml:"grade_a_project_points"`
}

type userDoc struct {
	ID      string `yaml:"id"`
	Email   string `yaml:"email"`
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Section string `yaml:"section"`
}

type categoryDoc struct {
	ID     string `yaml:"id"`
	Link   string `yaml:"link"`
	Parent string `yaml:"parent"`
}

type contentDoc struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Permalink  string   `yaml:"permalink"`
	Level      string   `yaml:"level"`
	Categories []string `yaml:"categories"`
}

type levelDoc struct {
	Category   string   `yaml:"category"`
	Level      string   `yaml:"level"`
	Permalink  string   `yaml:"permalink"`
	Objectives []string `yaml:"objectives"`
}

// document is the on-disk fixture layout.
type document struct {
	Sections   []sectionDoc  `yaml:"sections"`
	Users      []userDoc     `yaml:"users"`
	Categories []categoryDoc `yaml:"categories"`
	Content    []contentDoc  `yaml:"content"`
	Levels     []levelDoc    `yaml:"levels"`
}

// Store is a read-only directory loaded once at startup. It is safe for
// concurrent use because nothing mutates it after Load.
type Store struct {
	sections   []storage.Section
	users      []storage.User
	usersByID  map[string]int
	categories map[string]categoryDoc
	content    map[string]contentDoc
	levels     []levelDoc
}

// Load reads and indexes the YAML fixture at path.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}

	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("[Directory] Loaded YAML directory",
		"path", path,
		"users", len(s.users),
		"sections", len(s.sections),
		"content_items", len(s.content))
	return s, nil
}

// Parse builds a store from YAML bytes.
func Parse(raw []byte) (*Store, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse directory YAML: %w", err)
	}

	s := &Store{
		usersByID:  make(map[string]int, len(doc.Users)),
		categories: make(map[string]categoryDoc, len(doc.Categories)),
		content:    make(map[string]contentDoc, len(doc.Content)),
		levels:     doc.Levels,
	}

	for _, sec := range doc.Sections {
		gradeA, err := parsePoints(sec.GradeAPoints)
		if err != nil {
			return nil, fmt.Errorf("section %q: grade_a_points: %w", sec.Name, err)
		}
		gradeAProject, err := parsePoints(sec.GradeAProjectPoints)
		if err != nil {
			return nil, fmt.Errorf("section %q: grade_a_project_points: %w", sec.Name, err)
		}
		s.sections = append(s.sections, storage.Section{
			UUID:                sec.UUID,
			Name:                sec.Name,
			Semester:            sec.Semester,
			Year:                sec.Year,
			GradeAPoints:        gradeA,
			GradeAProjectPoints: gradeAProject,
		})
	}

	for _, u := range doc.Users {
		if _, dup := s.usersByID[u.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %q", u.ID)
		}
		s.usersByID[u.ID] = len(s.users)
		s.users = append(s.users, storage.User(u))
	}

	for _, c := range doc.Categories {
		s.categories[c.ID] = c
	}
	for _, c := range doc.Content {
		for _, catID := range c.Categories {
			if _, ok := s.categories[catID]; !ok {
				return nil, fmt.Errorf("content %q references unknown category %q", c.ID, catID)
			}
		}
		s.content[c.ID] = c
	}

	return s, nil
}

func parsePoints(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

func (s *Store) ContentItem(_ context.Context, id string) (*storage.Content, error) {
	c, ok := s.content[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Content{
		ContentItem: xapi.ContentItem{ID: c.ID, Title: c.Title, Permalink: c.Permalink},
		Level:       c.Level,
	}, nil
}

func (s *Store) Categories(_ context.Context, contentID string) ([]xapi.Category, error) {
	c, ok := s.content[contentID]
	if !ok {
		return nil, nil
	}

	out := make([]xapi.Category, 0, len(c.Categories))
	for _, id := range c.Categories {
		cat := s.categories[id]
		parentLink := ""
		if parent, ok := s.categories[cat.Parent]; ok {
			parentLink = parent.Link
		}
		out = append(out, xapi.Category{ID: cat.ID, Link: cat.Link, ParentLink: parentLink})
	}
	return out, nil
}

func (s *Store) LevelObjectives(_ context.Context, categoryID, level string) (xapi.ParentLevel, error) {
	var parent xapi.ParentLevel
	for _, l := range s.levels {
		if l.Category != categoryID || l.Level != level || len(l.Objectives) == 0 {
			continue
		}
		parent.Permalink = l.Permalink
		parent.Objectives = append(parent.Objectives, l.Objectives...)
	}
	return parent, nil
}

func (s *Store) User(_ context.Context, id string) (*storage.User, error) {
	i, ok := s.usersByID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	u := s.users[i]
	return &u, nil
}

func (s *Store) UsersByRole(_ context.Context, role, section string) ([]storage.User, error) {
	var out []storage.User
	for _, u := range s.users {
		if u.Role != role {
			continue
		}
		if section != "" && u.Section != section {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) Section(_ context.Context, label string) (*storage.Section, error) {
	for _, sec := range s.sections {
		if sec.Label() == label {
			return &sec, nil
		}
	}
	return nil, storage.ErrNotFound
}
