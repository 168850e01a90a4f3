package filesystem

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aevon-lab/xapi-connect/internal/core/storage"
	"github.com/aevon-lab/xapi-connect/internal/xapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Store {
	t.Helper()
	s, err := Load(filepath.Join("testdata", "directory.yaml"))
	require.NoError(t, err)
	return s
}

func TestStore_Content(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	c, err := s.ContentItem(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Unit 3 Quiz", c.Title)
	assert.Equal(t, "beginner", c.Level)

	_, err = s.ContentItem(ctx, "404")
	require.ErrorIs(t, err, storage.ErrNotFound)

	cats, err := s.Categories(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []xapi.Category{
		{ID: "7", Link: "https://courses.example.edu/c/algebra", ParentLink: "https://courses.example.edu/c/math"},
		{ID: "3", Link: "https://courses.example.edu/c/math"},
	}, cats)

	level, err := s.LevelObjectives(ctx, "7", "beginner")
	require.NoError(t, err)
	assert.Equal(t, xapi.ParentLevel{
		Permalink:  "https://courses.example.edu/levels/beginner",
		Objectives: []string{"Solve linear equations", "Graph lines"},
	}, level)

	level, err = s.LevelObjectives(ctx, "3", "beginner")
	require.NoError(t, err)
	assert.Empty(t, level.Permalink)
}

func TestStore_Users(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	u, err := s.User(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.edu", u.Email)
	assert.Equal(t, "2024-fall-ltec-112", u.Section)

	_, err = s.User(ctx, "99")
	require.ErrorIs(t, err, storage.ErrNotFound)

	students, err := s.UsersByRole(ctx, storage.RoleStudent, "")
	require.NoError(t, err)
	assert.Len(t, students, 2)

	fall, err := s.UsersByRole(ctx, storage.RoleStudent, "2024-fall-ltec-112")
	require.NoError(t, err)
	require.Len(t, fall, 1)
	assert.Equal(t, "1", fall[0].ID)
}

func TestStore_Section(t *testing.T) {
	s := loadFixture(t)

	sec, err := s.Section(context.Background(), "2024-fall-ltec-112")
	require.NoError(t, err)
	assert.Equal(t, "6f1c2b7e-3a4d-4c5e-9f60-7a8b9c0d1e2f", sec.UUID)
	assert.True(t, decimal.NewFromInt(900).Equal(sec.GradeAPoints))
	assert.True(t, decimal.RequireFromString("312.5").Equal(sec.GradeAProjectPoints))

	spring, err := s.Section(context.Background(), "2024-spring-ltec-112")
	require.NoError(t, err)
	assert.True(t, spring.GradeAPoints.IsZero())

	_, err = s.Section(context.Background(), "2030-fall-none")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"invalid yaml":     "users: [",
		"duplicate user":   "users:\n  - id: \"1\"\n  - id: \"1\"\n",
		"unknown category": "content:\n  - id: \"1\"\n    categories: [\"9\"]\n",
		"bad points":       "sections:\n  - name: x\n    grade_a_points: lots\n",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read directory file")
}
