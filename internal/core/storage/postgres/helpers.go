package postgres

import (
	"fmt"

	"github.com/aevon-lab/xapi-connect/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanUserRow scans a users row. Compatible with both sql.Row and sql.Rows.
func scanUserRow(row scanner) (*storage.User, error) {
	var u storage.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Section); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanSectionRow(row scanner) (*storage.Section, error) {
	var s storage.Section
	err := row.Scan(
		&s.UUID,
		&s.Name,
		&s.Semester,
		&s.Year,
		&s.GradeAPoints,
		&s.GradeAProjectPoints,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan section row: %w", err)
	}
	return &s, nil
}
