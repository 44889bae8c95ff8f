package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrops-dev/attendance-backend-go/internal/domain/employee"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeDirectoryImpl struct {
	db *database.DB
}

func NewEmployeeDirectory(db *database.DB) employee.Directory {
	return &employeeDirectoryImpl{db: db}
}

// ResolveName implements employee.Directory.
func (e *employeeDirectoryImpl) ResolveName(ctx context.Context, employeeID string) (string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT name
		FROM employees
		WHERE id = $1
	`

	var name string
	err := q.QueryRow(ctx, query, employeeID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to resolve employee name for id %s: %w", employeeID, err)
	}

	return name, nil
}
