// Package migrations содержит SQL-схему таблицы tasks для PostgreSQL.
package migrations

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var FS embed.FS

// Source возвращает источник миграций для golang-migrate
func Source() (source.Driver, error) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}
	return src, nil
}
