package goosehelper

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// MigrateUp выполняет миграции из каталога dir файловой системы fsys
func MigrateUp(db *sql.DB, fsys fs.FS, dir string) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
