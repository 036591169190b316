package gorm

import (
	"log/slog"
	"os"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
)

// Push_db creates or updates the relational tables.
func Push_db() {
	db, err := open()
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		new(model.DesignTemplate),
	); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("Database migration completed successfully")
}
