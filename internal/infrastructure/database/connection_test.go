package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/infrastructure/config"
	"github.com/andrescamacho/prun-pricer/internal/infrastructure/database"
)

func TestNewConnection_SQLiteFileMigrates(t *testing.T) {
	// Arrange
	cfg := &config.DatabaseConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "pricer.db")}

	// Act
	db, err := database.NewConnection(cfg)
	require.NoError(t, err)
	defer database.Close(db)
	err = database.AutoMigrate(db)

	// Assert
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("price_runs"))
	assert.True(t, db.Migrator().HasTable("price_entries"))
}

func TestNewConnection_UnsupportedType(t *testing.T) {
	_, err := database.NewConnection(&config.DatabaseConfig{Type: "mysql"})

	assert.ErrorContains(t, err, "unsupported database type")
}
