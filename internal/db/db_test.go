package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadslab/internal/config"
	"stadslab/models"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestDialector(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"postgres://u:p@localhost:5432/stadslab":   "postgres",
		"postgresql://localhost/stadslab":          "postgres",
		"host=localhost user=stadslab dbname=plan": "postgres",
		"sqlite://data/stadslab.db":                "sqlite",
		"sqlite::memory:":                          "sqlite",
		"file:plan?mode=memory":                    "sqlite",
		"stadslab.db":                              "sqlite",
	}
	for url, want := range cases {
		d, err := Dialector(url)
		require.NoError(t, err, url)
		assert.Equal(t, want, d.Name(), url)
	}

	_, err := Dialector("mysql://root:geheim@db/stadslab")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "geheim")
}

func TestConfigureWithSQLiteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stadslab.db")
	database, err := Configure(config.DatabaseConfig{URL: "sqlite://" + path, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	assert.True(t, database.Migrator().HasTable(&models.StoreEntry{}))
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}
