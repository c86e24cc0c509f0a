package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "aurora.db"))
	t.Setenv("MEDIA_ROOT", filepath.Join(dir, "media"))
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "ensure-admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin user ready: admin@skincare.com (admin)")

	out, err = run(t, "ensure-admin")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin user ready: admin@skincare.com")
}

func TestSeedProducts_SkipsExisting(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "seed-products")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 13 products.")

	out, err = run(t, "seed-products")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 0 products.")
}

func TestMigrate(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date.")
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	dir := setupEnv(t)
	// postgres without POSTGRES_URL would fail validation
	t.Setenv("DB_DRIVER", "postgres")

	out, err := run(t, "--db-driver", "sqlite", "--sqlite-path", filepath.Join(dir, "flag.db"), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date.")
	assert.FileExists(t, filepath.Join(dir, "flag.db"))
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := run(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
