package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `people:
  - id: e-1
    first_name: Jane
    last_name: Doe
    job_title: CFO
  - id: e-2
    first_name: Janet
    last_name: Smith
organizations:
  - id: o-1
    name: Jane Street
groups:
  - id: g-1
    name: Finance
    code: FIN
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(context.Background(), &out, io.Discard, args)
	return out.String(), err
}

func seeded(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(file, []byte(fixture), 0o600))

	db := filepath.Join(dir, "lookup.db")
	out, err := run(t, "--sqlite", db, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 4, failed 0")
	return db
}

func TestSearch(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "search", "jane")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Jane Street")
	assert.NotContains(t, out, "Finance")
	assert.NotContains(t, out, "partial")
}

func TestSearch_CategoryFilter(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "search", "-c", "organization", "jane")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Street")
	assert.NotContains(t, out, "Jane Doe")
}

func TestSearch_NoResults(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "no results")
}

func TestSearch_UnknownCategory(t *testing.T) {
	db := seeded(t)

	_, err := run(t, "--sqlite", db, "search", "-c", "planets", "jane")
	require.Error(t, err)
}

func TestSearch_JSON(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "--json", "search", "-n", "1", "jane")
	require.NoError(t, err)

	var resp struct {
		Items []resultJSON `json:"items"`
		Total int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.NotEmpty(t, resp.Items[0].ID)
	assert.Positive(t, resp.Items[0].Score)
}

func TestQuick(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "quick", "fin")
	require.NoError(t, err)
	assert.Contains(t, out, "Finance")
}

func TestGet(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "get", "person", "e-1")
	require.NoError(t, err)
	assert.Contains(t, out, "first_name: Jane")
	assert.Contains(t, out, "job_title: CFO")
	assert.NotContains(t, out, "email:")
}

func TestGet_JSON(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "--json", "get", "group", "g-1")
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, "FIN", fields["code"])
	assert.Equal(t, "g-1", fields["id"])
}

func TestGet_NotFound(t *testing.T) {
	db := seeded(t)

	_, err := run(t, "--sqlite", db, "get", "person", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDelete(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "delete", "people", "e-2")
	require.NoError(t, err)
	assert.Equal(t, "deleted person e-2\n", out)

	_, err = run(t, "--sqlite", db, "get", "person", "e-2")
	require.Error(t, err)

	_, err = run(t, "--sqlite", db, "delete", "person", "e-2")
	require.Error(t, err)
}

func TestImport_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`people:
  - id: e-1
    first_name: Jane
  - id: e-2
    nickname: JJ
`), 0o600))

	out, err := run(t, "--sqlite", filepath.Join(dir, "lookup.db"), "import", file)
	require.Error(t, err)
	assert.Contains(t, out, "imported 1, failed 1")
	assert.Contains(t, out, "e-2")
}

func TestImport_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("planets:\n  - id: p-1\n"), 0o600))

	_, err := run(t, "--sqlite", filepath.Join(dir, "lookup.db"), "import", file)
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "status: ok")

	out, err = run(t, "--sqlite", db, "--json", "health")
	require.NoError(t, err)
	var h struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, "ok", h.Status)
}

func TestTenantIsolation(t *testing.T) {
	db := seeded(t)

	out, err := run(t, "--sqlite", db, "--tenant", "other", "search", "jane")
	require.NoError(t, err)
	assert.Contains(t, out, "no results")
}

func TestOptions_Errors(t *testing.T) {
	_, err := run(t, "--driver", "mongo", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")

	_, err = run(t, "--driver", "sqlite", "health")
	require.Error(t, err)
}

func TestHelpNeedsNoDatabase(t *testing.T) {
	out, err := run(t, "--driver", "mongo", "help")
	require.NoError(t, err)
	assert.Contains(t, out, "lookupctl")
}
