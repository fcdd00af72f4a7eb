package root

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree against an isolated database and config dir.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ASC_LOG_LEVEL", "error")
	flagDB, flagConfig = "", ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandsRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "asc.db")

	out, err := run(t, db, "do", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	_, err = run(t, db, "do", "p1")
	assert.Error(t, err)

	out, err = run(t, db, "progress", "km", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "clamped")

	out, err = run(t, db, "ritual", "add", "gold", "gratidão")
	require.NoError(t, err)
	assert.Contains(t, out, "Ritual")

	out, err = run(t, db, "insight", "add", "sonho", "lúcido")
	require.NoError(t, err)
	assert.Contains(t, out, "Insight saved")

	out, err = run(t, db, "insight", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sonho lúcido")

	out, err = run(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Lifetime")

	out, err = run(t, db, "undo", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Undone")

	out, err = run(t, db, "log", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "sonho lúcido")
}

func TestArgValidation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "asc.db")

	_, err := run(t, db, "practice", "7")
	assert.Error(t, err)

	_, err = run(t, db, "progress", "steps", "1")
	assert.Error(t, err)

	_, err = run(t, db, "progress", "km", "lots")
	assert.Error(t, err)

	_, err = run(t, db, "ritual", "add", "black")
	assert.Error(t, err)

	_, err = run(t, db, "add", "Meditate", "-p", "9999")
	assert.Error(t, err)
}

func TestAddCustomMissionShowsInList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "asc.db")

	_, err := run(t, db, "add", "Cold shower", "-p", "25", "-c", "energetic")
	require.NoError(t, err)

	out, err := run(t, db, "missions", "-c", "energetic")
	require.NoError(t, err)
	assert.Contains(t, out, "Cold shower")
	assert.Contains(t, out, "(custom)")
}

func TestBottleCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "asc.db")

	_, err := run(t, db, "bottle", "done")
	require.NoError(t, err)
	_, err = run(t, db, "bottle", "done")
	assert.Error(t, err)

	out, err := run(t, db, "bottle", "history")
	require.NoError(t, err)
	assert.NotContains(t, out, "no bottles")

	_, err = run(t, db, "bottle", "undo")
	require.NoError(t, err)
	_, err = run(t, db, "bottle", "undo")
	assert.Error(t, err)
}

func TestImportLegacyExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "asc.db")
	export := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(export, []byte(`{"ascencao-lifetime-points": "120"}`), 0o600))

	out, err := run(t, db, "import", export)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
}

func TestDBPath(t *testing.T) {
	db := filepath.Join(t.TempDir(), "asc.db")
	out, err := run(t, db, "db", "path")
	require.NoError(t, err)
	assert.Equal(t, db+"\n", out)
}
