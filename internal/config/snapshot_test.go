package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkin100/i-am-reviewed/internal/config"
)

func TestSnapshotLookup(t *testing.T) {
	snap := config.SnapshotFromMap(map[string]string{
		"PRESENT": "value",
		"EMPTY":   "",
	})

	t.Run("present variable", func(t *testing.T) {
		value, ok := snap.Lookup("PRESENT")
		require.True(t, ok)
		assert.Equal(t, "value", value)
	})

	t.Run("empty counts as absent", func(t *testing.T) {
		_, ok := snap.Lookup("EMPTY")
		assert.False(t, ok)
	})

	t.Run("unset variable", func(t *testing.T) {
		_, ok := snap.Lookup("NOPE")
		assert.False(t, ok)
		assert.Equal(t, "", snap.Get("NOPE"))
	})
}

func TestSnapshotWith(t *testing.T) {
	base := config.SnapshotFromMap(map[string]string{"KEY": "value"})

	derived := base.With("REPOSITORY", "acme/widgets")

	assert.Equal(t, "acme/widgets", derived.Get("REPOSITORY"))
	assert.Equal(t, "value", derived.Get("KEY"))
	assert.Equal(t, "", base.Get("REPOSITORY"), "original snapshot untouched")
}

func TestSnapshotFromMapCopies(t *testing.T) {
	source := map[string]string{"KEY": "original"}
	snap := config.SnapshotFromMap(source)

	source["KEY"] = "mutated"

	assert.Equal(t, "original", snap.Get("KEY"))
}

func TestRequirementResolve(t *testing.T) {
	req := config.Requirement{Names: []string{"CI_PROJECT_PATH", "REPOSITORY"}}

	t.Run("first present name wins", func(t *testing.T) {
		snap := config.SnapshotFromMap(map[string]string{
			"CI_PROJECT_PATH": "group/project",
			"REPOSITORY":      "other/repo",
		})
		value, ok := req.Resolve(snap)
		require.True(t, ok)
		assert.Equal(t, "group/project", value)
	})

	t.Run("falls back in order", func(t *testing.T) {
		snap := config.SnapshotFromMap(map[string]string{
			"REPOSITORY": "other/repo",
		})
		value, ok := req.Resolve(snap)
		require.True(t, ok)
		assert.Equal(t, "other/repo", value)
	})

	t.Run("skips empty values", func(t *testing.T) {
		snap := config.SnapshotFromMap(map[string]string{
			"CI_PROJECT_PATH": "",
			"REPOSITORY":      "other/repo",
		})
		value, ok := req.Resolve(snap)
		require.True(t, ok)
		assert.Equal(t, "other/repo", value)
	})

	t.Run("unsatisfied", func(t *testing.T) {
		_, ok := req.Resolve(config.SnapshotFromMap(nil))
		assert.False(t, ok)
	})
}

func TestRequirementMissingName(t *testing.T) {
	req := config.Requirement{Names: []string{"CI_PROJECT_PATH", "REPOSITORY"}}
	assert.Equal(t, "CI_PROJECT_PATH", req.MissingName())

	assert.Equal(t, "", config.Requirement{}.MissingName())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: []string{t.TempDir()},
		FileName:    "iar",
		EnvPrefix:   "IAR_TEST",
	})
	require.NoError(t, err)

	assert.Equal(t, "vertex", cfg.Model.Backend)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model.Name)
	assert.InDelta(t, 0.7, cfg.Model.Temperature, 0.0001)
	assert.Equal(t, 1_000_000, cfg.Review.MaxDiffBytes)
	assert.True(t, cfg.Redaction.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}
