package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkin100/i-am-reviewed/internal/adapter/platform"
	"github.com/darkin100/i-am-reviewed/internal/config"
	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
)

func TestValidateEnvironment(t *testing.T) {
	t.Run("reports generic and host requirements together", func(t *testing.T) {
		host := &fakeHost{missing: []string{"GITHUB_REPOSITORY", "GH_TOKEN"}}

		err := review.ValidateEnvironment(config.SnapshotFromMap(nil), host)

		var validation *review.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, []string{
			"GOOGLE_CLOUD_PROJECT",
			"GOOGLE_CLOUD_LOCATION",
			"GITHUB_REPOSITORY",
			"GH_TOKEN",
		}, validation.Missing)
		assert.Contains(t, err.Error(), "GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION, GITHUB_REPOSITORY, GH_TOKEN")
	})

	t.Run("passes when everything is present", func(t *testing.T) {
		env := config.SnapshotFromMap(map[string]string{
			"GOOGLE_CLOUD_PROJECT":  "acme-ci",
			"GOOGLE_CLOUD_LOCATION": "us-central1",
		})

		assert.NoError(t, review.ValidateEnvironment(env, &fakeHost{}))
	})

	t.Run("empty project counts as missing", func(t *testing.T) {
		env := config.SnapshotFromMap(map[string]string{
			"GOOGLE_CLOUD_PROJECT":  "",
			"GOOGLE_CLOUD_LOCATION": "us-central1",
		})

		err := review.ValidateEnvironment(env, &fakeHost{})
		var validation *review.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, []string{"GOOGLE_CLOUD_PROJECT"}, validation.Missing)
	})

	t.Run("report is deterministic and shrinks as variables appear", func(t *testing.T) {
		report := func(env config.Snapshot) []string {
			host, err := platform.Resolve("github", nil, env)
			require.NoError(t, err)

			var validation *review.ValidationError
			require.ErrorAs(t, review.ValidateEnvironment(env, host), &validation)
			return validation.Missing
		}

		env := config.SnapshotFromMap(map[string]string{"PR_NUMBER": "7"})

		first := report(env)
		second := report(env)
		assert.Equal(t, first, second)

		shrunk := report(env.With("GOOGLE_CLOUD_PROJECT", "acme-ci"))
		assert.Len(t, shrunk, len(first)-1)
		assert.Subset(t, first, shrunk)
	})
}
