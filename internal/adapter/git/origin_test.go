package git_test

import (
	"testing"

	goGit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkin100/i-am-reviewed/internal/adapter/git"
)

func initRepoWithOrigin(t *testing.T, url string) string {
	t.Helper()
	tmp := t.TempDir()

	repo, err := goGit.PlainInit(tmp, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})
	require.NoError(t, err)

	return tmp
}

func TestOriginRepository(t *testing.T) {
	t.Run("https remote", func(t *testing.T) {
		dir := initRepoWithOrigin(t, "https://github.com/acme/widgets.git")
		repository, err := git.OriginRepository(dir)
		require.NoError(t, err)
		assert.Equal(t, "acme/widgets", repository)
	})

	t.Run("ssh remote", func(t *testing.T) {
		dir := initRepoWithOrigin(t, "git@gitlab.example.com:group/subgroup/project.git")
		repository, err := git.OriginRepository(dir)
		require.NoError(t, err)
		assert.Equal(t, "group/subgroup/project", repository)
	})

	t.Run("no origin remote", func(t *testing.T) {
		tmp := t.TempDir()
		_, err := goGit.PlainInit(tmp, false)
		require.NoError(t, err)

		_, err = git.OriginRepository(tmp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "origin")
	})

	t.Run("not a repository", func(t *testing.T) {
		_, err := git.OriginRepository(t.TempDir())
		require.Error(t, err)
	})
}
