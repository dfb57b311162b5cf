package replay_test

import (
	"os"
	"path/filepath"
	"testing"

	cmdreplay "github.com/jonesrussell/gopicker/cmd/replay"
	"github.com/jonesrussell/gopicker/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<!doctype html><html><body>
<ul class="cards">
  <li class="card"><h3><a href="/e/1">One</a></h3></li>
  <li class="card"><h3><a href="/e/2">Two</a></h3></li>
</ul>
<a class="load-more" href="#">Load more</a>
</body></html>`

func setup(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults(viper.GetViper())
	viper.Set("logger.level", "error")

	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(listingPage), 0o600))
	return dir
}

func TestCommand_WritesConfiguration(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "out.json")

	cmd := cmdreplay.Command()
	cmd.SetArgs([]string{
		filepath.Join(dir, "page.html"),
		"--path", "/Speakers/List",
		"--click", "li.card h3 a",
		"--click", "a.load-more",
		"--no-clipboard",
		"-o", out,
	})
	require.NoError(t, cmd.Execute())

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sectionName": "Speakers",
		"rowSelector": "ul.cards li.card h3",
		"itemSelector": "a[href]",
		"pagination": {"mode": "loadMore", "selector": "a.load-more"}
	}`, string(written))
}

func TestCommand_NoSteps(t *testing.T) {
	dir := setup(t)

	cmd := cmdreplay.Command()
	cmd.SetArgs([]string{filepath.Join(dir, "page.html")})
	cmd.SilenceUsage = true
	require.ErrorIs(t, cmd.Execute(), cmdreplay.ErrNoSteps)
}

func TestCommand_CancelWritesNothing(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "out.json")

	cmd := cmdreplay.Command()
	cmd.SetArgs([]string{filepath.Join(dir, "page.html"), "--escape", "--no-clipboard", "-o", out})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}
