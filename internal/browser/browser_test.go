package browser_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jonesrussell/gopicker/internal/browser"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/pagination"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorOptions(t *testing.T) {
	base := browser.AllocatorOptions(browser.Config{})
	headless := browser.AllocatorOptions(browser.Config{Headless: true, ExecPath: "/usr/bin/chromium"})
	withArgs := browser.AllocatorOptions(browser.Config{Args: []string{"--no-sandbox", "lang=en-US"}})

	assert.Len(t, headless, len(base)+3)
	assert.Len(t, withArgs, len(base)+2)
}

func TestDecodeEvent(t *testing.T) {
	ev, err := browser.DecodeEvent(`{"type":"pointerup","x":12.5,"y":40}`)
	require.NoError(t, err)
	assert.Equal(t, picker.Event{Type: picker.EventPointerUp, X: 12.5, Y: 40}, ev)

	ev, err = browser.DecodeEvent(`{"type":"keydown","key":"Escape"}`)
	require.NoError(t, err)
	assert.Equal(t, "Escape", ev.Key)

	_, err = browser.DecodeEvent(`{"x":1}`)
	require.Error(t, err)
	_, err = browser.DecodeEvent(`not json`)
	require.Error(t, err)
}

const browserPage = `<!doctype html><html><body>
<ul class="cards">
  <li class="card"><h3><a href="/e/1" class="card__link">One</a></h3></li>
  <li class="card"><h3><a href="/e/2" class="card__link">Two</a></h3></li>
</ul>
<a class="load-more" href="/next">Load more results</a>
</body></html>`

// TestPage_Session drives a real Chrome. It only runs when GOPICKER_BROWSER_TESTS is set.
func TestPage_Session(t *testing.T) {
	if os.Getenv("GOPICKER_BROWSER_TESTS") == "" {
		t.Skip("set GOPICKER_BROWSER_TESTS=1 to run browser tests")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, browserPage)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	page, err := browser.Launch(ctx, browser.Config{
		Headless: true,
		ExecPath: os.Getenv("CHROME_PATH"),
		Args:     []string{"no-sandbox"},
	}, logger.NewNoOp())
	require.NoError(t, err)
	t.Cleanup(page.Close)

	require.NoError(t, page.Navigate(ctx, srv.URL+"/Exhibitors/List"))

	var captured picker.Configuration
	presenter := presenterFunc(func(cfg picker.Configuration) { captured = cfg })
	session := picker.NewSession(page, presenter, picker.WithRegistry(picker.NewRegistry()))

	done := make(chan error, 1)
	go func() {
		_, runErr := session.Run(ctx)
		done <- runErr
	}()

	require.Eventually(t, page.Listening, 10*time.Second, 50*time.Millisecond)
	require.NoError(t, page.ClickSelector(ctx, "li.card a"))
	require.NoError(t, page.ClickSelector(ctx, "a.load-more"))

	require.NoError(t, <-done)
	assert.Equal(t, "Exhibitors", captured.Section())
	assert.Equal(t, "a.card__link", captured.ItemSelector)
	assert.Equal(t, pagination.ModeLoadMore, captured.Pagination.Mode)

	location, err := page.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/Exhibitors/List", location, "clicks must not navigate")
}

func TestPage_PlayRejectsInvalidScript(t *testing.T) {
	var page browser.Page
	err := page.Play(context.Background(), replay.Script{{Kind: "drag"}})
	require.ErrorIs(t, err, replay.ErrUnknownStep)
}

// TestPage_PlayCancel scripts a pick and a cancel in a real Chrome.
func TestPage_PlayCancel(t *testing.T) {
	if os.Getenv("GOPICKER_BROWSER_TESTS") == "" {
		t.Skip("set GOPICKER_BROWSER_TESTS=1 to run browser tests")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, browserPage)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	t.Cleanup(cancel)

	page, err := browser.Launch(ctx, browser.Config{
		Headless: true,
		ExecPath: os.Getenv("CHROME_PATH"),
		Args:     []string{"no-sandbox"},
	}, logger.NewNoOp())
	require.NoError(t, err)
	t.Cleanup(page.Close)
	require.NoError(t, page.Navigate(ctx, srv.URL+"/Speakers/List"))

	var captured picker.Configuration
	presenter := presenterFunc(func(cfg picker.Configuration) { captured = cfg })
	session := picker.NewSession(page, presenter, picker.WithRegistry(picker.NewRegistry()))

	played := make(chan error, 1)
	go func() {
		played <- page.Play(ctx, replay.Script{replay.Click("li.card a"), replay.Escape(), replay.Escape()})
	}()

	cfg, err := session.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, <-played)
	require.NotNil(t, cfg)
	assert.Equal(t, "Speakers", captured.Section())
	assert.Equal(t, pagination.ModeNone, captured.Pagination.Mode)
	assert.False(t, page.Listening())
}

type presenterFunc func(picker.Configuration)

func (f presenterFunc) Present(_ context.Context, cfg picker.Configuration) error {
	f(cfg)
	return nil
}

func (presenterFunc) Notify(context.Context, string) {}
