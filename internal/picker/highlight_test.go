package picker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/gopicker/internal/dom"
	"github.com/jonesrussell/gopicker/internal/logger"
	"github.com/jonesrussell/gopicker/internal/picker"
	"github.com/jonesrussell/gopicker/internal/replay"
	pickerMock "github.com/jonesrussell/gopicker/testutils/mocks/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func targets(t *testing.T, h *replay.Host) (*picker.Target, *picker.Target) {
	t.Helper()
	doc := h.Document()
	first := doc.First("#booth-42")
	second := doc.First("a.load-more")
	require.NotNil(t, first)
	require.NotNil(t, second)
	return &picker.Target{Doc: doc, Node: first, Handle: "first"},
		&picker.Target{Doc: doc, Node: second, Handle: "second"}
}

func TestHighlighter_RevertsAfterDuration(t *testing.T) {
	h := newReplayHost(t, exhibitorsPage, exhibitorsURL)
	hl := picker.NewHighlighter(h, "", 20*time.Millisecond, logger.NewNoOp())
	first, _ := targets(t, h)

	hl.Flash(context.Background(), first)
	style, ok := h.Outlined("first")
	require.True(t, ok)
	assert.Equal(t, picker.DefaultHighlightStyle, style)

	assert.Eventually(t, func() bool {
		_, outlined := h.Outlined("first")
		return !outlined && !hl.Active()
	}, time.Second, 5*time.Millisecond)
}

func TestHighlighter_NewFlashRevertsPrevious(t *testing.T) {
	h := newReplayHost(t, exhibitorsPage, exhibitorsURL)
	hl := picker.NewHighlighter(h, "2px dashed red", time.Hour, nil)
	first, second := targets(t, h)
	ctx := context.Background()

	hl.Flash(ctx, first)
	hl.Flash(ctx, second)

	_, firstOutlined := h.Outlined("first")
	style, secondOutlined := h.Outlined("second")
	assert.False(t, firstOutlined)
	assert.True(t, secondOutlined)
	assert.Equal(t, "2px dashed red", style)

	hl.Release(ctx)
	_, secondOutlined = h.Outlined("second")
	assert.False(t, secondOutlined)
	assert.False(t, hl.Active())
}

func TestHighlighter_FailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	host := pickerMock.NewMockHost(ctrl)
	host.EXPECT().SetOutline(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("detached"))

	hl := picker.NewHighlighter(host, "", 0, nil)
	doc, err := dom.ParseString("<p>x</p>", "https://example.com/")
	require.NoError(t, err)

	hl.Flash(context.Background(), &picker.Target{Doc: doc, Node: doc.First("p"), Handle: "h"})
	assert.False(t, hl.Active())

	// Targets without a live handle are ignored.
	hl.Flash(context.Background(), &picker.Target{Doc: doc, Node: doc.First("p")})
	hl.Release(context.Background())
}
