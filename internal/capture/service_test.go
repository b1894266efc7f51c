package capture

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/metadata"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/fakes"
)

type fixture struct {
	grabber *fakes.Grabber
	dir     *fakes.Directory
	store   *metadata.Store
	codec   platform.ImageCodec
	opts    Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	codec, err := imaging.NewCodec("jpeg")
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.SettleDelay = 0
	return &fixture{
		grabber: &fakes.Grabber{Size: model.Size{Width: 2880, Height: 1800}},
		dir: &fakes.Directory{
			Screen: model.Size{Width: 1440, Height: 900},
			Windows: []model.WindowRecord{
				{ID: 7, Title: "Untitled - Editor", OwnerName: "Editor", Bounds: model.Rect{X: 100, Y: 50, Width: 800, Height: 600}},
				{ID: 8, Title: "Side Monitor", Bounds: model.Rect{X: -1200, Y: 0, Width: 800, Height: 600}},
			},
		},
		store: metadata.NewStore(metadata.DefaultTTL),
		codec: codec,
		opts:  opts,
	}
}

func (f *fixture) service() *Service {
	return NewService(f.grabber, f.codec, f.dir, f.store, f.opts)
}

func TestCaptureWindow_HighDensity(t *testing.T) {
	f := newFixture(t)
	ctx, _ := logger.TestContext()

	res, err := f.service().CaptureWindow(ctx, platform.WindowQuery{ID: 7})
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", res.MimeType)
	assert.Equal(t, model.Size{Width: 800, Height: 600}, res.Metadata.SourceLogicalSize)
	assert.Equal(t, model.Size{Width: 800, Height: 600}, res.Metadata.AIImageSize)
	assert.True(t, res.Geometry.HighDensity)
	require.NotNil(t, res.Window)
	assert.True(t, res.Window.OnPrimaryDisplay)
	assert.Contains(t, res.Summary, "800x600")
	assert.Equal(t, []int{7}, f.dir.Focused)

	md, status := f.store.GetFresh(model.Window(7))
	assert.Equal(t, metadata.Fresh, status)
	assert.Equal(t, res.Metadata.ID, md.ID)
}

func TestCaptureWindow_ByTitle(t *testing.T) {
	f := newFixture(t)
	res, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{Title: "editor"})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Window.ID)
}

func TestCaptureWindow_StoredSizeMatchesEncodedImage(t *testing.T) {
	f := newFixture(t)
	f.dir.Windows[0].Bounds = model.Rect{X: 0, Y: 0, Width: 1440, Height: 900}

	res, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{ID: 7})
	require.NoError(t, err)

	measured, err := f.codec.DecodeConfig(res.Data)
	require.NoError(t, err)
	md, _ := f.store.Get(model.Window(7))
	assert.Equal(t, measured, md.AIImageSize)
	assert.Equal(t, model.Size{Width: 1152, Height: 720}, measured)
}

// shrinkingCodec resizes to slightly less than asked, as some encoders do.
type shrinkingCodec struct {
	platform.ImageCodec
}

func (c shrinkingCodec) Resize(img image.Image, target model.Size) image.Image {
	return c.ImageCodec.Resize(img, model.Size{Width: target.Width - 10, Height: target.Height - 10})
}

func TestCaptureWindow_UsesMeasuredNotTheoreticalSize(t *testing.T) {
	f := newFixture(t)
	f.codec = shrinkingCodec{f.codec}

	res, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{ID: 7})
	require.NoError(t, err)

	measured, err := f.codec.DecodeConfig(res.Data)
	require.NoError(t, err)
	assert.Equal(t, measured, res.Metadata.AIImageSize)
	assert.NotEqual(t, model.Size{Width: 800, Height: 600}, measured)
}

func TestCaptureWindow_SecondaryDisplay(t *testing.T) {
	f := newFixture(t)

	_, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{ID: 8})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnsupportedDisplay))
	assert.Contains(t, err.Error(), model.LocationSecondaryLeft)
	assert.Zero(t, f.grabber.Calls, "nothing is grabbed for off-primary windows")
	assert.Zero(t, f.store.Len())
}

func TestCaptureWindow_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{Title: "Safari"})
	assert.True(t, errors.Is(err, model.ErrWindowNotFound))
}

func TestCaptureWindow_FocusFailureAborts(t *testing.T) {
	f := newFixture(t)
	f.dir.FocusErr = errors.New("activation refused")

	_, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{ID: 7})
	assert.True(t, errors.Is(err, model.ErrFocusFailed))
	assert.Contains(t, err.Error(), "activation refused")
	assert.Zero(t, f.grabber.Calls)
}

func TestCaptureWindow_PayloadTooLarge(t *testing.T) {
	f := newFixture(t)
	f.opts.MaxBytes = 100

	_, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{ID: 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPayloadTooLarge))
	assert.Contains(t, err.Error(), "100 byte limit")
	assert.Zero(t, f.store.Len(), "oversized captures are not recorded")
}

func TestCaptureScreen_Full(t *testing.T) {
	f := newFixture(t)

	res, err := f.service().CaptureScreen(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 1440, Height: 900}, res.Metadata.SourceLogicalSize)
	assert.Equal(t, model.Size{Width: 1152, Height: 720}, res.Metadata.AIImageSize)
	assert.Equal(t, model.Point{}, res.Metadata.Origin)
	assert.Nil(t, res.Window)

	_, status := f.store.GetFresh(model.FullScreen())
	assert.Equal(t, metadata.Fresh, status)
}

func TestCaptureScreen_Region(t *testing.T) {
	f := newFixture(t)

	res, err := f.service().CaptureScreen(context.Background(), &model.Rect{X: 600, Y: 300, Width: 400, Height: 200})
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 400, Height: 200}, res.Metadata.SourceLogicalSize)
	assert.Equal(t, model.Point{X: 600, Y: 300}, res.Metadata.Origin)
	assert.Equal(t, model.Size{Width: 400, Height: 200}, res.Metadata.AIImageSize)
}

func TestCaptureScreen_InvalidRegion(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	for _, r := range []model.Rect{
		{X: 0, Y: 0, Width: 0, Height: 100},
		{X: 0, Y: 0, Width: 100, Height: -5},
		{X: 1400, Y: 0, Width: 100, Height: 100},
		{X: -10, Y: 0, Width: 100, Height: 100},
	} {
		r := r
		_, err := svc.CaptureScreen(context.Background(), &r)
		assert.True(t, errors.Is(err, model.ErrInvalidBounds), r.String())
	}
}

func TestCaptureScreen_StandardDensity(t *testing.T) {
	f := newFixture(t)
	f.grabber.Size = model.Size{Width: 1440, Height: 900}

	res, err := f.service().CaptureScreen(context.Background(), &model.Rect{X: 100, Y: 100, Width: 200, Height: 100})
	require.NoError(t, err)
	assert.False(t, res.Geometry.HighDensity)
	assert.Equal(t, model.Size{Width: 100, Height: 50}, res.Metadata.AIImageSize)
}

type recordingObserver struct {
	got []model.CaptureMetadata
}

func (o *recordingObserver) Captured(md model.CaptureMetadata, img image.Image) {
	o.got = append(o.got, md)
}

func TestService_NotifiesObserver(t *testing.T) {
	f := newFixture(t)
	svc := f.service()
	obs := &recordingObserver{}
	svc.SetObserver(obs)

	res, err := svc.CaptureScreen(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, obs.got, 1)
	assert.Equal(t, res.Metadata.ID, obs.got[0].ID)
}

func TestService_GrabError(t *testing.T) {
	f := newFixture(t)
	f.grabber.Err = errors.New("screen recording denied")

	_, err := f.service().CaptureScreen(context.Background(), nil)
	assert.ErrorContains(t, err, "screen recording denied")
}

// The directory reports a root spanning two monitors while the grabber
// captures only the first.
func TestCaptureScreen_LogicalLargerThanGrabbedDisplay(t *testing.T) {
	f := newFixture(t)
	f.dir.Screen = model.Size{Width: 3840, Height: 1080}
	f.grabber.Size = model.Size{Width: 1920, Height: 1080}

	_, err := f.service().CaptureScreen(context.Background(), nil)
	assert.True(t, errors.Is(err, model.ErrUnsupportedDisplay))
	assert.Zero(t, f.store.Len())
}

func TestCaptureWindow_OnSecondMonitor(t *testing.T) {
	f := newFixture(t)
	f.dir.Screen = model.Size{Width: 1920, Height: 1080}
	f.grabber.Size = model.Size{Width: 1920, Height: 1080}
	f.dir.Windows = append(f.dir.Windows, model.WindowRecord{
		ID: 9, Title: "Terminal", Bounds: model.Rect{X: 2000, Y: 100, Width: 800, Height: 600},
	})

	_, err := f.service().CaptureWindow(context.Background(), platform.WindowQuery{ID: 9})
	assert.True(t, errors.Is(err, model.ErrUnsupportedDisplay))

	res, err := f.service().CaptureScreen(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 1920, Height: 1080}, res.Metadata.SourceLogicalSize)
}

func TestCapture_PrunesExpiredRecords(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.store = metadata.NewStore(metadata.DefaultTTL, metadata.WithClock(func() time.Time { return now }))
	f.store.Put(model.CaptureMetadata{Subject: model.Window(42), CapturedAt: now})

	now = now.Add(metadata.DefaultTTL + time.Second)
	_, err := f.service().CaptureScreen(context.Background(), nil)
	require.NoError(t, err)

	_, ok := f.store.Get(model.Window(42))
	assert.False(t, ok)
	assert.Equal(t, 1, f.store.Len())
}
