package clickthrough

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"dictation-overlay/internal/region"
)

func newTestStyleRealizer(win *fakeStyleWindow, store *region.Store) *StyleRealizer {
	return NewStyleRealizer(win, store, Options{PollInterval: time.Millisecond}, discardLogger())
}

func TestStyleRealizer_SetupStartsLayeredAndPassThrough(t *testing.T) {
	win := newFakeStyleWindow()
	r := newTestStyleRealizer(win, region.NewStore())

	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	style := win.currentStyle()
	if style&ExStyleLayered == 0 {
		t.Error("layered bit not set after Setup")
	}
	if style&ExStyleTransparent == 0 {
		t.Error("transparent bit not set after Setup")
	}
	if !r.PassThrough() {
		t.Error("PassThrough() = false after Setup; want true")
	}
	if got := win.alpha(); got != DefaultOpacity {
		t.Errorf("alpha = %d; want %d", got, DefaultOpacity)
	}
}

func TestStyleRealizer_SetupInvalidWindow(t *testing.T) {
	win := newFakeStyleWindow()
	win.setValid(false)
	r := newTestStyleRealizer(win, region.NewStore())

	if err := r.Setup(); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Setup() error = %v; want ErrInvalidWindow", err)
	}
}

func TestStyleRealizer_TickFollowsCursor(t *testing.T) {
	win := newFakeStyleWindow()
	store := region.NewStore()
	r := newTestStyleRealizer(win, store)
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	// window at (100,200); rect covers local physical [20,60) at scale 2
	store.Update([]region.Rect{{X: 10, Y: 10, W: 20, H: 20}}, 2)

	win.moveCursor(100+21, 200+21)
	r.tick()
	if r.PassThrough() {
		t.Error("cursor inside rect: PassThrough() = true; want false")
	}
	if win.currentStyle()&ExStyleTransparent != 0 {
		t.Error("transparent bit still set with cursor inside rect")
	}

	win.moveCursor(100+61, 200+61)
	r.tick()
	if !r.PassThrough() {
		t.Error("cursor outside rect: PassThrough() = false; want true")
	}
	if win.currentStyle()&ExStyleTransparent == 0 {
		t.Error("transparent bit cleared with cursor outside rect")
	}
	if win.currentStyle()&ExStyleLayered == 0 {
		t.Error("toggling transparency must not clear the layered bit")
	}
}

func TestStyleRealizer_SameTargetOneOSCall(t *testing.T) {
	win := newFakeStyleWindow()
	r := newTestStyleRealizer(win, region.NewStore())
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	before, _, _ := win.counts()

	r.setPassThrough(false)
	r.setPassThrough(false)

	after, _, _ := win.counts()
	if got := after - before; got != 1 {
		t.Errorf("SetExStyle calls = %d; want 1", got)
	}
}

func TestStyleRealizer_NoCallWhileStateUnchanged(t *testing.T) {
	win := newFakeStyleWindow()
	store := region.NewStore()
	r := newTestStyleRealizer(win, store)
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	before, _, _ := win.counts()

	// empty store: cursor is always outside, state stays PassThrough
	for i := 0; i < 20; i++ {
		win.moveCursor(100+i, 200+i)
		r.tick()
	}

	if after, _, _ := win.counts(); after != before {
		t.Errorf("SetExStyle calls = %d; want none", after-before)
	}
}

func TestStyleRealizer_TransientFailureSkipsTick(t *testing.T) {
	win := newFakeStyleWindow()
	store := region.NewStore()
	store.Update([]region.Rect{{X: 0, Y: 0, W: 400, H: 300}}, 1)
	r := newTestStyleRealizer(win, store)
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	win.moveCursor(150, 250)

	win.setQueryErrors(nil, errRejected)
	if !r.tick() {
		t.Fatal("tick() = false on cursor failure; want true")
	}
	if !r.PassThrough() {
		t.Error("state changed on cursor query failure")
	}

	win.setQueryErrors(errRejected, nil)
	if !r.tick() {
		t.Fatal("tick() = false on bounds failure; want true")
	}
	if !r.PassThrough() {
		t.Error("state changed on bounds query failure")
	}

	win.setQueryErrors(nil, nil)
	r.tick()
	if r.PassThrough() {
		t.Error("state not updated once queries recover")
	}
}

func TestStyleRealizer_RejectedToggleKeepsMirror(t *testing.T) {
	win := newFakeStyleWindow()
	store := region.NewStore()
	store.Update([]region.Rect{{X: 0, Y: 0, W: 400, H: 300}}, 1)
	r := newTestStyleRealizer(win, store)
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	win.setStyleError(errRejected)
	win.moveCursor(150, 250)
	r.tick()

	if !r.PassThrough() {
		t.Error("mirror changed although the OS rejected the style update")
	}
	if win.currentStyle()&ExStyleTransparent == 0 {
		t.Error("fake style changed despite rejection")
	}
}

func TestStyleRealizer_HiddenWindowSkipsSampling(t *testing.T) {
	win := newFakeStyleWindow()
	store := region.NewStore()
	store.Update([]region.Rect{{X: 0, Y: 0, W: 400, H: 300}}, 1)
	r := newTestStyleRealizer(win, store)
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	win.setVisible(false)
	win.moveCursor(150, 250)
	r.tick()

	if !r.PassThrough() {
		t.Error("hidden window should not change pass-through state")
	}
}

func TestStyleRealizer_WatchdogCadence(t *testing.T) {
	win := newFakeStyleWindow()
	win.setVisible(false)
	r := NewStyleRealizer(win, region.NewStore(), Options{PollInterval: time.Millisecond, WatchdogTicks: 600}, discardLogger())

	for i := 1; i < 600; i++ {
		r.tick()
	}
	if _, alpha, _ := win.counts(); alpha != 0 {
		t.Fatalf("watchdog fired %d times before tick 600", alpha)
	}

	r.tick()
	if _, alpha, _ := win.counts(); alpha != 1 {
		t.Fatalf("watchdog fired %d times at tick 600; want 1", alpha)
	}

	for i := 0; i < 599; i++ {
		r.tick()
	}
	if _, alpha, _ := win.counts(); alpha != 1 {
		t.Errorf("watchdog fired early in second period: %d", alpha)
	}
	r.tick()
	if _, alpha, _ := win.counts(); alpha != 2 {
		t.Errorf("watchdog fired %d times at tick 1200; want 2", alpha)
	}
}

func TestStyleRealizer_WatchdogRestoresLayered(t *testing.T) {
	win := newFakeStyleWindow()
	r := NewStyleRealizer(win, region.NewStore(), Options{WatchdogTicks: 1, Opacity: 200}, discardLogger())
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	// something external dropped the layered bit
	win.setStyle(win.currentStyle() &^ ExStyleLayered)
	r.tick()

	if win.currentStyle()&ExStyleLayered == 0 {
		t.Error("watchdog did not restore the layered bit")
	}
	if win.currentStyle()&ExStyleTransparent == 0 {
		t.Error("watchdog must not touch the transparent bit")
	}
	if got := win.alpha(); got != 200 {
		t.Errorf("alpha = %d; want 200", got)
	}
}

func TestStyleRealizer_EnsureVisible(t *testing.T) {
	win := newFakeStyleWindow()
	r := newTestStyleRealizer(win, region.NewStore())

	r.EnsureVisible()
	r.EnsureVisible()

	_, alpha, invalidate := win.counts()
	if alpha != 2 || invalidate != 2 {
		t.Errorf("alpha/invalidate calls = %d/%d; want 2/2", alpha, invalidate)
	}
	if win.currentStyle()&ExStyleLayered == 0 {
		t.Error("layered bit not set")
	}

	win.setValid(false)
	r.EnsureVisible()
	if _, alpha, _ := win.counts(); alpha != 2 {
		t.Error("EnsureVisible touched an invalid window")
	}
}

func TestStyleRealizer_ServeExitsWhenWindowGone(t *testing.T) {
	win := newFakeStyleWindow()
	r := newTestStyleRealizer(win, region.NewStore())
	if err := r.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- r.Serve(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	win.setValid(false)

	select {
	case err := <-errCh:
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve() error = %v; want ErrDoNotRestart", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not exit after the window became invalid")
	}
}

func TestStyleRealizer_ServeStopsOnContextCancel(t *testing.T) {
	win := newFakeStyleWindow()
	r := newTestStyleRealizer(win, region.NewStore())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Serve(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v; want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
