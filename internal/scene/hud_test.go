package scene

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
)

func TestHUDFollowsEvents(t *testing.T) {
	bus := eventbus.New(log.New(io.Discard))
	h := NewHUD(bus, 10, 10, 20)

	if got := h.Label(); got != "Coins: 0 /20" {
		t.Errorf("Label() = %q, expected %q", got, "Coins: 0 /20")
	}

	bus.Emit(eventbus.CoinCollected{Count: 3})
	if got := h.Label(); got != "Coins: 3 /20" {
		t.Errorf("Label() = %q, expected %q", got, "Coins: 3 /20")
	}

	bus.Emit(eventbus.HealthChanged{Value: 6})
	h.Update(100 * time.Millisecond)
	if got := h.ShownHealth(); math.Abs(got-8) > 1e-9 {
		t.Errorf("ShownHealth() halfway = %v, expected 8", got)
	}
	h.Update(150 * time.Millisecond)
	if got := h.ShownHealth(); got != 6 {
		t.Errorf("ShownHealth() after tween = %v, expected 6", got)
	}
}

func TestHUDCloseUnsubscribes(t *testing.T) {
	bus := eventbus.New(log.New(io.Discard))
	h := NewHUD(bus, 10, 10, 20)

	h.Close()
	h.Close()

	if n := bus.Count(eventbus.KindCoinCollected) + bus.Count(eventbus.KindHealthChanged); n != 0 {
		t.Errorf("%d subscriptions left after Close, expected 0", n)
	}
	bus.Emit(eventbus.CoinCollected{Count: 5})
	if h.Coins() != 0 {
		t.Error("closed HUD should ignore events")
	}
}

func TestBarColor(t *testing.T) {
	tests := []struct {
		ratio float64
		want  core.Color
	}{
		{0, core.ColorRed},
		{0.3, core.ColorRed},
		{0.31, core.ColorYellow},
		{0.6, core.ColorYellow},
		{0.61, core.ColorGreen},
		{1, core.ColorGreen},
	}

	for _, tc := range tests {
		if got := barColor(tc.ratio); got != tc.want {
			t.Errorf("barColor(%v) = %v, expected %v", tc.ratio, got, tc.want)
		}
	}
}

func TestHUDDraw(t *testing.T) {
	bus := eventbus.New(log.New(io.Discard))
	h := NewHUD(bus, 5, 10, 20)
	scr := core.NewScreen(40, 1)

	h.Draw(scr, 0)

	row := scr.Row(0)
	if !strings.Contains(row, "[=====-----]") {
		t.Errorf("health bar = %q, expected half full", row)
	}
	if got := scr.GetCell(5, 0).Color; got != core.ColorYellow {
		t.Errorf("bar color = %v, expected yellow", got)
	}
}
