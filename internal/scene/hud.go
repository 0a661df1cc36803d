package scene

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/eventbus"
)

const (
	healthTween    = 200 * time.Millisecond
	healthBarWidth = 10
)

// HUD shows the coin counter and the health bar. It learns about changes
// only through the event bus.
type HUD struct {
	bus        *eventbus.Bus
	coinToken  eventbus.Token
	healthTok  eventbus.Token
	subscribed bool

	coins     int
	target    int
	maxHealth int

	shown     float64 // Health currently drawn, mid-tween
	tweenFrom float64
	tweenTo   float64
	tweenAge  time.Duration
}

// NewHUD creates a HUD and subscribes it to coin and health events.
func NewHUD(bus *eventbus.Bus, health, maxHealth, target int) *HUD {
	h := &HUD{
		bus:       bus,
		target:    target,
		maxHealth: maxHealth,
		shown:     float64(health),
		tweenFrom: float64(health),
		tweenTo:   float64(health),
		tweenAge:  healthTween,
	}
	h.coinToken = eventbus.Subscribe(bus, h, func(e eventbus.CoinCollected) {
		h.coins = e.Count
	})
	h.healthTok = eventbus.Subscribe(bus, h, func(e eventbus.HealthChanged) {
		h.tweenFrom = h.shown
		h.tweenTo = float64(e.Value)
		h.tweenAge = 0
	})
	h.subscribed = true
	return h
}

// Close unsubscribes the HUD from the bus.
func (h *HUD) Close() {
	if !h.subscribed {
		return
	}
	h.bus.Off(eventbus.KindCoinCollected, h.coinToken, h)
	h.bus.Off(eventbus.KindHealthChanged, h.healthTok, h)
	h.subscribed = false
}

// Update advances the health bar tween.
func (h *HUD) Update(dt time.Duration) {
	if h.tweenAge >= healthTween {
		return
	}
	h.tweenAge = min(h.tweenAge+dt, healthTween)
	progress := float64(h.tweenAge) / float64(healthTween)
	h.shown = h.tweenFrom + (h.tweenTo-h.tweenFrom)*progress
}

// Coins returns the coin count last announced on the bus.
func (h *HUD) Coins() int { return h.coins }

// ShownHealth returns the health value the bar currently displays.
func (h *HUD) ShownHealth() float64 { return h.shown }

// Label returns the coin counter text.
func (h *HUD) Label() string {
	return fmt.Sprintf("Coins: %d /%d", h.coins, h.target)
}

// barColor picks the health bar colour for a fill ratio.
func barColor(ratio float64) core.Color {
	switch {
	case ratio <= 0.3:
		return core.ColorRed
	case ratio <= 0.6:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// Draw renders the HUD on row y.
func (h *HUD) Draw(dst *core.Screen, y int) {
	ratio := core.ClampF(h.shown/float64(h.maxHealth), 0, 1)
	filled := int(math.Round(ratio * healthBarWidth))

	dst.DrawTextColored(1, y, "HP", core.ColorWhite)
	dst.DrawTextColored(4, y, "["+strings.Repeat(" ", healthBarWidth)+"]", core.ColorGray)
	if filled > 0 {
		dst.DrawTextColored(5, y, strings.Repeat("=", filled), barColor(ratio))
	}
	if filled < healthBarWidth {
		dst.DrawTextColored(5+filled, y, strings.Repeat("-", healthBarWidth-filled), core.ColorGray)
	}

	dst.DrawTextColored(18, y, h.Label(), core.ColorBrightYellow)
}
