package scene

import (
	"fmt"
	"time"

	"github.com/vovakirdan/treasure-run/internal/actors"
	"github.com/vovakirdan/treasure-run/internal/core"
)

const buttonBlink = 500 * time.Millisecond

func init() {
	Register(actors.ScreenGameOver, func() Scene {
		return &EndScreen{
			name:       actors.ScreenGameOver,
			title:      "Game Over",
			message:    "The Captain lost all his health",
			titleColor: core.ColorBrightRed,
		}
	})
	Register(actors.ScreenGameWin, func() Scene {
		return &EndScreen{
			name:       actors.ScreenGameWin,
			title:      "Game Won!!",
			message:    "You have collected all coins from the Captain Treasure",
			titleColor: core.ColorBrightYellow,
		}
	})
}

// EndScreen is shown after a run ends. Confirming starts a new run.
type EndScreen struct {
	name       string
	title      string
	message    string
	titleColor core.Color

	d      *Director
	run    RunResult
	hasRun bool
	age    time.Duration
}

// Name returns the screen name.
func (s *EndScreen) Name() string { return s.name }

// Enter picks up the result of the run that just ended.
func (s *EndScreen) Enter(d *Director) error {
	s.d = d
	s.run, s.hasRun = d.LastRun()
	s.age = 0
	return nil
}

// Update restarts the game on Confirm, Jump or Restart.
func (s *EndScreen) Update(in core.InputFrame, dt time.Duration) {
	s.age += dt
	if in.JustPressed(core.ActionConfirm) ||
		in.JustPressed(core.ActionJump) ||
		in.JustPressed(core.ActionRestart) {
		s.d.SwitchScreen(SceneGame)
	}
}

// Render draws the title, the message, the run summary and the button.
func (s *EndScreen) Render(dst *core.Screen) {
	h := dst.Height()

	dst.DrawTextCentered(h*3/10, s.title, s.titleColor)
	dst.DrawTextCentered(h/2, s.message, core.ColorWhite)

	if s.hasRun {
		summary := fmt.Sprintf("coins %d  health %d  stomps %d  time %s",
			s.run.Coins, s.run.Health, s.run.Stomps, s.run.Duration.Round(100*time.Millisecond))
		dst.DrawTextCentered(h/2+2, summary, core.ColorGray)
	}

	button := "[ Play Again ]"
	color := core.ColorGreen
	if (s.age/buttonBlink)%2 == 1 {
		color = core.ColorBrightGreen
	}
	dst.DrawTextCentered(h*3/4, button, color)
}

// Exit does nothing; end screens hold no subscriptions.
func (s *EndScreen) Exit() {}
