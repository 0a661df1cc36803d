package scene

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/treasure-run/internal/actors"
	"github.com/vovakirdan/treasure-run/internal/core"
	"github.com/vovakirdan/treasure-run/internal/level"
	"github.com/vovakirdan/treasure-run/internal/obstacles"
	"github.com/vovakirdan/treasure-run/internal/world"
)

// SceneGame is the name of the level scene.
const SceneGame = "game"

// Kind tags of level bodies that no controller owns.
const (
	KindTerrain = "terrain"
	KindSpikes  = "spikes"
	KindEnemy   = "enemy"
	KindPlayer  = "player"
)

// hudRows is the number of screen rows above the world.
const hudRows = 1

func init() {
	Register(SceneGame, func() Scene { return &Game{} })
}

type enemy struct {
	ctrl *actors.Enemy
	body *world.Body
}

// Game is the level scene: it builds the world from the level map, wires
// the player and enemy controllers to it and advances them every tick.
type Game struct {
	d      *Director
	logger *log.Logger
	level  level.Level

	world   *world.World
	reg     *obstacles.Registry
	body    *world.Body
	player  *actors.Player
	enemies []enemy
	hud     *HUD
	input   core.InputFrame

	elapsed time.Duration
	stomps  int
	paused  bool
}

// Name returns SceneGame.
func (g *Game) Name() string { return SceneGame }

// Enter builds the level.
func (g *Game) Enter(d *Director) error {
	g.d = d
	g.level = d.Level()
	g.logger = d.Logger().With("scene", SceneGame, "level", g.level.ID)
	g.input = core.NewInputFrame()

	cfg := d.Config()
	if err := g.level.CheckCoins(cfg.Rules.CoinTarget); err != nil {
		return err
	}
	g.world = world.New(g.level.Width, g.level.Height, world.Physics{
		Gravity:      cfg.Physics.Gravity,
		MaxFallSpeed: cfg.Physics.MaxFallSpeed,
		Friction:     cfg.Physics.Friction,
	}, world.WithLogger(g.logger))
	g.reg = obstacles.New()

	env := actors.Env{
		Bus:       d.Bus(),
		Obstacles: g.reg,
		Input:     &g.input,
		Effects:   d,
		Config:    cfg,
		Rand:      d.Rand(),
		Logger:    g.logger,
		Observer:  g.observe,
	}

	if err := g.buildTiles(); err != nil {
		return err
	}

	spawn := g.level.Spawn
	pc := cfg.Player
	g.body = g.world.NewBody(world.BodyDef{
		Kind:       KindPlayer,
		Rect:       core.NewRect(float64(spawn.X), float64(spawn.Y+1)-pc.Height, pc.Width, pc.Height),
		Gravity:    true,
		Animations: captainAnimations(),
		Initial:    actors.AnimCaptainIdle,
	})
	g.player = actors.NewPlayer(g.body, env)
	g.body.OnCollide(func(other *world.Body) {
		g.player.HandleContact(other)
	})

	ec := cfg.Enemy
	for _, p := range g.level.Enemies {
		b := g.world.NewBody(world.BodyDef{
			Kind:       KindEnemy,
			Rect:       core.NewRect(float64(p.X), float64(p.Y+1)-ec.Height, ec.Width, ec.Height),
			Gravity:    true,
			Animations: enemyAnimations(g.level.Theme.Enemy),
			Initial:    actors.AnimEnemyIdle,
		})
		if err := g.reg.Add(obstacles.CategoryEnemy, b.ID()); err != nil {
			return err
		}
		g.enemies = append(g.enemies, enemy{ctrl: actors.NewEnemy(b, env), body: b})
	}

	g.world.OnOutOfBounds(g.outOfBounds)
	g.hud = NewHUD(d.Bus(), g.player.Health(), pc.MaxHealth, cfg.Rules.CoinTarget)

	g.logger.Debug("level built",
		"bodies", len(g.world.Bodies()),
		"enemies", len(g.enemies),
		"coins", len(g.level.Coins),
	)
	return nil
}

func (g *Game) buildTiles() error {
	theme := g.level.Theme

	for _, p := range g.level.Terrain {
		g.world.NewBody(world.BodyDef{
			Kind:   KindTerrain,
			Rect:   cellRect(p),
			Static: true,
			Glyph:  glyphTerrain,
			Color:  theme.Terrain,
		})
	}

	for _, p := range g.level.Spikes {
		b := g.world.NewBody(world.BodyDef{
			Kind:   KindSpikes,
			Rect:   cellRect(p),
			Static: true,
			Glyph:  glyphSpikes,
			Color:  theme.Spikes,
		})
		if err := g.reg.Add(obstacles.CategorySpikes, b.ID()); err != nil {
			return err
		}
	}

	for _, p := range g.level.Coins {
		g.world.NewBody(world.BodyDef{
			Kind:       actors.KindCoin,
			Rect:       cellRect(p),
			Static:     true,
			Sensor:     true,
			Animations: coinAnimations(theme.Coin),
			Initial:    animCoinSpin,
		})
	}

	var potionValues map[string]int
	if g.level.PotionPoints > 0 {
		potionValues = map[string]int{actors.ValueHealthPoints: g.level.PotionPoints}
	}
	for _, p := range g.level.Potions {
		g.world.NewBody(world.BodyDef{
			Kind:   actors.KindHealth,
			Rect:   cellRect(p),
			Static: true,
			Sensor: true,
			Values: potionValues,
			Glyph:  glyphPotion,
			Color:  theme.Health,
		})
	}
	return nil
}

func cellRect(p level.Pos) core.Rect {
	return core.NewRect(float64(p.X), float64(p.Y), 1, 1)
}

// outOfBounds kills the player and removes enemies that fall out of the world.
func (g *Game) outOfBounds(b *world.Body) {
	switch {
	case b == g.body:
		g.logger.Info("player fell out of the world")
		g.player.Kill()
	case g.reg.Is(obstacles.CategoryEnemy, b.ID()):
		g.reg.Remove(obstacles.CategoryEnemy, b.ID())
		b.Destroy()
	}
}

func (g *Game) observe(machine, from, to string) {
	if machine == "player" && to == actors.StateStompEnemy {
		g.stomps++
	}
	g.logger.Debug("transition", "machine", machine, "from", from, "to", to)
}

// Update advances the level by one tick: player, enemies, physics, HUD.
func (g *Game) Update(in core.InputFrame, dt time.Duration) {
	if in.JustPressed(core.ActionRestart) {
		g.d.SwitchScreen(SceneGame)
		return
	}
	if in.JustPressed(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	g.input = in
	g.elapsed += dt

	g.player.Update(dt)
	for _, e := range g.enemies {
		e.ctrl.Update(dt)
	}
	g.world.Step(dt)
	g.pruneEnemies()
	g.hud.Update(dt)
}

// pruneEnemies drops controllers whose bodies are gone.
func (g *Game) pruneEnemies() {
	live := g.enemies[:0]
	for _, e := range g.enemies {
		if e.body.Destroyed() {
			e.ctrl.Destroy()
			continue
		}
		live = append(live, e)
	}
	clear(g.enemies[len(live):])
	g.enemies = live
}

func (g *Game) finished() bool {
	return g.player.Dead() || g.player.Won()
}

// Paused reports whether the level is paused.
func (g *Game) Paused() bool { return g.paused }

// Player returns the player controller.
func (g *Game) Player() *actors.Player { return g.player }

// World returns the level's physics world.
func (g *Game) World() *world.World { return g.world }

// State reports the run status.
func (g *Game) State() core.GameState {
	return core.GameState{
		Coins:    g.player.Coins(),
		Health:   g.player.Health(),
		Elapsed:  g.elapsed,
		Paused:   g.paused,
		Finished: g.finished(),
		Won:      g.player.Won(),
	}
}

// Render draws the world through a camera that follows the player, with the
// HUD on top.
func (g *Game) Render(dst *core.Screen) {
	offX, offY := g.camera(dst)
	g.world.Draw(dst, offX, offY)

	dst.FillRect(0, 0, dst.Width(), hudRows, ' ', core.ColorDefault)
	g.hud.Draw(dst, 0)
	name := g.level.Name
	if name == "" {
		name = g.level.ID
	}
	dst.DrawTextColored(dst.Width()-len([]rune(name))-1, 0, name, core.ColorGray)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ", core.ColorWhite)
		dst.DrawTextCentered(dst.Height()/2+1, " P to resume ", core.ColorGray)
	}
}

// camera returns the offset subtracted from world coordinates when drawing.
func (g *Game) camera(dst *core.Screen) (offX, offY int) {
	focus := g.body.Position()
	offX = cameraAxis(focus.X, dst.Width(), g.level.Width)
	offY = cameraAxis(focus.Y, dst.Height()-hudRows, g.level.Height) - hudRows
	return offX, offY
}

// cameraAxis centres a world smaller than the view and otherwise keeps the
// focus in the middle without showing anything past the world's edges.
func cameraAxis(focus float64, view, size int) int {
	if size <= view {
		return -(view - size) / 2
	}
	return core.Clamp(int(focus)-view/2, 0, size-view)
}

// Exit detaches every controller from the bus and records a finished run.
func (g *Game) Exit() {
	for _, e := range g.enemies {
		e.ctrl.Destroy()
	}
	g.enemies = nil
	g.hud.Close()

	if g.finished() {
		g.d.recordRun(RunResult{
			Level:    g.level.ID,
			Coins:    g.player.Coins(),
			Health:   g.player.Health(),
			Won:      g.player.Won(),
			Stomps:   g.stomps,
			Duration: g.elapsed,
		})
	}
}
