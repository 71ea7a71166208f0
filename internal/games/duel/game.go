package duel

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// selectedStartLevel is the 1-based campaign level to start from, 0 for the first.
var selectedStartLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetStartLevel sets the campaign start level (1-based). 0 means the first level.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

func init() {
	for _, m := range Modes {
		registry.Register(string(m), func() registry.Game {
			return New(m)
		})
	}
}

var (
	_ registry.Game           = (*Game)(nil)
	_ multiplayer.OnlineGame = (*Game)(nil)
)

// Game is one match: one or two boards, the optional bot, the VS timer and
// the campaign goal. It is driven one tick at a time by Step or StepMulti
// and is not safe for concurrent use.
type Game struct {
	mode    Mode
	cfg     config.BlockfallConfig
	runtime core.RuntimeConfig
	tickDur time.Duration

	loops [2]*engine.Loop
	bot   *engine.Bot
	// externalBot is set when a real-time runner feeds the bot's intents.
	externalBot bool

	status   Status
	winner   core.PlayerID
	reason   EndReason
	timeLeft time.Duration
	elapsed  time.Duration
	tick     uint64

	levels     []Level
	levelIndex int

	screenW int
	screenH int
}

// New creates a match in the given mode. Call Reset before stepping.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Mode returns the match mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset loads configuration and builds fresh boards. The match is left Idle
// and starts on the first step.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBlockfall(configPath)
	if err != nil {
		cfg = config.DefaultBlockfallConfig()
	}
	config.ApplyPreset(&cfg, difficultyPreset)

	if g.mode == ModeCampaign && selectedStartLevel > 0 && selectedStartLevel <= len(cfg.Campaign) {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0
	} else if g.levelIndex >= len(cfg.Campaign) {
		g.levelIndex = 0
	}

	g.ResetWith(runtime, cfg)
}

// ResetWith builds fresh boards from an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.BlockfallConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.tickDur = time.Second / time.Duration(runtime.TickRateOrDefault())
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.levels = LevelsFromConfig(cfg.Campaign)
	if g.levelIndex >= len(g.levels) {
		g.levelIndex = 0
	}

	g.status = StatusIdle
	g.winner = core.PlayerNone
	g.reason = ReasonNone
	g.timeLeft = cfg.Match.Duration()
	g.elapsed = 0
	g.tick = 0

	g.loops[0] = engine.NewLoop(engine.NewBoard(g.boardOptions(runtime.Seed, core.Player1)))
	g.loops[1] = nil
	g.bot = nil
	if g.mode.TwoBoard() {
		g.loops[1] = engine.NewLoop(engine.NewBoard(g.boardOptions(runtime.Seed+1, core.Player2)))
	}
	if g.mode.BotOpponent() {
		w := cfg.Bot.Weights
		g.bot = engine.NewBot(
			rand.New(rand.NewSource(runtime.Seed+2)),
			cfg.Bot.Interval(),
			engine.BotWeights{Left: w.Left, Right: w.Right, Rotate: w.Rotate, SoftDrop: w.SoftDrop, HardDrop: w.HardDrop},
		)
	}
}

func (g *Game) boardOptions(seed int64, player core.PlayerID) engine.Options {
	cfg := g.cfg
	return engine.Options{
		Width:    cfg.Board.Width,
		Height:   cfg.Board.Height,
		QueueLen: cfg.Board.NextQueue,
		Kicks:    cfg.Rotation.Kicks,
		Scoring: engine.Scoring{
			Rewards:       cfg.Scoring.LineRewards,
			LinesPerLevel: cfg.Speed.LinesPerLevel,
			StartSpeed:    cfg.Speed.Start(),
			MinSpeed:      cfg.Speed.Min(),
			SpeedStep:     cfg.Speed.Step(),
			HardDropPoint: cfg.Scoring.HardDropPerRow,
			SoftDropPoint: cfg.Scoring.SoftDropPerRow,
		},
		Rand: rand.New(rand.NewSource(seed)),
		Events: engine.Events{
			OnGameOver: func(int) { g.boardOver(player) },
			OnClear:    func(rows int) { g.sendGarbage(player.Opponent(), rows) },
		},
	}
}

func (g *Game) loop(p core.PlayerID) *engine.Loop {
	switch p {
	case core.Player1:
		return g.loops[0]
	case core.Player2:
		return g.loops[1]
	default:
		return nil
	}
}

// Board returns the board of a player, nil when the mode has no such board.
func (g *Game) Board(p core.PlayerID) *engine.Board {
	if l := g.loop(p); l != nil {
		return l.Board()
	}
	return nil
}

// Intents returns the intent queue of a player's board.
func (g *Game) Intents(p core.PlayerID) *engine.IntentQueue {
	if l := g.loop(p); l != nil {
		return l.Intents()
	}
	return nil
}

// Bot returns the bot driving board 2, nil in modes without one.
func (g *Game) Bot() *engine.Bot {
	return g.bot
}

// SetExternalBot stops Step from advancing the bot; the caller feeds the
// bot's actions into Intents(Player2) instead.
func (g *Game) SetExternalBot(external bool) {
	g.externalBot = external
}

func (g *Game) sendGarbage(to core.PlayerID, rows int) {
	if !g.mode.TwoBoard() || !g.cfg.Match.Garbage {
		return
	}
	if b := g.Board(to); b != nil {
		b.ReceiveGarbage(rows)
	}
}

func (g *Game) boardOver(p core.PlayerID) {
	if g.status.Ended() {
		return
	}
	if g.mode.TwoBoard() {
		g.finish(StatusGameOver, p.Opponent(), ReasonTopOut)
		return
	}
	g.finish(StatusGameOver, core.PlayerNone, ReasonTopOut)
}

func (g *Game) finish(status Status, winner core.PlayerID, reason EndReason) {
	g.status = status
	g.winner = winner
	g.reason = reason
	for _, l := range g.loops {
		if l != nil {
			l.Stop()
		}
	}
}

// Start moves an Idle match to Playing and spawns the first pieces.
func (g *Game) Start() {
	if g.status != StatusIdle {
		return
	}
	g.status = StatusPlaying
	for _, l := range g.loops {
		if l != nil {
			l.Start()
		}
	}
}

// TogglePause switches between Playing and Paused.
func (g *Game) TogglePause() {
	switch g.status {
	case StatusPlaying:
		g.status = StatusPaused
		for _, l := range g.loops {
			if l != nil {
				l.Stop()
			}
		}
	case StatusPaused:
		g.status = StatusPlaying
		for _, l := range g.loops {
			if l != nil {
				l.Start()
			}
		}
	}
}

// Restart rebuilds the match with the same mode and configuration.
// The seed moves on so a rematch deals a different piece sequence.
func (g *Game) Restart() {
	g.runtime.Seed++
	g.ResetWith(g.runtime, g.cfg)
}

// NextLevel advances the campaign after a cleared stage. Returns false when
// there is no further stage or the current one is not cleared.
func (g *Game) NextLevel() bool {
	if g.mode != ModeCampaign || g.status != StatusVictory || g.levelIndex+1 >= len(g.levels) {
		return false
	}
	g.levelIndex++
	g.Restart()
	return true
}

// Step advances one tick with Player1's input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(core.Player1, in)
	return g.StepMulti(multi)
}

// StepMulti advances one tick with input from both players.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.tick++
	g.handleControl(in)

	if g.status == StatusIdle {
		g.Start()
	}
	if g.status != StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	g.loops[0].Intents().PushFrame(in.Player1())
	if g.mode == ModeVersus {
		g.loops[1].Intents().PushFrame(in.Player2())
	}
	if g.bot != nil && !g.externalBot {
		for _, a := range g.bot.Advance(g.tickDur) {
			g.loops[1].Intents().Push(a)
		}
	}

	g.Advance(g.tickDur)
	return core.StepResult{State: g.State()}
}

func (g *Game) handleControl(in core.MultiInputFrame) {
	pause := in.Player1().Has(core.ActionPause) || in.Player2().Has(core.ActionPause)
	restart := in.Player1().Has(core.ActionRestart) || in.Player2().Has(core.ActionRestart)
	confirm := in.Player1().Has(core.ActionConfirm)

	switch {
	case g.status.Ended() && confirm && g.NextLevel():
	case g.status.Ended() && restart:
		g.Restart()
	case pause:
		g.TogglePause()
	}
}

// Advance runs every board loop for dt and then applies the match clock:
// the VS countdown in two-board modes and the stage goal in campaign.
func (g *Game) Advance(dt time.Duration) {
	if g.status != StatusPlaying {
		return
	}
	g.elapsed += dt

	for _, l := range g.loops {
		if l == nil || g.status != StatusPlaying {
			continue
		}
		l.Frame(dt)
	}
	if g.status != StatusPlaying {
		return
	}

	switch {
	case g.mode.TwoBoard():
		g.timeLeft -= dt
		if g.timeLeft <= 0 {
			g.timeLeft = 0
			g.finish(StatusVictory, g.leader(), ReasonTimeUp)
		}
	case g.mode == ModeCampaign:
		if lvl, ok := g.Level(); ok && lvl.Reached(g.Score1(), g.elapsed) {
			g.finish(StatusVictory, core.Player1, ReasonGoal)
		}
	}
}

func (g *Game) leader() core.PlayerID {
	s1, s2 := g.Score1(), g.Score2()
	switch {
	case s1 > s2:
		return core.Player1
	case s2 > s1:
		return core.Player2
	default:
		return core.PlayerNone
	}
}

// Level returns the current campaign stage.
func (g *Game) Level() (Level, bool) {
	if g.mode != ModeCampaign || g.levelIndex >= len(g.levels) {
		return Level{}, false
	}
	return g.levels[g.levelIndex], true
}

// Status returns the lifecycle state.
func (g *Game) Status() Status { return g.status }

// Reason returns why the match ended, empty while it runs.
func (g *Game) Reason() EndReason { return g.reason }

// TimeLeft returns the remaining VS time.
func (g *Game) TimeLeft() time.Duration { return g.timeLeft }

// Elapsed returns the time spent Playing.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// IsDraw reports a two-board match that ended level on time.
func (g *Game) IsDraw() bool {
	return g.mode.TwoBoard() && g.status == StatusVictory && g.winner == core.PlayerNone
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score1(),
		GameOver: g.status.Ended(),
		Paused:   g.status == StatusPaused,
		Winner:   g.winner,
	}
}

// IsGameOver reports whether the match has ended.
func (g *Game) IsGameOver() bool { return g.status.Ended() }

// Winner returns the winning side, PlayerNone for a draw or a solo game.
func (g *Game) Winner() core.PlayerID { return g.winner }

// Score1 returns board 1's score.
func (g *Game) Score1() int {
	if g.loops[0] == nil {
		return 0
	}
	return g.loops[0].Board().Stats().Score
}

// Score2 returns board 2's score, 0 in single-board modes.
func (g *Game) Score2() int {
	if g.loops[1] == nil {
		return 0
	}
	return g.loops[1].Board().Stats().Score
}
