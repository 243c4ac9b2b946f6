// Package game runs the simulation loop: it steers players, advances the
// world, records telemetry and, in graphical mode, draws the result.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/microbiome/ai"
	"github.com/pthm-cable/microbiome/camera"
	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/renderer"
	"github.com/pthm-cable/microbiome/scene"
	"github.com/pthm-cable/microbiome/telemetry"
	"github.com/pthm-cable/microbiome/ui"
	"github.com/pthm-cable/microbiome/world"
)

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	world *world.World
	rng   *rand.Rand
	seed  int64

	// Players
	human     components.ID
	bots      []components.ID
	botSerial int // bots created so far, for names and colours
	autopilot bool

	// Steering
	pool     *ai.Pool
	aiParams ai.Params
	agents   []ai.Agent
	intents  []ai.Intent

	// Pending human commands, applied at the start of the next tick
	splitRequested bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	snapshotDir   string
	snapshotEvery int32

	// Rendering (nil in headless mode)
	camera          *camera.Camera
	background      *renderer.BackgroundRenderer
	entities        *renderer.EntityRenderer
	hud             *ui.HUD
	playerPanel     *ui.PlayerPanel
	leaderboard     *ui.LeaderboardPanel
	controlPanel    *ui.ControlPanel
	perfPanel       *ui.PerfPanel
	showPerf        bool
	screenWidth     float32
	screenHeight    float32
	leaderboardSize int

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// NewGameWithOptions creates a game from the global configuration.
// config.Init must have been called.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		rng:             rand.New(rand.NewSource(seed)),
		seed:            seed,
		pool:            ai.NewPool(0),
		collector:       telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:        opts.LogStats,
		snapshotDir:     opts.SnapshotDir,
		snapshotEvery:   int32(cfg.Telemetry.SnapshotEvery),
		headless:        opts.Headless,
		autopilot:       opts.Headless,
		stepsPerUpdate:  steps,
		leaderboardSize: cfg.Telemetry.LeaderboardSize,
	}

	params := cfg.Params()
	g.aiParams = ai.ParamsFromConfig(cfg.AI, params)

	// The world gets its own stream so scene layout and steering draws
	// don't shift the physics.
	g.world = world.New(params,
		world.WithRand(rand.New(rand.NewSource(seed+1))),
		world.WithRecorder(g.collector),
		world.WithLogger(slog.Default().With("component", "world")),
	)

	res := scene.Seed(g.world, cfg.Scene, g.rng, seed)
	g.human = res.Human
	g.bots = res.Opponents
	g.botSerial = len(res.Opponents)
	for _, p := range g.world.Players() {
		g.collector.Lifetimes().Register(p, 0)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.initRendering()
	}

	slog.Info("game created",
		"seed", seed,
		"players", len(g.world.Players()),
		"entities", g.world.Len(),
		"headless", opts.Headless,
	)
	return g
}

// initRendering sets up the camera and UI. Requires a raylib window.
func (g *Game) initRendering() {
	cfg := g.config()
	g.screenWidth = float32(cfg.Screen.Width)
	g.screenHeight = float32(cfg.Screen.Height)

	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.camera.Smoothing = 0.1
	g.camera.SetZoom(4)
	g.background = renderer.NewBackgroundRenderer(14, 18, 24)
	g.entities = renderer.NewEntityRenderer()
	g.entities.Highlight = g.human

	g.hud = ui.NewHUD()
	g.playerPanel = ui.NewPlayerPanel(10, 100, 220)
	g.leaderboard = ui.NewLeaderboardPanel(0, 10, 230)
	g.controlPanel = ui.NewControlPanel(0, 0, 230)
	g.perfPanel = ui.NewPerfPanel(10, 0)
	g.layoutPanels()
}

// layoutPanels anchors the right-hand panels to the current screen size.
func (g *Game) layoutPanels() {
	right := int32(g.screenWidth) - 240
	g.leaderboard.SetPosition(right, 10)
	g.controlPanel.SetPosition(right, int32(g.screenHeight)-g.controlPanel.Height()-40)
	g.perfPanel.SetPosition(10, int32(g.screenHeight)-140)
}

// Update runs one frame of input handling and simulation.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for i, n := 0, g.stepsPerUpdate; i < n; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without input or rendering.
func (g *Game) UpdateHeadless() {
	for i, n := 0, g.stepsPerUpdate; i < n; i++ {
		g.simulationStep()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// World returns the simulated world.
func (g *Game) World() *world.World {
	return g.world
}

// Unload stops workers and flushes output.
func (g *Game) Unload() {
	g.pool.Close()

	// Players still alive never retired; record them so lifetimes.csv is complete.
	for _, p := range g.world.Players() {
		g.collector.Lifetimes().Retire(p.ID)
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteLifetimes(g.collector.Lifetimes().Drain()); err != nil {
			slog.Error("failed to write lifetimes", "error", err)
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
