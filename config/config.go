// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/microbiome/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Feeding   FeedingConfig   `yaml:"feeding"`
	Food      FoodConfig      `yaml:"food"`
	Mitosis   MitosisConfig   `yaml:"mitosis"`
	Scene     SceneConfig     `yaml:"scene"`
	AI        AIConfig        `yaml:"ai"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds movement and growth parameters.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`               // Simulated seconds per tick
	BaseSpeed      float64 `yaml:"base_speed"`       // Speed multiplier before size slowdown
	Friction       float64 `yaml:"friction"`         // Speed loss per second
	DecayRate      float64 `yaml:"decay_rate"`       // Cell mass loss per second
	FoodGrowthRate float64 `yaml:"food_growth_rate"` // Food mass gain per second
}

// FeedingConfig holds predation and merge thresholds.
type FeedingConfig struct {
	SizeRatio      float64 `yaml:"size_ratio"`      // Predator area must exceed prey area by this factor
	GracePeriod    float64 `yaml:"grace_period"`    // Seconds before siblings may merge
	RecombineReach float64 `yaml:"recombine_reach"` // Prey radius factor for same-owner merges
	AttackReach    float64 `yaml:"attack_reach"`    // Prey radius factor for attacks
}

// FoodConfig holds food replenishment parameters.
type FoodConfig struct {
	Floor        int     `yaml:"floor"`          // Replenish while fewer pellets exist
	SpawnRate    float64 `yaml:"spawn_rate"`     // Pellets per second while below floor
	GridCellSize float64 `yaml:"grid_cell_size"` // Broad-phase bucket size
}

// MitosisConfig holds cell splitting parameters.
type MitosisConfig struct {
	MaturityAge  float64 `yaml:"maturity_age"`  // Seconds before a cell may split
	OffsetFactor float64 `yaml:"offset_factor"` // Sibling offset in radii
	MaxSiblings  int     `yaml:"max_siblings"`  // Cap on new cells per request
	SplitMinimum int     `yaml:"split_minimum"` // Splits allowed on top of half the cell count
}

// SceneConfig describes the world a new game starts with.
type SceneConfig struct {
	PlayerName      string  `yaml:"player_name"`
	PlayerCells     int     `yaml:"player_cells"`    // Cells the human player starts with
	PlayerSpread    float64 `yaml:"player_spread"`   // Start cells are scattered within this distance of the origin
	Opponents       int     `yaml:"opponents"`       // AI players
	OpponentCells   int     `yaml:"opponent_cells"`  // Cells per AI player
	OpponentSpread  float64 `yaml:"opponent_spread"` // Cluster spread around each AI player's home
	Food            int     `yaml:"food"`            // Scattered pellets
	FoodClusters    int     `yaml:"food_clusters"`   // Dense food patches
	ClusterSize     int     `yaml:"cluster_size"`    // Pellets per patch
	ClusterSpread   float64 `yaml:"cluster_spread"`  // Patch radius
	ClusterNoise    float64 `yaml:"cluster_noise"`   // Noise frequency used to pick patch centres
	Walls           int     `yaml:"walls"`           // Random obstacles
	WallRadiusMin   float64 `yaml:"wall_radius_min"`
	WallRadiusMax   float64 `yaml:"wall_radius_max"`
	AIRetargetEvery int     `yaml:"ai_retarget_every"` // Ticks between AI steering updates
	AISplitChance   float64 `yaml:"ai_split_chance"`   // Per-retarget chance an AI requests mitosis
}

// AIConfig holds steering weights for computer players.
type AIConfig struct {
	SightRadius  float64 `yaml:"sight_radius"`  // World units an agent reacts within
	PreyWeight   float64 `yaml:"prey_weight"`   // Pull of smaller foreign cells relative to food
	ThreatWeight float64 `yaml:"threat_weight"` // Push of larger foreign cells and the border
	WallWeight   float64 `yaml:"wall_weight"`   // Push of walls
	BorderMargin float64 `yaml:"border_margin"` // Distance from the border where the push starts
	SplitReach   float64 `yaml:"split_reach"`   // Lunge distance in radii of the largest cell
}

// TelemetryConfig holds telemetry and output parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
	SnapshotEvery       int     `yaml:"snapshot_every"`        // Ticks between frame snapshots (0 = once per stats window)
	LeaderboardSize     int     `yaml:"leaderboard_size"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32 // Physics.DT as float32
	ScreenW32  float32 // Screen.Width as float32
	ScreenH32  float32 // Screen.Height as float32
	StatsTicks int     // Telemetry.StatsWindow in ticks
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the simulation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("config: physics.dt must be positive, got %v", c.Physics.DT)
	case c.Food.GridCellSize < systems.MinFoodGridCellSize:
		return fmt.Errorf("config: food.grid_cell_size must be at least %v, got %v", systems.MinFoodGridCellSize, c.Food.GridCellSize)
	case c.Feeding.SizeRatio < 1:
		return fmt.Errorf("config: feeding.size_ratio must be at least 1, got %v", c.Feeding.SizeRatio)
	case c.Mitosis.MaxSiblings < 0:
		return fmt.Errorf("config: mitosis.max_siblings must not be negative, got %v", c.Mitosis.MaxSiblings)
	case c.AI.SightRadius <= 0:
		return fmt.Errorf("config: ai.sight_radius must be positive, got %v", c.AI.SightRadius)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.StatsTicks = int(c.Telemetry.StatsWindow / c.Physics.DT)
	if c.Derived.StatsTicks < 1 {
		c.Derived.StatsTicks = 1
	}
}

// Params maps the rule sections onto the simulation parameters.
func (c *Config) Params() systems.Params {
	return systems.Params{
		BaseSpeed: c.Physics.BaseSpeed,
		Friction:  c.Physics.Friction,

		DecayRate:      c.Physics.DecayRate,
		FoodGrowthRate: c.Physics.FoodGrowthRate,

		SizeRatio:      c.Feeding.SizeRatio,
		GracePeriod:    c.Feeding.GracePeriod,
		RecombineReach: c.Feeding.RecombineReach,
		AttackReach:    c.Feeding.AttackReach,

		FoodFloor:        c.Food.Floor,
		FoodSpawnRate:    c.Food.SpawnRate,
		FoodGridCellSize: c.Food.GridCellSize,

		MaturityAge:  c.Mitosis.MaturityAge,
		SplitOffset:  c.Mitosis.OffsetFactor,
		MaxSiblings:  c.Mitosis.MaxSiblings,
		SplitMinimum: c.Mitosis.SplitMinimum,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
