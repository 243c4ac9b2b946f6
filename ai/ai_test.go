package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/config"
	"github.com/pthm-cable/microbiome/systems"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

func target(kind components.Kind, x, y, radius float64, owner components.ID) Target {
	return Target{
		Pos:    units.Position{X: x, Y: y},
		Radius: radius,
		Area:   math.Pi * radius * radius,
		Owner:  owner,
		Kind:   kind,
	}
}

func agentAt(x, y, radius float64) Agent {
	area := math.Pi * radius * radius
	return Agent{ID: 1, Centre: units.Position{X: x, Y: y}, Smallest: area, Largest: area, Reach: radius, Cells: 1}
}

func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	return math.Min(d, 2*math.Pi-d)
}

func TestSteer(t *testing.T) {
	params := DefaultParams(systems.DefaultParams())

	tests := []struct {
		name    string
		view    View
		wantDir float64
		split   bool
	}{
		{
			name:    "seeks food",
			view:    View{Food: []Target{target(components.KindFood, 0.1, 0, 0.002, 0)}},
			wantDir: 0,
		},
		{
			name:    "flees threat",
			view:    View{Bodies: []Target{target(components.KindCell, 0.1, 0, 0.05, 2)}},
			wantDir: math.Pi,
		},
		{
			name:    "chases prey",
			view:    View{Bodies: []Target{target(components.KindCell, 0, 0.2, 0.005, 2)}},
			wantDir: math.Pi / 2,
		},
		{
			name:    "lunges at nearby prey",
			view:    View{Bodies: []Target{target(components.KindCell, 0.05, 0, 0.005, 2)}},
			wantDir: 0,
			split:   true,
		},
		{
			name:    "avoids walls",
			view:    View{Bodies: []Target{target(components.KindWall, 0, -0.1, 0.05, 0)}},
			wantDir: math.Pi / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Steer(&tt.view, agentAt(0, 0, 0.02), params)
			if got.Idle {
				t.Fatal("agent idle with something in sight")
			}
			if d := angleDiff(got.Direction.Radians(), tt.wantDir); d > 1e-6 {
				t.Errorf("direction = %v, want %v", got.Direction.Radians(), tt.wantDir)
			}
			if got.Split != tt.split {
				t.Errorf("split = %v, want %v", got.Split, tt.split)
			}
			if got.Speed != params.MaxSpeed {
				t.Errorf("speed = %v, want %v", got.Speed, params.MaxSpeed)
			}
		})
	}
}

func TestSteerIgnoresOwnCellsAndFarTargets(t *testing.T) {
	params := DefaultParams(systems.DefaultParams())
	view := View{
		Food:   []Target{target(components.KindFood, 0.9, 0, 0.002, 0)},
		Bodies: []Target{target(components.KindCell, 0.05, 0, 0.05, 1)},
	}
	got := Steer(&view, agentAt(0, 0, 0.02), params)
	if !got.Idle {
		t.Errorf("expected idle intent, got %+v", got)
	}
}

func TestSteerAvoidsBorder(t *testing.T) {
	params := DefaultParams(systems.DefaultParams())
	got := Steer(&View{}, agentAt(0.98, 0, 0.02), params)
	if got.Idle {
		t.Fatal("agent near border should steer away")
	}
	if d := angleDiff(got.Direction.Radians(), math.Pi); d > 1e-6 {
		t.Errorf("direction = %v, want π", got.Direction.Radians())
	}
}

func TestNewAgent(t *testing.T) {
	w := world.New(systems.DefaultParams(), world.WithRand(rand.New(rand.NewSource(1))))
	p := w.CreatePlayer("bot", units.RGB(1, 0, 0))

	a, ok := NewAgent(w, p.ID)
	if !ok {
		t.Fatal("NewAgent reported no cells")
	}
	if a.Cells != 1 {
		t.Errorf("cells = %d, want 1", a.Cells)
	}
	want := components.DefaultCellMass.Area()
	if math.Abs(a.Largest-want) > 1e-12 || math.Abs(a.Smallest-want) > 1e-12 {
		t.Errorf("areas = (%v, %v), want %v", a.Smallest, a.Largest, want)
	}
	if _, ok := NewAgent(w, 999); ok {
		t.Error("unknown player should have no agent")
	}
}

func TestNewViewSplitsFood(t *testing.T) {
	w := world.New(systems.DefaultParams(), world.WithRand(rand.New(rand.NewSource(1))))
	p := w.CreatePlayer("bot", units.RGB(1, 0, 0))
	w.AddEntity(components.NewFood(units.DefaultMass, units.Position{X: 0.5}))
	w.AddEntity(components.NewWall(units.Position{X: -0.5}, 0.1))

	v := NewView(w)
	if len(v.Food) != 1 || len(v.Bodies) != 2 {
		t.Fatalf("view has %d food, %d bodies; want 1, 2", len(v.Food), len(v.Bodies))
	}
	if v.Bodies[0].Owner != p.ID {
		t.Errorf("cell owner = %d, want %d", v.Bodies[0].Owner, p.ID)
	}
}

func TestPoolMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	params := DefaultParams(systems.DefaultParams())

	view := &View{}
	for i := 0; i < 300; i++ {
		view.Food = append(view.Food, target(components.KindFood,
			systems.Uniform(rng), systems.Uniform(rng), 0.002, 0))
	}
	var agents []Agent
	for i := 0; i < 40; i++ {
		a := agentAt(systems.Uniform(rng), systems.Uniform(rng), 0.005+rng.Float64()*0.03)
		a.ID = components.ID(i + 1)
		agents = append(agents, a)
		view.Bodies = append(view.Bodies, target(components.KindCell, a.Centre.X, a.Centre.Y, a.Reach, a.ID))
	}

	pool := NewPool(4)
	defer pool.Close()

	got := pool.Steer(view, agents, params, nil)
	if len(got) != len(agents) {
		t.Fatalf("got %d intents, want %d", len(got), len(agents))
	}
	for i, a := range agents {
		want := Steer(view, a, params)
		if got[i] != want {
			t.Errorf("agent %d: pool %+v, sequential %+v", a.ID, got[i], want)
		}
	}

	// Reuse after close restarts the workers.
	pool.Close()
	again := pool.Steer(view, agents, params, got)
	for i := range again {
		if again[i] != Steer(view, agents[i], params) {
			t.Fatalf("agent %d differs after restart", agents[i].ID)
		}
	}
}

func TestParamsFromConfigMatchesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	rules := cfg.Params()
	if got, want := ParamsFromConfig(cfg.AI, rules), DefaultParams(rules); got != want {
		t.Errorf("config defaults diverge:\n got %+v\nwant %+v", got, want)
	}
}
