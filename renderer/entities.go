package renderer

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/microbiome/camera"
	"github.com/pthm-cable/microbiome/components"
	"github.com/pthm-cable/microbiome/units"
	"github.com/pthm-cable/microbiome/world"
)

// minPixelRadius keeps tiny pellets visible when zoomed out.
const minPixelRadius = 1.0

// EntityRenderer draws frame entities as filled circles.
type EntityRenderer struct {
	ShowNames bool
	Highlight components.ID // player whose cells get an outline

	order []world.FrameEntity
	names map[components.ID]string
}

// NewEntityRenderer creates an entity renderer.
func NewEntityRenderer() *EntityRenderer {
	return &EntityRenderer{ShowNames: true, names: make(map[components.ID]string)}
}

// layer orders pellets below walls below cells.
func layer(k components.Kind) int {
	switch k {
	case components.KindFood:
		return 0
	case components.KindWall:
		return 1
	default:
		return 2
	}
}

// Draw renders every visible entity in f. Larger cells are drawn over
// smaller ones.
func (r *EntityRenderer) Draw(f world.Frame, cam *camera.Camera) {
	r.order = r.order[:0]
	for _, e := range f.Entities {
		if cam.IsVisible(units.Position{X: e.X, Y: e.Y}, e.Radius) {
			r.order = append(r.order, e)
		}
	}
	slices.SortStableFunc(r.order, func(a, b world.FrameEntity) int {
		if la, lb := layer(a.Kind), layer(b.Kind); la != lb {
			return la - lb
		}
		switch {
		case a.Radius < b.Radius:
			return -1
		case a.Radius > b.Radius:
			return 1
		}
		return 0
	})

	clear(r.names)
	for _, p := range f.Players {
		r.names[p.ID] = p.Name
	}

	for _, e := range r.order {
		sx, sy := cam.WorldToScreen(units.Position{X: e.X, Y: e.Y})
		radius := max(cam.ScaleLength(e.Radius), minPixelRadius)
		centre := rl.Vector2{X: sx, Y: sy}
		col := toRL(e.Color)

		switch e.Kind {
		case components.KindFood:
			rl.DrawCircleV(centre, radius, col)
		case components.KindWall:
			rl.DrawCircleV(centre, radius, col)
			rl.DrawCircleLinesV(centre, radius, rl.Fade(rl.White, 0.3))
		default:
			rl.DrawCircleV(centre, radius, col)
			rl.DrawCircleLinesV(centre, radius, rl.Fade(rl.Black, 0.4))
			if e.Owner == r.Highlight && r.Highlight != components.NoID {
				rl.DrawCircleLinesV(centre, radius+2, rl.White)
			}
			if r.ShowNames && radius > 14 {
				r.drawName(r.names[e.Owner], sx, sy, radius)
			}
		}
	}
}

func (r *EntityRenderer) drawName(name string, sx, sy, radius float32) {
	size := int32(min(radius/2, 24))
	w := rl.MeasureText(name, size)
	rl.DrawText(name, int32(sx)-w/2, int32(sy)-size/2, size, rl.White)
}

func toRL(c units.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
