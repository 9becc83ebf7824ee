package ui

import (
	"fmt"
	"math/rand/v2"

	"snowglobe/internal/logging"
	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
	"snowglobe/internal/surface"
)

// sprinkleCount is how many ornaments one press of the sprinkle button adds.
const sprinkleCount = 8

// Sprinkle scatters count ornaments of the current choice over the visible
// front of the tree. Points are drawn uniformly by surface area. It returns
// the number placed, 0 while the tree is unfinished.
func (e *Editor) Sprinkle(count int, rng *rand.Rand) int {
	profile := silhouette.Build(e.Design.Points())
	if !profile.Ready() || count <= 0 {
		return 0
	}
	sampler, err := surface.NewSampler(surface.Lathe(profile.LatheOrder(), surface.DefaultSegments), rng)
	if err != nil {
		logging.Logger().Warn("ui: sprinkle", "error", err)
		return 0
	}

	placed := 0
	for round := 0; round < 8 && placed < count; round++ {
		s := sampler.Sample(2 * count)
		for i := 0; i < s.Len() && placed < count; i++ {
			p, n := s.Position(i), s.Normal(i)
			if p.Z < 0 {
				continue
			}
			pl := e.Tools.Placement()
			pl.Position = [3]float64{float64(p.X), float64(p.Y), float64(p.Z)}
			pl.Normal = state.Vector3{X: float64(n.X), Y: float64(n.Y), Z: float64(n.Z)}
			pl.ClickPoint = state.VectorFromArray(pl.Position)
			e.Design.PlaceOrnament(pl)
			placed++
		}
	}

	e.Preview.Refresh()
	e.Status.SetText(fmt.Sprintf("%d %s sprinkled (%d on the tree)", placed, e.Tools.Type, len(e.Design.Ornaments())))
	return placed
}
