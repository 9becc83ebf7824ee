package server

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"

	"snowglobe/internal/surface"
)

const (
	defaultScatterCount = 64
	maxScatterCount     = 2048
)

// ScatterPoint is one sampled surface point with its outward normal, the
// rotation taking +Y onto that normal as x, y, z, w, and the yaw about +Y
// for billboards that only turn around the trunk.
type ScatterPoint struct {
	P   [3]float32 `json:"p"`
	N   [3]float32 `json:"n"`
	Q   [4]float32 `json:"q"`
	Yaw float32    `json:"yaw"`
}

// ScatterResponse is the body of GET /api/submission/{shortId}/scatter.json.
type ScatterResponse struct {
	OK     bool           `json:"ok"`
	Area   float64        `json:"area"`
	Points []ScatterPoint `json:"points"`
}

// handleScatter samples points uniformly over the revolved tree, for
// clients that sprinkle snow or lights on it. A seed makes the result
// repeatable.
func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count := defaultScatterCount
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxScatterCount {
			writeError(w, http.StatusBadRequest, fmt.Errorf("count must be between 1 and %d", maxScatterCount))
			return
		}
		count = n
	}
	var rng *rand.Rand
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid seed: %w", err))
			return
		}
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	sub, ok := s.lookup(w, r)
	if !ok {
		return
	}
	profile, _, err := design(sub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !profile.Ready() {
		writeError(w, http.StatusUnprocessableEntity, surface.ErrEmptySurface)
		return
	}

	sampler, err := surface.NewSampler(surface.Lathe(profile.LatheOrder(), surface.DefaultSegments), rng)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	samples := sampler.Sample(count)
	out := ScatterResponse{OK: true, Area: sampler.TotalArea(), Points: make([]ScatterPoint, samples.Len())}
	for i := range out.Points {
		p, n := samples.Position(i), samples.Normal(i)
		rot := surface.QuaternionFromUpToNormal(n)
		out.Points[i] = ScatterPoint{
			P:   [3]float32{p.X, p.Y, p.Z},
			N:   [3]float32{n.X, n.Y, n.Z},
			Q:   [4]float32{rot.X, rot.Y, rot.Z, rot.W},
			Yaw: surface.YawFromNormal(n),
		}
	}
	writeJSON(w, http.StatusOK, out)
}
