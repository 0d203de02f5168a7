package systems

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/pthm-cable/galaxy/config"
)

// smoother moves a value toward a target for one frame. vel is state the
// smoother may keep between frames; rate is the channel's approach rate.
type smoother interface {
	step(cur, vel *float64, target, rate float64)
}

// expSmoother is an exponential approach scaled by frame time, so the
// result after one second is the same at any frame rate. It never
// overshoots.
type expSmoother struct {
	dt float64
}

func (s expSmoother) step(cur, vel *float64, target, rate float64) {
	*cur += (target - *cur) * (1 - math.Exp(-rate*s.dt))
	*vel = 0
}

// springSmoother uses a harmonica spring rebuilt for each frame's dt. All
// channels share the configured frequency and damping; rate is ignored.
type springSmoother struct {
	spring harmonica.Spring
}

func (s springSmoother) step(cur, vel *float64, target, _ float64) {
	*cur, *vel = s.spring.Update(*cur, *vel, target)
}

// newSmoother builds the smoother for one frame.
func newSmoother(cfg config.CellConfig, dt float64) smoother {
	if dt <= 0 || !isFinite(dt) {
		return expSmoother{dt: 0}
	}
	if cfg.Smoothing == config.SmoothSpring {
		return springSmoother{spring: harmonica.NewSpring(dt, cfg.SpringFreq, cfg.SpringDamping)}
	}
	return expSmoother{dt: dt}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
