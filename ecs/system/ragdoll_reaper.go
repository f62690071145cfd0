package system

import (
	"github.com/milk9111/roadrush/common"
	"github.com/milk9111/roadrush/ecs"
	"github.com/milk9111/roadrush/ecs/component"
	"github.com/milk9111/roadrush/metrics"
	"go.uber.org/zap"
)

// Fader receives the opacity a ragdoll should be drawn with while it fades
// out. Opacity is in [0, 1].
type Fader interface {
	SetOpacity(e ecs.Entity, opacity float64)
}

// NopFader ignores fade updates.
type NopFader struct{}

func (NopFader) SetOpacity(ecs.Entity, float64) {}

// RagdollReaperSystem fades ragdolls after a delay and destroys them when
// their lifetime ends.
type RagdollReaperSystem struct {
	fader     Fader
	fadeStart float64
	tracker   *RagdollTracker
	logger    *zap.Logger
	metrics   *metrics.Recorder
}

func NewRagdollReaperSystem(fader Fader, fadeStart float64, tracker *RagdollTracker, logger *zap.Logger, rec *metrics.Recorder) *RagdollReaperSystem {
	if fader == nil {
		fader = NopFader{}
	}
	if tracker == nil {
		tracker = NewRagdollTracker()
	}
	return &RagdollReaperSystem{fader: fader, fadeStart: fadeStart, tracker: tracker, logger: nopIfNil(logger), metrics: rec}
}

func (s *RagdollReaperSystem) SetFadeStart(delay float64) {
	s.fadeStart = delay
}

func (s *RagdollReaperSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	now := w.Clock().Now

	ecs.ForEach(w, component.RagdollComponent.Kind(), func(e ecs.Entity, r *component.Ragdoll) {
		if now >= r.DespawnTime {
			s.tracker.Remove(e)
			if removePedestrian(w, e, component.RemovedReaped) {
				s.metrics.RagdollReaped()
				s.metrics.ActiveRagdolls(s.tracker.Len())
			}
			return
		}

		if progress, ok := FadeProgress(*r, s.fadeStart, now); ok {
			s.fader.SetOpacity(e, 1-progress)
		}
	})
}

// FadeProgress returns how far through its fade a ragdoll is at now, in
// [0, 1]. It reports false before the fade has started.
func FadeProgress(r component.Ragdoll, fadeStart, now float64) (float64, bool) {
	start := r.HitTime + fadeStart
	if now < start {
		return 0, false
	}
	span := r.DespawnTime - start
	if span <= 0 {
		return 1, true
	}
	return common.Clamp((now-start)/span, 0, 1), true
}
