package xraypipe

import (
	"github.com/facette/natsort"
	"github.com/google/uuid"

	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// LineSum is the accumulated intensity of one characteristic line.
type LineSum struct {
	// Generated is the summed pre-absorption weight.
	Generated float64
	// Transmitted is the summed detector-side weight.
	Transmitted float64
	// Count is the number of contributing events.
	Count int
}

// Accumulator is a detector-side subscriber that sums the transport stage's
// per-cycle output. It copies the values it needs out of the cycle buffer
// and never retains event references, since the buffer is destructively
// reset on the next cycle. Trajectory counts come from the lifecycle
// notifications the stages forward unchanged.
type Accumulator struct {
	trajectories int
	lastEnded    uuid.UUID
	lines        map[phys.Transition]*LineSum
	continuum    LineSum
	other        LineSum
}

// NewAccumulator creates an empty accumulator. Subscribe it to the
// transport stage.
func NewAccumulator() *Accumulator {
	return &Accumulator{lines: make(map[phys.Transition]*LineSum)}
}

// OnNotify implements Listener.
func (a *Accumulator) OnNotify(n Notification, src *Stage) {
	switch n.Kind {
	case NotifyTrajectoryEnd:
		// The same lifecycle notification arrives once per upstream path
		// through the stage graph; count each trajectory once.
		if n.TrajectoryID != a.lastEnded {
			a.trajectories++
			a.lastEnded = n.TrajectoryID
		}
	case NotifyNewEvents:
		for i := src.EventCount() - 1; i >= 0; i-- {
			a.add(src.Event(i))
		}
	}
}

func (a *Accumulator) add(ev *Event) {
	var sum *LineSum
	switch {
	case ev.Kind() == EventCharacteristic:
		tr := ev.Transition()
		sum = a.lines[tr]
		if sum == nil {
			sum = &LineSum{}
			a.lines[tr] = sum
		}
	case originKind(ev) == EventContinuum:
		sum = &a.continuum
	default:
		sum = &a.other
	}
	sum.Generated += ev.Generated()
	sum.Transmitted += ev.Intensity()
	sum.Count++
}

// originKind classifies an event by its derivation chain. Transport-side
// events derived from non-characteristic photons come back as plain, so the
// chain, not the event itself, tells the story: anything that passed
// through a Compton scatter is energy-shifted background, otherwise the
// root's kind decides.
func originKind(ev *Event) EventKind {
	for e := ev; e != nil; e = e.parent {
		if e.kind == EventCompton {
			return EventCompton
		}
	}
	root := ev
	for root.parent != nil {
		root = root.parent
	}
	return root.kind
}

// TrajectoryCount returns the number of completed trajectories observed.
func (a *Accumulator) TrajectoryCount() int { return a.trajectories }

// Line returns the accumulated sums for one characteristic line.
func (a *Accumulator) Line(tr phys.Transition) LineSum {
	if sum, ok := a.lines[tr]; ok {
		return *sum
	}
	return LineSum{}
}

// Continuum returns the accumulated sums over all continuum events.
func (a *Accumulator) Continuum() LineSum { return a.continuum }

// TotalTransmitted returns the transmitted intensity summed over every
// observed event.
func (a *Accumulator) TotalTransmitted() float64 {
	total := a.continuum.Transmitted + a.other.Transmitted
	for _, sum := range a.lines {
		total += sum.Transmitted
	}
	return total
}

// TotalGenerated returns the generated intensity summed over every observed
// event.
func (a *Accumulator) TotalGenerated() float64 {
	total := a.continuum.Generated + a.other.Generated
	for _, sum := range a.lines {
		total += sum.Generated
	}
	return total
}

// MeanTransmitted returns the per-electron mean transmitted intensity of
// one line. Before any trajectory has completed it reports 0, never NaN.
func (a *Accumulator) MeanTransmitted(tr phys.Transition) float64 {
	if a.trajectories == 0 {
		return 0
	}
	return a.Line(tr).Transmitted / float64(a.trajectories)
}

// MeanGenerated returns the per-electron mean generated intensity of one
// line, 0 before any trajectory has completed.
func (a *Accumulator) MeanGenerated(tr phys.Transition) float64 {
	if a.trajectories == 0 {
		return 0
	}
	return a.Line(tr).Generated / float64(a.trajectories)
}

// Lines returns the observed transitions in natural line order
// (Ka1, Ka2, Kb1, ...).
func (a *Accumulator) Lines() []phys.Transition {
	names := make([]string, 0, len(a.lines))
	byName := make(map[string]phys.Transition, len(a.lines))
	for tr := range a.lines {
		name := tr.String()
		names = append(names, name)
		byName[name] = tr
	}
	natsort.Sort(names)

	out := make([]phys.Transition, len(names))
	for i, name := range names {
		out[i] = byName[name]
	}
	return out
}
