package xraypipe

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/observability"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// NotificationKind discriminates the notifications flowing down the stage
// chain.
type NotificationKind int

// Notification kinds. Stages act on NotifyNewEvents and forward every other
// kind unchanged, so accumulators anywhere in the chain can observe
// trajectory boundaries.
const (
	// NotifyNewEvents signals that the notifying stage's buffer holds a new
	// photon batch.
	NotifyNewEvents NotificationKind = iota
	// NotifyTrajectoryStart signals the start of one electron trajectory.
	NotifyTrajectoryStart
	// NotifyTrajectoryEnd signals the end of one electron trajectory.
	NotifyTrajectoryEnd
)

// Notification is what a stage delivers to its subscribers.
type Notification struct {
	// Kind discriminates the notification.
	Kind NotificationKind
	// TrajectoryID identifies the trajectory for lifecycle notifications;
	// it is the zero UUID for NotifyNewEvents.
	TrajectoryID uuid.UUID
}

// Listener receives notifications from an upstream stage. Delivery is
// synchronous: NotifyListeners does not return until every listener's
// OnNotify has returned.
type Listener interface {
	// OnNotify handles one notification from the stage src.
	OnNotify(n Notification, src *Stage)
}

// Stage is the base every physics stage embeds. It owns the per-cycle event
// buffer, the subscriber list, and the notification protocol. A Stage (and
// therefore every stage built on it) is not safe for concurrent use; the
// pipeline is single-threaded by design.
type Stage struct {
	name      string
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	events    []*Event
	listeners []Listener
	notifying bool
}

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithLogger attaches a structured logger to the stage. A nil logger
// disables logging.
func WithLogger(logger *slog.Logger) StageOption {
	return func(s *Stage) {
		s.logger = observability.EnrichLogger(logger, s.name)
	}
}

// WithMetrics attaches a metrics recorder to the stage.
func WithMetrics(m observability.MetricsRecorder) StageOption {
	return func(s *Stage) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewStage creates a named stage with an empty buffer and no subscribers.
func NewStage(name string, opts ...StageOption) *Stage {
	s := &Stage{
		name:    name,
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name used in logs and metrics.
func (s *Stage) Name() string { return s.name }

// AddXRay creates and buffers an event derived from parent at a new
// position with new weights. A characteristic parent yields a derived
// characteristic event preserving the transition; every other kind falls
// back to the plain form. Energy is inherited from the parent.
func (s *Stage) AddXRay(parent *Event, pos geom.Vec3, intensity, generated float64) *Event {
	e := &Event{
		kind:      EventPlain,
		pos:       pos,
		energy:    parent.energy,
		intensity: intensity,
		generated: generated,
		parent:    parent,
	}
	if parent.kind == EventCharacteristic {
		e.kind = EventCharacteristic
		e.transition = parent.transition
	}
	s.events = append(s.events, e)
	return e
}

// AddCharacteristicXRay creates and buffers a root characteristic event.
func (s *Stage) AddCharacteristicXRay(pos geom.Vec3, energyJ, intensity, generated float64, tr phys.Transition) *Event {
	e := &Event{
		kind:       EventCharacteristic,
		pos:        pos,
		energy:     energyJ,
		intensity:  intensity,
		generated:  generated,
		transition: tr,
	}
	s.events = append(s.events, e)
	return e
}

// AddComptonXRay creates and buffers a Compton-scattered event derived from
// src, carrying the photon's direction of travel at the scattering point.
// The generated weight equals the intensity: there is no separate
// generated-vs-transmitted distinction at the scattering point.
func (s *Stage) AddComptonXRay(pos geom.Vec3, dir geom.Vec3, intensity float64, src *Event) *Event {
	e := &Event{
		kind:        EventCompton,
		pos:         pos,
		energy:      src.energy,
		intensity:   intensity,
		generated:   intensity,
		parent:      src,
		incidentDir: dir,
	}
	s.events = append(s.events, e)
	return e
}

// AddContinuumXRay creates and buffers a root continuum event.
func (s *Stage) AddContinuumXRay(pos geom.Vec3, energyJ, intensity float64, z int, electronDir geom.Vec3, electronEnergyJ float64) *Event {
	e := &Event{
		kind:           EventContinuum,
		pos:            pos,
		energy:         energyJ,
		intensity:      intensity,
		generated:      intensity,
		sourceZ:        z,
		electronDir:    electronDir,
		electronEnergy: electronEnergyJ,
	}
	s.events = append(s.events, e)
	return e
}

// EventCount returns the number of events in the current cycle's buffer.
func (s *Stage) EventCount() int { return len(s.events) }

// Event returns the buffered event at the insertion-order index i.
// Downstream stages iterate from EventCount()-1 down to 0 so the last-added
// event is visited first.
func (s *Stage) Event(i int) *Event { return s.events[i] }

// EventAtEnergy returns the first buffered event with exactly the given
// energy, nil if none.
func (s *Stage) EventAtEnergy(energyJ float64) *Event {
	for _, e := range s.events {
		if e.energy == energyJ {
			return e
		}
	}
	return nil
}

// EventForTransition returns the first buffered characteristic event with
// the given transition, nil if none.
func (s *Stage) EventForTransition(tr phys.Transition) *Event {
	for _, e := range s.events {
		if e.kind == EventCharacteristic && e.transition == tr {
			return e
		}
	}
	return nil
}

// Reset clears the event buffer in place. A stage must call Reset at the
// start of its own notification handling, before producing any events, so
// stale events from the previous cycle are never visible to this cycle's
// subscribers.
func (s *Stage) Reset() {
	s.events = s.events[:0]
}

// Subscribe appends a listener to the downstream list.
func (s *Stage) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Unsubscribe removes a listener from the downstream list.
func (s *Stage) Unsubscribe(l Listener) {
	for i, cur := range s.listeners {
		if cur == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// NotifyListeners synchronously delivers the notification to every
// subscriber. It panics if called while a delivery is already in progress
// on this stage: that means the subscriber graph contains a cycle, which is
// a wiring error to be caught in testing, not a runtime condition.
func (s *Stage) NotifyListeners(n Notification) {
	if s.notifying {
		panic("xraypipe: stage " + s.name + " notified while already notifying (subscriber cycle)")
	}
	s.notifying = true
	defer func() { s.notifying = false }()

	for _, l := range s.listeners {
		l.OnNotify(n, s)
	}
}
