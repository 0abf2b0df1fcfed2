package xraypipe

import (
	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// EventKind discriminates the photon event variants.
type EventKind int

// Photon event kinds.
const (
	// EventPlain is a derived event with no extra physics payload.
	EventPlain EventKind = iota
	// EventCharacteristic carries an atomic transition identifier.
	EventCharacteristic
	// EventContinuum carries the emitting element and the generating
	// electron's direction and kinetic energy.
	EventContinuum
	// EventCompton carries the incident direction at the scattering point.
	EventCompton
)

// Event is one photon event. Events are immutable once created; they are
// built only through a stage's Add* factories, owned by that stage's
// per-cycle buffer, and invalidated when the buffer is reset. Downstream
// stages read by reference and must not retain events across cycles.
//
// Intensity is a relative photon weight, not a photon count. Generated
// preserves the pre-attenuation weight for diagnostic generated/transmitted
// ratios.
type Event struct {
	kind      EventKind
	pos       geom.Vec3
	energy    float64 // J
	intensity float64
	generated float64
	parent    *Event

	// characteristic payload
	transition phys.Transition

	// continuum payload
	sourceZ        int
	electronDir    geom.Vec3
	electronEnergy float64 // J

	// compton payload
	incidentDir geom.Vec3
}

// Kind returns the event variant.
func (e *Event) Kind() EventKind { return e.kind }

// Position returns the position at which this event was created, which for
// a derived event is the position of the most recent transformation. Use
// GenerationPos for the position of the original photon.
func (e *Event) Position() geom.Vec3 { return e.pos }

// GenerationPos follows parent links to the root of the derivation chain
// and returns the position at which the physical photon was first created.
func (e *Event) GenerationPos() geom.Vec3 {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root.pos
}

// Energy returns the photon energy in joules. Derived events inherit the
// originating energy unless physics explicitly changes it.
func (e *Event) Energy() float64 { return e.energy }

// Intensity returns the current relative photon weight.
func (e *Event) Intensity() float64 { return e.intensity }

// Generated returns the originally generated (pre-attenuation) weight.
func (e *Event) Generated() float64 { return e.generated }

// Parent returns the event this one was derived from, nil for root events.
func (e *Event) Parent() *Event { return e.parent }

// Transition returns the atomic transition of a characteristic event. For a
// derived characteristic event the transition is inherited from the root.
// The zero Transition is returned for other kinds.
func (e *Event) Transition() phys.Transition { return e.transition }

// SourceElement returns the atomic number of the element that emitted a
// continuum photon, 0 for other kinds.
func (e *Event) SourceElement() int { return e.sourceZ }

// ElectronDirection returns the generating electron's direction of travel
// at the point a continuum photon was emitted.
func (e *Event) ElectronDirection() geom.Vec3 { return e.electronDir }

// ElectronEnergy returns the generating electron's kinetic energy in joules
// at the point a continuum photon was emitted.
func (e *Event) ElectronEnergy() float64 { return e.electronEnergy }

// IncidentDirection returns the photon's direction of travel at the point a
// Compton event was created.
func (e *Event) IncidentDirection() geom.Vec3 { return e.incidentDir }
