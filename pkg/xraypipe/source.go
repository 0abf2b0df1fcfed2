package xraypipe

import (
	"github.com/google/uuid"

	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// SourceStage is the primary-emission recorder the electron-trajectory
// engine drives. On each trajectory step the engine calls BeginStep, records
// the photons emitted during the step, and calls EndStep to push the batch
// down the chain.
type SourceStage struct {
	*Stage
}

// NewSourceStage creates a primary-emission stage.
func NewSourceStage(opts ...StageOption) *SourceStage {
	return &SourceStage{Stage: NewStage("source", opts...)}
}

// BeginTrajectory announces the start of one electron trajectory to the
// whole chain and returns its identifier.
func (s *SourceStage) BeginTrajectory() uuid.UUID {
	id := uuid.New()
	s.NotifyListeners(Notification{Kind: NotifyTrajectoryStart, TrajectoryID: id})
	return id
}

// EndTrajectory announces the end of the identified trajectory.
func (s *SourceStage) EndTrajectory(id uuid.UUID) {
	s.NotifyListeners(Notification{Kind: NotifyTrajectoryEnd, TrajectoryID: id})
}

// BeginStep clears the buffer for a new trajectory step.
func (s *SourceStage) BeginStep() {
	s.Reset()
}

// RecordCharacteristic buffers one primary characteristic photon emitted
// during the current step.
func (s *SourceStage) RecordCharacteristic(pos geom.Vec3, energyJ, intensity float64, tr phys.Transition) *Event {
	return s.AddCharacteristicXRay(pos, energyJ, intensity, intensity, tr)
}

// RecordContinuum buffers one primary continuum photon emitted during the
// current step.
func (s *SourceStage) RecordContinuum(pos geom.Vec3, energyJ, intensity float64, z int, electronDir geom.Vec3, electronEnergyJ float64) *Event {
	return s.AddContinuumXRay(pos, energyJ, intensity, z, electronDir, electronEnergyJ)
}

// EndStep pushes the step's photon batch to the subscribers.
func (s *SourceStage) EndStep() {
	s.NotifyListeners(Notification{Kind: NotifyNewEvents})
}
