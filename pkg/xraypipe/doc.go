// Package xraypipe simulates the generation and transport of X-ray photons
// through a piecewise-homogeneous specimen, as used in electron-probe
// microanalysis.
//
// The package is built around a synchronous push pipeline of physics
// stages. A primary stage (SourceStage) records the characteristic and
// continuum photons the electron-trajectory engine produces during one
// trajectory step. Secondary stages consume them: FluorescenceStage
// Monte-Carlo samples photons, marches them to an absorption point, and
// emits the characteristic photons of the re-excited atoms; ComptonStage
// marches sampled photons to a scattering point and emits direction-carrying
// scattered photons. TransportStage terminates the chain, attenuating every
// upstream photon along the straight path to a fixed detector point.
// Detector-side accumulators subscribe to TransportStage and read its
// per-cycle buffer.
//
// Every stage owns a per-cycle event buffer that is destructively reset at
// the start of the stage's own handling of an upstream notification;
// downstream stages must copy out anything they need to retain across
// cycles. Notification delivery is synchronous and strictly single-threaded;
// a re-entrancy guard turns accidental subscriber cycles into a panic. To
// parallelize across trajectories, instantiate one Pipeline per goroutine
// (the phys.Database caches may be shared).
package xraypipe
