// Package phys provides the atomic and photon physics the X-ray pipeline
// consumes: an embedded element data set, mass-absorption coefficients with
// edge discontinuities, shell-ionization and transition-probability tables,
// the Klein-Nishina distribution, and the Bremsstrahlung angular
// distribution.
//
// All energies cross package boundaries in joules; the embedded tables are
// in keV and converted at lookup time.
package phys

import (
	"sort"
	"sync"

	"github.com/facette/natsort"
)

// ShellData describes one absorbing shell of one element.
type ShellData struct {
	// Shell identifies the shell.
	Shell Shell
	// EdgeJ is the absorption edge (binding) energy in joules.
	EdgeJ float64
	// IonizationFraction is the probability, derived from the jump ratio,
	// that absorption just above the edge ionizes this shell.
	IonizationFraction float64
	// FluorescenceYield is the probability that the ionization relaxes
	// radiatively.
	FluorescenceYield float64
}

// TransitionLine is one emission line of a shell's transition table.
type TransitionLine struct {
	// Transition identifies the line.
	Transition Transition
	// EnergyJ is the photon energy in joules.
	EnergyJ float64
	// Probability is the photon yield per ionization of the shell: the
	// normalized line fraction times the shell fluorescence yield.
	Probability float64
}

type shellKey struct {
	z     int
	shell Shell
}

// Database serves physics lookups for the pipeline. Shell and transition
// tables are computed lazily on first use and memoized; a Database may be
// shared read-only across independently instantiated pipelines.
type Database struct {
	mu    sync.RWMutex
	shell map[int][]ShellData
	lines map[shellKey][]TransitionLine
}

// NewDatabase creates an empty-cached Database over the embedded element set.
func NewDatabase() *Database {
	return &Database{
		shell: make(map[int][]ShellData),
		lines: make(map[shellKey][]TransitionLine),
	}
}

// Element returns the element record for atomic number z.
func (db *Database) Element(z int) (Element, error) {
	d, ok := elementTable[z]
	if !ok {
		return Element{}, &PhysicsError{Z: z, Op: "element", Err: ErrUnknownElement}
	}
	return Element{Z: z, Symbol: d.symbol, A: d.a, NominalDensity: d.density}, nil
}

// Shells returns the element's tabulated shells ordered by decreasing
// binding energy, with jump-ratio-derived ionization fractions and
// fluorescence yields. The result is memoized; callers must not mutate it.
func (db *Database) Shells(z int) ([]ShellData, error) {
	db.mu.RLock()
	cached, ok := db.shell[z]
	db.mu.RUnlock()
	if ok {
		return cached, nil
	}

	d, found := elementTable[z]
	if !found {
		return nil, &PhysicsError{Z: z, Op: "shells", Err: ErrUnknownElement}
	}

	shells := make([]ShellData, 0, numShells)
	for s := ShellK; s < numShells; s++ {
		edge := d.edgesKeV[s]
		if edge <= 0 {
			continue
		}
		r := jumpRatio(z, s)
		shells = append(shells, ShellData{
			Shell:              s,
			EdgeJ:              FromKeV(edge),
			IonizationFraction: (r - 1) / r,
			FluorescenceYield:  fluorescenceYield(z, s),
		})
	}
	sort.Slice(shells, func(i, j int) bool { return shells[i].EdgeJ > shells[j].EdgeJ })

	db.mu.Lock()
	db.shell[z] = shells
	db.mu.Unlock()
	return shells, nil
}

// Transitions returns the transition table for one shell of one element,
// pruned to lines whose emission rate exceeds 1% of the shell's strongest
// line, normalized, and scaled by the shell fluorescence yield. Lines are
// ordered naturally by name (Ka1, Ka2, Kb1, ...). The result is memoized;
// callers must not mutate it.
func (db *Database) Transitions(z int, s Shell) ([]TransitionLine, error) {
	key := shellKey{z, s}
	db.mu.RLock()
	cached, ok := db.lines[key]
	db.mu.RUnlock()
	if ok {
		return cached, nil
	}

	d, found := elementTable[z]
	if !found {
		return nil, &PhysicsError{Z: z, Op: "transitions", Err: ErrUnknownElement}
	}

	var maxWeight float64
	for _, l := range d.lines {
		if l.shell == s && l.weight > maxWeight {
			maxWeight = l.weight
		}
	}
	if maxWeight == 0 {
		return nil, &PhysicsError{Z: z, Op: "transitions", Err: ErrNoTransitions}
	}

	var kept []lineSpec
	var total float64
	for _, l := range d.lines {
		if l.shell != s || l.weight <= 0.01*maxWeight {
			continue
		}
		kept = append(kept, l)
		total += l.weight
	}

	names := make([]string, len(kept))
	byName := make(map[string]lineSpec, len(kept))
	for i, l := range kept {
		names[i] = l.name
		byName[l.name] = l
	}
	natsort.Sort(names)

	yield := fluorescenceYield(z, s)
	lines := make([]TransitionLine, 0, len(names))
	for _, name := range names {
		l := byName[name]
		lines = append(lines, TransitionLine{
			Transition:  Transition{Z: z, Shell: s, Line: name},
			EnergyJ:     FromKeV(l.energyKeV),
			Probability: yield * l.weight / total,
		})
	}

	db.mu.Lock()
	db.lines[key] = lines
	db.mu.Unlock()
	return lines, nil
}
