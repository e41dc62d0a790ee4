package sim

import (
	"hash/fnv"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// === Subsystem Constants ===

const (
	// SubsystemArrivals drives inter-arrival times of every category stream.
	SubsystemArrivals = "arrivals"

	// SubsystemStays drives lengths of stay.
	SubsystemStays = "stays"

	// SubsystemRelocation drives relocation destination draws.
	SubsystemRelocation = "relocation"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName), fed to a PCG source.
// Isolation keeps, for example, the arrival stream unchanged when the relocation
// policy changes how many relocation draws are taken.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
	sources    map[string]*rand.PCG
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
		sources:    make(map[string]*rand.PCG),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	src := rand.NewPCG(p.derive(name))
	rng := rand.New(src)
	p.sources[name] = src
	p.subsystems[name] = rng
	return rng
}

// Reset rewinds every subsystem stream to its initial state. The *rand.Rand instances
// handed out earlier stay valid and replay the same sequence.
func (p *PartitionedRNG) Reset() {
	for name, src := range p.sources {
		src.Seed(p.derive(name))
	}
}

func (p *PartitionedRNG) derive(name string) (uint64, uint64) {
	derived := uint64(p.seed ^ fnv1a64(name))
	return derived, derived ^ 0x9e3779b97f4a7c15
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// sampleExponential draws from Exp(rate) using src.
func sampleExponential(src rand.Source, rate float64) float64 {
	return distuv.Exponential{Rate: rate, Src: src}.Rand()
}
