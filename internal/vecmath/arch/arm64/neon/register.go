//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-trackgeom/internal/cpu"
	"github.com/cwbudde/algo-trackgeom/internal/vecmath/registry"
)

// init registers the NEON-optimized implementations with the vecmath registry.
//
// NEON (ARM Advanced SIMD) provides 128-bit SIMD operations and is mandatory
// on ARMv8 (arm64), so it's available on all arm64 CPUs.
//
// Add, Mul and Scale are not implemented in NEON; the top-level dispatch
// functions for those fall back directly to generic without going through
// this registry entry, so leaving those fields nil here is safe. Sum and
// DotProduct, however, only dispatch through the registry, so this entry
// must populate them itself - Lookup() returns one whole entry and never
// merges fields across priority tiers, so an arm64 machine would otherwise
// get a nil function pointer for those two ops.
//
// Priority: 15 (medium-high - ARM's equivalent to AVX/AVX2)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,

		// Reduction operations
		Sum:        Sum,
		DotProduct: DotProduct,
	})
}
