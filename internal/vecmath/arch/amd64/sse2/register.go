//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-trackgeom/internal/cpu"
	"github.com/cwbudde/algo-trackgeom/internal/vecmath/registry"
)

// init registers the SSE2-optimized implementations with the vecmath registry.
//
// SSE2 provides 128-bit SIMD operations and is part of the x86-64 baseline,
// so it's available on all amd64 CPUs.
//
// Add, Mul and Scale are not implemented in SSE2; the top-level dispatch
// functions for those fall back directly to AVX2 or generic without going
// through this registry entry, so leaving those fields nil here is safe.
// Sum and DotProduct, however, only dispatch through the registry, so this
// entry must populate them itself - Lookup() returns one whole entry and
// never merges fields across priority tiers, so an SSE2 machine would
// otherwise get a nil function pointer for those two ops.
//
// Priority: 10 (medium - preferred over generic, but lower than AVX2)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,

		// Reduction operations
		Sum:        Sum,
		DotProduct: DotProduct,
	})
}
