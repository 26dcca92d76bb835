//go:build !invariants

package invariants

// Enabled is true when the binary is built with `-tags invariants`.
const Enabled = false
