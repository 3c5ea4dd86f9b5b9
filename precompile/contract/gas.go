// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/ava-labs/precompilevm/vmerrs"
)

// Unmetered is a GasLimit without an upper bound. Precompiles still report the
// gas they consume.
var Unmetered = GasLimit{}

// GasLimit is an optional upper bound on the gas a single call may consume.
type GasLimit struct {
	limit   uint64
	bounded bool
}

// LimitGas returns a GasLimit bounded by [limit].
func LimitGas(limit uint64) GasLimit {
	return GasLimit{
		limit:   limit,
		bounded: true,
	}
}

// Uint64 returns the limit and true, or zero and false if [g] is unbounded.
func (g GasLimit) Uint64() (uint64, bool) {
	return g.limit, g.bounded
}

// Allows returns true if consuming [gas] stays within the limit.
func (g GasLimit) Allows(gas uint64) bool {
	return !g.bounded || gas <= g.limit
}

func (g GasLimit) String() string {
	if !g.bounded {
		return "unmetered"
	}
	return fmt.Sprintf("%d", g.limit)
}

// GasMeter tracks the gas consumed by one precompile invocation. Cost must be
// consumed before the work it pays for is performed.
type GasMeter struct {
	limit GasLimit
	used  uint64
}

func NewGasMeter(limit GasLimit) *GasMeter {
	return &GasMeter{limit: limit}
}

// Consume charges [cost]. If the limit would be exceeded, all of the supplied
// gas is consumed and ErrOutOfGas is returned.
func (m *GasMeter) Consume(cost uint64) error {
	used, overflow := math.SafeAdd(m.used, cost)
	if overflow {
		m.exhaust()
		return vmerrs.ErrGasUintOverflow
	}
	if !m.limit.Allows(used) {
		m.exhaust()
		return vmerrs.ErrOutOfGas
	}
	m.used = used
	return nil
}

// Used returns the gas consumed so far.
func (m *GasMeter) Used() uint64 {
	return m.used
}

func (m *GasMeter) exhaust() {
	if limit, bounded := m.limit.Uint64(); bounded {
		m.used = limit
	}
}
