// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"math/big"

	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

var (
	_ BlockContext    = (*mockBlockContext)(nil)
	_ AccessibleState = (*mockAccessibleState)(nil)

	_ precompileconfig.ChainConfig = (*mockChainConfig)(nil)
)

type mockBlockContext struct {
	blockNumber *big.Int
	timestamp   uint64
}

// NewMockBlockContext returns a fixed BlockContext for tests and tools that
// run precompiles outside of block processing.
func NewMockBlockContext(blockNumber *big.Int, timestamp uint64) BlockContext {
	return &mockBlockContext{
		blockNumber: blockNumber,
		timestamp:   timestamp,
	}
}

func (mb *mockBlockContext) Number() *big.Int  { return mb.blockNumber }
func (mb *mockBlockContext) Timestamp() uint64 { return mb.timestamp }

type mockAccessibleState struct {
	state        StateDB
	blockContext BlockContext
}

func NewMockAccessibleState(state StateDB, blockContext BlockContext) AccessibleState {
	return &mockAccessibleState{
		state:        state,
		blockContext: blockContext,
	}
}

func (m *mockAccessibleState) GetStateDB() StateDB { return m.state }

func (m *mockAccessibleState) GetBlockContext() BlockContext { return m.blockContext }

type mockChainConfig struct {
	chainID *big.Int
}

// NewMockChainConfig returns a ChainConfig reporting [chainID].
func NewMockChainConfig(chainID *big.Int) precompileconfig.ChainConfig {
	return &mockChainConfig{chainID: chainID}
}

func (m *mockChainConfig) GetChainID() *big.Int { return m.chainID }
