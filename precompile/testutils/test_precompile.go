// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

// TestChainID is reported by the chain config handed to Configure.
var TestChainID = big.NewInt(43112)

// PrecompileTest is a test case for a precompile
type PrecompileTest struct {
	// Caller is the address of the precompile caller
	Caller common.Address
	// Value is the apparent value of the call. Nil means zero.
	Value *big.Int
	// Input the raw input bytes to the precompile
	Input []byte
	// InputFn is a function that returns the raw input bytes to the precompile
	// If specified, Input will be ignored.
	InputFn func(t *testing.T) []byte
	// GasLimit is the gas supplied to the precompile. The zero value is
	// contract.Unmetered.
	GasLimit contract.GasLimit
	// ReadOnly is whether the precompile should be called in read only
	// mode. If true, the precompile should not modify the state.
	ReadOnly bool
	// Config is the config to use for the precompile
	// It should be the same precompile config that is used in the
	// precompile's configurator.
	// If nil, Configure will not be called.
	Config precompileconfig.Config
	// BeforeHook is called before the precompile is called.
	BeforeHook func(t *testing.T, state contract.StateDB)
	// AfterHook is called after the precompile is called.
	AfterHook func(t *testing.T, state contract.StateDB)
	// ExpectedRes is the expected raw byte result returned by the precompile
	ExpectedRes []byte
	// ExpectedErr is the expected error returned by the precompile
	ExpectedErr error
	// ExpectedGasUsed is the gas the precompile is expected to report
	ExpectedGasUsed uint64
	// BlockNumber is the block number to use for the precompile's block context
	BlockNumber int64
	// Timestamp is the block timestamp to use for the precompile's block context
	Timestamp uint64
}

func (test PrecompileTest) Run(t *testing.T, module modules.Module, state contract.StateDB) {
	t.Helper()
	require := require.New(t)

	if test.BeforeHook != nil {
		test.BeforeHook(t, state)
	}

	blockContext := contract.NewMockBlockContext(big.NewInt(test.BlockNumber), test.Timestamp)
	accessibleState := contract.NewMockAccessibleState(state, blockContext)
	chainConfig := contract.NewMockChainConfig(TestChainID)

	if test.Config != nil {
		require.NoError(module.Configure(chainConfig, test.Config, state, blockContext))
	}

	input := test.Input
	if test.InputFn != nil {
		input = test.InputFn(t)
	}

	if input != nil {
		value := test.Value
		if value == nil {
			value = new(big.Int)
		}
		callCtx := &contract.CallContext{
			Caller:  test.Caller,
			Address: module.Address,
			Value:   value,
			State:   accessibleState,
		}
		ret, gasUsed, err := module.Contract.Run(callCtx, input, test.GasLimit, test.ReadOnly)
		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(test.ExpectedGasUsed, gasUsed)
		require.Equal(test.ExpectedRes, ret)
		if limit, bounded := test.GasLimit.Uint64(); bounded {
			require.LessOrEqual(gasUsed, limit)
		}
	}

	if test.AfterHook != nil {
		test.AfterHook(t, state)
	}
}

// RunPrecompileTests runs each test against a fresh in-memory state.
func RunPrecompileTests(t *testing.T, module modules.Module, tests map[string]PrecompileTest) {
	t.Helper()

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.Run(t, module, NewTestStateDB(t))
		})
	}
}

// NewTestStateDB returns an empty state backed by an in-memory database.
func NewTestStateDB(t testing.TB) *state.StateDB {
	t.Helper()

	db := state.NewDatabase(rawdb.NewMemoryDatabase())
	statedb, err := state.New(common.Hash{}, db, nil)
	require.NoError(t, err)
	return statedb
}
