// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Defines the interface for the configuration and execution of a precompile contract
package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

// StatefulPrecompiledContract is the interface for executing a precompiled contract
type StatefulPrecompiledContract interface {
	// Run executes the precompiled contract at [callCtx.Address].
	//
	// [gasUsed] is the gas actually consumed and never exceeds a bounded
	// [gasLimit]. A nil error is a successful call. An error wrapping
	// vmerrs.ErrFatal aborts the enclosing transaction. Any other error reverts
	// the current call frame and [ret] is returned to the caller as revert data.
	//
	// If [readOnly] is true, Run must not modify state.
	Run(callCtx *CallContext, input []byte, gasLimit GasLimit, readOnly bool) (ret []byte, gasUsed uint64, err error)
}

// StateReader is the read-only subset of StateDB
type StateReader interface {
	GetState(common.Address, common.Hash) common.Hash
	GetBalance(common.Address) *big.Int
	GetNonce(common.Address) uint64
	Exist(common.Address) bool
}

// StateDB is the interface for accessing EVM state. It is satisfied by
// go-ethereum's *state.StateDB.
type StateDB interface {
	StateReader

	SetState(common.Address, common.Hash, common.Hash)
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)
	SetNonce(common.Address, uint64)
	SetCode(common.Address, []byte)

	AddLog(*types.Log)

	Suicide(common.Address) bool
	Finalise(deleteEmptyObjects bool)

	Snapshot() int
	RevertToSnapshot(int)
}

// AccessibleState defines the interface exposed to stateful precompile contracts
type AccessibleState interface {
	GetStateDB() StateDB
	GetBlockContext() BlockContext
}

// BlockContext defines an interface that provides information to a stateful precompile
// about the current block.
type BlockContext interface {
	Number() *big.Int
	Timestamp() uint64
}

// CallContext is the environment of a single call into a precompile. It is
// built by the caller for the duration of one call and must not be retained
// by the precompile.
type CallContext struct {
	// Caller is the address that issued the call.
	Caller common.Address
	// Address is the address of the precompile being run.
	Address common.Address
	// Value is the apparent value transferred with the call. It is zero for
	// static calls.
	Value *big.Int
	// State gives read access to the world state and the current block.
	State AccessibleState
}

// BlockNumber returns the number of the block the call is executed in.
func (c *CallContext) BlockNumber() *big.Int {
	return c.State.GetBlockContext().Number()
}

// BlockTimestamp returns the timestamp of the block the call is executed in.
func (c *CallContext) BlockTimestamp() uint64 {
	return c.State.GetBlockContext().Timestamp()
}

// Configurator is implemented by every precompile module. It creates the
// module's config type and applies it to state when the precompile activates.
type Configurator interface {
	MakeConfig() precompileconfig.Config
	Configure(
		chainConfig precompileconfig.ChainConfig,
		precompileconfig precompileconfig.Config,
		state StateDB,
		blockContext BlockContext,
	) error
}
