// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/precompilevm/precompile"
	"github.com/ava-labs/precompilevm/precompile/contract"
)

var _ PrecompileSet = (*precompile.Set)(nil)

// PrecompileSet is the registry the router consults before running bytecode.
type PrecompileSet interface {
	// IsPrecompile must be side effect free.
	IsPrecompile(addr common.Address) bool
	// Execute returns false only if [addr] is not a precompile.
	Execute(
		addr common.Address,
		input []byte,
		gasLimit contract.GasLimit,
		callCtx *contract.CallContext,
		readOnly bool,
	) (*precompile.Result, bool)
}

// Frame describes the call frame handed to the interpreter.
type Frame struct {
	Caller  common.Address
	Address common.Address
	Value   *big.Int
	// Gas is the gas available to the frame.
	Gas uint64
	// ReadOnly is set for static calls and everything they call.
	ReadOnly bool
	// Depth is the call depth of this frame, starting at 1.
	Depth int
}

// Interpreter executes the code of non precompiled accounts. Nested calls
// must be made through [router] so they are dispatched the same way.
type Interpreter interface {
	Run(router *Router, frame *Frame, input []byte) (ret []byte, leftOverGas uint64, err error)
}

// NoCode is an Interpreter for chains where accounts carry no code. Every
// call returns immediately without consuming gas.
type NoCode struct{}

func (NoCode) Run(_ *Router, frame *Frame, _ []byte) ([]byte, uint64, error) {
	return nil, frame.Gas, nil
}
