// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"go.uber.org/zap"

	"github.com/ava-labs/precompilevm/precompile"
	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/utils/logging"
	"github.com/ava-labs/precompilevm/vmerrs"
)

// MaxCallDepth is the maximum depth of nested calls.
const MaxCallDepth = int(params.CallCreateDepth)

var _ contract.AccessibleState = (*Router)(nil)

// Router dispatches the calls of one transaction either to a precompile or
// to the interpreter. A Router is not safe for concurrent use and must not be
// shared between transactions.
type Router struct {
	log         logging.Logger
	precompiles PrecompileSet
	interpreter Interpreter
	state       contract.StateDB
	block       contract.BlockContext

	depth    int
	readOnly bool
	// fatal is set once a precompile aborts the transaction. No further calls
	// are dispatched afterwards.
	fatal error
}

func NewRouter(
	precompiles PrecompileSet,
	interpreter Interpreter,
	state contract.StateDB,
	block contract.BlockContext,
	log logging.Logger,
) *Router {
	return &Router{
		log:         log,
		precompiles: precompiles,
		interpreter: interpreter,
		state:       state,
		block:       block,
	}
}

func (r *Router) GetStateDB() contract.StateDB { return r.state }

func (r *Router) GetBlockContext() contract.BlockContext { return r.block }

// Depth returns the depth of the call currently executing. It is 0 outside
// of any call.
func (r *Router) Depth() int { return r.depth }

// ReadOnly returns true while a static call is executing.
func (r *Router) ReadOnly() bool { return r.readOnly }

// Fatal returns the error that aborted the transaction, if any.
func (r *Router) Fatal() error { return r.fatal }

// Call executes the call to [addr] with [input], transferring [value] from
// [caller]. It returns the gas not consumed by the call.
func (r *Router) Call(caller, addr common.Address, input []byte, gas uint64, value *big.Int) ([]byte, uint64, error) {
	if r.fatal != nil {
		return nil, 0, r.fatal
	}
	if value == nil {
		value = new(big.Int)
	}
	if r.depth > MaxCallDepth {
		return nil, gas, vmerrs.ErrDepth
	}
	// Moving value is a mutation.
	if r.readOnly && value.Sign() != 0 {
		return nil, gas, vmerrs.ErrWriteProtection
	}
	if value.Sign() != 0 && r.state.GetBalance(caller).Cmp(value) < 0 {
		return nil, gas, vmerrs.ErrInsufficientBalance
	}

	snapshot := r.state.Snapshot()
	if value.Sign() != 0 {
		r.state.SubBalance(caller, value)
		r.state.AddBalance(addr, value)
	}

	r.depth++
	defer func() { r.depth-- }()

	if r.precompiles.IsPrecompile(addr) {
		return r.callPrecompile(caller, addr, input, gas, value, snapshot)
	}

	frame := &Frame{
		Caller:   caller,
		Address:  addr,
		Value:    value,
		Gas:      gas,
		ReadOnly: r.readOnly,
		Depth:    r.depth,
	}
	ret, leftOverGas, err := r.interpreter.Run(r, frame, input)
	if err != nil {
		r.state.RevertToSnapshot(snapshot)
		if vmerrs.IsFatal(err) {
			r.abort(addr, err)
			return nil, 0, err
		}
		if err != vmerrs.ErrExecutionReverted {
			leftOverGas = 0
		}
	}
	return ret, leftOverGas, err
}

// StaticCall executes the call to [addr] in read only mode. Every call made
// while it runs is read only as well.
func (r *Router) StaticCall(caller, addr common.Address, input []byte, gas uint64) ([]byte, uint64, error) {
	if !r.readOnly {
		r.readOnly = true
		defer func() { r.readOnly = false }()
	}
	return r.Call(caller, addr, input, gas, new(big.Int))
}

func (r *Router) callPrecompile(
	caller, addr common.Address,
	input []byte,
	gas uint64,
	value *big.Int,
	snapshot int,
) ([]byte, uint64, error) {
	callCtx := &contract.CallContext{
		Caller:  caller,
		Address: addr,
		Value:   value,
		State:   r,
	}
	res, ok := r.precompiles.Execute(addr, input, contract.LimitGas(gas), callCtx, r.readOnly)
	switch {
	case !ok:
		err := fmt.Errorf("%w %s", vmerrs.ErrUnknownPrecompile, addr)
		r.state.RevertToSnapshot(snapshot)
		r.abort(addr, err)
		return nil, 0, err
	case res.GasUsed > gas:
		err := fmt.Errorf("%w: precompile %s used %d gas of %d", vmerrs.ErrFatal, addr, res.GasUsed, gas)
		r.state.RevertToSnapshot(snapshot)
		r.abort(addr, err)
		return nil, 0, err
	}

	switch res.Status {
	case precompile.Success:
		return res.Output, gas - res.GasUsed, nil
	case precompile.Revert:
		r.state.RevertToSnapshot(snapshot)
		return res.Output, gas - res.GasUsed, res.Err
	default:
		err := res.Err
		if err == nil {
			err = vmerrs.ErrFatal
		}
		r.state.RevertToSnapshot(snapshot)
		r.abort(addr, err)
		return nil, 0, err
	}
}

func (r *Router) abort(addr common.Address, err error) {
	r.log.Error("aborting transaction",
		zap.Stringer("address", addr),
		zap.Int("depth", r.depth),
		zap.Error(err),
	)
	r.fatal = err
}
