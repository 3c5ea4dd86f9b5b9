// (c) 2023, Ava Labs, Inc.
//
// This file is a derived work, based on the go-ethereum library whose original
// notices appear below.
//
// It is distributed under a license compatible with the licensing terms of the
// original code from which it is derived.
//
// Much love to the original authors for their work.
// **********
// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package core

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/precompilevm/core/vm"
	"github.com/ava-labs/precompilevm/vmerrs"
)

var errNilRouter = errors.New("router cannot be nil")

// Message is a single top level call.
type Message struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Gas   uint64
	Data  []byte
	// Static executes the call in read only mode.
	Static bool
}

// ExecutionResult includes all output after executing given evm
// message no matter the execution itself is successful or not.
type ExecutionResult struct {
	UsedGas    uint64 // Total used gas
	Err        error  // Any error encountered during the execution(listed in core/vm/errors.go)
	ReturnData []byte // Returned data from evm(function result or data supplied with revert opcode)
}

// Unwrap returns the internal evm error which allows us for further
// analysis outside.
func (result *ExecutionResult) Unwrap() error {
	return result.Err
}

// Failed returns the indicator whether the execution is successful or not
func (result *ExecutionResult) Failed() bool { return result.Err != nil }

// Return is a helper function to help caller distinguish between revert reason
// and function return. Return returns the data after execution if no error occurs.
func (result *ExecutionResult) Return() []byte {
	if result.Err != nil {
		return nil
	}
	return common.CopyBytes(result.ReturnData)
}

// Revert returns the concrete revert reason if the execution is aborted by `REVERT`
// opcode or a reverting precompile. Note the reason can be nil if no data supplied with revert opcode.
func (result *ExecutionResult) Revert() []byte {
	if result.Err == nil {
		return nil
	}
	return common.CopyBytes(result.ReturnData)
}

// ApplyCall executes [msg] through [router]. A call failure is reported in
// the ExecutionResult. The returned error is non-nil only if the transaction
// was aborted, in which case every state change made by [msg] is reverted.
func ApplyCall(router *vm.Router, msg *Message) (*ExecutionResult, error) {
	if router == nil {
		return nil, errNilRouter
	}

	statedb := router.GetStateDB()
	snapshot := statedb.Snapshot()

	var (
		ret         []byte
		leftOverGas uint64
		err         error
	)
	switch {
	case msg.Static && msg.Value != nil && msg.Value.Sign() != 0:
		leftOverGas, err = msg.Gas, vmerrs.ErrWriteProtection
	case msg.Static:
		ret, leftOverGas, err = router.StaticCall(msg.From, msg.To, msg.Data, msg.Gas)
	default:
		ret, leftOverGas, err = router.Call(msg.From, msg.To, msg.Data, msg.Gas, msg.Value)
	}

	if fatal := router.Fatal(); fatal != nil || vmerrs.IsFatal(err) {
		statedb.RevertToSnapshot(snapshot)
		if fatal != nil {
			return nil, fatal
		}
		return nil, err
	}

	return &ExecutionResult{
		UsedGas:    msg.Gas - leftOverGas,
		Err:        err,
		ReturnData: ret,
	}, nil
}
