// (c) 2019-2020, Ava Labs, Inc.
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

package vmerrs

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/vm"
)

// List evm execution errors
var (
	ErrOutOfGas            = vm.ErrOutOfGas
	ErrDepth               = vm.ErrDepth
	ErrInsufficientBalance = vm.ErrInsufficientBalance
	ErrExecutionReverted   = vm.ErrExecutionReverted
	ErrWriteProtection     = vm.ErrWriteProtection
	ErrGasUintOverflow     = vm.ErrGasUintOverflow

	// ErrFatal marks an unrecoverable failure. Any error wrapping it aborts the
	// enclosing transaction instead of unwinding a single call frame.
	ErrFatal = errors.New("fatal precompile error")
	// ErrUnknownPrecompile is returned when dispatch reaches an address that
	// was reported as a precompile but has none. It is always fatal.
	ErrUnknownPrecompile = fmt.Errorf("%w: no precompile registered at address", ErrFatal)
)

// IsFatal returns true if [err] must abort the enclosing transaction.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}
