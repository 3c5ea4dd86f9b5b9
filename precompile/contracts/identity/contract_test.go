// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identity

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/testutils"
	"github.com/ava-labs/precompilevm/vmerrs"
)

var (
	caller = common.HexToAddress("0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC")
	input  = []byte("echo this back")

	tests = map[string]testutils.PrecompileTest{
		"echo with enough gas": {
			Caller:          caller,
			Input:           input,
			GasLimit:        contract.LimitGas(20),
			ExpectedRes:     input,
			ExpectedGasUsed: IdentityGasCost,
		},
		"echo with exact gas": {
			Caller:          caller,
			Input:           input,
			GasLimit:        contract.LimitGas(IdentityGasCost),
			ExpectedRes:     input,
			ExpectedGasUsed: IdentityGasCost,
		},
		"out of gas": {
			Caller:          caller,
			Input:           input,
			GasLimit:        contract.LimitGas(10),
			ExpectedErr:     vmerrs.ErrOutOfGas,
			ExpectedGasUsed: 10,
		},
		"zero gas": {
			Caller:      caller,
			Input:       input,
			GasLimit:    contract.LimitGas(0),
			ExpectedErr: vmerrs.ErrOutOfGas,
		},
		"read only": {
			Caller:          caller,
			Input:           input,
			GasLimit:        contract.LimitGas(20),
			ReadOnly:        true,
			ExpectedRes:     input,
			ExpectedGasUsed: IdentityGasCost,
		},
		"unmetered still reports gas": {
			Caller:          caller,
			Input:           input,
			GasLimit:        contract.Unmetered,
			ExpectedRes:     input,
			ExpectedGasUsed: IdentityGasCost,
		},
		"empty input": {
			Caller:          caller,
			Input:           []byte{},
			GasLimit:        contract.LimitGas(20),
			ExpectedRes:     []byte{},
			ExpectedGasUsed: IdentityGasCost,
		},
		"configured": {
			Caller:          caller,
			Input:           input,
			Config:          NewConfig(nil),
			GasLimit:        contract.LimitGas(100),
			ExpectedRes:     input,
			ExpectedGasUsed: IdentityGasCost,
			AfterHook: func(t *testing.T, state contract.StateDB) {
				require.Equal(t, common.Hash{}, state.GetState(ContractAddress, common.Hash{}))
			},
		},
	}
)

func TestIdentityRun(t *testing.T) {
	testutils.RunPrecompileTests(t, Module, tests)
}

func TestIdentityOutputIsCopy(t *testing.T) {
	require := require.New(t)

	in := []byte{1, 2, 3}
	out, _, err := IdentityPrecompile.Run(nil, in, contract.Unmetered, false)
	require.NoError(err)
	out[0] = 9
	require.Equal(byte(1), in[0])
}
