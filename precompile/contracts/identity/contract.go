// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identity

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/precompilevm/precompile/contract"
)

// IdentityGasCost is charged for every call regardless of input length.
const IdentityGasCost uint64 = 15

var (
	_ contract.StatefulPrecompiledContract = (*identity)(nil)

	// Singleton StatefulPrecompiledContract echoing its input.
	IdentityPrecompile contract.StatefulPrecompiledContract = &identity{}
)

type identity struct{}

// Run returns a copy of [input]. It never touches state, so it succeeds in
// read only mode as well.
func (*identity) Run(_ *contract.CallContext, input []byte, gasLimit contract.GasLimit, _ bool) ([]byte, uint64, error) {
	meter := contract.NewGasMeter(gasLimit)
	if err := meter.Consume(IdentityGasCost); err != nil {
		return nil, meter.Used(), err
	}
	return common.CopyBytes(input), meter.Used(), nil
}
