// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/precompilevm/params"
	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/contracts/identity"
	"github.com/ava-labs/precompilevm/precompile/contracts/kvstore"
	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
	"github.com/ava-labs/precompilevm/precompile/testutils"
	"github.com/ava-labs/precompilevm/utils"
	"github.com/ava-labs/precompilevm/utils/logging"
	"github.com/ava-labs/precompilevm/vmerrs"
)

const testConfigKey = "testPrecompileConfig"

var (
	testAddress = common.HexToAddress("0x0300000000000000000000000000000000000001")
	caller      = common.HexToAddress("0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC")

	// testContract forwards to the contract installed by the running test.
	testContract = &delegate{}
)

type delegate struct {
	contract.StatefulPrecompiledContract
}

func init() {
	err := modules.RegisterModule(modules.Module{
		ConfigKey: testConfigKey,
		Address:   testAddress,
		Contract:  testContract,
	})
	if err != nil {
		panic(err)
	}
}

func genesisRules(t *testing.T, configs ...precompileconfig.Config) params.Rules {
	t.Helper()

	chainConfig := &params.ChainConfig{ChainID: testutils.TestChainID}
	for _, cfg := range configs {
		chainConfig.PrecompileUpgrades = append(chainConfig.PrecompileUpgrades, params.PrecompileUpgrade{Config: cfg})
	}
	require.NoError(t, chainConfig.Verify())
	return chainConfig.Rules(0)
}

func newCallContext(t testing.TB, addr common.Address) *contract.CallContext {
	return &contract.CallContext{
		Caller:  caller,
		Address: addr,
		Value:   new(big.Int),
		State: contract.NewMockAccessibleState(
			testutils.NewTestStateDB(t),
			contract.NewMockBlockContext(big.NewInt(1), 0),
		),
	}
}

// installMock registers [mock] as the test precompile and returns a Set
// containing it.
func installMock(t *testing.T, mock contract.StatefulPrecompiledContract) *Set {
	t.Helper()

	testContract.StatefulPrecompiledContract = mock
	t.Cleanup(func() { testContract.StatefulPrecompiledContract = nil })

	config := precompileconfig.NewMockConfig(gomock.NewController(t))
	config.EXPECT().Key().Return(testConfigKey).AnyTimes()

	set, err := NewSet(logging.NoLog{}, nil, params.Rules{
		ActivePrecompiles: map[common.Address]precompileconfig.Config{
			testAddress: config,
		},
	})
	require.NoError(t, err)
	return set
}

func TestEmptySet(t *testing.T) {
	require := require.New(t)

	set, err := NewSet(logging.NoLog{}, nil, genesisRules(t))
	require.NoError(err)
	require.Zero(set.Len())
	require.Empty(set.Addresses())

	for _, addr := range []common.Address{
		{},
		identity.ContractAddress,
		kvstore.ContractAddress,
		common.HexToAddress("0x0000000000000000000000000000000000000002"),
		common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff"),
	} {
		require.False(set.IsPrecompile(addr))
		res, ok := set.Execute(addr, []byte{1}, contract.LimitGas(100), newCallContext(t, addr), false)
		require.False(ok)
		require.Nil(res)
	}
}

func TestIdentityScenario(t *testing.T) {
	require := require.New(t)

	set, err := NewSet(logging.NoLog{}, nil, genesisRules(t, identity.NewConfig(utils.NewUint64(0))))
	require.NoError(err)
	require.True(set.IsPrecompile(identity.ContractAddress))
	require.Equal([]common.Address{identity.ContractAddress}, set.Addresses())

	input := []byte("hello precompile")
	callCtx := newCallContext(t, identity.ContractAddress)

	res, ok := set.Execute(identity.ContractAddress, input, contract.LimitGas(20), callCtx, false)
	require.True(ok)
	require.Equal(Success, res.Status)
	require.Equal(input, res.Output)
	require.Equal(uint64(15), res.GasUsed)
	require.NoError(res.Err)

	res, ok = set.Execute(identity.ContractAddress, input, contract.LimitGas(10), callCtx, false)
	require.True(ok)
	require.Equal(Revert, res.Status)
	require.ErrorIs(res.Err, vmerrs.ErrOutOfGas)
	require.Empty(res.Output)
	require.LessOrEqual(res.GasUsed, uint64(10))

	res, ok = set.Execute(identity.ContractAddress, input, contract.LimitGas(20), callCtx, true)
	require.True(ok)
	require.Equal(Success, res.Status)
	require.Equal(input, res.Output)
	require.Equal(uint64(15), res.GasUsed)
}

func TestStaticCallToMutatingPrecompileReverts(t *testing.T) {
	require := require.New(t)

	set, err := NewSet(logging.NoLog{}, nil, genesisRules(t, kvstore.NewConfig(utils.NewUint64(0), nil)))
	require.NoError(err)

	input, err := kvstore.PackSetValue(common.Hash{1}, common.Hash{2})
	require.NoError(err)

	callCtx := newCallContext(t, kvstore.ContractAddress)
	res, ok := set.Execute(kvstore.ContractAddress, input, contract.LimitGas(100_000), callCtx, true)
	require.True(ok)
	require.Equal(Revert, res.Status)
	require.ErrorIs(res.Err, vmerrs.ErrWriteProtection)
	require.Equal(common.Hash{}, kvstore.GetValue(callCtx.State.GetStateDB(), caller, common.Hash{1}))

	res, ok = set.Execute(kvstore.ContractAddress, input, contract.LimitGas(100_000), callCtx, false)
	require.True(ok)
	require.Equal(Success, res.Status)
	require.Equal(common.Hash{2}, kvstore.GetValue(callCtx.State.GetStateDB(), caller, common.Hash{1}))
}

func TestNewSetUnknownAddress(t *testing.T) {
	_, err := NewSet(logging.NoLog{}, nil, params.Rules{
		ActivePrecompiles: map[common.Address]precompileconfig.Config{
			common.HexToAddress("0x0300000000000000000000000000000000000099"): identity.NewConfig(utils.NewUint64(0)),
		},
	})
	require.ErrorIs(t, err, ErrUnregisteredPrecompile)
}

func TestNewSetMismatchedConfig(t *testing.T) {
	_, err := NewSet(logging.NoLog{}, nil, params.Rules{
		ActivePrecompiles: map[common.Address]precompileconfig.Config{
			kvstore.ContractAddress: identity.NewConfig(utils.NewUint64(0)),
		},
	})
	require.ErrorContains(t, err, "registered as")
}

func TestNewSetIsIdempotent(t *testing.T) {
	require := require.New(t)

	rules := genesisRules(t,
		identity.NewConfig(utils.NewUint64(0)),
		kvstore.NewConfig(utils.NewUint64(0), nil),
	)
	first, err := NewSet(logging.NoLog{}, nil, rules)
	require.NoError(err)
	second, err := NewSet(logging.NoLog{}, nil, rules)
	require.NoError(err)

	require.Equal(first.Addresses(), second.Addresses())
	require.Equal([]common.Address{identity.ContractAddress, kvstore.ContractAddress}, first.Addresses())

	getValue, err := kvstore.PackGetValue(common.Hash{1})
	require.NoError(err)
	inputs := map[common.Address][]byte{
		identity.ContractAddress: []byte("same"),
		kvstore.ContractAddress:  getValue,
	}
	for addr, input := range inputs {
		a, ok := first.Execute(addr, input, contract.LimitGas(10_000), newCallContext(t, addr), true)
		require.True(ok)
		b, ok := second.Execute(addr, input, contract.LimitGas(10_000), newCallContext(t, addr), true)
		require.True(ok)
		require.Equal(a, b)
	}
}

func TestExecuteClassifiesOutcome(t *testing.T) {
	errCustom := errors.New("custom revert")

	tests := map[string]struct {
		setup          func(mock *contract.MockStatefulPrecompiledContract)
		gasLimit       contract.GasLimit
		expectedStatus Status
		expectedOutput []byte
		expectedGas    uint64
		expectedErr    error
	}{
		"success": {
			setup: func(mock *contract.MockStatefulPrecompiledContract) {
				mock.EXPECT().Run(gomock.Any(), []byte{1}, contract.LimitGas(100), false).Return([]byte{2}, uint64(40), nil)
			},
			gasLimit:       contract.LimitGas(100),
			expectedStatus: Success,
			expectedOutput: []byte{2},
			expectedGas:    40,
		},
		"revert keeps output": {
			setup: func(mock *contract.MockStatefulPrecompiledContract) {
				mock.EXPECT().Run(gomock.Any(), []byte{1}, contract.LimitGas(100), false).Return([]byte("reason"), uint64(30), errCustom)
			},
			gasLimit:       contract.LimitGas(100),
			expectedStatus: Revert,
			expectedOutput: []byte("reason"),
			expectedGas:    30,
			expectedErr:    errCustom,
		},
		"fatal": {
			setup: func(mock *contract.MockStatefulPrecompiledContract) {
				mock.EXPECT().Run(gomock.Any(), []byte{1}, contract.LimitGas(100), false).Return([]byte("dropped"), uint64(30), fmt.Errorf("%w: broken invariant", vmerrs.ErrFatal))
			},
			gasLimit:       contract.LimitGas(100),
			expectedStatus: Fatal,
			expectedGas:    30,
			expectedErr:    vmerrs.ErrFatal,
		},
		"gas overuse is fatal": {
			setup: func(mock *contract.MockStatefulPrecompiledContract) {
				mock.EXPECT().Run(gomock.Any(), []byte{1}, contract.LimitGas(100), false).Return([]byte{2}, uint64(101), nil)
			},
			gasLimit:       contract.LimitGas(100),
			expectedStatus: Fatal,
			expectedGas:    100,
			expectedErr:    vmerrs.ErrFatal,
		},
		"unmetered overuse is not checked": {
			setup: func(mock *contract.MockStatefulPrecompiledContract) {
				mock.EXPECT().Run(gomock.Any(), []byte{1}, contract.Unmetered, false).Return([]byte{2}, uint64(1_000_000), nil)
			},
			gasLimit:       contract.Unmetered,
			expectedStatus: Success,
			expectedOutput: []byte{2},
			expectedGas:    1_000_000,
		},
		"panic is fatal": {
			setup: func(mock *contract.MockStatefulPrecompiledContract) {
				mock.EXPECT().Run(gomock.Any(), []byte{1}, contract.LimitGas(100), false).DoAndReturn(
					func(*contract.CallContext, []byte, contract.GasLimit, bool) ([]byte, uint64, error) {
						panic("index out of range")
					},
				)
			},
			gasLimit:       contract.LimitGas(100),
			expectedStatus: Fatal,
			expectedGas:    100,
			expectedErr:    vmerrs.ErrFatal,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			mock := contract.NewMockStatefulPrecompiledContract(gomock.NewController(t))
			test.setup(mock)
			set := installMock(t, mock)

			res, ok := set.Execute(testAddress, []byte{1}, test.gasLimit, newCallContext(t, testAddress), false)
			require.True(ok)
			require.Equal(test.expectedStatus, res.Status)
			require.Equal(test.expectedOutput, res.Output)
			require.Equal(test.expectedGas, res.GasUsed)
			require.ErrorIs(res.Err, test.expectedErr)
			require.Equal(test.expectedStatus != Success, res.Failed())
		})
	}
}

func TestExecutePassesCallContext(t *testing.T) {
	require := require.New(t)

	mock := contract.NewMockStatefulPrecompiledContract(gomock.NewController(t))
	set := installMock(t, mock)
	callCtx := newCallContext(t, testAddress)

	mock.EXPECT().Run(callCtx, []byte{7}, contract.LimitGas(5), true).Return(nil, uint64(0), nil)
	res, ok := set.Execute(testAddress, []byte{7}, contract.LimitGas(5), callCtx, true)
	require.True(ok)
	require.Equal(Success, res.Status)
}

func TestConcurrentExecute(t *testing.T) {
	require := require.New(t)

	set, err := NewSet(logging.NoLog{}, nil, genesisRules(t,
		identity.NewConfig(utils.NewUint64(0)),
		kvstore.NewConfig(utils.NewUint64(0), nil),
	))
	require.NoError(err)

	getValue, err := kvstore.PackGetValue(common.Hash{1})
	require.NoError(err)

	var eg errgroup.Group
	for i := 0; i < 64; i++ {
		i := i
		eg.Go(func() error {
			input := []byte{byte(i)}
			res, ok := set.Execute(identity.ContractAddress, input, contract.LimitGas(20), newCallContext(t, identity.ContractAddress), false)
			if !ok || res.Status != Success || string(res.Output) != string(input) {
				return fmt.Errorf("identity call %d returned %v", i, res)
			}
			res, ok = set.Execute(kvstore.ContractAddress, getValue, contract.LimitGas(kvstore.GetValueGasCost), newCallContext(t, kvstore.ContractAddress), true)
			if !ok || res.Status != Success || res.GasUsed != kvstore.GetValueGasCost {
				return fmt.Errorf("kvstore call %d returned %v", i, res)
			}
			return nil
		})
	}
	require.NoError(eg.Wait())
}

func TestMetrics(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics("precompilevm", registry)
	require.NoError(err)

	set, err := NewSet(logging.NoLog{}, metrics, genesisRules(t, identity.NewConfig(utils.NewUint64(0))))
	require.NoError(err)

	callCtx := newCallContext(t, identity.ContractAddress)
	set.Execute(identity.ContractAddress, []byte{1}, contract.LimitGas(20), callCtx, false)
	set.Execute(identity.ContractAddress, []byte{1}, contract.LimitGas(20), callCtx, false)
	set.Execute(identity.ContractAddress, []byte{1}, contract.LimitGas(10), callCtx, false)

	require.Equal(2.0, testutil.ToFloat64(metrics.calls.WithLabelValues(identity.ConfigKey, Success.String())))
	require.Equal(1.0, testutil.ToFloat64(metrics.calls.WithLabelValues(identity.ConfigKey, Revert.String())))
	require.Equal(2, testutil.CollectAndCount(metrics.calls))
	require.Equal(1, testutil.CollectAndCount(metrics.gasUsed))

	// Registering twice on the same registerer fails without returning
	// partially registered metrics.
	metrics, err = NewMetrics("precompilevm", registry)
	require.Error(err)
	require.Nil(metrics)
}

func TestExecuteLogs(t *testing.T) {
	require := require.New(t)

	core, logs := observer.New(zapcore.Level(logging.Verbo))
	log := logging.NewLogger("", logging.WrappedCore{
		Core:        core,
		AtomicLevel: zap.NewAtomicLevelAt(zapcore.Level(logging.Verbo)),
	})

	set, err := NewSet(log, nil, genesisRules(t, identity.NewConfig(utils.NewUint64(0))))
	require.NoError(err)

	set.Execute(identity.ContractAddress, []byte{1}, contract.LimitGas(20), newCallContext(t, identity.ContractAddress), true)

	entries := logs.FilterMessage("precompile executed").All()
	require.Len(entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(identity.ConfigKey, fields["precompile"])
	require.Equal("success", fields["status"])
	require.Equal(uint64(15), fields["gasUsed"])
	require.Equal(true, fields["readOnly"])
}

func TestStatusJSON(t *testing.T) {
	require := require.New(t)

	for _, status := range []Status{Success, Revert, Fatal} {
		b, err := status.MarshalJSON()
		require.NoError(err)

		var decoded Status
		require.NoError(decoded.UnmarshalJSON(b))
		require.Equal(status, decoded)
	}

	var s Status
	require.ErrorIs(s.UnmarshalJSON([]byte(`"halted"`)), errUnknownStatus)
}
