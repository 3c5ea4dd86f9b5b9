// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package params

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/precompilevm/precompile/contracts/identity"
	"github.com/ava-labs/precompilevm/precompile/contracts/kvstore"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
	"github.com/ava-labs/precompilevm/utils"
)

var (
	owner     = common.HexToAddress("0x8db97C7cEcE249c2b98bDC0226Cc4C2A57BF52FC")
	testChain = big.NewInt(43112)
)

func TestVerifyPrecompileUpgrades(t *testing.T) {
	tests := map[string]struct {
		upgrades    []PrecompileUpgrade
		expectedErr error
		errContains string
	}{
		"empty": {},
		"enable and disable": {
			upgrades: []PrecompileUpgrade{
				{Config: kvstore.NewConfig(utils.NewUint64(1), nil)},
				{Config: kvstore.NewDisableConfig(utils.NewUint64(2))},
			},
		},
		"enable disable re-enable": {
			upgrades: []PrecompileUpgrade{
				{Config: kvstore.NewConfig(utils.NewUint64(1), nil)},
				{Config: kvstore.NewDisableConfig(utils.NewUint64(2))},
				{Config: kvstore.NewConfig(utils.NewUint64(3), nil)},
			},
		},
		"different keys share a timestamp": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewConfig(utils.NewUint64(1))},
				{Config: kvstore.NewConfig(utils.NewUint64(1), nil)},
			},
		},
		"enable from genesis": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewConfig(utils.NewUint64(0))},
			},
		},
		"nil timestamp": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewConfig(nil)},
			},
			expectedErr: errNilTimestamp,
		},
		"missing config": {
			upgrades:    []PrecompileUpgrade{{}},
			expectedErr: errNoKey,
		},
		"disable first": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewDisableConfig(utils.NewUint64(1))},
			},
			expectedErr: errDisableMismatch,
			errContains: "disable should be [false]",
		},
		"re-enable without disable": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewConfig(utils.NewUint64(1))},
				{Config: identity.NewConfig(utils.NewUint64(2))},
			},
			expectedErr: errDisableMismatch,
			errContains: "disable should be [true]",
		},
		"disable same time as enable": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewConfig(utils.NewUint64(1))},
				{Config: identity.NewDisableConfig(utils.NewUint64(1))},
			},
			expectedErr: errTimestampNotIncreased,
			errContains: "config block timestamp (1) <= previous timestamp (1) of same key",
		},
		"decreasing timestamps across keys": {
			upgrades: []PrecompileUpgrade{
				{Config: identity.NewConfig(utils.NewUint64(5))},
				{Config: kvstore.NewConfig(utils.NewUint64(4), nil)},
			},
			expectedErr: errTimestampNotIncreased,
			errContains: "config block timestamp (4) < previous timestamp (5)",
		},
		"invalid precompile config": {
			upgrades: []PrecompileUpgrade{
				{Config: kvstore.NewConfig(utils.NewUint64(1), []kvstore.InitialValue{
					{Owner: owner},
					{Owner: owner},
				})},
			},
			expectedErr: kvstore.ErrDuplicateInitialValue,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			config := &ChainConfig{
				ChainID: testChain,
				UpgradeConfig: UpgradeConfig{
					PrecompileUpgrades: test.upgrades,
				},
			}
			err := config.Verify()
			require.ErrorIs(err, test.expectedErr)
			if test.errContains != "" {
				require.ErrorContains(err, test.errContains)
			}
		})
	}
}

func TestVerifyNilChainID(t *testing.T) {
	require.ErrorIs(t, (&ChainConfig{}).Verify(), errNilChainID)
}

func TestGetActivePrecompileConfig(t *testing.T) {
	require := require.New(t)

	config := &UpgradeConfig{
		PrecompileUpgrades: []PrecompileUpgrade{
			{Config: kvstore.NewConfig(utils.NewUint64(10), nil)},
			{Config: kvstore.NewDisableConfig(utils.NewUint64(20))},
			{Config: kvstore.NewConfig(utils.NewUint64(30), []kvstore.InitialValue{{Owner: owner}})},
		},
	}

	require.Nil(config.GetActivePrecompileConfig(kvstore.ContractAddress, 9))
	require.False(config.IsPrecompileEnabled(kvstore.ContractAddress, 9))

	require.Equal(config.PrecompileUpgrades[0].Config, config.GetActivePrecompileConfig(kvstore.ContractAddress, 10))
	require.Equal(config.PrecompileUpgrades[0].Config, config.GetActivePrecompileConfig(kvstore.ContractAddress, 19))

	require.Nil(config.GetActivePrecompileConfig(kvstore.ContractAddress, 20))
	require.False(config.IsPrecompileEnabled(kvstore.ContractAddress, 25))

	require.Equal(config.PrecompileUpgrades[2].Config, config.GetActivePrecompileConfig(kvstore.ContractAddress, 30))
	require.True(config.IsPrecompileEnabled(kvstore.ContractAddress, 1000))

	// other precompiles are unaffected
	require.False(config.IsPrecompileEnabled(identity.ContractAddress, 1000))
	// unregistered address
	require.False(config.IsPrecompileEnabled(common.HexToAddress("0x0300000000000000000000000000000000000042"), 1000))
}

func TestGetActivatingPrecompileConfigs(t *testing.T) {
	config := &UpgradeConfig{
		PrecompileUpgrades: []PrecompileUpgrade{
			{Config: identity.NewConfig(utils.NewUint64(0))},
			{Config: identity.NewDisableConfig(utils.NewUint64(10))},
			{Config: identity.NewConfig(utils.NewUint64(20))},
		},
	}
	configs := config.PrecompileUpgrades

	tests := map[string]struct {
		from     *uint64
		to       uint64
		expected []precompileconfig.Config
	}{
		"genesis": {
			from:     nil,
			to:       0,
			expected: []precompileconfig.Config{configs[0].Config},
		},
		"genesis to disable": {
			from:     nil,
			to:       10,
			expected: []precompileconfig.Config{configs[0].Config, configs[1].Config},
		},
		"exclusive parent": {
			from:     utils.NewUint64(0),
			to:       10,
			expected: []precompileconfig.Config{configs[1].Config},
		},
		"no transition": {
			from: utils.NewUint64(11),
			to:   19,
		},
		"all after genesis": {
			from:     utils.NewUint64(0),
			to:       100,
			expected: []precompileconfig.Config{configs[1].Config, configs[2].Config},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, test.expected, config.GetActivatingPrecompileConfigs(identity.ContractAddress, test.from, test.to))
		})
	}
}

func TestPrecompileUpgradeJSON(t *testing.T) {
	require := require.New(t)

	raw := `{
		"precompileUpgrades": [
			{"identityConfig": {"blockTimestamp": 0}},
			{"kvStoreConfig": {"blockTimestamp": 5}},
			{"kvStoreConfig": {"blockTimestamp": 6, "disable": true}}
		]
	}`
	var config UpgradeConfig
	require.NoError(json.Unmarshal([]byte(raw), &config))
	require.Len(config.PrecompileUpgrades, 3)
	require.True(config.PrecompileUpgrades[0].Equal(identity.NewConfig(utils.NewUint64(0))))
	require.True(config.PrecompileUpgrades[1].Equal(kvstore.NewConfig(utils.NewUint64(5), nil)))
	require.True(config.PrecompileUpgrades[2].Equal(kvstore.NewDisableConfig(utils.NewUint64(6))))

	b, err := json.Marshal(config)
	require.NoError(err)

	var decoded UpgradeConfig
	require.NoError(json.Unmarshal(b, &decoded))
	require.Len(decoded.PrecompileUpgrades, 3)
	for i := range config.PrecompileUpgrades {
		require.True(config.PrecompileUpgrades[i].Equal(decoded.PrecompileUpgrades[i].Config))
	}
}

func TestPrecompileUpgradeJSONErrors(t *testing.T) {
	tests := map[string]struct {
		raw         string
		expectedErr error
	}{
		"no key": {
			raw:         `{}`,
			expectedErr: errNoKey,
		},
		"multiple keys": {
			raw:         `{"identityConfig": {"blockTimestamp": 0}, "kvStoreConfig": {"blockTimestamp": 0}}`,
			expectedErr: errMultipleKeys,
		},
		"unknown key": {
			raw:         `{"nativeMinterConfig": {"blockTimestamp": 0}}`,
			expectedErr: errUnknownPrecompile,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var upgrade PrecompileUpgrade
			require.ErrorIs(t, json.Unmarshal([]byte(test.raw), &upgrade), test.expectedErr)
		})
	}
}

func TestCheckPrecompilesCompatible(t *testing.T) {
	stored := &UpgradeConfig{
		PrecompileUpgrades: []PrecompileUpgrade{
			{Config: kvstore.NewConfig(utils.NewUint64(5), nil)},
			{Config: kvstore.NewDisableConfig(utils.NewUint64(10))},
		},
	}

	tests := map[string]struct {
		newConfig   *UpgradeConfig
		time        uint64
		expectedErr error
	}{
		"reschedule before activation": {
			newConfig: &UpgradeConfig{
				PrecompileUpgrades: []PrecompileUpgrade{
					{Config: kvstore.NewConfig(utils.NewUint64(5), nil)},
					{Config: kvstore.NewDisableConfig(utils.NewUint64(12))},
				},
			},
			time: 7,
		},
		"reschedule after activation": {
			newConfig: &UpgradeConfig{
				PrecompileUpgrades: []PrecompileUpgrade{
					{Config: kvstore.NewConfig(utils.NewUint64(5), nil)},
					{Config: kvstore.NewDisableConfig(utils.NewUint64(12))},
				},
			},
			time:        11,
			expectedErr: errMismatchingUpgrade,
		},
		"drop activated upgrade": {
			newConfig:   &UpgradeConfig{},
			time:        5,
			expectedErr: errMissingUpgrade,
		},
		"schedule in the past": {
			newConfig: &UpgradeConfig{
				PrecompileUpgrades: []PrecompileUpgrade{
					{Config: kvstore.NewConfig(utils.NewUint64(5), nil)},
					{Config: kvstore.NewDisableConfig(utils.NewUint64(6))},
				},
			},
			time:        7,
			expectedErr: errMismatchingUpgrade,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, stored.CheckPrecompilesCompatible(test.newConfig, test.time), test.expectedErr)
		})
	}
}
