// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package params

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
	"github.com/ava-labs/precompilevm/utils"
)

var (
	errNoKey                 = errors.New("PrecompileUpgrade cannot be empty")
	errMultipleKeys          = errors.New("PrecompileUpgrade must contain exactly one key")
	errUnknownPrecompile     = errors.New("unknown precompile config")
	errNilTimestamp          = errors.New("block timestamp cannot be nil")
	errDisableMismatch       = errors.New("invalid disable flag")
	errTimestampNotIncreased = errors.New("config block timestamp not increased")
	errMismatchingUpgrade    = errors.New("mismatching PrecompileUpgrade")
	errMissingUpgrade        = errors.New("missing PrecompileUpgrade")
)

// PrecompileUpgrade is a helper struct embedded in UpgradeConfig.
// It is used to unmarshal the json into the correct precompile config type
// based on the key. Keys are defined in each precompile module, and registered in
// precompile/registry/registry.go.
type PrecompileUpgrade struct {
	precompileconfig.Config
}

// UnmarshalJSON unmarshals the json into the correct precompile config type
// based on the key. Keys are defined in each precompile module, and registered in
// precompile/registry/registry.go.
// Ex: {"kvStoreConfig": {"blockTimestamp": 1}}
func (u *PrecompileUpgrade) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch len(raw) {
	case 0:
		return errNoKey
	case 1:
	default:
		return errMultipleKeys
	}
	for key, value := range raw {
		module, ok := modules.GetPrecompileModule(key)
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownPrecompile, key)
		}
		config := module.MakeConfig()
		if err := json.Unmarshal(value, config); err != nil {
			return fmt.Errorf("cannot unmarshal %q: %w", key, err)
		}
		u.Config = config
	}
	return nil
}

// MarshalJSON marshal the precompile config into json based on the precompile key.
// Ex: {"kvStoreConfig": {"blockTimestamp": 1}}
func (u *PrecompileUpgrade) MarshalJSON() ([]byte, error) {
	if u.Config == nil {
		return nil, errNoKey
	}
	res := make(map[string]precompileconfig.Config)
	res[u.Key()] = u.Config
	return json.Marshal(res)
}

// UpgradeConfig includes the following configs that may be specified in upgradeBytes:
// - Timestamps that enable or disable precompiles
type UpgradeConfig struct {
	// PrecompileUpgrades is a list of precompile upgrades, ordered by timestamp.
	PrecompileUpgrades []PrecompileUpgrade `json:"precompileUpgrades,omitempty"`
}

// verifyPrecompileUpgrades checks [c.PrecompileUpgrades] is well formed:
//   - [upgrades] must specify exactly one key per PrecompileUpgrade
//   - the specified blockTimestamps must monotonically increase
//   - the specified blockTimestamps must be compatible with those
//     specified in the chainConfig by genesis.
//   - check a precompile is disabled before it is re-enabled
func (c *UpgradeConfig) verifyPrecompileUpgrades(chainConfig precompileconfig.ChainConfig) error {
	type upgradeState struct {
		disabled       bool
		blockTimestamp uint64
	}
	// Precompiles start out disabled.
	lastUpgradeByKey := make(map[string]upgradeState)

	var lastTimestamp uint64
	for i, upgrade := range c.PrecompileUpgrades {
		if upgrade.Config == nil {
			return fmt.Errorf("PrecompileUpgrade at [%d]: %w", i, errNoKey)
		}
		key := upgrade.Key()

		timestamp := upgrade.Timestamp()
		if timestamp == nil {
			return fmt.Errorf("PrecompileUpgrade (%s) at [%d]: %w", key, i, errNilTimestamp)
		}
		// Verify specified timestamps are monotonically increasing across all precompile keys.
		// Note: It is OK for multiple configs of DIFFERENT keys to specify the same timestamp.
		if i > 0 && *timestamp < lastTimestamp {
			return fmt.Errorf("PrecompileUpgrade (%s) at [%d]: %w: config block timestamp (%d) < previous timestamp (%d)", key, i, errTimestampNotIncreased, *timestamp, lastTimestamp)
		}
		lastTimestamp = *timestamp

		last, seen := lastUpgradeByKey[key]
		if !seen {
			last = upgradeState{disabled: true}
		}
		if last.disabled == upgrade.IsDisabled() {
			return fmt.Errorf("PrecompileUpgrade (%s) at [%d]: %w: disable should be [%v]", key, i, errDisableMismatch, !last.disabled)
		}
		if seen && *timestamp <= last.blockTimestamp {
			return fmt.Errorf("PrecompileUpgrade (%s) at [%d]: %w: config block timestamp (%d) <= previous timestamp (%d) of same key", key, i, errTimestampNotIncreased, *timestamp, last.blockTimestamp)
		}

		if err := upgrade.Verify(chainConfig); err != nil {
			return fmt.Errorf("PrecompileUpgrade (%s) at [%d]: %w", key, i, err)
		}

		lastUpgradeByKey[key] = upgradeState{
			disabled:       upgrade.IsDisabled(),
			blockTimestamp: *timestamp,
		}
	}

	return nil
}

// GetActivePrecompileConfig returns the most recent precompile config corresponding to [address].
// If none have occurred, returns nil.
func (c *UpgradeConfig) GetActivePrecompileConfig(address common.Address, timestamp uint64) precompileconfig.Config {
	module, ok := modules.GetPrecompileModuleByAddress(address)
	if !ok {
		return nil
	}
	var active precompileconfig.Config
	for _, upgrade := range c.PrecompileUpgrades {
		if upgrade.Key() != module.ConfigKey {
			continue
		}
		if ts := upgrade.Timestamp(); ts != nil && *ts <= timestamp {
			active = upgrade.Config
		}
	}
	if active == nil || active.IsDisabled() {
		return nil
	}
	return active
}

// IsPrecompileEnabled returns whether precompile with [address] is enabled at [timestamp].
func (c *UpgradeConfig) IsPrecompileEnabled(address common.Address, timestamp uint64) bool {
	return c.GetActivePrecompileConfig(address, timestamp) != nil
}

// GetActivatingPrecompileConfigs returns all precompile upgrades configured to activate during the
// state transition from a block with timestamp [from] to a block with timestamp [to].
// A nil [from] means the state transition starts from genesis.
func (c *UpgradeConfig) GetActivatingPrecompileConfigs(address common.Address, from *uint64, to uint64) []precompileconfig.Config {
	module, ok := modules.GetPrecompileModuleByAddress(address)
	if !ok {
		return nil
	}
	var configs []precompileconfig.Config
	for _, upgrade := range c.PrecompileUpgrades {
		if upgrade.Key() != module.ConfigKey {
			continue
		}
		if isForkTransition(upgrade.Timestamp(), from, to) {
			configs = append(configs, upgrade.Config)
		}
	}
	return configs
}

// CheckPrecompilesCompatible checks if [newConfig] can replace [c] on a chain
// whose last accepted block has [time]. Upgrades that already activated must
// be kept unchanged and in the same order.
func (c *UpgradeConfig) CheckPrecompilesCompatible(newConfig *UpgradeConfig, time uint64) error {
	activated := 0
	for i, upgrade := range c.PrecompileUpgrades {
		if !utils.IsTimestampForked(upgrade.Timestamp(), time) {
			break
		}
		if i >= len(newConfig.PrecompileUpgrades) {
			return fmt.Errorf("%w (%s) at [%d]", errMissingUpgrade, upgrade.Key(), i)
		}
		if !upgrade.Equal(newConfig.PrecompileUpgrades[i].Config) {
			return fmt.Errorf("%w (%s) at [%d]", errMismatchingUpgrade, upgrade.Key(), i)
		}
		activated = i + 1
	}
	// Anything past the activated prefix must still be in the future.
	for i := activated; i < len(newConfig.PrecompileUpgrades); i++ {
		upgrade := newConfig.PrecompileUpgrades[i]
		if utils.IsTimestampForked(upgrade.Timestamp(), time) {
			return fmt.Errorf("%w (%s) at [%d]: timestamp (%d) already passed", errMismatchingUpgrade, upgrade.Key(), i, *upgrade.Timestamp())
		}
	}
	return nil
}

// isForkTransition returns true if [fork] activates in (parent, current].
// A nil [parent] is treated as the transition into genesis.
func isForkTransition(fork *uint64, parent *uint64, current uint64) bool {
	if fork == nil || *fork > current {
		return false
	}
	return parent == nil || !utils.IsTimestampForked(fork, *parent)
}
