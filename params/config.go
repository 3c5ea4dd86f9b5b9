// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

var (
	_ precompileconfig.ChainConfig = (*ChainConfig)(nil)

	errNilChainID = errors.New("chainID cannot be nil")
)

// ChainConfig is the configuration handed to precompiles when they are
// verified and configured. [UpgradeConfig] schedules which precompiles are
// active at which block timestamp.
type ChainConfig struct {
	ChainID *big.Int `json:"chainID"`

	UpgradeConfig `json:"upgrades"`
}

// GetChainID returns the chain ID.
func (c *ChainConfig) GetChainID() *big.Int {
	return c.ChainID
}

// Verify returns an error if [c] is not a valid chain configuration.
func (c *ChainConfig) Verify() error {
	if c.ChainID == nil {
		return errNilChainID
	}
	if err := c.verifyPrecompileUpgrades(c); err != nil {
		return fmt.Errorf("invalid precompile upgrades: %w", err)
	}
	return nil
}

func (c *ChainConfig) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("ChainConfig{ChainID: %v, <unmarshalable upgrades: %v>}", c.ChainID, err)
	}
	return string(b)
}

// Rules returns the precompiles active at [timestamp].
func (c *ChainConfig) Rules(timestamp uint64) Rules {
	rules := Rules{
		ChainID:           new(big.Int),
		Timestamp:         timestamp,
		ActivePrecompiles: make(map[common.Address]precompileconfig.Config),
	}
	if c.ChainID != nil {
		rules.ChainID.Set(c.ChainID)
	}
	for _, module := range modules.RegisteredModules() {
		if config := c.GetActivePrecompileConfig(module.Address, timestamp); config != nil {
			rules.ActivePrecompiles[module.Address] = config
		}
	}
	return rules
}

// Rules is a one time interface meaning that it shouldn't be used in between transition
// phases.
type Rules struct {
	ChainID   *big.Int
	Timestamp uint64

	// ActivePrecompiles maps addresses to stateful precompile configs that are enabled
	// for this rule set.
	// Note: none of these addresses should conflict with the address space used by
	// any existing precompiles.
	ActivePrecompiles map[common.Address]precompileconfig.Config
}

// IsPrecompileEnabled returns true if the precompile at [addr] is enabled for this rule set.
func (r *Rules) IsPrecompileEnabled(addr common.Address) bool {
	_, ok := r.ActivePrecompiles[addr]
	return ok
}
