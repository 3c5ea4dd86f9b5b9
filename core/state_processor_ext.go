// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/precompilevm/params"
	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/utils/logging"
)

// ApplyPrecompileActivations checks if any of the precompiles specified by the chain config are enabled or disabled by the block
// transition from [parentTimestamp] to the timestamp set in [blockContext]. If this is the case, it calls [Configure]
// to apply the necessary state transitions for the upgrade.
// A nil [parentTimestamp] configures the starting state of precompiles enabled at genesis.
func ApplyPrecompileActivations(
	c *params.ChainConfig,
	parentTimestamp *uint64,
	blockContext contract.BlockContext,
	statedb contract.StateDB,
	log logging.Logger,
) error {
	blockTimestamp := blockContext.Timestamp()
	// Note: RegisteredModules returns precompiles sorted by module addresses.
	// This ensures that the order we call Configure for each precompile is consistent.
	// This ensures even if precompiles read/write state other than their own they will observe
	// an identical global state in a deterministic order when they are configured.
	for _, module := range modules.RegisteredModules() {
		for _, activatingConfig := range c.GetActivatingPrecompileConfigs(module.Address, parentTimestamp, blockTimestamp) {
			// If this transition activates the upgrade, configure the stateful precompile.
			// (or deconfigure it if it is being disabled.)
			if activatingConfig.IsDisabled() {
				log.Info("disabling precompile",
					zap.String("name", module.ConfigKey),
					zap.Uint64("timestamp", blockTimestamp),
				)
				statedb.Suicide(module.Address)
				// Calling Finalise here effectively commits Suicide call and wipes the contract state.
				// This enables re-configuration of the same contract state in the same block.
				// Without an immediate Finalise call after the Suicide, a reconfigured precompiled state can be wiped out
				// since Suicide will be committed after the reconfiguration.
				statedb.Finalise(true)
				continue
			}

			configJSON, err := json.Marshal(activatingConfig)
			if err != nil {
				return fmt.Errorf("could not marshal config of precompile %s: %w", module.ConfigKey, err)
			}
			log.Info("activating new precompile",
				zap.String("name", module.ConfigKey),
				zap.Uint64("timestamp", blockTimestamp),
				zap.ByteString("config", configJSON),
			)
			// Set the nonce of the precompile's address (as is done when a contract is created) to ensure
			// that it is marked as non-empty and will not be cleaned up when the statedb is finalized.
			statedb.SetNonce(module.Address, 1)
			// Set the code of the precompile's address to a non-zero length byte slice to ensure that the precompile
			// can be called from within Solidity contracts. Solidity adds a check before invoking a contract to ensure
			// that it does not attempt to invoke a non-existent contract.
			statedb.SetCode(module.Address, []byte{0x1})
			if err := module.Configure(c, activatingConfig, statedb, blockContext); err != nil {
				return fmt.Errorf("could not configure precompile, name: %s, reason: %w", module.ConfigKey, err)
			}
		}
	}
	return nil
}
