// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

var _ contract.Configurator = (*configurator)(nil)

// ConfigKey is the key used in json config files to specify this precompile config.
// must be unique across all precompiles.
const ConfigKey = "kvStoreConfig"

var ContractAddress = common.HexToAddress("0x0200000000000000000000000000000000000001")

var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     KVStorePrecompile,
	Configurator: &configurator{},
}

type configurator struct{}

func init() {
	if err := modules.RegisterModule(Module); err != nil {
		panic(err)
	}
}

func (*configurator) MakeConfig() precompileconfig.Config {
	return new(Config)
}

// Configure writes the initial values of [cfg] into [state].
func (*configurator) Configure(_ precompileconfig.ChainConfig, cfg precompileconfig.Config, state contract.StateDB, _ contract.BlockContext) error {
	config, ok := cfg.(*Config)
	if !ok {
		return fmt.Errorf("incorrect config %T: %v", cfg, cfg)
	}
	for _, v := range config.InitialValues {
		StoreValue(state, v.Owner, v.Key, v.Value)
	}
	return nil
}
