// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package identity

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
const ConfigKey = "identityConfig"

var ContractAddress = common.HexToAddress("0x0000000000000000000000000000000000000001")

var Module = modules.Module{
	ConfigKey:    ConfigKey,
	Address:      ContractAddress,
	Contract:     IdentityPrecompile,
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

// Configure has nothing to write. It only checks [cfg] belongs to this module.
func (*configurator) Configure(_ precompileconfig.ChainConfig, cfg precompileconfig.Config, _ contract.StateDB, _ contract.BlockContext) error {
	if _, ok := cfg.(*Config); !ok {
		return fmt.Errorf("incorrect config %T: %v", cfg, cfg)
	}
	return nil
}
