// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

var (
	_ precompileconfig.Config = (*Config)(nil)

	ErrDuplicateInitialValue = errors.New("duplicate initial value")
	ErrDisableWithValues     = errors.New("disable config cannot set initial values")
)

// InitialValue is written to state when the precompile activates.
type InitialValue struct {
	Owner common.Address `json:"owner"`
	Key   common.Hash    `json:"key"`
	Value common.Hash    `json:"value"`
}

// Config implements the precompileconfig.Config interface and seeds the
// store with [InitialValues] on activation.
type Config struct {
	precompileconfig.Upgrade
	InitialValues []InitialValue `json:"initialValues,omitempty"`
}

// NewConfig returns a config for a network upgrade at [blockTimestamp] that
// enables the key value store with [initialValues].
func NewConfig(blockTimestamp *uint64, initialValues []InitialValue) *Config {
	return &Config{
		Upgrade:       precompileconfig.Upgrade{BlockTimestamp: blockTimestamp},
		InitialValues: initialValues,
	}
}

// NewDisableConfig returns config for a network upgrade at [blockTimestamp]
// that disables the key value store.
func NewDisableConfig(blockTimestamp *uint64) *Config {
	return &Config{
		Upgrade: precompileconfig.Upgrade{
			BlockTimestamp: blockTimestamp,
			Disable:        true,
		},
	}
}

func (*Config) Key() string { return ConfigKey }

// Verify tries to verify Config and returns an error accordingly.
func (c *Config) Verify(precompileconfig.ChainConfig) error {
	if c.Disable && len(c.InitialValues) > 0 {
		return ErrDisableWithValues
	}
	type slot struct {
		owner common.Address
		key   common.Hash
	}
	seen := make(map[slot]struct{}, len(c.InitialValues))
	for _, v := range c.InitialValues {
		s := slot{owner: v.Owner, key: v.Key}
		if _, ok := seen[s]; ok {
			return fmt.Errorf("%w: owner %s key %s", ErrDuplicateInitialValue, v.Owner, v.Key)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// Equal returns true if [cfg] is a [*Config] and it has been configured identical to [c].
func (c *Config) Equal(cfg precompileconfig.Config) bool {
	other, ok := cfg.(*Config)
	if !ok {
		return false
	}
	return c.Upgrade.Equal(&other.Upgrade) && slices.Equal(c.InitialValues, other.InitialValues)
}
