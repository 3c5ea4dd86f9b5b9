// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modules

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/precompilevm/utils"
)

var (
	errBlackholeAddress = errors.New("overlaps with blackhole address")
	errNotReserved      = errors.New("not in a reserved range")
	errDuplicateKey     = errors.New("config key already used by a stateful precompile")
	errDuplicateAddress = errors.New("address already used by a stateful precompile")
	errMissingContract  = errors.New("missing contract")

	// BlackholeAddr is the address fees are burned to. It can never host a
	// precompile.
	BlackholeAddr = common.HexToAddress("0x0100000000000000000000000000000000000000")

	// reservedRanges is the address space stateful precompiles may be
	// registered in. Addresses outside of it are left to user deployed code.
	reservedRanges = []utils.AddressRange{
		{
			Start: common.HexToAddress("0x0000000000000000000000000000000000000001"),
			End:   common.HexToAddress("0x00000000000000000000000000000000000000ff"),
		},
		{
			Start: common.HexToAddress("0x0100000000000000000000000000000000000000"),
			End:   common.HexToAddress("0x01000000000000000000000000000000000000ff"),
		},
		{
			Start: common.HexToAddress("0x0200000000000000000000000000000000000000"),
			End:   common.HexToAddress("0x02000000000000000000000000000000000000ff"),
		},
		{
			Start: common.HexToAddress("0x0300000000000000000000000000000000000000"),
			End:   common.HexToAddress("0x03000000000000000000000000000000000000ff"),
		},
	}

	// defaultTable is populated from package init functions only, before any
	// call is dispatched, and is read-only afterwards.
	defaultTable = newTable()
)

// table is the address table of registered modules. Modules are kept sorted
// by address for deterministic iteration.
type table struct {
	modules   []Module
	byAddress map[common.Address]int
	byKey     map[string]int
}

func newTable() *table {
	return &table{
		byAddress: make(map[common.Address]int),
		byKey:     make(map[string]int),
	}
}

func (t *table) register(m Module) error {
	switch {
	case m.Address == BlackholeAddr:
		return fmt.Errorf("address %s %w", m.Address, errBlackholeAddress)
	case !ReservedAddress(m.Address):
		return fmt.Errorf("address %s %w", m.Address, errNotReserved)
	case m.Contract == nil:
		return fmt.Errorf("%w for %q", errMissingContract, m.ConfigKey)
	}
	if _, ok := t.byKey[m.ConfigKey]; ok {
		return fmt.Errorf("%w: %q", errDuplicateKey, m.ConfigKey)
	}
	if _, ok := t.byAddress[m.Address]; ok {
		return fmt.Errorf("%w: %s", errDuplicateAddress, m.Address)
	}

	t.modules = append(t.modules, m)
	slices.SortFunc(t.modules, lessByAddress)
	for i, stm := range t.modules {
		t.byAddress[stm.Address] = i
		t.byKey[stm.ConfigKey] = i
	}
	return nil
}

func (t *table) byAddr(address common.Address) (Module, bool) {
	i, ok := t.byAddress[address]
	if !ok {
		return Module{}, false
	}
	return t.modules[i], true
}

func (t *table) byConfigKey(key string) (Module, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Module{}, false
	}
	return t.modules[i], true
}

// ReservedAddress returns true if [addr] is in a reserved range for custom precompiles
func ReservedAddress(addr common.Address) bool {
	for _, reservedRange := range reservedRanges {
		if reservedRange.Contains(addr) {
			return true
		}
	}

	return false
}

// ReservedRanges returns a copy of the address ranges precompiles may be
// registered in.
func ReservedRanges() []utils.AddressRange {
	return slices.Clone(reservedRanges)
}

// RegisterModule registers a stateful precompile module. It must only be
// called from package init functions.
func RegisterModule(stm Module) error {
	return defaultTable.register(stm)
}

func GetPrecompileModuleByAddress(address common.Address) (Module, bool) {
	return defaultTable.byAddr(address)
}

func GetPrecompileModule(key string) (Module, bool) {
	return defaultTable.byConfigKey(key)
}

// RegisteredModules returns the registered modules sorted by address.
func RegisteredModules() []Module {
	return slices.Clone(defaultTable.modules)
}
