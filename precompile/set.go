// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ava-labs/precompilevm/params"
	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/modules"
	"github.com/ava-labs/precompilevm/utils/logging"
	"github.com/ava-labs/precompilevm/vmerrs"
)

var (
	ErrUnregisteredPrecompile = errors.New("no precompile module registered at address")

	errGasOveruse = errors.New("precompile reported more gas than supplied")
	errPanic      = errors.New("precompile panicked")
)

// Set is the immutable mapping from address to the precompiles active under
// one rule set. It is safe for concurrent use once constructed.
type Set struct {
	log     logging.Logger
	metrics *Metrics
	modules map[common.Address]modules.Module
}

// NewSet resolves every precompile active in [rules] to its registered
// module. [metrics] may be nil.
func NewSet(log logging.Logger, metrics *Metrics, rules params.Rules) (*Set, error) {
	s := &Set{
		log:     log,
		metrics: metrics,
		modules: make(map[common.Address]modules.Module, len(rules.ActivePrecompiles)),
	}
	for addr, config := range rules.ActivePrecompiles {
		module, ok := modules.GetPrecompileModuleByAddress(addr)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnregisteredPrecompile, addr)
		}
		if config != nil && config.Key() != module.ConfigKey {
			return nil, fmt.Errorf("config %q activated at %s, registered as %q", config.Key(), addr, module.ConfigKey)
		}
		s.modules[addr] = module
	}
	return s, nil
}

// IsPrecompile returns true iff [addr] is in the set.
func (s *Set) IsPrecompile(addr common.Address) bool {
	_, ok := s.modules[addr]
	return ok
}

// Addresses returns the addresses in the set in ascending order.
func (s *Set) Addresses() []common.Address {
	addrs := maps.Keys(s.modules)
	slices.SortFunc(addrs, func(a, b common.Address) bool {
		return bytes.Compare(a[:], b[:]) < 0
	})
	return addrs
}

func (s *Set) Len() int {
	return len(s.modules)
}

// Execute runs the precompile at [addr]. The bool is false only when [addr]
// is not in the set, in which case nothing is run.
func (s *Set) Execute(
	addr common.Address,
	input []byte,
	gasLimit contract.GasLimit,
	callCtx *contract.CallContext,
	readOnly bool,
) (*Result, bool) {
	module, ok := s.modules[addr]
	if !ok {
		return nil, false
	}

	res := s.run(module, input, gasLimit, callCtx, readOnly)
	s.metrics.observe(module.ConfigKey, len(input), res)

	if s.log.Enabled(logging.Verbo) {
		s.log.Verbo("precompile executed",
			zap.String("precompile", module.ConfigKey),
			zap.Stringer("address", addr),
			zap.Stringer("gasLimit", gasLimit),
			zap.Bool("readOnly", readOnly),
			zap.Stringer("status", res.Status),
			zap.Uint64("gasUsed", res.GasUsed),
			zap.Error(res.Err),
		)
	}
	return res, true
}

func (s *Set) run(
	module modules.Module,
	input []byte,
	gasLimit contract.GasLimit,
	callCtx *contract.CallContext,
	readOnly bool,
) (res *Result) {
	limit, bounded := gasLimit.Uint64()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.log.Error("precompile panicked",
			zap.String("precompile", module.ConfigKey),
			zap.Any("panic", r),
		)
		res = &Result{
			Status:  Fatal,
			GasUsed: limit,
			Err:     fmt.Errorf("%w: %s: %v: %v", vmerrs.ErrFatal, module.ConfigKey, errPanic, r),
		}
	}()

	ret, gasUsed, err := module.Contract.Run(callCtx, input, gasLimit, readOnly)
	if bounded && gasUsed > limit {
		s.log.Error("precompile exceeded its gas limit",
			zap.String("precompile", module.ConfigKey),
			zap.Uint64("gasLimit", limit),
			zap.Uint64("gasUsed", gasUsed),
		)
		return &Result{
			Status:  Fatal,
			GasUsed: limit,
			Err:     fmt.Errorf("%w: %s: %v (%d > %d)", vmerrs.ErrFatal, module.ConfigKey, errGasOveruse, gasUsed, limit),
		}
	}
	return NewResult(ret, gasUsed, err)
}
