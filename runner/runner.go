// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runner

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/precompilevm/config"
	"github.com/ava-labs/precompilevm/core"
	"github.com/ava-labs/precompilevm/core/vm"
	"github.com/ava-labs/precompilevm/precompile"
	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/utils/logging"

	// Force imports of each precompile to ensure each precompile's init function runs and registers itself
	// with the registry.
	_ "github.com/ava-labs/precompilevm/precompile/registry"
)

const metricsNamespace = "precompilevm"

var _ contract.BlockContext = (*blockContext)(nil)

type blockContext struct {
	number    *big.Int
	timestamp uint64
}

func (b *blockContext) Number() *big.Int  { return b.number }
func (b *blockContext) Timestamp() uint64 { return b.timestamp }

// Result is the outcome of a call run by the runner.
type Result struct {
	Status     precompile.Status `json:"status"`
	GasUsed    uint64            `json:"gasUsed"`
	ReturnData hexutil.Bytes     `json:"returnData"`
	Error      string            `json:"error,omitempty"`
	Logs       []*types.Log      `json:"logs"`
	// Precompiles lists the precompiles active for the call.
	Precompiles []common.Address `json:"precompiles"`
}

// Run applies the precompile activations of [cfg] to a fresh in-memory
// state and executes the configured call against it.
func Run(cfg config.Config, log logging.Logger, registerer prometheus.Registerer) (*Result, error) {
	statedb, err := state.New(common.Hash{}, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}

	block := &blockContext{
		number:    new(big.Int).SetUint64(cfg.Block.Number),
		timestamp: cfg.Block.Timestamp,
	}
	if err := core.ApplyPrecompileActivations(cfg.Chain, cfg.Block.ParentTimestamp, block, statedb, log); err != nil {
		return nil, err
	}

	metrics, err := precompile.NewMetrics(metricsNamespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	set, err := precompile.NewSet(log, metrics, cfg.Chain.Rules(block.timestamp))
	if err != nil {
		return nil, fmt.Errorf("failed to build precompile set: %w", err)
	}

	// The caller is funded with exactly the value it transfers.
	if cfg.Call.Value != nil && cfg.Call.Value.Sign() > 0 {
		statedb.AddBalance(cfg.Call.Caller, cfg.Call.Value)
	}

	log.Debug("running call",
		zap.Stringer("caller", cfg.Call.Caller),
		zap.Stringer("to", cfg.Call.To),
		zap.Uint64("gas", cfg.Call.Gas),
		zap.Bool("static", cfg.Call.Static),
		zap.Int("numPrecompiles", set.Len()),
	)

	router := vm.NewRouter(set, vm.NoCode{}, statedb, block, log)
	msg := &core.Message{
		From:   cfg.Call.Caller,
		To:     cfg.Call.To,
		Value:  cfg.Call.Value,
		Gas:    cfg.Call.Gas,
		Data:   cfg.Call.Input,
		Static: cfg.Call.Static,
	}
	res, err := core.ApplyCall(router, msg)
	if err != nil {
		return &Result{
			Status:      precompile.Fatal,
			GasUsed:     cfg.Call.Gas,
			Error:       err.Error(),
			Logs:        []*types.Log{},
			Precompiles: set.Addresses(),
		}, nil
	}

	result := &Result{
		Status:      precompile.Success,
		GasUsed:     res.UsedGas,
		ReturnData:  res.ReturnData,
		Logs:        append([]*types.Log{}, statedb.Logs()...),
		Precompiles: set.Addresses(),
	}
	if res.Failed() {
		result.Status = precompile.Revert
		result.Error = res.Err.Error()
	}
	return result, nil
}
