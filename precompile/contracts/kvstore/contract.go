// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	_ "embed"

	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/vmerrs"
)

const (
	getValueInputLen = common.HashLength
	setValueInputLen = 2 * common.HashLength

	// ValueSet carries the event signature plus two indexed topics and one
	// word of data.
	valueSetTopics  = 3
	valueSetDataLen = common.HashLength

	GetValueGasCost uint64 = contract.ReadGasCostPerSlot
	SetValueGasCost uint64 = contract.WriteGasCostPerSlot
)

var (
	// Singleton StatefulPrecompiledContract for a per caller key value store.
	KVStorePrecompile contract.StatefulPrecompiledContract = createKVStorePrecompile()

	// ValueSetEventGasCost is charged on top of SetValueGasCost for the log.
	ValueSetEventGasCost = contract.LogCost(valueSetTopics, valueSetDataLen)

	ErrInvalidLen = errors.New("invalid input length")

	// KVStoreRawABI contains the raw ABI of the KVStore contract.
	//go:embed contract.abi
	KVStoreRawABI string

	KVStoreABI = contract.ParseABI(KVStoreRawABI)
)

// StorageSlot returns the slot [key] written by [owner] is stored under.
// Keys are namespaced per owner so callers cannot overwrite each other.
func StorageSlot(owner common.Address, key common.Hash) common.Hash {
	return crypto.Keccak256Hash(owner.Bytes(), key.Bytes())
}

// GetValue returns the value [owner] stored under [key].
func GetValue(stateDB contract.StateReader, owner common.Address, key common.Hash) common.Hash {
	return stateDB.GetState(ContractAddress, StorageSlot(owner, key))
}

// StoreValue writes [value] under [key] for [owner].
func StoreValue(stateDB contract.StateDB, owner common.Address, key common.Hash, value common.Hash) {
	stateDB.SetState(ContractAddress, StorageSlot(owner, key), value)
}

// PackGetValue packs [key] into the calldata of getValue including the selector.
func PackGetValue(key common.Hash) ([]byte, error) {
	return KVStoreABI.Pack("getValue", [32]byte(key))
}

// UnpackGetValueInput attempts to unpack [input] as the key argument of getValue.
// assumes that [input] does not include selector (omits first 4 func signature bytes)
func UnpackGetValueInput(input []byte) (common.Hash, error) {
	if len(input) != getValueInputLen {
		return common.Hash{}, fmt.Errorf("%w for getValue: %d", ErrInvalidLen, len(input))
	}
	res, err := KVStoreABI.Methods["getValue"].Inputs.Unpack(input)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(res[0], new([32]byte)).(*[32]byte)), nil
}

// PackGetValueOutput packs [value] as the output of getValue.
func PackGetValueOutput(value common.Hash) ([]byte, error) {
	return KVStoreABI.Methods["getValue"].Outputs.Pack([32]byte(value))
}

// UnpackGetValueOutput attempts to unpack [output] as the value returned by getValue.
func UnpackGetValueOutput(output []byte) (common.Hash, error) {
	res, err := KVStoreABI.Unpack("getValue", output)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(res[0], new([32]byte)).(*[32]byte)), nil
}

// PackSetValue packs [key] and [value] into the calldata of setValue including the selector.
func PackSetValue(key common.Hash, value common.Hash) ([]byte, error) {
	return KVStoreABI.Pack("setValue", [32]byte(key), [32]byte(value))
}

// UnpackSetValueInput attempts to unpack [input] as the arguments of setValue.
// assumes that [input] does not include selector (omits first 4 func signature bytes)
func UnpackSetValueInput(input []byte) (common.Hash, common.Hash, error) {
	if len(input) != setValueInputLen {
		return common.Hash{}, common.Hash{}, fmt.Errorf("%w for setValue: %d", ErrInvalidLen, len(input))
	}
	res, err := KVStoreABI.Methods["setValue"].Inputs.Unpack(input)
	if err != nil {
		return common.Hash{}, common.Hash{}, err
	}
	key := *abi.ConvertType(res[0], new([32]byte)).(*[32]byte)
	value := *abi.ConvertType(res[1], new([32]byte)).(*[32]byte)
	return key, value, nil
}

// PackValueSetEvent packs the topics and data of a ValueSet event.
func PackValueSetEvent(owner common.Address, key common.Hash, value common.Hash) ([]common.Hash, []byte, error) {
	event := KVStoreABI.Events["ValueSet"]
	indexed, err := abi.MakeTopics([]interface{}{owner}, []interface{}{key})
	if err != nil {
		return nil, nil, err
	}
	topics := []common.Hash{event.ID, indexed[0][0], indexed[1][0]}
	data, err := event.Inputs.NonIndexed().Pack([32]byte(value))
	if err != nil {
		return nil, nil, err
	}
	return topics, data, nil
}

// UnpackValueSetEventData attempts to unpack the non indexed value of a ValueSet event.
func UnpackValueSetEventData(data []byte) (common.Hash, error) {
	res, err := KVStoreABI.Events["ValueSet"].Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(res[0], new([32]byte)).(*[32]byte)), nil
}

// getValue returns the value the caller stored under the requested key.
func getValue(callCtx *contract.CallContext, input []byte, gasLimit contract.GasLimit, _ bool) ([]byte, uint64, error) {
	meter := contract.NewGasMeter(gasLimit)
	if err := meter.Consume(GetValueGasCost); err != nil {
		return nil, meter.Used(), err
	}

	key, err := UnpackGetValueInput(input)
	if err != nil {
		return nil, meter.Used(), err
	}

	value := GetValue(callCtx.State.GetStateDB(), callCtx.Caller, key)
	output, err := PackGetValueOutput(value)
	if err != nil {
		return nil, meter.Used(), err
	}
	return output, meter.Used(), nil
}

// setValue stores a value under the caller's namespace and emits ValueSet.
func setValue(callCtx *contract.CallContext, input []byte, gasLimit contract.GasLimit, readOnly bool) ([]byte, uint64, error) {
	meter := contract.NewGasMeter(gasLimit)
	if err := meter.Consume(SetValueGasCost); err != nil {
		return nil, meter.Used(), err
	}

	if readOnly {
		return nil, meter.Used(), vmerrs.ErrWriteProtection
	}

	key, value, err := UnpackSetValueInput(input)
	if err != nil {
		return nil, meter.Used(), err
	}

	if err := meter.Consume(ValueSetEventGasCost); err != nil {
		return nil, meter.Used(), err
	}
	topics, data, err := PackValueSetEvent(callCtx.Caller, key, value)
	if err != nil {
		return nil, meter.Used(), err
	}

	stateDB := callCtx.State.GetStateDB()
	StoreValue(stateDB, callCtx.Caller, key, value)
	stateDB.AddLog(&types.Log{
		Address:     ContractAddress,
		Topics:      topics,
		Data:        data,
		BlockNumber: callCtx.BlockNumber().Uint64(),
	})

	return []byte{}, meter.Used(), nil
}

// createKVStorePrecompile returns a StatefulPrecompiledContract dispatching
// the functions of KVStoreABI.
func createKVStorePrecompile() contract.StatefulPrecompiledContract {
	abiFunctionMap := map[string]contract.RunStatefulPrecompileFunc{
		"getValue": getValue,
		"setValue": setValue,
	}

	functions := make([]*contract.StatefulPrecompileFunction, 0, len(abiFunctionMap))
	for name, function := range abiFunctionMap {
		method, ok := KVStoreABI.Methods[name]
		if !ok {
			panic(fmt.Errorf("given method (%s) does not exist in the ABI", name))
		}
		functions = append(functions, contract.NewStatefulPrecompileFunction(method.ID, function))
	}
	// Construct the contract with no fallback function.
	statefulContract, err := contract.NewStatefulPrecompileContract(nil, functions)
	if err != nil {
		panic(err)
	}
	return statefulContract
}
