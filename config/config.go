// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/precompilevm/params"
	"github.com/ava-labs/precompilevm/utils/logging"
)

var (
	errInvalidAddress = errors.New("invalid address")
	errMissingTo      = errors.New("call target must be set")
	errInvalidValue   = errors.New("value must be a non-negative decimal integer")
)

// Config is everything needed to run a single call.
type Config struct {
	Log   logging.Config
	Chain *params.ChainConfig
	Block BlockConfig
	Call  CallConfig
}

type BlockConfig struct {
	Number    uint64
	Timestamp uint64
	// ParentTimestamp is nil if the block is built on genesis.
	ParentTimestamp *uint64
}

type CallConfig struct {
	Caller common.Address
	To     common.Address
	Input  []byte
	Value  *big.Int
	Gas    uint64
	Static bool
}

// BuildViper returns the viper environment from parsing [args] with [fs],
// the PRECOMPILEVM_ prefixed environment and the config file, if one is given.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// GetConfig sets attributes on a Config based on the values defined in the
// [v] environment.
func GetConfig(v *viper.Viper) (Config, error) {
	logConfig, err := getLogConfig(v)
	if err != nil {
		return Config{}, err
	}
	chainConfig, err := getChainConfig(v)
	if err != nil {
		return Config{}, err
	}
	callConfig, err := getCallConfig(v)
	if err != nil {
		return Config{}, err
	}

	blockConfig := BlockConfig{
		Number:    v.GetUint64(BlockNumberKey),
		Timestamp: v.GetUint64(TimestampKey),
	}
	if v.IsSet(ParentTimestampKey) {
		parent := v.GetUint64(ParentTimestampKey)
		blockConfig.ParentTimestamp = &parent
	}

	return Config{
		Log:   logConfig,
		Chain: chainConfig,
		Block: blockConfig,
		Call:  callConfig,
	}, nil
}

func getLogConfig(v *viper.Viper) (logging.Config, error) {
	config := logging.DefaultConfig()
	level, err := logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return config, err
	}
	config.Level = level

	format, err := logging.ToFormat(v.GetString(LogFormatKey))
	if err != nil {
		return config, err
	}
	config.Format = format
	return config, nil
}

func getChainConfig(v *viper.Viper) (*params.ChainConfig, error) {
	chainConfig := &params.ChainConfig{
		ChainID: new(big.Int).SetUint64(v.GetUint64(ChainIDKey)),
	}

	var upgradeBytes []byte
	switch {
	case v.IsSet(UpgradeContentKey):
		upgradeBytes = []byte(v.GetString(UpgradeContentKey))
	case v.IsSet(UpgradeFileKey):
		upgradeFile := os.ExpandEnv(v.GetString(UpgradeFileKey))
		b, err := os.ReadFile(upgradeFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read upgrade file %q: %w", upgradeFile, err)
		}
		upgradeBytes = b
	}

	if len(upgradeBytes) != 0 {
		if err := json.Unmarshal(upgradeBytes, &chainConfig.UpgradeConfig); err != nil {
			return nil, fmt.Errorf("failed to parse upgrades: %w", err)
		}
	}
	if err := chainConfig.Verify(); err != nil {
		return nil, err
	}
	return chainConfig, nil
}

func getCallConfig(v *viper.Viper) (CallConfig, error) {
	caller, err := parseAddress(v.GetString(CallerKey))
	if err != nil {
		return CallConfig{}, fmt.Errorf("%s: %w", CallerKey, err)
	}
	if !v.IsSet(ToKey) {
		return CallConfig{}, errMissingTo
	}
	to, err := parseAddress(v.GetString(ToKey))
	if err != nil {
		return CallConfig{}, fmt.Errorf("%s: %w", ToKey, err)
	}

	input, err := hexutil.Decode(v.GetString(InputKey))
	if err != nil && !errors.Is(err, hexutil.ErrEmptyString) {
		return CallConfig{}, fmt.Errorf("%s: %w", InputKey, err)
	}

	value, ok := new(big.Int).SetString(v.GetString(ValueKey), 10)
	if !ok || value.Sign() < 0 {
		return CallConfig{}, fmt.Errorf("%w: %q", errInvalidValue, v.GetString(ValueKey))
	}

	gas := v.GetUint64(GasKey)
	if gas == 0 {
		gas = math.MaxUint64
	}

	return CallConfig{
		Caller: caller,
		To:     to,
		Input:  input,
		Value:  value,
		Gas:    gas,
		Static: v.GetBool(StaticKey),
	}, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", errInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}
