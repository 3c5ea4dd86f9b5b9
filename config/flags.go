// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "precompilevm"

	defaultChainID = 43112
)

// BuildFlagSet returns the complete set of flags for the runner
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("precompilevm", pflag.ContinueOnError)

	// Config file
	fs.String(ConfigFileKey, "", "Specifies a config file")

	// Chain
	fs.Uint64(ChainIDKey, defaultChainID, "Chain ID handed to precompile configs")
	fs.String(UpgradeFileKey, "", "Specifies a JSON file scheduling precompile upgrades. Ignored if "+UpgradeContentKey+" is set")
	fs.String(UpgradeContentKey, "", "Inline JSON scheduling precompile upgrades")

	// Block
	fs.Uint64(TimestampKey, 0, "Timestamp of the block the call executes in")
	fs.Uint64(ParentTimestampKey, 0, "Timestamp of the parent block. If unset, every upgrade up to "+TimestampKey+" is applied from genesis")
	fs.Uint64(BlockNumberKey, 0, "Number of the block the call executes in")

	// Call
	fs.String(CallerKey, "0x0000000000000000000000000000000000000000", "Address issuing the call")
	fs.String(ToKey, "", "Address being called")
	fs.String(InputKey, "0x", "Hex encoded call data")
	fs.String(ValueKey, "0", "Value transferred with the call, in wei")
	fs.Uint64(GasKey, 0, "Gas limit of the call. 0 means no limit")
	fs.Bool(StaticKey, false, "If true, execute the call in read only mode")

	// Logging
	fs.String(LogLevelKey, "info", "The log level. Should be one of {verbo, debug, trace, info, warn, error, fatal, off}")
	fs.String(LogFormatKey, "plain", "The structure of log format. Should be one of {plain, json}")

	return fs
}
