// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey      = "config-file"
	ChainIDKey         = "chain-id"
	UpgradeFileKey     = "upgrade-file"
	UpgradeContentKey  = "upgrade"
	TimestampKey       = "timestamp"
	ParentTimestampKey = "parent-timestamp"
	BlockNumberKey     = "block-number"
	CallerKey          = "caller"
	ToKey              = "to"
	InputKey           = "input"
	ValueKey           = "value"
	GasKey             = "gas"
	StaticKey          = "static"
	LogLevelKey        = "log-level"
	LogFormatKey       = "log-format"
)
