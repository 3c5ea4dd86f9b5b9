// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/precompilevm/precompile/contract"
	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
)

// ConfigVerifyTest is a test case for verifying a config
type ConfigVerifyTest struct {
	Config      precompileconfig.Config
	ExpectedErr error
}

// ConfigEqualTest is a test case for comparing two configs
type ConfigEqualTest struct {
	Config   precompileconfig.Config
	Other    precompileconfig.Config
	Expected bool
}

func RunVerifyTests(t *testing.T, tests map[string]ConfigVerifyTest) {
	t.Helper()

	chainConfig := contract.NewMockChainConfig(TestChainID)
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			err := test.Config.Verify(chainConfig)
			require.ErrorIs(err, test.ExpectedErr)
		})
	}
}

func RunEqualTests(t *testing.T, tests map[string]ConfigEqualTest) {
	t.Helper()

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			require.Equal(test.Expected, test.Config.Equal(test.Other))
		})
	}
}
