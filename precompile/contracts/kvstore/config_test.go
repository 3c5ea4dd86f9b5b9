// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package kvstore

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/precompilevm/precompile/precompileconfig"
	"github.com/ava-labs/precompilevm/precompile/testutils"
	"github.com/ava-labs/precompilevm/utils"
)

func TestVerify(t *testing.T) {
	tests := map[string]testutils.ConfigVerifyTest{
		"no initial values": {
			Config: NewConfig(utils.NewUint64(3), nil),
		},
		"valid initial values": {
			Config: NewConfig(utils.NewUint64(3), []InitialValue{
				{Owner: owner, Key: testKey, Value: testValue},
				{Owner: other, Key: testKey, Value: testValue},
			}),
		},
		"duplicate initial values": {
			Config: NewConfig(utils.NewUint64(3), []InitialValue{
				{Owner: owner, Key: testKey, Value: testValue},
				{Owner: owner, Key: testKey},
			}),
			ExpectedErr: ErrDuplicateInitialValue,
		},
		"disable with initial values": {
			Config: &Config{
				Upgrade: precompileconfig.Upgrade{
					BlockTimestamp: utils.NewUint64(3),
					Disable:        true,
				},
				InitialValues: []InitialValue{{Owner: owner, Key: testKey}},
			},
			ExpectedErr: ErrDisableWithValues,
		},
		"disable": {
			Config: NewDisableConfig(utils.NewUint64(3)),
		},
	}
	testutils.RunVerifyTests(t, tests)
}

func TestEqual(t *testing.T) {
	values := []InitialValue{{Owner: owner, Key: testKey, Value: testValue}}
	tests := map[string]testutils.ConfigEqualTest{
		"non-nil config and nil other": {
			Config:   NewConfig(utils.NewUint64(3), nil),
			Other:    nil,
			Expected: false,
		},
		"different type": {
			Config:   NewConfig(utils.NewUint64(3), nil),
			Other:    precompileconfig.NewMockConfig(gomock.NewController(t)),
			Expected: false,
		},
		"different timestamp": {
			Config:   NewConfig(utils.NewUint64(3), values),
			Other:    NewConfig(utils.NewUint64(4), values),
			Expected: false,
		},
		"different initial values": {
			Config:   NewConfig(utils.NewUint64(3), values),
			Other:    NewConfig(utils.NewUint64(3), []InitialValue{{Owner: other, Key: testKey, Value: testValue}}),
			Expected: false,
		},
		"same config": {
			Config:   NewConfig(utils.NewUint64(3), values),
			Other:    NewConfig(utils.NewUint64(3), []InitialValue{{Owner: owner, Key: testKey, Value: testValue}}),
			Expected: true,
		},
	}
	testutils.RunEqualTests(t, tests)
}

func TestConfigJSON(t *testing.T) {
	require := require.New(t)

	raw := `{
		"blockTimestamp": 5,
		"initialValues": [
			{
				"owner": "0x8db97c7cece249c2b98bdc0226cc4c2a57bf52fc",
				"key": "0x00000000000000000000000000000000000000000000000000000000006b6579",
				"value": "0x00000000000000000000000000000000000000000000000000000076616c7565"
			}
		]
	}`
	cfg := Module.MakeConfig()
	require.NoError(json.Unmarshal([]byte(raw), cfg))
	require.True(cfg.Equal(NewConfig(utils.NewUint64(5), []InitialValue{{Owner: owner, Key: testKey, Value: testValue}})))
}
