// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrsKeepsFirstError(t *testing.T) {
	require := require.New(t)

	first := errors.New("first")
	second := errors.New("second")

	errs := Errs{}
	errs.Add(nil, nil)
	require.False(errs.Errored())

	errs.Add(nil, first, second)
	require.True(errs.Errored())
	require.ErrorIs(errs.Err, first)

	errs.Add(second)
	require.ErrorIs(errs.Err, first)
}
