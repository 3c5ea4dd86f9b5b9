// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

// IsTimestampForked returns true if [fork] is scheduled at or before [time].
// A nil [fork] is never scheduled.
func IsTimestampForked(fork *uint64, time uint64) bool {
	if fork == nil {
		return false
	}
	return *fork <= time
}
