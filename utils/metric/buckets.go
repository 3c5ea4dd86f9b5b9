// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

var (
	// Useful gas buckets

	GasBuckets = []float64{
		0,   // free or rejected before charging
		100, // pure precompiles
		1_000,
		5_000,  // one storage read
		25_000, // one storage write plus a log
		100_000,
		1_000_000,
		// anything larger than 1M gas will be bucketed together
	}

	// Useful bytes buckets

	BytesBuckets = []float64{
		1 << 5, // one word
		1 << 8,
		1 << 10, // 1 KiB
		1 << 12,
		1 << 14,
		1 << 16,
		1 << 20, // 1 MiB
		// anything larger than 1 MiB will be bucketed together
	}
)
