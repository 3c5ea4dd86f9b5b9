// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ava-labs/precompilevm/config"
	"github.com/ava-labs/precompilevm/precompile"
	"github.com/ava-labs/precompilevm/runner"
	"github.com/ava-labs/precompilevm/utils/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one call as described by [args] and prints its result as
// JSON. The exit code is 1 if the call could not run or aborted.
func run(args []string) int {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't configure flags: %s\n", err)
		return 1
	}

	cfg, err := config.GetConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't load config: %s\n", err)
		return 1
	}

	log := logging.New(cfg.Log, os.Stderr)
	defer log.Stop()

	res, err := runner.Run(cfg, log, prometheus.NewRegistry())
	if err != nil {
		log.Error("call failed", zap.Error(err))
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error("couldn't encode result", zap.Error(err))
		return 1
	}
	if res.Status == precompile.Fatal {
		return 1
	}
	return 0
}
