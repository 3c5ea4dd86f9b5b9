// (c) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/precompilevm/vmerrs"
)

var errUnknownStatus = errors.New("unknown status")

// Status is the outcome class of a precompile invocation.
type Status uint8

const (
	// Success means the call completed and its output is returned to the caller.
	Success Status = iota
	// Revert unwinds the current call frame. The output is returned as
	// revert data.
	Revert
	// Fatal aborts the enclosing transaction.
	Fatal
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Revert:
		return "revert"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	switch str {
	case "success":
		*s = Success
	case "revert":
		*s = Revert
	case "fatal":
		*s = Fatal
	default:
		return fmt.Errorf("%w: %q", errUnknownStatus, str)
	}
	return nil
}

// Result is produced once per precompile invocation and consumed by the
// caller immediately.
type Result struct {
	Status  Status
	Output  []byte
	GasUsed uint64
	// Err is nil iff Status is Success.
	Err error
}

// NewResult classifies the return values of a precompile run. A nil error is
// a success, an error wrapping vmerrs.ErrFatal is fatal, anything else
// reverts.
func NewResult(output []byte, gasUsed uint64, err error) *Result {
	switch {
	case err == nil:
		return &Result{
			Status:  Success,
			Output:  output,
			GasUsed: gasUsed,
		}
	case vmerrs.IsFatal(err):
		return &Result{
			Status:  Fatal,
			GasUsed: gasUsed,
			Err:     err,
		}
	default:
		return &Result{
			Status:  Revert,
			Output:  output,
			GasUsed: gasUsed,
			Err:     err,
		}
	}
}

func (r *Result) Failed() bool { return r.Status != Success }

func (r *Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s(gasUsed=%d, output=%#x, err=%v)", r.Status, r.GasUsed, r.Output, r.Err)
	}
	return fmt.Sprintf("%s(gasUsed=%d, output=%#x)", r.Status, r.GasUsed, r.Output)
}
