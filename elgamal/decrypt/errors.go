// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package decrypt

import (
	"fmt"

	"github.com/pkg/errors"
)

const TaskName = "elgamal-decrypt"

var (
	// ErrNotEnoughShares is reported when fewer than threshold parties
	// remain correct at a combine step.
	ErrNotEnoughShares = errors.New("not enough correct parties to reach the threshold")

	// ErrMalformedTranscript is reported for structural errors in persisted
	// transcript inputs read back by a subsession.
	ErrMalformedTranscript = errors.New("malformed transcript")

	// ErrTranscriptIO is reported for transcript write failures. The
	// protocol run completes but its universal verifiability is lost.
	ErrTranscriptIO = errors.New("transcript write failed")

	// ErrInternal marks arithmetic conditions that honest configurations
	// cannot reach.
	ErrInternal = errors.New("internal error")
)

// Error annotates a failure with the protocol task, the step in which it
// occurred, the local party and the parties that caused it.
type Error struct {
	cause    error
	task     string
	step     string
	victim   int
	culprits []int
}

func NewError(err error, step string, victim int, culprits ...int) *Error {
	return &Error{cause: err, task: TaskName, step: step, victim: victim, culprits: culprits}
}

func (err *Error) Unwrap() error { return err.cause }

func (err *Error) Cause() error { return err.cause }

func (err *Error) Task() string { return err.task }

func (err *Error) Step() string { return err.step }

func (err *Error) Victim() int { return err.victim }

func (err *Error) Culprits() []int { return err.culprits }

func (err *Error) Error() string {
	if err == nil || err.cause == nil {
		return "Error is nil"
	}
	if len(err.culprits) > 0 {
		return fmt.Sprintf("task %s, party %d, step %s, culprits %v: %s",
			err.task, err.victim, err.step, err.culprits, err.cause.Error())
	}
	return fmt.Sprintf("task %s, party %d, step %s: %s",
		err.task, err.victim, err.step, err.cause.Error())
}
