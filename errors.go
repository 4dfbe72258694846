// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package pulsesim

import "github.com/pkg/errors"

// Configuration errors returned by Build and ParseKind. Most are wrapped with
// the offending module name; use errors.Cause to compare.
//
var (
	ErrUnknownKind     = errors.New("unknown module kind")
	ErrEmptyName       = errors.New("empty module name")
	ErrDuplicateModule = errors.New("duplicate module")
	ErrMultipleEntries = errors.New("more than one broadcaster")
	ErrNoEntry         = errors.New("no broadcaster")
	ErrUnknownModule   = errors.New("unknown destination module")
)

// ErrUnregisteredSender is returned by Press when a conjunction receives a
// pulse from a module that is not one of its registered inputs. It can only
// happen if the network was not built by Build.
//
var ErrUnregisteredSender = errors.New("pulse from unregistered sender")

// Search and analysis errors.
//
var (
	ErrLimitReached     = errors.New("press limit reached")
	ErrNoFeeders        = errors.New("no convergent conjunction")
	ErrDependentFeeders = errors.New("feeders share upstream modules")
	ErrAperiodic        = errors.New("feeder is not periodic")
	ErrOverflow         = errors.New("least common multiple overflows uint64")
)
