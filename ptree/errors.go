// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ptree

import "errors"

// ErrInvalidArgument is returned when an operation is given arguments
// that violate its contract (e.g. Replace across different trees).
var ErrInvalidArgument = errors.New("ptree: invalid argument")

// ErrOutOfMemory is returned when the tree's arena has no room left
// for a new allocation.
var ErrOutOfMemory = errors.New("ptree: arena exhausted")
