// SPDX-License-Identifier: MIT

package trajectory

import "errors"

var (
	// ErrAxisMismatch indicates axes that do not line up: differing counts,
	// duplicate names, or curves on different bases.
	ErrAxisMismatch = errors.New("trajectory: axis mismatch")

	// ErrUnknownAxis is returned by Axis for a name that is not present.
	ErrUnknownAxis = errors.New("trajectory: unknown axis")

	// ErrInvalidDocument indicates a YAML document that decodes but does not
	// describe a trajectory or plan.
	ErrInvalidDocument = errors.New("trajectory: invalid document")
)
