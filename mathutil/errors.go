// SPDX-License-Identifier: MIT

package mathutil

import "errors"

// ErrInvalidArgument is returned when a size or length argument is inconsistent.
var ErrInvalidArgument = errors.New("mathutil: invalid argument")
