package texpack

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a pack operation is given no inputs.
var ErrEmpty = errors.New("texpack: no inputs to pack")

// InvalidDimensionsError reports a page size that cannot be packed at all
// (zero width or height).
type InvalidDimensionsError struct {
	Width, Height uint32
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("texpack: invalid page dimensions %dx%d", e.Width, e.Height)
}

// InvalidConfigError reports a Config whose fields are individually valid
// but jointly impossible (e.g. padding that consumes the whole page).
type InvalidConfigError struct {
	Msg string
}

func (e *InvalidConfigError) Error() string {
	return "texpack: invalid config: " + e.Msg
}

// TextureTooLargeError reports a single sprite that cannot fit on any page
// of the configured maximum size, even empty.
type TextureTooLargeError struct {
	Key            string
	W, H           uint32
	MaxW, MaxH     uint32
}

func (e *TextureTooLargeError) Error() string {
	return fmt.Sprintf("texpack: texture %q (%dx%d) exceeds max page size %dx%d",
		e.Key, e.W, e.H, e.MaxW, e.MaxH)
}

// OutOfSpaceError reports a single placement (typically a runtime
// session append) that could not be satisfied, even after growing a new
// page.
type OutOfSpaceError struct {
	Key            string
	W, H           uint32
	PagesAttempted int
}

func (e *OutOfSpaceError) Error() string {
	return fmt.Sprintf("texpack: out of space placing %q (%dx%d) after %d page(s)",
		e.Key, e.W, e.H, e.PagesAttempted)
}

// OutOfSpaceGenericError reports a bulk offline pack that had to quit
// early: a fresh page was opened and placed nothing at all. Placed
// records how many of the total inputs were successfully placed before
// the abort, so callers can report partial progress.
type OutOfSpaceGenericError struct {
	Placed, Total int
}

func (e *OutOfSpaceGenericError) Error() string {
	return fmt.Sprintf("texpack: out of space: placed %d of %d inputs", e.Placed, e.Total)
}

// InvalidKeyError reports a runtime session operation given a key that
// violates the session's invariants (a duplicate append). Evicting an
// unknown key is not an error; the evict call reports false.
type InvalidKeyError struct {
	Key string
	Msg string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("texpack: key %q: %s", e.Key, e.Msg)
}

// InvalidInputError reports a decoded image that is unusable (zero size,
// unsupported shape) or a caller-provided value that otherwise fails
// validation outside of Config.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string {
	return "texpack: invalid input: " + e.Msg
}
