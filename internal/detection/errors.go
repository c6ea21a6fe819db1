package detection

import "errors"

// ErrAccumulatorTooLarge is returned when the vote space for a source would
// exceed the configured cell limit. Downscale the source and retry.
var ErrAccumulatorTooLarge = errors.New("vote accumulator too large")
