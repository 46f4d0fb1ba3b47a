package sauce

import "errors"

// ErrUnsupportedSortPath is returned by Sort for paths with more than two
// segments.
var ErrUnsupportedSortPath = errors.New("sort path must be an attribute or relationship.attribute")
