package repositories

import "errors"

// ErrStoreUnavailable is returned when a repository was constructed without
// a live database handle. The reconciliation engine degrades the affected
// computation to an empty result instead of failing the request.
var ErrStoreUnavailable = errors.New("store unavailable")
