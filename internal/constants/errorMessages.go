package constants

// Error codes surfaced by the services layer.
const (
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeAwaitingFilter   = "AWAITING_FILTER"
	ErrCodeInvalidReport    = "INVALID_REPORT"
	ErrCodeInvalidAction    = "INVALID_ACTION"
	ErrCodeNoValidRows      = "NO_VALID_ROWS"
	ErrCodeUnknownImport    = "UNKNOWN_IMPORT_KIND"
	ErrCodeOverrideMissing  = "OVERRIDE_NOT_FOUND"
	ErrCodeGeocodeFailed    = "GEOCODE_FAILED"
)

var errorMessages = map[string]string{
	ErrCodeStoreUnavailable: "One of the source stores could not be queried",
	ErrCodeAwaitingFilter:   "A valid date range is required for this report",
	ErrCodeInvalidReport:    "Unknown report id",
	ErrCodeInvalidAction:    "Override action must be ADD or REMOVE",
	ErrCodeNoValidRows:      "No row in the uploaded file passed validation",
	ErrCodeUnknownImport:    "Unknown import kind",
	ErrCodeOverrideMissing:  "No manual override exists for this tracking number",
	ErrCodeGeocodeFailed:    "Could not resolve city for postal code",
}

// GetErrorMessage returns the user-facing message for an error code.
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred"
}
