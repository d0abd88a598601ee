package constants

// Target hub the reconciliation compares pool/sweeper destinations against.
// Overridable via TARGET_HUB.
const DefaultTargetHub = "LM Hub_MG_Muriaé"

// Sweeper final statuses that count as "received at the hub". Matched as
// case-insensitive substrings, mirroring the upstream sweeper export.
var SweeperReceivedStatuses = []string{
	"LMHub_Received",
	"Return_LMHub_Received",
}

// Sweeper count classification for parcels awaiting processing.
// Matched case-insensitively, exact value.
const CountTypeBacklog = "Backlog"

// Pool status meaning the parcel was received at the hub. Exact,
// case-sensitive match against pool_records.status.
const PoolStatusReceived = "LMHub_Received"

// Tracking statuses considered "in transit or received" for the
// non-routed report. Exact matches.
var TrackingInTransitStatuses = []string{
	"SOC_LHTransporting",
	"SOC_LHTransported",
	"LMHub_Received",
	"Return_SOC_LHTransporting",
	"Return_SOC_LHTransported",
	"Return_LMHub_Received",
}

// Disposition labels.
const (
	LabelAlreadyInPool = "already-in-pool"
	LabelDoNotAdd      = "do-not-add"
	LabelNeedsAdding   = "needs-adding"
	LabelNotRouted     = "not-routed"
	LabelPoolExclusive = "pool-exclusive"
)

// Severity tags, one per label. They double as the dashboard card colors.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
	SeverityInfo    = "info"
)

// Suggested actions.
const (
	ActionOK     = "OK"
	ActionIgnore = "IGNORE"
	ActionAdd    = "ADD"
	ActionRoute  = "ROUTE"
	ActionVerify = "VERIFY"
)

// Source location tags carried on result rows.
const (
	SourceSweeper  = "sweeper"
	SourceTracking = "tracking"
	SourcePool     = "collection-pool"
)

// Manual override actions.
const (
	OverrideAdd    = "ADD"
	OverrideRemove = "REMOVE"
)

// Sweeper status shown on divergence rows (all qualifying rows are backlog
// by construction) and the placeholder values for the other reports.
const (
	SweeperStatusBacklog = "Backlog"
	SweeperStatusPending = "PENDING"
	SweeperStatusAbsent  = "ABSENT"
)

// Import kinds accepted by the upload endpoint.
const (
	ImportKindTracking = "tracking"
	ImportKindPool     = "pool"
	ImportKindSweeper  = "sweeper"
)

// ValidOverrideAction reports whether the given action is a known manual
// override kind.
func ValidOverrideAction(action string) bool {
	return action == OverrideAdd || action == OverrideRemove
}

// ValidSuggestedAction reports whether the given value is a known suggested
// action. Unknown values are ignored as filters rather than rejected.
func ValidSuggestedAction(action string) bool {
	switch action {
	case ActionOK, ActionIgnore, ActionAdd, ActionRoute, ActionVerify:
		return true
	}
	return false
}
