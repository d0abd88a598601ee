package constants

// Read-side SQL for the report queries. Write paths (imports, overrides) go
// through GORM; everything here is served by sqlx against Postgres.
const (
	// Divergence step 1: backlog rows received at the hub inside the
	// reference window. Substring matching on final_status is deliberate;
	// the sweeper export sometimes carries prefixed variants.
	SelectSweeperBacklogWindow = `
	SELECT tracking_number, final_status, count_type, next_step_action, on_hold_times, reference_date
	FROM sweeper_records
	WHERE reference_date >= $1 AND reference_date < $2
	  AND (final_status ILIKE '%LMHub_Received%' OR final_status ILIKE '%Return_LMHub_Received%')
	  AND LOWER(count_type) = LOWER($3)
	ORDER BY id
	`

	// Divergence step 2: which of the candidate tracking numbers already sit
	// in the pool at the target hub. Hub and status are exact matches.
	SelectPoolMembers = `
	SELECT tracking_number
	FROM pool_records
	WHERE tracking_number = ANY($1) AND destination_hub = $2 AND status = $3
	`

	// Non-routed step 1: windowed tracking rows in an in-transit status bound
	// for the target hub.
	SelectTrackingWindow = `
	SELECT tracking_number, status, destination_hub, current_station, upload_date
	FROM tracking_records
	WHERE upload_date >= $1 AND upload_date < $2
	  AND status = ANY($3) AND destination_hub = $4
	ORDER BY id
	`

	// Non-routed step 2: global (unwindowed) existence check across pool and
	// sweeper. Anything present in either is considered already actioned.
	SelectPoolAmong = `
	SELECT DISTINCT tracking_number FROM pool_records WHERE tracking_number = ANY($1)
	`
	SelectSweeperAmong = `
	SELECT DISTINCT tracking_number FROM sweeper_records WHERE tracking_number = ANY($1)
	`

	// Pool-only report.
	SelectPoolWindow = `
	SELECT tracking_number, status, destination_hub, city, zipcode, file_reference_date
	FROM pool_records
	WHERE file_reference_date >= $1 AND file_reference_date < $2
	ORDER BY id
	`
	SelectSweeperNumbersWindow = `
	SELECT DISTINCT tracking_number
	FROM sweeper_records
	WHERE reference_date >= $1 AND reference_date < $2
	`

	// Dashboard totals.
	CountPoolWindow = `
	SELECT COUNT(*) FROM pool_records
	WHERE file_reference_date >= $1 AND file_reference_date < $2
	`
	CountSweeperBacklogWindow = `
	SELECT COUNT(*) FROM sweeper_records
	WHERE reference_date >= $1 AND reference_date < $2
	  AND final_status = ANY($3)
	  AND LOWER(count_type) = LOWER($4)
	`

	// Filter option lookups, served through the read-through cache.
	SelectDistinctTrackingStatuses = `
	SELECT DISTINCT status FROM tracking_records WHERE status <> '' ORDER BY status
	`
	SelectDistinctHubs = `
	SELECT DISTINCT destination_hub FROM tracking_records WHERE destination_hub <> ''
	UNION
	SELECT DISTINCT destination_hub FROM pool_records WHERE destination_hub <> ''
	ORDER BY 1
	`
	SelectDistinctPoolCities = `
	SELECT DISTINCT city FROM pool_records WHERE city <> '' ORDER BY city
	`
)
