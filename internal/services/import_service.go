package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/logging"
	"github.com/wellingtonshopee/analitics/internal/metrics"
	"github.com/wellingtonshopee/analitics/internal/models/dtos"
	"github.com/wellingtonshopee/analitics/internal/models/orm"
)

var (
	// ErrUnknownImportKind rejects uploads for a kind we do not ingest.
	ErrUnknownImportKind = errors.New(constants.GetErrorMessage(constants.ErrCodeUnknownImport))

	// ErrNoValidRows fails a batch in which every row was rejected. A batch
	// with at least one good row commits and reports the skips.
	ErrNoValidRows = errors.New(constants.GetErrorMessage(constants.ErrCodeNoValidRows))
)

// Column headers of the upstream exports, as shipped by the carrier tools.
var (
	poolColumns = map[string]string{
		"tracking": "Shipment Id",
		"status":   "Status",
		"hub":      "Destination Hub",
		"city":     "City",
		"zipcode":  "Zipcode",
		"region":   "Region",
		"lhTrip":   "LH Trip",
	}
	sweeperColumns = map[string]string{
		"tracking":  "SPX Tracking Number",
		"scanned":   "Scanned Status",
		"final":     "Final Status",
		"nextStep":  "Next Step Action",
		"onHold":    "On Hold Times",
		"countType": "Count Type",
		"operator":  "Operator",
	}
	trackingColumns = map[string]string{
		"tracking": "SLS Tracking Number",
		"order":    "Order ID",
		"status":   "Status",
		"hub":      "Destination Hub",
		"station":  "Current Station",
		"onHold":   "OnHoldReason",
	}
)

// How many per-row errors to echo back to the uploader.
const maxRowErrors = 20

// ImportWriter is the transactional write surface for parsed batches.
type ImportWriter interface {
	SavePoolBatch(ctx context.Context, batch *orm.ImportBatch, records []orm.PoolRecord) error
	SaveSweeperBatch(ctx context.Context, batch *orm.ImportBatch, records []orm.SweeperRecord) error
	SaveTrackingBatch(ctx context.Context, batch *orm.ImportBatch, records []orm.TrackingRecord) error
}

// CacheInvalidator is notified when an import commits, so read-through
// caches (filter options) drop stale values.
type CacheInvalidator interface {
	Invalidate()
}

// ImportService ingests the CSV exports that populate the three record
// stores. A bad row is skipped and counted, never fatal to its batch; a
// batch where nothing validates fails whole. Each batch commits
// all-or-nothing.
type ImportService struct {
	writer      ImportWriter
	invalidator CacheInvalidator
	metrics     *metrics.MetricsRegistry
}

func NewImportService(writer ImportWriter, invalidator CacheInvalidator, metricsReg *metrics.MetricsRegistry) *ImportService {
	return &ImportService{writer: writer, invalidator: invalidator, metrics: metricsReg}
}

// Import parses and commits one uploaded file. referenceDate is the
// business date the user attributes to the file (pool file reference date,
// sweeper scan date, tracking upload date).
func (s *ImportService) Import(ctx context.Context, kind, fileName string, r io.Reader, referenceDate time.Time, user string) (*dtos.ImportSummary, error) {
	batchID := uuid.NewString()
	summary := &dtos.ImportSummary{BatchID: batchID, Kind: kind}

	var err error
	switch kind {
	case constants.ImportKindPool:
		err = s.importPool(ctx, batchID, fileName, r, referenceDate, user, summary)
	case constants.ImportKindSweeper:
		err = s.importSweeper(ctx, batchID, fileName, r, referenceDate, user, summary)
	case constants.ImportKindTracking:
		err = s.importTracking(ctx, batchID, fileName, r, referenceDate, user, summary)
	default:
		return nil, ErrUnknownImportKind
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.ImportBatchesTotal.WithLabelValues(kind, "failed").Inc()
		}
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
	if s.metrics != nil {
		s.metrics.ImportBatchesTotal.WithLabelValues(kind, "ok").Inc()
		s.metrics.ImportRowsTotal.WithLabelValues(kind, "saved").Add(float64(summary.RowsSaved))
		s.metrics.ImportRowsTotal.WithLabelValues(kind, "skipped").Add(float64(summary.RowsSkipped))
	}

	logging.Info("Import batch committed",
		"batch_id", batchID,
		"kind", kind,
		"file", fileName,
		"rows_saved", summary.RowsSaved,
		"rows_skipped", summary.RowsSkipped,
	)
	return summary, nil
}

func (s *ImportService) importPool(ctx context.Context, batchID, fileName string, r io.Reader, referenceDate time.Time, user string, summary *dtos.ImportSummary) error {
	var records []orm.PoolRecord

	err := forEachRow(r, func(line int, get func(string) string) {
		summary.RowsRead++
		tracking := get(poolColumns["tracking"])
		if tracking == "" {
			s.skip(summary, line, "missing Shipment Id")
			return
		}
		records = append(records, orm.PoolRecord{
			TrackingNumber:    tracking,
			Status:            get(poolColumns["status"]),
			DestinationHub:    get(poolColumns["hub"]),
			City:              get(poolColumns["city"]),
			Zipcode:           get(poolColumns["zipcode"]),
			Region:            get(poolColumns["region"]),
			LHTrip:            get(poolColumns["lhTrip"]),
			FileReferenceDate: referenceDate,
			BatchID:           batchID,
			UploadedBy:        user,
		})
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrNoValidRows
	}

	summary.RowsSaved = len(records)
	batch := s.batchRow(batchID, constants.ImportKindPool, fileName, user, summary)
	return s.writer.SavePoolBatch(ctx, batch, records)
}

func (s *ImportService) importSweeper(ctx context.Context, batchID, fileName string, r io.Reader, referenceDate time.Time, user string, summary *dtos.ImportSummary) error {
	var records []orm.SweeperRecord
	// Same-day duplicates collapse here rather than exploding the upsert.
	seen := map[string]int{}

	err := forEachRow(r, func(line int, get func(string) string) {
		summary.RowsRead++
		tracking := get(sweeperColumns["tracking"])
		if tracking == "" {
			s.skip(summary, line, "missing SPX Tracking Number")
			return
		}

		onHold := 0
		if raw := get(sweeperColumns["onHold"]); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				s.skip(summary, line, fmt.Sprintf("invalid On Hold Times %q", raw))
				return
			}
			onHold = parsed
		}

		record := orm.SweeperRecord{
			TrackingNumber: tracking,
			ReferenceDate:  referenceDate,
			ScannedStatus:  get(sweeperColumns["scanned"]),
			FinalStatus:    get(sweeperColumns["final"]),
			CountType:      get(sweeperColumns["countType"]),
			NextStepAction: get(sweeperColumns["nextStep"]),
			OnHoldTimes:    onHold,
			Operator:       get(sweeperColumns["operator"]),
			BatchID:        batchID,
			UploadedBy:     user,
		}
		if idx, dup := seen[tracking]; dup {
			records[idx] = record
			return
		}
		seen[tracking] = len(records)
		records = append(records, record)
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrNoValidRows
	}

	summary.RowsSaved = len(records)
	batch := s.batchRow(batchID, constants.ImportKindSweeper, fileName, user, summary)
	return s.writer.SaveSweeperBatch(ctx, batch, records)
}

func (s *ImportService) importTracking(ctx context.Context, batchID, fileName string, r io.Reader, referenceDate time.Time, user string, summary *dtos.ImportSummary) error {
	var records []orm.TrackingRecord

	err := forEachRow(r, func(line int, get func(string) string) {
		summary.RowsRead++
		tracking := get(trackingColumns["tracking"])
		if tracking == "" {
			s.skip(summary, line, "missing SLS Tracking Number")
			return
		}
		records = append(records, orm.TrackingRecord{
			TrackingNumber: tracking,
			OrderID:        get(trackingColumns["order"]),
			Status:         get(trackingColumns["status"]),
			DestinationHub: get(trackingColumns["hub"]),
			CurrentStation: get(trackingColumns["station"]),
			OnHoldReason:   get(trackingColumns["onHold"]),
			UploadDate:     referenceDate,
			BatchID:        batchID,
			UploadedBy:     user,
		})
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrNoValidRows
	}

	summary.RowsSaved = len(records)
	batch := s.batchRow(batchID, constants.ImportKindTracking, fileName, user, summary)
	return s.writer.SaveTrackingBatch(ctx, batch, records)
}

func (s *ImportService) skip(summary *dtos.ImportSummary, line int, reason string) {
	summary.RowsSkipped++
	if len(summary.RowErrors) < maxRowErrors {
		summary.RowErrors = append(summary.RowErrors, fmt.Sprintf("line %d: %s", line, reason))
	}
}

func (s *ImportService) batchRow(batchID, kind, fileName, user string, summary *dtos.ImportSummary) *orm.ImportBatch {
	return &orm.ImportBatch{
		ID:          batchID,
		Kind:        kind,
		FileName:    fileName,
		RowsRead:    summary.RowsRead,
		RowsSaved:   summary.RowsSaved,
		RowsSkipped: summary.RowsSkipped,
		UploadedBy:  user,
	}
}

// forEachRow streams a CSV, calling fn once per data row with a trimmed,
// header-keyed getter. Header matching is case-insensitive and strips the
// UTF-8 BOM Excel likes to prepend.
func forEachRow(r io.Reader, fn func(line int, get func(string) string)) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return ErrNoValidRows
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimPrefix(col, "\uFEFF")
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// malformed line: skip it, keep streaming
			line++
			continue
		}
		line++

		get := func(column string) string {
			i, ok := index[strings.ToLower(column)]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		fn(line, get)
	}
}
