package orm

import "time"

// ImportBatch is the bookkeeping row written alongside every upload.
type ImportBatch struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Kind        string    `gorm:"column:kind;size:16;not null"`
	FileName    string    `gorm:"column:file_name;size:255"`
	RowsRead    int       `gorm:"column:rows_read"`
	RowsSaved   int       `gorm:"column:rows_saved"`
	RowsSkipped int       `gorm:"column:rows_skipped"`
	UploadedBy  string    `gorm:"column:uploaded_by;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (ImportBatch) TableName() string { return "import_batches" }
