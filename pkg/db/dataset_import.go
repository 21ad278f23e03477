package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func RecordDatasetImport(ctx context.Context, gdb *gorm.DB, source string, rowsIn, rowsOut int, summary any) (*DatasetImport, error) {
	raw, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode dataset summary: %w", err)
	}
	record := DatasetImport{
		RunID:   uuid.NewString(),
		Source:  source,
		RowsIn:  rowsIn,
		RowsOut: rowsOut,
		Summary: datatypes.JSON(raw),
	}
	if err := gdb.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("record dataset import: %w", err)
	}
	return &record, nil
}

func LatestDatasetImports(ctx context.Context, gdb *gorm.DB, limit int) ([]DatasetImport, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []DatasetImport
	err := gdb.WithContext(ctx).Order("id DESC").Limit(limit).Find(&records).Error
	return records, err
}
