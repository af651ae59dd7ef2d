package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

func TestWorkbookWritesHeaderAndRows(t *testing.T) {
	items := []models.InventoryExceptionRecord{
		{Date: "4/8/25", CustomerCode: "C1", SKU: "A1", ProductName: "Widget", ActualStock: 3, SystemStock: 5, Location: "B-01", Note: "recount"},
	}

	data, err := Workbook("Inventory", models.InventoryExportHeaders, Rows(items))
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, []string{"Inventory"}, wb.GetSheetList())

	rows, err := wb.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.InventoryExportHeaders, rows[0])
	assert.Equal(t, []string{"04/08/2025", "C1", "A1", "Widget", "3", "5", "-2", "B-01", "recount"}, rows[1])
}

func TestWorkbookExceptionCourierColumn(t *testing.T) {
	items := []models.ExceptionRecord{
		{Date: "03/01/2025", ExceptionType: models.ExceptionNoTracking, TrackingNumber: "123456789012"},
	}

	data, err := Workbook("Exceptions", models.ExceptionExportHeaders, Rows(items))
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	cell, err := wb.GetCellValue("Exceptions", "E2")
	require.NoError(t, err)
	assert.Equal(t, "FedEx", cell)
}

func TestWorkbookRequiresSheetName(t *testing.T) {
	_, err := Workbook("", nil, nil)
	assert.Error(t, err)
}
