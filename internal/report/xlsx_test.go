package report

import (
	"path/filepath"
	"testing"

	"invoicedl/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	records := []model.ResultRecord{
		{Message: "Downloaded for account 100200300 (2 invoice(s))", Severity: model.SeveritySuccess},
		{Message: "Download successful.", Severity: model.SeveritySuccess},
	}

	require.NoError(t, WriteXLSX(path, "run-1", "202407", records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Batch Results", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "run-1", get("B1"))
	assert.Equal(t, "202407", get("B2"))
	assert.Equal(t, "Severity", get("A5"))
	assert.Equal(t, "success", get("A6"))
	assert.Equal(t, "Downloaded for account 100200300 (2 invoice(s))", get("B6"))
	assert.Equal(t, "Download successful.", get("B7"))
}

func TestWriteXLSXBadPath(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "batch.xlsx"), "run-1", "202407", nil)
	assert.Error(t, err)
}
