package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dwellcli/internal/config"
	"dwellcli/internal/dataprocessing"
	"dwellcli/internal/errors"
	"dwellcli/pkg/contracts/domain"
)

func exampleDerived(t *testing.T) domain.DerivedSeries {
	t.Helper()
	input := `Total dwellings commenced
Period,Trend,Seasonally adjusted
Mar-17,"1,000",950
Jun-17,"1,100","1,000"
Sep-17,"1,050","1,010"
Dec-17,"1,200","1,080"
Mar-18,"1,300","1,150"
`
	result, err := newTestLoader().LoadReader(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	return dataprocessing.Derive(result.Series)
}

func newTestLoader() *dataprocessing.Loader {
	return dataprocessing.NewLoader(dataprocessing.LoaderConfigFromInput(config.Default().Input), nil)
}

func defaultOptions() DatasetOptions {
	return DatasetOptionsFromOutput(config.Default().Output)
}

func TestDatasetExporter_CSVRows(t *testing.T) {
	rows := NewDatasetExporter(nil, defaultOptions(), nil).CSVRows(exampleDerived(t))
	require.Len(t, rows, 5)

	assert.Equal(t, []string{
		"Mar-17", "1000", "950", "2017-03-01", "2017", "1",
		"", "", "", "",
		"1000.0000", "950.0000",
	}, rows[0])

	assert.Equal(t, "10.0000", rows[1][6])
	assert.Equal(t, "", rows[3][8], "yoy undefined below index 4")
	assert.Equal(t, "30.0000", rows[4][8])
	assert.Equal(t, "1060.0000", rows[4][11])
	assert.Equal(t, "4", rows[3][5])
}

func TestDatasetExporter_ExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dwellings_derived.csv")

	written, err := NewDatasetExporter(nil, defaultOptions(), nil).Export(context.Background(), exampleDerived(t), path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, string(utf8BOM)+config.DefaultTitle+"\n"))
	assert.Contains(t, text, strings.Join(DatasetHeaders, ",")+"\n")
	assert.Contains(t, text, "Mar-18,1300,1150,2018-03-01,2018,1,")
}

func TestDatasetExporter_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file string
		opts DatasetOptions
	}{
		{"csv with bom", "derived.csv", defaultOptions()},
		{"csv without bom or title", "derived.csv", DatasetOptions{Precision: 2}},
		{"xlsx", "derived.xlsx", defaultOptions()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived := exampleDerived(t)
			path := filepath.Join(t.TempDir(), tt.file)

			_, err := NewDatasetExporter(nil, tt.opts, nil).Export(context.Background(), derived, path)
			require.NoError(t, err)

			reloaded, err := newTestLoader().LoadFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, derived.Series(), reloaded.Series)
		})
	}
}

func TestDatasetExporter_ExportXLSX(t *testing.T) {
	dir := t.TempDir()
	paths := &config.Paths{OutputDir: dir}

	written, err := NewDatasetExporter(paths, defaultOptions(), nil).
		Export(context.Background(), exampleDerived(t), "dwellings_derived.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dwellings_derived.xlsx"), written)

	f, err := excelize.OpenFile(written)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheet}, f.GetSheetList())

	header, err := f.GetCellValue(DefaultSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Period", header)

	blank, err := f.GetCellValue(DefaultSheet, "G3")
	require.NoError(t, err)
	assert.Equal(t, "", blank, "undefined growth stays blank")

	yoy, err := f.GetCellValue(DefaultSheet, "I7")
	require.NoError(t, err)
	assert.Equal(t, "30", yoy)
}

func TestDatasetExporter_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "derived.json")

	_, err := NewDatasetExporter(nil, defaultOptions(), nil).Export(context.Background(), exampleDerived(t), path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
	assert.NoFileExists(t, path)
}
