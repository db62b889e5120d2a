package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	data := Dataset{
		Headers: []string{"Date", "Hours"},
		Rows: []map[string]string{
			{"Date": "2025/11/28", "Hours": "1.50"},
			{"Date": "2025/11/27", "Hours": "0.83"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Date,Hours\n2025/11/28,1.50\n2025/11/27,0.83\n", string(out))
}

func TestCSVExporterMissingCellRendersEmpty(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Date", "Hours"},
		Rows:    []map[string]string{{"Date": "2025/11/28"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Date,Hours\n2025/11/28,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Date", "Hours"},
		Rows:    []map[string]string{{"Date": "2025/11/28", "Hours": "1.50"}},
	}, "Overtime Report", []string{"Period: 2025/11/20 - 2025/11/28"})
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
