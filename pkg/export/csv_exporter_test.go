package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	payload, err := exporter.Render(Dataset{
		Headers: []string{"role", "uid", "name"},
		Rows: [][]string{
			{"instructor", "5", "Grace"},
			{"student", "1", "Ada, Countess"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "role,uid,name\ninstructor,5,Grace\nstudent,1,\"Ada, Countess\"\n", string(payload))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{
		Headers: []string{"role", "uid"},
		Rows:    [][]string{{"student"}},
	})
	assert.Error(t, err)
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(Dataset{
		Headers: []string{"role", "uid", "name"},
		Rows:    [][]string{{"student", "1", "Ada"}},
	}, "Roster: Algebra (10:30-12:00)")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}
