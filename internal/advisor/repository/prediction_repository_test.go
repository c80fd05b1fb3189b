package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-advisor/internal/advisor/dto"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predictions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPredictionCSV_SingleColumn(t *testing.T) {
	path := writeTempCSV(t, "predicted\n230.15\n231.40\n229.80\n")

	points, err := readPredictionCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "Day 1", points[0].Date)
	assert.InDelta(t, 230.15, points[0].Prediction, 1e-9)
	assert.Equal(t, "Day 3", points[2].Date)
	assert.InDelta(t, 229.80, points[2].Prediction, 1e-9)
}

func TestReadPredictionCSV_DateColumn(t *testing.T) {
	path := writeTempCSV(t, "date,prediction\n2025-03-17,230.15\n2025-03-18,231.40\n")

	points, err := readPredictionCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2025-03-17", points[0].Date)
	assert.InDelta(t, 231.40, points[1].Prediction, 1e-9)
}

func TestReadPredictionCSV_SkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, "date,prediction\n2025-03-17,not-a-number\n2025-03-18,231.40\n")

	points, err := readPredictionCSV(path)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2025-03-18", points[0].Date)
}

func TestReadPredictionCSV_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "predicted\n")

	points, err := readPredictionCSV(path)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestFormatPredictions(t *testing.T) {
	got := formatPredictions([]dto.PredictionPoint{
		{Date: "Day 1", Prediction: 230.154},
		{Date: "2025-03-18", Prediction: 231.4},
	})
	assert.Equal(t, "FUTURE PREDICTIONS:\n- Day 1: $230.15\n- 2025-03-18: $231.40\n", got)
}
