package report

import (
	"bytes"
	"testing"

	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparklineWriter_Write(t *testing.T) {
	results := models.AnalysisResults{
		Market: models.MsciResult{
			History: []models.MsciDay{
				{Date: "20260101", Score: 45},
				{Date: "20260102", Score: 52},
				{Date: "20260103", Score: 48},
			},
		},
	}

	var buf bytes.Buffer
	err := NewSparklineWriter().Write(&buf, results)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestSparklineWriter_TooFewPointsErrors(t *testing.T) {
	results := models.AnalysisResults{
		Market: models.MsciResult{History: []models.MsciDay{{Date: "20260101", Score: 45}}},
	}

	var buf bytes.Buffer
	err := NewSparklineWriter().Write(&buf, results)
	assert.Error(t, err)
}
