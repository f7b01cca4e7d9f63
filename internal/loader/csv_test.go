package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `code,name,industry,20260102,20260101,20260103
1,Alpha Corp,Tech,mid-bull,small-bull,strong-bull
sh600001,Beta Inc,,mid-bear,-,small-bear
`

func TestCSVLoader_Load(t *testing.T) {
	loader := NewCSVLoader(strings.NewReader(sampleCSV))
	dataset, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"20260101", "20260102", "20260103"}, dataset.Days)
	require.Len(t, dataset.Stocks, 2)

	assert.Equal(t, "000001", dataset.Stocks[0].Code)
	assert.Equal(t, "Tech", dataset.Stocks[0].Industry)
	assert.Equal(t, models.RatingSeries{models.SmallBull, models.MidBull, models.StrongBull}, dataset.Stocks[0].Series)

	assert.Equal(t, "SH600001", dataset.Stocks[1].Code)
	assert.Equal(t, models.DefaultIndustry, dataset.Stocks[1].Industry)
	assert.Equal(t, models.RatingSeries{models.Missing, models.MidBear, models.SmallBear}, dataset.Stocks[1].Series)
}

func TestCSVLoader_MissingCodeColumnErrors(t *testing.T) {
	loader := NewCSVLoader(strings.NewReader("name,industry\nAlpha,Tech\n"))
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestCSVLoader_NoRowsErrors(t *testing.T) {
	loader := NewCSVLoader(strings.NewReader("code,name,industry\n"))
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}
