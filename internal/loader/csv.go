package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/marketpulse/ratingengine/internal/errs"
	"github.com/marketpulse/ratingengine/internal/models"
	"github.com/marketpulse/ratingengine/internal/ratingscale"
)

// CSVLoader reads the reference table shape: a header row of
// code,name,industry,<day>,<day>,... followed by one row per stock.
// Day columns are recognized as any purely-numeric header (four-digit
// year strings starting with "202", or MMDD/YYYYMMDD) and are sorted
// lexicographically before the Dataset is built, per spec.md §6.
type CSVLoader struct {
	r io.Reader
}

// NewCSVLoader wraps an io.Reader of CSV data.
func NewCSVLoader(r io.Reader) *CSVLoader {
	return &CSVLoader{r: r}
}

var dayColumnPattern = regexp.MustCompile(`^\d+$`)

const (
	colCode     = "code"
	colName     = "name"
	colIndustry = "industry"
)

// Load parses the wrapped reader into a Dataset, normalizing stock
// codes (zero-padding six-digit numeric codes, uppercasing opaque
// ones) along the way.
func (l *CSVLoader) Load(ctx context.Context) (*models.Dataset, error) {
	select {
	case <-ctx.Done():
		return nil, errs.Wrap(errs.Cancelled, "loader.Load", ctx.Err())
	default:
	}

	reader := csv.NewReader(l.r)
	header, err := reader.Read()
	if err != nil {
		return nil, errs.Wrap(errs.InputMalformed, "loader.Load", err)
	}

	codeIdx, nameIdx, industryIdx := -1, -1, -1
	var dayCols []string
	dayIdx := make(map[string]int)
	for i, h := range header {
		col := strings.ToLower(strings.TrimSpace(h))
		switch col {
		case colCode:
			codeIdx = i
		case colName:
			nameIdx = i
		case colIndustry:
			industryIdx = i
		default:
			if dayColumnPattern.MatchString(col) {
				dayCols = append(dayCols, col)
				dayIdx[col] = i
			}
		}
	}
	if codeIdx == -1 {
		return nil, errs.New(errs.InputMalformed, "loader.Load", "missing stock code column")
	}
	sort.Strings(dayCols)

	var stocks []models.Stock
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.InputMalformed, "loader.Load", err)
		}

		code := normalizeCode(field(row, codeIdx))
		if code == "" {
			continue
		}
		name := field(row, nameIdx)
		industry := strings.TrimSpace(field(row, industryIdx))
		if industry == "" || strings.EqualFold(industry, models.DefaultIndustry) {
			industry = models.DefaultIndustry
		}

		series := make(models.RatingSeries, len(dayCols))
		for i, col := range dayCols {
			series[i] = ratingscale.Parse(strings.TrimSpace(field(row, dayIdx[col])))
		}

		stocks = append(stocks, models.Stock{
			Code:     code,
			Name:     name,
			Industry: industry,
			Series:   series,
		})
	}

	if len(stocks) == 0 {
		return nil, errs.New(errs.InputEmpty, "loader.Load", "no stock rows found")
	}

	return &models.Dataset{Stocks: stocks, Days: dayCols}, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// normalizeCode zero-pads six-digit numeric codes (the Chinese-market
// convention) and uppercases anything else, treating it as opaque.
func normalizeCode(raw string) string {
	code := strings.TrimSpace(raw)
	if code == "" {
		return ""
	}
	if dayColumnPattern.MatchString(code) {
		n, err := strconv.Atoi(code)
		if err == nil {
			return fmt.Sprintf("%06d", n)
		}
	}
	return strings.ToUpper(code)
}
