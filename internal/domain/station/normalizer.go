package station

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column names expected in the source price sheet.
var requiredColumns = []string{
	"OPIS Truckstop ID",
	"Truckstop Name",
	"Address",
	"City",
	"State",
	"Rack ID",
	"Retail Price",
}

// RawPriceRow is one unparsed record from the tabular price source.
type RawPriceRow struct {
	OPISTruckstopID string
	TruckstopName   string
	Address         string
	City            string
	State           string
	RackID          string
	RetailPrice     string
}

// ParseCSV reads the price sheet and returns its rows untouched. A missing
// required column is fatal for the run; extra columns are ignored.
func ParseCSV(r io.Reader) ([]RawPriceRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing expected columns: %s", strings.Join(missing, ", "))
	}

	field := func(record []string, name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []RawPriceRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, RawPriceRow{
			OPISTruckstopID: field(record, "OPIS Truckstop ID"),
			TruckstopName:   field(record, "Truckstop Name"),
			Address:         field(record, "Address"),
			City:            field(record, "City"),
			State:           field(record, "State"),
			RackID:          field(record, "Rack ID"),
			RetailPrice:     field(record, "Retail Price"),
		})
	}

	return rows, nil
}

// Normalize cleans raw rows and deduplicates them to one station per
// canonical key, keeping the cheapest price. Two records for the same
// physical location at different prices are a known data artifact; the
// cheapest is the one a driver would realistically observe. Rows that fail
// the filters are silently dropped.
func Normalize(rows []RawPriceRow) []*Station {
	normalized := make([]*Station, 0, len(rows))

	for _, row := range rows {
		opisID, err := strconv.ParseInt(strings.TrimSpace(row.OPISTruckstopID), 10, 64)
		if err != nil {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row.RetailPrice), 64)
		if err != nil || price <= 0 {
			continue
		}

		address := strings.TrimSpace(row.Address)
		city := strings.TrimSpace(row.City)
		state := strings.ToUpper(strings.TrimSpace(row.State))
		if len(state) > 2 {
			state = state[:2]
		}
		if address == "" || city == "" || len(state) != 2 {
			continue
		}

		var rackID *int64
		if parsed, err := strconv.ParseInt(strings.TrimSpace(row.RackID), 10, 64); err == nil {
			rackID = &parsed
		}

		normalized = append(normalized, &Station{
			OPISTruckstopID: opisID,
			Name:            strings.TrimSpace(row.TruckstopName),
			Address:         address,
			City:            city,
			State:           state,
			RackID:          rackID,
			RetailPrice:     roundTo(price, 3),
			CanonicalKey:    MakeCanonicalKey(address, city, state),
		})
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].CanonicalKey != normalized[j].CanonicalKey {
			return normalized[i].CanonicalKey < normalized[j].CanonicalKey
		}
		return normalized[i].RetailPrice < normalized[j].RetailPrice
	})

	deduped := make([]*Station, 0, len(normalized))
	seen := make(map[string]struct{}, len(normalized))
	for _, s := range normalized {
		if _, ok := seen[s.CanonicalKey]; ok {
			continue
		}
		seen[s.CanonicalKey] = struct{}{}
		deduped = append(deduped, s)
	}

	return deduped
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
