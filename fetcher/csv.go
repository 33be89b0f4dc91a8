// fetcher/csv.go
package fetcher

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"

	"github.com/jszwec/csvutil"
)

// makeColumns lists the categorical columns that get the uppercase-clean
// transform instead of the plain trim.
var makeColumns = map[string]bool{
	"make": true,
}

// DecodeCSV parses delimited text into typed rows. Header renaming comes from
// the `csv:"..."` tags on T; value transforms run through the decoder's Map
// hook before typed parsing, so numeric cells are cleaned before strconv sees
// them.
func DecodeCSV[T any](data []byte) ([]T, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true

	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	decoder.Map = func(field, column string, v any) string {
		switch v.(type) {
		case int, int64, float64:
			return CleanInt(field)
		default:
			if makeColumns[column] {
				return CleanMake(field)
			}
			return CleanString(field)
		}
	}

	var rows []T
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode CSV data: %w", err)
	}

	log.Printf("Fetcher: parsed %d rows from CSV.\n", len(rows))
	return rows, nil
}
