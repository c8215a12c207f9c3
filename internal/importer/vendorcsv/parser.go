package vendorcsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/acquitrack/internal/encoding"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
)

// Parser reads vendor registration spreadsheets exported as CSV.
// The delimiter and the header layout are detected from the file itself.
type Parser struct {
	profiles []Profile
}

// NewParser restricts detection to the given profiles, or tries every known profile when none are given.
func NewParser(only ...Profile) *Parser {
	if len(only) == 0 {
		only = profiles
	}

	return &Parser{profiles: only}
}

// record is a CSV row with the 1-based line it started on.
type record struct {
	line  int
	cells []string
}

// colIndex maps a vendor field to its column in the row.
type colIndex map[field]int

func (p *Parser) Parse(r io.Reader) ([]vendor.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	records, err := readRecords(data, detectDelimiter(data))
	if err != nil {
		return nil, err
	}

	cols, headerIdx, ok := p.detectProfile(records)
	if !ok {
		return nil, errors.New("no vendor header found: expected name, CAGE code and DUNS columns")
	}

	return parseRows(cols, records[headerIdx+1:])
}

func readRecords(data []byte, comma rune) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

// detectDelimiter picks the separator that occurs most often on the first non-empty line.
func detectDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		best, bestCount := ',', bytes.Count(line, []byte{','})

		for _, c := range []rune{';', '\t'} {
			if n := bytes.Count(line, []byte(string(c))); n > bestCount {
				best, bestCount = c, n
			}
		}

		return best
	}

	return ','
}

// detectProfile scans records for a header row that satisfies one of the parser's profiles.
func (p *Parser) detectProfile(records []record) (colIndex, int, bool) {
	for i, rec := range records {
		header := make(map[string]int, len(rec.cells))

		for col, cell := range rec.cells {
			if name := normalizeHeader(cell); name != "" {
				if _, dup := header[name]; !dup {
					header[name] = col
				}
			}
		}

		for _, profile := range p.profiles {
			if cols, ok := profile.columns(header); ok {
				return cols, i, true
			}
		}
	}

	return nil, 0, false
}

func parseRows(cols colIndex, records []record) ([]vendor.CreateParams, error) {
	var out []vendor.CreateParams

	for _, rec := range records {
		if blank(rec.cells) {
			continue
		}

		get := func(f field) string {
			i, ok := cols[f]
			if !ok {
				return ""
			}

			return cellValue(rec.cells, i)
		}

		businessType, err := parseBusinessType(get(fieldBusinessType))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rec.line, err)
		}

		out = append(out, vendor.CreateParams{
			Name:         get(fieldName),
			CageCode:     get(fieldCageCode),
			DUNS:         get(fieldDUNS),
			BusinessType: businessType,
			PointOfContact: vendor.Contact{
				Name:  get(fieldContactName),
				Email: get(fieldContactEmail),
				Phone: get(fieldContactPhone),
			},
			Address: vendor.Address{
				Street:  get(fieldStreet),
				City:    get(fieldCity),
				State:   get(fieldState),
				ZipCode: get(fieldZipCode),
				Country: get(fieldCountry),
			},
			Capabilities: splitList(get(fieldCapabilities)),
		})
	}

	return out, nil
}

// businessTypeAliases covers spelled-out names and the SAM socio-economic codes.
var businessTypeAliases = map[string]vendor.BusinessType{
	"small":                       vendor.BusinessSmall,
	"smallbusiness":               vendor.BusinessSmall,
	"large":                       vendor.BusinessLarge,
	"largebusiness":               vendor.BusinessLarge,
	"otherthansmall":              vendor.BusinessLarge,
	"smalldisadvantaged":          vendor.BusinessSmallDisadvantaged,
	"smalldisadvantagedbusiness":  vendor.BusinessSmallDisadvantaged,
	"sdb":                         vendor.BusinessSmallDisadvantaged,
	"27":                          vendor.BusinessSmallDisadvantaged,
	"womanowned":                  vendor.BusinessWomanOwned,
	"womenowned":                  vendor.BusinessWomanOwned,
	"wosb":                        vendor.BusinessWomanOwned,
	"a2":                          vendor.BusinessWomanOwned,
	"veteranowned":                vendor.BusinessVeteranOwned,
	"vosb":                        vendor.BusinessVeteranOwned,
	"a5":                          vendor.BusinessVeteranOwned,
	"hubzone":                     vendor.BusinessHUBZone,
	"xx":                          vendor.BusinessHUBZone,
	"servicedisabledveteran":      vendor.BusinessServiceDisabledVeteran,
	"servicedisabledveteranowned": vendor.BusinessServiceDisabledVeteran,
	"sdvosb":                      vendor.BusinessServiceDisabledVeteran,
	"qf":                          vendor.BusinessServiceDisabledVeteran,
	"historicallyblack":           vendor.BusinessHistoricallyBlack,
	"hbcu":                        vendor.BusinessHistoricallyBlack,
}

// parseBusinessType returns the first recognised entry of a possibly multi-valued cell.
// An empty cell leaves the type for the vendor service to default.
func parseBusinessType(s string) (vendor.BusinessType, error) {
	if s == "" {
		return "", nil
	}

	for _, part := range strings.FieldsFunc(s, isListSeparator) {
		if bt, ok := businessTypeAliases[normalizeHeader(part)]; ok {
			return bt, nil
		}

		if bt := vendor.BusinessType(strings.TrimSpace(part)); bt.Valid() {
			return bt, nil
		}
	}

	return "", fmt.Errorf("unknown business type %q", s)
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, isListSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

func isListSeparator(r rune) bool {
	return r == '|' || r == ';' || r == '~'
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
