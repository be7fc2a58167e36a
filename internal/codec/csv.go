package codec

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jask/matchlog/internal/apperr"
	"github.com/jask/matchlog/internal/match"
)

const setSeparator = " | "

var setToken = regexp.MustCompile(`^(\d+)-(\d+)(?:\(([^)]+)\))?$`)

// FormatSets renders sets in the compact column notation: "6-4 | 10-7(STB)".
func FormatSets(sets []match.SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, setSeparator)
}

// ParseSets reads the compact notation. Malformed tokens are skipped and
// counted rather than failing the whole value.
func ParseSets(text string) ([]match.SetScore, int) {
	var sets []match.SetScore
	skipped := 0
	for _, tok := range strings.Split(text, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		m := setToken.FindStringSubmatch(tok)
		if m == nil {
			skipped++
			continue
		}
		me, err1 := strconv.Atoi(m[1])
		rival, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			skipped++
			continue
		}
		sets = append(sets, match.SetScore{Me: me, Rival: rival, Tiebreak: m[3]})
	}
	return sets, skipped
}

// EncodeCSV writes the header and one row per record. Every field is quoted
// and embedded quotes are doubled.
func EncodeCSV(w io.Writer, records []match.Record) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, Columns)
	for _, r := range records {
		bw.WriteByte('\n')
		writeRow(bw, csvRow(r))
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('"')
		bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
		bw.WriteByte('"')
	}
}

func csvRow(r match.Record) []string {
	return []string{
		r.ID,
		r.Date,
		r.StartTime,
		formatNumber(r.DurationMinutes),
		r.Opponent,
		r.Surface,
		r.Location,
		r.Format,
		formatNumber(r.Effort),
		r.Tags,
		r.Notes,
		FormatSets(r.Sets),
		string(r.Outcome),
	}
}

func formatNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// CSVResult is the outcome of decoding a CSV document.
type CSVResult struct {
	Records     []match.Record
	SkippedSets int
}

// DecodeCSV reads a header row followed by data rows. Columns are located by
// header name, so missing or reordered columns are tolerated. A blank id gets a
// fresh one, a blank format defaults to BO3_TB, and the outcome is recomputed.
func DecodeCSV(r io.Reader) (CSVResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return CSVResult{}, apperr.ParseWrap("decode csv", err)
	}
	rows, err := splitRows(strings.TrimPrefix(string(data), "\ufeff"))
	if err != nil {
		return CSVResult{}, err
	}
	if len(rows) == 0 {
		return CSVResult{}, apperr.Parse("decode csv", "missing header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = canonical(strings.TrimSpace(name))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	if _, ok := index[FieldDate]; !ok {
		if _, ok := index[FieldID]; !ok {
			return CSVResult{}, apperr.Parse("decode csv", "header has neither %q nor %q column", FieldID, FieldDate)
		}
	}

	res := CSVResult{Records: make([]match.Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		col := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		rec := match.Record{
			ID:              strings.TrimSpace(col(FieldID)),
			Date:            col(FieldDate),
			StartTime:       col(FieldStartTime),
			DurationMinutes: parseNumber(col(FieldDurationMinutes)),
			Opponent:        col(FieldOpponent),
			Surface:         col(FieldSurface),
			Location:        col(FieldLocation),
			Format:          col(FieldFormat),
			Effort:          parseNumber(col(FieldEffort)),
			Tags:            col(FieldTags),
			Notes:           col(FieldNotes),
		}
		if rec.ID == "" {
			rec.ID = match.NewID()
		}
		if rec.Format == "" {
			rec.Format = match.DefaultFormat
		}
		sets, skipped := ParseSets(col(FieldSets))
		res.SkippedSets += skipped
		rec.SetSets(sets)
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// splitRows parses quoted CSV text. Quoted fields may contain separators,
// doubled quotes and newlines; blank lines are dropped.
func splitRows(text string) ([][]string, error) {
	var (
		rows    [][]string
		row     []string
		field   strings.Builder
		quoted  bool
		touched bool
	)
	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if touched || len(row) > 1 || strings.TrimSpace(row[0]) != "" {
			rows = append(rows, row)
		}
		row = nil
		touched = false
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if quoted {
			if ch == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					quoted = false
				}
				continue
			}
			field.WriteByte(ch)
			continue
		}
		switch ch {
		case '"':
			quoted = true
			touched = true
		case ',':
			endField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			field.WriteByte(ch)
		case '\n':
			endRow()
		default:
			field.WriteByte(ch)
		}
	}
	if quoted {
		return nil, apperr.Parse("decode csv", "unterminated quoted field")
	}
	endRow()
	return rows, nil
}
