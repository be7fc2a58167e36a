package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jask/matchlog/internal/apperr"
	"github.com/jask/matchlog/internal/match"
)

// MarshalJSON encodes records compactly, as kept in storage.
func MarshalJSON(records []match.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, records, ""); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeJSON writes records as a pretty-printed array for export files.
func EncodeJSON(w io.Writer, records []match.Record) error {
	return encodeJSON(w, records, "  ")
}

func encodeJSON(w io.Writer, records []match.Record, indent string) error {
	if records == nil {
		records = []match.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(records)
}

// JSONResult is the outcome of decoding a JSON document.
type JSONResult struct {
	Records     []match.Record
	SkippedSets int
}

// DecodeJSON parses a JSON array of match objects. The top-level value must be
// an array and every element an object or null; anything else is a parse
// error. A null element decodes to an empty record. Missing fields take their
// zero value and the outcome is recomputed. Sets whose game counts are not
// non-negative integers are dropped and counted.
func DecodeJSON(data []byte) (JSONResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return JSONResult{}, apperr.Parse("decode json", "empty input")
	}
	if trimmed[0] != '[' {
		return JSONResult{}, apperr.Parse("decode json", "top-level value must be an array")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return JSONResult{}, apperr.ParseWrap("decode json", err)
	}
	res := JSONResult{Records: make([]match.Record, 0, len(items))}
	for i, raw := range items {
		r, skipped, err := decodeRecord(raw)
		if err != nil {
			return JSONResult{}, apperr.Parse("decode json", "element %d: %v", i, err)
		}
		res.Records = append(res.Records, r)
		res.SkippedSets += skipped
	}
	return res, nil
}

func decodeRecord(raw json.RawMessage) (match.Record, int, error) {
	if isNull(raw) {
		var r match.Record
		r.SetSets(nil)
		return r, 0, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return match.Record{}, 0, errNotObject
	}
	fields := make(map[string]json.RawMessage, len(obj))
	for k, v := range obj {
		if canonical(k) == k {
			fields[k] = v
		}
	}
	for k, v := range obj {
		if c := canonical(k); c != k {
			if _, ok := fields[c]; !ok {
				fields[c] = v
			}
		}
	}

	var r match.Record
	var err error
	str := func(name string) string {
		if err != nil {
			return ""
		}
		var s string
		s, err = flexString(fields[name])
		if err != nil {
			err = fieldError(name, err)
		}
		return s
	}
	num := func(name string) *float64 {
		if err != nil {
			return nil
		}
		var f *float64
		f, err = flexNumber(fields[name])
		if err != nil {
			err = fieldError(name, err)
		}
		return f
	}

	r.ID = str(FieldID)
	r.Date = str(FieldDate)
	r.StartTime = str(FieldStartTime)
	r.DurationMinutes = num(FieldDurationMinutes)
	r.Opponent = str(FieldOpponent)
	r.Surface = str(FieldSurface)
	r.Location = str(FieldLocation)
	r.Format = str(FieldFormat)
	r.Effort = num(FieldEffort)
	r.Tags = str(FieldTags)
	r.Notes = str(FieldNotes)
	if err != nil {
		return match.Record{}, 0, err
	}
	sets, skipped, err := decodeSets(fields[FieldSets])
	if err != nil {
		return match.Record{}, 0, fieldError(FieldSets, err)
	}
	r.SetSets(sets)
	return r, skipped, nil
}

type setWire struct {
	Me       json.RawMessage `json:"me"`
	Rival    json.RawMessage `json:"rival"`
	Tiebreak json.RawMessage `json:"tiebreak"`
	TB       json.RawMessage `json:"tb"`
}

func decodeSets(raw json.RawMessage) ([]match.SetScore, int, error) {
	if isNull(raw) {
		return nil, 0, nil
	}
	var wires []setWire
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, 0, err
	}
	sets := make([]match.SetScore, 0, len(wires))
	skipped := 0
	for i, w := range wires {
		me, err := flexNumber(w.Me)
		if err != nil {
			return nil, 0, setError(i, err)
		}
		rival, err := flexNumber(w.Rival)
		if err != nil {
			return nil, 0, setError(i, err)
		}
		tbRaw := w.Tiebreak
		if isNull(tbRaw) {
			tbRaw = w.TB
		}
		tb, err := flexString(tbRaw)
		if err != nil {
			return nil, 0, setError(i, err)
		}
		myGames, ok1 := gameCount(me)
		rivalGames, ok2 := gameCount(rival)
		if !ok1 || !ok2 {
			skipped++
			continue
		}
		sets = append(sets, match.SetScore{Me: myGames, Rival: rivalGames, Tiebreak: tb})
	}
	return sets, skipped, nil
}

// gameCount converts a decoded number to a game count. Absent counts are
// zero; fractional, negative and non-finite values are rejected.
func gameCount(f *float64) (int, bool) {
	if f == nil {
		return 0, true
	}
	v := *f
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// flexString accepts strings, numbers, booleans and null.
func flexString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	return "", errNotScalar
}

// flexNumber accepts numbers, numeric strings, "" and null. Empty yields nil.
func flexNumber(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errNotNumber
	}
	return parseNumber(s), nil
}

// parseNumber returns nil for blank or non-numeric text.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

var (
	errNotObject = errors.New("not an object")
	errNotScalar = errors.New("expected a string or number")
	errNotNumber = errors.New("expected a number")
)

func fieldError(name string, err error) error { return fmt.Errorf("field %q: %w", name, err) }

func setError(i int, err error) error { return fmt.Errorf("set %d: %w", i+1, err) }
