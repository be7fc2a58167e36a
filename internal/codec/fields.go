// Package codec converts match collections to and from the JSON and CSV
// interchange formats. Decoders turn untyped input into match.Record at the
// boundary so nothing past this package handles loosely shaped data.
package codec

// Field names, in CSV column order.
const (
	FieldID              = "id"
	FieldDate            = "date"
	FieldStartTime       = "startTime"
	FieldDurationMinutes = "durationMinutes"
	FieldOpponent        = "opponent"
	FieldSurface         = "surface"
	FieldLocation        = "location"
	FieldFormat          = "format"
	FieldEffort          = "effort"
	FieldTags            = "tags"
	FieldNotes           = "notes"
	FieldSets            = "sets"
	FieldOutcome         = "outcome"
)

// Columns is the fixed CSV header.
var Columns = []string{
	FieldID, FieldDate, FieldStartTime, FieldDurationMinutes, FieldOpponent,
	FieldSurface, FieldLocation, FieldFormat, FieldEffort, FieldTags,
	FieldNotes, FieldSets, FieldOutcome,
}

// legacyNames maps field names written by the first version of the tracker.
var legacyNames = map[string]string{
	"fecha":        FieldDate,
	"hora_inicio":  FieldStartTime,
	"duracion_min": FieldDurationMinutes,
	"rival":        FieldOpponent,
	"superficie":   FieldSurface,
	"ubicacion":    FieldLocation,
	"formato":      FieldFormat,
	"rpe":          FieldEffort,
	"notas":        FieldNotes,
	"resultado":    FieldOutcome,
}

// canonical returns the current name for a possibly legacy field name.
func canonical(name string) string {
	if c, ok := legacyNames[name]; ok {
		return c
	}
	return name
}
