package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/matchlog/internal/match"
)

func fixture() []match.Record {
	return []match.Record{
		{ID: "1", Date: "2026-01-05", Opponent: "Ana Ruiz", Surface: "Clay", Outcome: match.OutcomeWin, Tags: "league"},
		{ID: "2", Date: "2026-01-12", Opponent: "Bea", Surface: "Hard", Outcome: match.OutcomeLoss, Notes: "Backhand CROSSCOURT misses"},
		{ID: "3", Date: "", Opponent: "Carla", Surface: "Clay", Outcome: match.OutcomeRetired},
		{ID: "4", Date: "2026-02-01", Opponent: "Ana Ruiz", Surface: "Hard", Outcome: match.OutcomeWin, Tags: "friendly"},
		{ID: "5", Date: "not-a-date", Opponent: "Dora", Surface: "Grass"},
	}
}

func ids(records []match.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestApplyEmptyCriteriaIsNoop(t *testing.T) {
	t.Parallel()

	rows := fixture()
	c := Criteria{Text: "   "}
	require.True(t, c.IsZero())
	require.Equal(t, rows, Apply(rows, c))
}

func TestApplyText(t *testing.T) {
	t.Parallel()

	rows := fixture()
	require.Equal(t, []string{"1", "4"}, ids(Apply(rows, Criteria{Text: "ana"})))
	require.Equal(t, []string{"2"}, ids(Apply(rows, Criteria{Text: "crosscourt"})))
	require.Equal(t, []string{"4"}, ids(Apply(rows, Criteria{Text: "FRIEND"})))
	require.Empty(t, Apply(rows, Criteria{Text: "zzz"}))
}

func TestApplyTextSpansJoinedFields(t *testing.T) {
	t.Parallel()

	rows := []match.Record{{ID: "x", Opponent: "Eva", Tags: "doubles"}}
	require.Len(t, Apply(rows, Criteria{Text: "eva doubles"}), 1)
}

func TestApplySurfaceAndOutcome(t *testing.T) {
	t.Parallel()

	rows := fixture()
	require.Equal(t, []string{"1", "3"}, ids(Apply(rows, Criteria{Surface: "Clay"})))
	require.Empty(t, Apply(rows, Criteria{Surface: "clay"}), "surface is exact")
	require.Equal(t, []string{"1", "4"}, ids(Apply(rows, Criteria{Outcome: "W"})))
	require.Equal(t, []string{"4"}, ids(Apply(rows, Criteria{Surface: "Hard", Outcome: "W"})))
}

func TestApplyDateRange(t *testing.T) {
	t.Parallel()

	rows := fixture()
	c := Criteria{From: mustDate(t, "2026-01-05"), To: mustDate(t, "2026-01-12")}
	require.Equal(t, []string{"1", "2"}, ids(Apply(rows, c)), "bounds are inclusive, blank dates excluded")

	fromOnly := Criteria{From: mustDate(t, "2026-01-06")}
	require.Equal(t, []string{"2", "4"}, ids(Apply(rows, fromOnly)))

	toOnly := Criteria{To: time.Date(2026, 1, 5, 18, 30, 0, 0, time.UTC)}
	require.Equal(t, []string{"1"}, ids(Apply(rows, toOnly)), "time of day is ignored")
}

func TestOptions(t *testing.T) {
	t.Parallel()

	rows := fixture()
	require.Equal(t, []string{"Clay", "Hard", "Grass"}, Surfaces(rows))
	require.Equal(t, []string{"Ana Ruiz", "Bea", "Carla", "Dora"}, Opponents(rows))
}

func TestSimilarOpponents(t *testing.T) {
	t.Parallel()

	rows := fixture()
	got := SimilarOpponents(rows, "ana ruis", 2)
	require.Equal(t, []Suggestion{{Name: "Ana Ruiz", Distance: 1}}, got)

	got = SimilarOpponents(rows, "Carlo", 1)
	require.Equal(t, []Suggestion{{Name: "Carla", Distance: 1}}, got)

	require.Nil(t, SimilarOpponents(rows, " ", 3))
	require.Empty(t, SimilarOpponents(rows, "Zoe", 1))
}
