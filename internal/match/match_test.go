package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/matchlog/internal/apperr"
)

func TestDerive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		sets []SetScore
		want Outcome
	}{
		{"empty", nil, OutcomeNone},
		{"straight win", []SetScore{{Me: 6, Rival: 3}, {Me: 6, Rival: 4}}, OutcomeWin},
		{"straight loss", []SetScore{{Me: 2, Rival: 6}, {Me: 3, Rival: 6}}, OutcomeLoss},
		{"super tiebreak decider", []SetScore{{Me: 6, Rival: 4}, {Me: 4, Rival: 6}, {Me: 10, Rival: 7, Tiebreak: "STB"}}, OutcomeWin},
		{"fewer games more sets", []SetScore{{Me: 0, Rival: 6}, {Me: 7, Rival: 6}, {Me: 7, Rival: 5}}, OutcomeWin},
		{"tied set counts for nobody", []SetScore{{Me: 5, Rival: 5}}, OutcomeRetired},
		{"split sets", []SetScore{{Me: 6, Rival: 1}, {Me: 1, Rival: 6}}, OutcomeRetired},
		{"tie plus win", []SetScore{{Me: 3, Rival: 3}, {Me: 6, Rival: 2}}, OutcomeWin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Derive(tc.sets))
			require.Equal(t, tc.want, Derive(tc.sets), "derive must be deterministic")
		})
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	r, err := Prepare(Record{
		Date:     " 2026-03-01 ",
		Opponent: "  Ana ",
		Sets:     []SetScore{{Me: 6, Rival: 2}},
		Outcome:  OutcomeLoss,
	})
	require.NoError(t, err)
	require.NotEmpty(t, r.ID)
	require.Equal(t, "2026-03-01", r.Date)
	require.Equal(t, "Ana", r.Opponent)
	require.Equal(t, OutcomeWin, r.Outcome, "outcome is always recomputed")

	kept, err := Prepare(Record{ID: "abc", Date: "2026-03-02"})
	require.NoError(t, err)
	require.Equal(t, "abc", kept.ID)
	require.Equal(t, OutcomeNone, kept.Outcome)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Validate(Record{}), apperr.ErrValidation)
	require.ErrorIs(t, Validate(Record{Date: "01/03/2026"}), apperr.ErrValidation)
	require.ErrorIs(t, Validate(Record{Date: "2026-03-01", Sets: []SetScore{{Me: -1}}}), apperr.ErrValidation)
	require.ErrorIs(t, Validate(Record{Date: "2026-03-01", DurationMinutes: Float(-5)}), apperr.ErrValidation)
	require.NoError(t, Validate(Record{Date: "2026-03-01", Effort: Float(42)}), "effort is not range checked")
}

func TestFormatLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Best of 3 (super tiebreak)", FormatLabel(FormatBestOf3SuperTiebreak))
	require.Equal(t, "Pro set to 8", FormatLabel("PRO8"))
	require.Equal(t, "FAST4", FormatLabel("FAST4"))
	require.Equal(t, Placeholder, FormatLabel(""))
}

func TestDisplaySetsAndClone(t *testing.T) {
	t.Parallel()

	sets := []SetScore{{Me: 6, Rival: 3}, {Me: 4, Rival: 6}, {Me: 10, Rival: 7, Tiebreak: "STB"}}
	require.Equal(t, "6-3, 4-6, 10-7(STB)", DisplaySets(sets))

	orig := Record{ID: "a", Date: "2026-01-01", Effort: Float(7), Sets: sets}
	cp := orig.Clone()
	*cp.Effort = 3
	cp.Sets[0].Me = 0
	require.Equal(t, 7.0, *orig.Effort)
	require.Equal(t, 6, orig.Sets[0].Me)
}
