package apperr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMatchesKindAndCause(t *testing.T) {
	t.Parallel()

	err := Storage("persist tennis_matches_v2", io.ErrShortWrite)
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.NotErrorIs(t, err, ErrParse)
	require.Equal(t, "persist tennis_matches_v2: storage error: short write", err.Error())

	var ae *Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "persist tennis_matches_v2", ae.Op)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	require.Equal(t, "validation error: date is required", Validation("date is required").Error())
	require.Equal(t, "import json: parse error: top-level value must be an array",
		Parse("import json", "top-level value must be an array").Error())
	require.ErrorIs(t, ParseWrap("load", io.ErrUnexpectedEOF), io.ErrUnexpectedEOF)
}
