package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineRendersPath(t *testing.T) {
	out, err := Line(0, 0, []float64{10, 25, 5}, []string{"2025-W27", "2025-W28", "2025-W29"}, LineOpts{Title: "Ganancia semanal", ShowDots: true})
	require.NoError(t, err)

	markup := string(out)
	require.Contains(t, markup, "<path d=\"M")
	require.Equal(t, 3, strings.Count(markup, "<circle"))
	require.Contains(t, markup, "2025-W28")
}

func TestLineSinglePoint(t *testing.T) {
	out, err := Line(0, 0, []float64{42}, []string{"2025-W30"}, LineOpts{})
	require.NoError(t, err)
	require.Contains(t, string(out), "<path")
}

func TestLineValidation(t *testing.T) {
	_, err := Line(0, 0, nil, nil, LineOpts{})
	require.Error(t, err)

	_, err = Line(0, 0, []float64{1}, []string{"a", "b"}, LineOpts{})
	require.Error(t, err)
}
