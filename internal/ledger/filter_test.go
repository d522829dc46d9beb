package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func entryFor(client string, status Status, day time.Time) SaleEntry {
	return SaleEntry{ClientName: client, Status: status, Date: day}
}

func TestFilterClientNameIsCaseInsensitiveSubstring(t *testing.T) {
	day := date(2025, time.May, 1)
	entries := []SaleEntry{
		entryFor("Marta López", StatusPaid, day),
		entryFor("Pedro", StatusPaid, day),
		entryFor("marta", StatusPending, day),
	}

	out := Apply(entries, Filter{ClientName: "MART"})
	require.Len(t, out, 2)
	require.Equal(t, "Marta López", out[0].ClientName)
	require.Equal(t, "marta", out[1].ClientName)
}

func TestFilterStatusExact(t *testing.T) {
	day := date(2025, time.May, 1)
	entries := []SaleEntry{
		entryFor("a", StatusPaid, day),
		entryFor("b", StatusPending, day),
	}

	out := Apply(entries, Filter{Status: StatusPending})
	require.Len(t, out, 1)
	require.Equal(t, "b", out[0].ClientName)
}

func TestFilterDateBoundsInclusive(t *testing.T) {
	from := date(2025, time.May, 10)
	to := date(2025, time.May, 20)
	entries := []SaleEntry{
		entryFor("before", StatusPaid, date(2025, time.May, 9)),
		entryFor("lower", StatusPaid, from),
		entryFor("inside", StatusPaid, date(2025, time.May, 15)),
		entryFor("upper", StatusPaid, to),
		entryFor("after", StatusPaid, date(2025, time.May, 21)),
	}

	out := Apply(entries, Filter{DateFrom: &from, DateTo: &to})
	require.Len(t, out, 3)
	require.Equal(t, "lower", out[0].ClientName)
	require.Equal(t, "upper", out[2].ClientName)
}

func TestFilterEmptyMatchesEverything(t *testing.T) {
	entries := []SaleEntry{
		entryFor("a", StatusPaid, date(2025, time.May, 1)),
		entryFor("b", StatusPending, date(2025, time.May, 2)),
	}
	require.Len(t, Apply(entries, Filter{}), 2)
}
