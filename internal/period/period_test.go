package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want time.Time
		ok   bool
	}{
		{
			name: "month code with two-digit year",
			id:   "oct19",
			want: date(2019, time.October),
			ok:   true,
		},
		{
			name: "month code is case-insensitive",
			id:   "DEC20",
			want: date(2020, time.December),
			ok:   true,
		},
		{
			name: "two-digit year resolves as 2000 plus yy",
			id:   "jan00",
			want: date(2000, time.January),
			ok:   true,
		},
		{
			name: "iso year-month",
			id:   "2021-03",
			want: date(2021, time.March),
			ok:   true,
		},
		{
			name: "iso full date resolves to containing month",
			id:   "2019-06-15",
			want: date(2019, time.June),
			ok:   true,
		},
		{
			name: "rfc3339 fallback",
			id:   "2020-02-29T12:00:00Z",
			want: date(2020, time.February),
			ok:   true,
		},
		{
			name: "display label fallback",
			id:   "Nov 2022",
			want: date(2022, time.November),
			ok:   true,
		},
		{
			name: "unknown month code",
			id:   "xyz19",
			ok:   false,
		},
		{
			name: "garbage",
			id:   "not-a-period",
			ok:   false,
		},
		{
			name: "empty",
			id:   "",
			ok:   false,
		},
		{
			name: "whitespace only",
			id:   "   ",
			ok:   false,
		},
		{
			name: "invalid iso month",
			id:   "2021-13",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.id)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseAllMonthCodes(t *testing.T) {
	codes := []struct {
		code string
		want time.Month
	}{
		{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
		{"apr", time.April}, {"may", time.May}, {"jun", time.June},
		{"jul", time.July}, {"aug", time.August}, {"sep", time.September},
		{"oct", time.October}, {"nov", time.November}, {"dec", time.December},
	}
	for _, c := range codes {
		got, ok := Parse(ID(c.code + "21"))
		assert.True(t, ok, c.code)
		assert.Equal(t, date(2021, c.want), got, c.code)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want string
	}{
		{name: "month code", id: "oct19", want: "Oct 2019"},
		{name: "iso year-month", id: "2020-12", want: "Dec 2020"},
		{name: "iso full date", id: "2019-06-15", want: "Jun 2019"},
		{name: "unparsable echoed verbatim", id: "??", want: "??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.id))
		})
	}
}

// Format must agree with Parse for every supported format.
func TestFormatRoundTrip(t *testing.T) {
	ids := []ID{"jan00", "dec20", "oct19", "2019-06", "2021-03-31", "May 2023"}
	for _, id := range ids {
		parsed, ok := Parse(id)
		assert.True(t, ok, string(id))
		assert.Equal(t, parsed.Format("Jan 2006"), Format(id), string(id))
	}
}

func TestMonthEnd(t *testing.T) {
	assert.Equal(t, date(2020, time.January), MonthEnd(time.Date(2019, time.December, 14, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, date(2019, time.July), MonthEnd(date(2019, time.June)))
}
