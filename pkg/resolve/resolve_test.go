package resolve

import (
	"errors"
	"testing"
	"time"

	"github.com/ccollicutt/gotime/pkg/timeparse"
)

func mustParse(t *testing.T, layout, input string) *timeparse.Record {
	t.Helper()
	rec, err := timeparse.ParseLayout(layout, input)
	if err != nil {
		t.Fatalf("ParseLayout(%q, %q) error = %v", layout, input, err)
	}
	return rec
}

func TestTime(t *testing.T) {
	pst := time.FixedZone("PST", -8*3600)

	tests := []struct {
		name   string
		layout string
		input  string
		loc    *time.Location
		want   time.Time
		zone   string
	}{
		{
			name:   "no zone uses UTC",
			layout: "Mon Jan _2 15:04:05 2006",
			input:  "Thu Feb  4 21:00:57 2010",
			want:   time.Date(2010, 2, 4, 21, 0, 57, 0, time.UTC),
			zone:   "UTC",
		},
		{
			name:   "no zone uses location",
			layout: "2006-01-02 15:04",
			input:  "2010-02-04 21:00",
			loc:    pst,
			want:   time.Date(2010, 2, 4, 21, 0, 0, 0, pst),
			zone:   "PST",
		},
		{
			name:   "numeric offset",
			layout: "2006-01-02T15:04:05.999999999Z07:00",
			input:  "2010-02-04T21:00:57.5-08:00",
			want:   time.Date(2010, 2, 5, 5, 0, 57, 500000000, time.UTC),
			zone:   "",
		},
		{
			name:   "Z is UTC",
			layout: "2006-01-02T15:04:05Z07:00",
			input:  "2010-02-04T21:00:57Z",
			want:   time.Date(2010, 2, 4, 21, 0, 57, 0, time.UTC),
			zone:   "UTC",
		},
		{
			name:   "offset and name",
			layout: "2006-01-02 15:04:05 -0700 MST",
			input:  "2010-02-04 21:00:57 -0800 PST",
			want:   time.Date(2010, 2, 5, 5, 0, 57, 0, time.UTC),
			zone:   "PST",
		},
		{
			name:   "name matching location",
			layout: "2006-01-02 15:04 MST",
			input:  "2010-02-04 21:00 PST",
			loc:    pst,
			want:   time.Date(2010, 2, 4, 21, 0, 0, 0, pst),
			zone:   "PST",
		},
		{
			name:   "unknown name has zero offset",
			layout: "2006-01-02 15:04 MST",
			input:  "2010-02-04 21:00 CEST",
			want:   time.Date(2010, 2, 4, 21, 0, 0, 0, time.UTC),
			zone:   "CEST",
		},
		{
			name:   "GMT offset",
			layout: "2006-01-02 15:04 MST",
			input:  "2010-02-04 21:00 GMT-8",
			want:   time.Date(2010, 2, 5, 5, 0, 0, 0, time.UTC),
			zone:   "GMT",
		},
		{
			name:   "time only",
			layout: "3:04PM",
			input:  "9:30PM",
			want:   time.Date(0, 1, 1, 21, 30, 0, 0, time.UTC),
			zone:   "UTC",
		},
		{
			name:   "leap day",
			layout: "2006-01-02",
			input:  "2008-02-29",
			want:   time.Date(2008, 2, 29, 0, 0, 0, 0, time.UTC),
			zone:   "UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.loc != nil {
				opts = append(opts, WithLocation(tt.loc))
			}
			got, err := Time(mustParse(t, tt.layout, tt.input), opts...)
			if err != nil {
				t.Fatalf("Time() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Time() = %v, want %v", got, tt.want)
			}
			if name, _ := got.Zone(); name != tt.zone {
				t.Errorf("zone = %q, want %q", name, tt.zone)
			}
		})
	}
}

func TestTime_InvalidDate(t *testing.T) {
	for _, input := range []string{"2010-02-30", "2010-04-31", "2009-02-29"} {
		_, err := Time(mustParse(t, "2006-01-02", input))
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Time(%s) error = %v, want ErrInvalidDate", input, err)
		}
	}
}

func TestWithLocation_Nil(t *testing.T) {
	got, err := Time(mustParse(t, "15:04", "21:00"), WithLocation(nil))
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if got.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", got.Location())
	}
}
