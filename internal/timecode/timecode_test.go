package timecode

import "testing"

func TestRoundTripAcrossDay(t *testing.T) {
	// Asal adım ile tüm bileşen sınırlarını dolaş
	for ms := int64(0); ms < DayMs; ms += 7919 {
		tc := FromMilliseconds(ms)
		if got := ToMilliseconds(tc.Hours, tc.Minutes, tc.Seconds, tc.Milliseconds); got != ms {
			t.Fatalf("round trip failed for %d: got %d (%s)", ms, got, tc)
		}
	}

	for _, ms := range []int64{0, 1, 999, 1000, 59999, 60000, 3599999, 3600000, DayMs - 1} {
		if got := FromMilliseconds(ms).Total(); got != ms {
			t.Fatalf("round trip failed for %d: got %d", ms, got)
		}
	}
}

func TestFromMillisecondsDecomposition(t *testing.T) {
	tc := FromMilliseconds(3723456)
	want := TimeCode{Hours: 1, Minutes: 2, Seconds: 3, Milliseconds: 456}
	if tc != want {
		t.Fatalf("unexpected decomposition: %+v", tc)
	}
	if tc.String() != "01:02:03.456" {
		t.Fatalf("unexpected display: %s", tc.String())
	}
	if tc.TotalSeconds() != 3723.456 {
		t.Fatalf("unexpected seconds: %f", tc.TotalSeconds())
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"00:00:02.000", 2000},
		{"01:02:03.456", 3723456},
		{"00:00:07", 7000},
		{"10:30", 630000},
		{"1:05.5", 65500},
		{"5,25", 5250},
		{"12", 12000},
		{"90:00", 5400000},
	}
	for _, c := range cases {
		tc, err := Parse(c.in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", c.in, err)
		}
		if tc.Total() != c.want {
			t.Fatalf("Parse(%q) = %d, want %d", c.in, tc.Total(), c.want)
		}
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "00:70", "00:61:00", "00:00:01.1234", "-1", "24:00:00", "1:2:3:4", "00:00:01."} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
