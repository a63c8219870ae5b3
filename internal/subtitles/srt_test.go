package subtitles

import (
	"math"
	"strings"
	"testing"

	"autosub/internal/transcript"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.0004, "00:01:01,000"},
		{59.9996, "00:01:00,000"},
		{3723.456, "01:02:03,456"},
		{360000, "100:00:00,000"},
		{-2, "00:00:00,000"},
		{math.NaN(), "00:00:00,000"},
		{math.Inf(-1), "00:00:00,000"},
		{math.Inf(1), "277777777:46:40,000"},
		{1e13, "277777777:46:40,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.in); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderSingleSegment(t *testing.T) {
	got := Render([]transcript.Segment{{Start: 0, End: 1.5, Text: "Hi"}})
	if want := "1\n00:00:00,000 --> 00:00:01,500\nHi\n\n"; got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderKeepsOrderAndDuplicates(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 5, End: 6, Text: " later "},
		{Start: 1, End: 2, Text: "earlier"},
		{Start: 1, End: 2, Text: "earlier"},
		{Start: 7, End: 8, Text: "a --> b"},
	}
	out := Render(segments)
	cues, err := ParseSRT(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(cues) != 4 {
		t.Fatalf("expected 4 cues, got %d in %q", len(cues), out)
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Fatalf("cue %d has index %d", i, cue.Index)
		}
	}
	if cues[0].Text != "later" || cues[0].Start != 5 {
		t.Fatalf("input order not preserved: %+v", cues[0])
	}
	if cues[3].Text != "a -> b" {
		t.Fatalf("expected arrow neutralized, got %q", cues[3].Text)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil); got != "" {
		t.Fatalf("expected empty document, got %q", got)
	}
}

func TestParseSRTSkipsMalformed(t *testing.T) {
	input := "1\r\n00:00:01,000 --> 00:00:02,000\r\nok\r\n\r\nx\nbad\n\n3\n00:00:03.5 --> 00:00:04,000\nmulti\nline\n"
	cues, err := ParseSRT(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %+v", cues)
	}
	if cues[1].Start != 3.5 || cues[1].Text != "multi\nline" {
		t.Fatalf("unexpected cue %+v", cues[1])
	}
}

func TestParseTimestampErrors(t *testing.T) {
	for _, in := range []string{"", "00:00:01", "1:2,3", "aa:bb:cc,ddd"} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}
