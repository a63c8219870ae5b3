package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"autosub/internal/transcript"
)

// Cue is one parsed SRT block. Offsets are in seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// maxTimestampSeconds bounds the millisecond count well inside int64.
const maxTimestampSeconds = 1e12

// FormatTimestamp renders seconds as HH:MM:SS,mmm, rounding to the nearest
// millisecond. Negative and NaN values render as zero, hours may exceed two
// digits, and +Inf clamps to maxTimestampSeconds.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if math.IsInf(seconds, 1) || seconds > maxTimestampSeconds {
		seconds = maxTimestampSeconds
	}
	ms := int64(math.Round(seconds * 1000))
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	secs := ms / 1000
	ms -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// cueText trims the segment text and keeps it from forging a timing line.
func cueText(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "-->", "->")
}

// WriteSRT writes segments as numbered SRT blocks in input order.
func WriteSRT(w io.Writer, segments []transcript.Segment) error {
	bw := bufio.NewWriter(w)
	for i, seg := range segments {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimestamp(seg.Start), FormatTimestamp(seg.End), cueText(seg.Text)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Render returns the SRT document for segments.
func Render(segments []transcript.Segment) string {
	var sb strings.Builder
	_ = WriteSRT(&sb, segments)
	return sb.String()
}

// ParseSRT reads SRT blocks. Malformed blocks are skipped.
func ParseSRT(r io.Reader) ([]Cue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		if len(lines) < 2 {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}
		start, end, ok := strings.Cut(lines[1], "-->")
		if !ok {
			continue
		}
		startSec, err := ParseTimestamp(start)
		if err != nil {
			continue
		}
		endSec, err := ParseTimestamp(end)
		if err != nil {
			continue
		}
		cues = append(cues, Cue{
			Index: index,
			Start: startSec,
			End:   endSec,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}
	return cues, nil
}

// ParseTimestamp parses HH:MM:SS,mmm (a period separator is also accepted).
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	clock, millisText, ok := strings.Cut(strings.ReplaceAll(value, ".", ","), ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	// Fractions shorter than three digits are tenths or hundredths.
	if len(millisText) > 0 && len(millisText) < 3 {
		millisText += strings.Repeat("0", 3-len(millisText))
	}
	millis, errMS := strconv.Atoi(millisText)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
