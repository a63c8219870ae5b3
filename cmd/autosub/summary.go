package main

import (
	"fmt"
	"strconv"

	"autosub/internal/batch"
	"autosub/internal/services"
)

// renderSummary tabulates how far each video got through the pipeline.
func renderSummary(b *batch.Batch, colorize bool) string {
	headers := []string{"File", "Status", "Cues", "Subtitle", "Output", "Error"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft}

	rows := make([][]string, 0, len(b.Items))
	for _, item := range b.Items {
		cues := ""
		if item.SubtitlePath != "" {
			cues = strconv.Itoa(item.CueCount)
		}
		errText := ""
		if item.Err != nil {
			errText = fmt.Sprintf("[%s] %v", services.Kind(item.Err), item.Err)
		}
		rows = append(rows, []string{
			item.Source,
			itemStatus(item),
			cues,
			item.SubtitlePath,
			item.OutputPath,
			errText,
		})
	}
	return renderTable(headers, rows, aligns, colorize)
}

// itemStatus names the last stage an item completed, or the one it failed in.
func itemStatus(item *batch.Item) string {
	switch {
	case item.Failed():
		return fmt.Sprintf("failed (%s)", item.FailedStage)
	case item.OutputPath != "":
		return "done"
	case item.SubtitlePath != "":
		return "subtitled"
	case item.AudioPath != "":
		return "extracted"
	default:
		return "pending"
	}
}
