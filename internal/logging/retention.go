package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dailyLogLayout = "2006-01-02"

// DailyLogPath returns the log file for the day containing now:
// <dir>/YYYY-MM-DD.log.
func DailyLogPath(dir string, now time.Time) string {
	return filepath.Join(dir, now.Format(dailyLogLayout)+".log")
}

// CleanupOldLogs removes daily log files in dir whose date is more than
// retentionDays before now. The file named by keep is never removed.
// A retentionDays value of 0 disables pruning.
func CleanupOldLogs(logger *slog.Logger, dir string, retentionDays int, now time.Time, keep string) int {
	dir = strings.TrimSpace(dir)
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	cutoff := now.AddDate(0, 0, -retentionDays)

	keepAbs := ""
	if strings.TrimSpace(keep) != "" {
		if abs, err := filepath.Abs(keep); err == nil {
			keepAbs = abs
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		day, err := time.ParseInLocation(dailyLogLayout, strings.TrimSuffix(name, ".log"), now.Location())
		if err != nil || !strings.HasSuffix(name, ".log") {
			continue
		}
		if !day.Before(cutoff) {
			continue
		}
		fullPath := filepath.Join(dir, name)
		if abs, err := filepath.Abs(fullPath); err == nil {
			if abs == keepAbs {
				continue
			}
			fullPath = abs
		}
		if err := os.Remove(fullPath); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", fullPath),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		if logger != nil {
			logger.Debug("log pruned",
				String("path", fullPath),
				String(FieldEventType, "log_pruned"),
			)
		}
	}
	return removed
}
