package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autosub/internal/preflight"
)

func newCheckCommand(flags *rootFlags) *cobra.Command {
	var srtOnly bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify external tools and directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config: %s\n", path)
			} else {
				fmt.Fprintln(out, "Config: defaults (no config file found)")
			}

			results := preflight.RunAll(cfg, preflight.Scope{SRTOnly: srtOnly})
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Name, checkStatus(r), r.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil, shouldColorize(out)))

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d required check(s) failed", len(failed))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&srtOnly, "srt_only", false, "Check only what subtitle-only runs need")
	return cmd
}

func checkStatus(r preflight.Result) string {
	switch {
	case r.Passed:
		return "ok"
	case r.Optional:
		return "unavailable (optional)"
	default:
		return "failed"
	}
}
