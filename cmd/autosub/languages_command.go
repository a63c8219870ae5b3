package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autosub/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the values accepted by --language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			choices := language.Choices()
			rows := make([][]string, 0, len(choices))
			for _, code := range choices {
				rows = append(rows, []string{code, language.DisplayName(code)})
			}
			fmt.Fprintln(out, renderTable([]string{"Code", "Language"}, rows, nil, shouldColorize(out)))
			return nil
		},
	}
}
