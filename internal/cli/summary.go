package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/attackcsv"
)

func newSummaryCmd() *cobra.Command {
	var border string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print rows and columns per object type without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			style, err := attackcsv.ParseBorder(border)
			if err != nil {
				return err
			}
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			sheets, _, err := a.convert(cmd.Context())
			if err != nil {
				return err
			}
			return attackcsv.Summary{
				Title:  fmt.Sprintf("%s v%s", a.cfg.Domain, a.cfg.AttackVersion),
				Border: style,
				Sheets: sheets,
			}.Write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&border, "border", "rounded", "table border: rounded, ascii, heavy, double, none")
	return cmd
}
