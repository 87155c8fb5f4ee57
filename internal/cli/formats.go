package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/attackcsv"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		Args:  cobra.NoArgs,
		// Listing formats needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, f := range attackcsv.Formats() {
				if _, err := fmt.Fprintf(w, "%-10s %s\n", f, f.Ext()); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(w, "go-template=<template>  .txt")
			return err
		},
	}
}
