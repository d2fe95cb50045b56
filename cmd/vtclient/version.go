package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const versionString = "vtclient 0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return err
		},
	}
}
