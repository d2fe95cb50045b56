package main

import "github.com/spf13/cobra"

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vtclient",
		Short:         "ISOBUS Virtual Terminal client",
		Long:          "vtclient connects to an ISO 11783-6 Virtual Terminal, negotiates capabilities, uploads an object pool, and keeps the connection alive until terminated.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file (default: ./vtclient.toml, or $VTCLIENT_CONFIG)")
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}
