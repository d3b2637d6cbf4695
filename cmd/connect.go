package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var connectArgsCmd = &cobra.Command{
	Use:         "connect-args [url]",
	Short:       "Show the connection options derived from a connection URL",
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{skipConnect: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var cc *ConnectionConfig
		if len(args) == 1 {
			cc = &ConnectionConfig{Name: "argument", URL: args[0]}
		} else {
			resolved, err := resolveConnection()
			if err != nil {
				return err
			}
			cc = resolved
		}

		_, opts, err := connectionOptions(cc)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(opts.Masked())
	},
}

func init() {
	RootCmd.AddCommand(connectArgsCmd)
}
