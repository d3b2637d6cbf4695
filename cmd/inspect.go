package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"athena-dialect/internal/schema"
)

var schemaFlag string

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := Inspector.SchemaNames(cmd.Context())
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of a schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := Inspector.TableNames(cmd.Context(), schemaFlag)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var hasTableCmd = &cobra.Command{
	Use:   "has-table <table>",
	Short: "Print whether a table exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := Inspector.HasTable(cmd.Context(), args[0], schemaFlag)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		return nil
	},
}

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List the columns of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cols, err := Inspector.Columns(cmd.Context(), args[0], schemaFlag)
		if err != nil {
			return err
		}
		return writeColumns(cmd.OutOrStdout(), cols)
	},
}

func writeColumns(w io.Writer, cols []schema.Column) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetRowLine(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "NAME", "TYPE", "RAW TYPE", "COMMENT"})

	for _, c := range cols {
		comment := ""
		if c.Comment != nil {
			comment = *c.Comment
		}
		table.Append([]string{strconv.Itoa(c.OrdinalPosition), c.Name, c.Type.String(), c.RawType, comment})
	}
	table.Render()
	return nil
}

func init() {
	for _, c := range []*cobra.Command{tablesCmd, hasTableCmd, columnsCmd} {
		c.Flags().StringVarP(&schemaFlag, "schema", "s", "", "schema name (default is the connection's schema)")
		RootCmd.AddCommand(c)
	}
	RootCmd.AddCommand(schemasCmd)
}
