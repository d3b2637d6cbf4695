package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"athena-dialect/internal/dialect"
	"athena-dialect/internal/schema"
)

var (
	describeOutput   string
	describeParallel int
)

// TableDescription is one reflected table as printed by describe.
type TableDescription struct {
	Schema  string              `yaml:"schema"`
	Name    string              `yaml:"name"`
	Columns []ColumnDescription `yaml:"columns"`
}

type ColumnDescription struct {
	Name     string      `yaml:"name"`
	Type     schema.Type `yaml:"type"`
	RawType  string      `yaml:"raw_type"`
	Ordinal  int         `yaml:"ordinal"`
	Comment  *string     `yaml:"comment,omitempty"`
	Nullable *bool       `yaml:"nullable,omitempty"`
	Default  *string     `yaml:"default,omitempty"`
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Reflect every table of a schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if describeOutput != "table" && describeOutput != "yaml" {
			return fmt.Errorf("unknown output format %q (want table or yaml)", describeOutput)
		}

		ctx := cmd.Context()
		schemaName := schemaFlag
		if schemaName == "" {
			schemaName = Inspector.DefaultSchemaName()
		}

		tables, err := Inspector.TableNames(ctx, schemaName)
		if err != nil {
			return err
		}
		logger.Info().Str("schema", schemaName).Int("tables", len(tables)).Msg("Describing schema")

		// The bar goes to stderr so stdout carries only the description.
		progress := uiprogress.New()
		progress.SetOut(cmd.ErrOrStderr())
		progress.Start()
		bar := progress.AddBar(len(tables)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("%s (%d/%d)", schemaName, b.Current(), len(tables))
		})
		descs, err := describeTables(ctx, Inspector, schemaName, tables, describeParallel, func() { bar.Incr() })
		progress.Stop()
		if err != nil {
			return err
		}

		if describeOutput == "yaml" {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(descs)
		}
		return writeDescriptions(cmd.OutOrStdout(), descs)
	},
}

// describeTables reflects tables, at most parallel at a time (one by one
// when parallel is 1), and returns them in the order given.
func describeTables(ctx context.Context, in *dialect.Inspector, schemaName string, tables []string, parallel int, done func()) ([]TableDescription, error) {
	descs := make([]TableDescription, len(tables))

	if parallel < 1 {
		parallel = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, table := range tables {
		g.Go(func() error {
			cols, err := in.Columns(ctx, table, schemaName)
			if err != nil {
				return fmt.Errorf("failed to reflect %s.%s: %w", schemaName, table, err)
			}
			descs[i] = TableDescription{Schema: schemaName, Name: table, Columns: describeColumns(cols)}
			if done != nil {
				done()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return descs, nil
}

func describeColumns(cols []schema.Column) []ColumnDescription {
	out := make([]ColumnDescription, 0, len(cols))
	for _, c := range cols {
		out = append(out, ColumnDescription{
			Name:     c.Name,
			Type:     c.Type,
			RawType:  c.RawType,
			Ordinal:  c.OrdinalPosition,
			Comment:  c.Comment,
			Nullable: c.Nullable,
			Default:  c.Default,
		})
	}
	return out
}

func writeDescriptions(w io.Writer, descs []TableDescription) error {
	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s.%s\n", d.Schema, d.Name)

		cols := make([]schema.Column, 0, len(d.Columns))
		for _, c := range d.Columns {
			cols = append(cols, schema.Column{
				Name:            c.Name,
				Type:            c.Type,
				RawType:         c.RawType,
				OrdinalPosition: c.Ordinal,
				Comment:         c.Comment,
			})
		}
		if err := writeColumns(w, cols); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	describeCmd.Flags().StringVarP(&schemaFlag, "schema", "s", "", "schema name (default is the connection's schema)")
	describeCmd.Flags().StringVarP(&describeOutput, "output", "o", "table", "output format (table or yaml)")
	describeCmd.Flags().IntVar(&describeParallel, "parallel", 1, "tables reflected at once; above 1 the connection runs overlapping queries")
	RootCmd.AddCommand(describeCmd)
}
