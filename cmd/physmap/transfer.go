package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"physmap/internal/codec"
	"physmap/internal/editor"
	"physmap/internal/service"
)

func exportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored graph as json, yaml, toml or an html snapshot",
		Example: "  physmap export --format yaml > laws.yaml\n" +
			"  physmap export -o snapshot.html",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = codec.FormatFromPath(output)
			}
			if format == "" {
				format = "json"
			}
			exp, err := codec.ExporterFor(format)
			if err != nil {
				return err
			}

			adapter, repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			g, err := adapter.Load(context.Background())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := exp.Export(g, w); err != nil {
				return err
			}
			if output != "" && output != "-" {
				good.Fprintf(cmd.ErrOrStderr(), "Exported %d nodes, %d edges to %s\n", len(g.Nodes), len(g.Edges), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml, toml, html (default: from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored graph with the contents of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = codec.FormatFromPath(path)
			}
			imp, err := codec.ImporterFor(format)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			g, err := imp.Parse(f)
			if err != nil {
				return err
			}

			adapter, repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx := context.Background()
			current, err := adapter.Load(ctx)
			if err != nil {
				return err
			}

			svc := service.NewEditorService(editor.New(current), adapter, service.NewEventBus(), a.logger)
			res, err := svc.Import(ctx, g, "file:"+path)
			if err != nil {
				bad.Fprintf(cmd.ErrOrStderr(), "import rejected: %v\n", err)
				return err
			}
			if res.Notice != "" {
				bad.Fprintln(cmd.ErrOrStderr(), res.Notice)
				return fmt.Errorf("import not saved")
			}

			good.Fprintf(cmd.OutOrStdout(), "Imported %d nodes, %d edges from %s\n",
				len(res.Snapshot.Graph.Nodes), len(res.Snapshot.Graph.Edges), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: json, yaml, toml (default: from file extension)")
	return cmd
}
