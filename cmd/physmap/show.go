package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"physmap/internal/config"
	"physmap/internal/domain"
	"physmap/internal/persist"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "List the formulas and derivations in the stored graph",
		Long: "List the formulas and derivations in the stored graph.\n\n" +
			"The store is only read. A record that cannot be decoded is reported and left\n" +
			"in place; the next serve quarantines it and starts from the seed graph.",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			g, err := adapter.Peek(context.Background())
			if errors.Is(err, persist.ErrMalformedRecord) {
				warn.Fprintln(cmd.ErrOrStderr(), "Stored graph cannot be read; serve will quarantine it")
				return err
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n\n", brand.Sprint("physmap"), subtle.Sprintf("(%s, key %s)", a.cfg.Database.Path, adapter.Key()))

			rows := make([][]string, 0, len(g.Nodes))
			for _, n := range g.Nodes {
				rows = append(rows, []string{
					n.ID,
					n.Data.Label,
					n.Data.Formula,
					categoryColor(n.Data.Category).Sprint(n.Data.Category.Title()),
				})
			}
			table(out, []string{"ID", "LAW", "FORMULA", "CATEGORY"}, rows)

			if len(g.Edges) > 0 {
				fmt.Fprintln(out)
				labels := make(map[string]string, len(g.Nodes))
				for _, n := range g.Nodes {
					labels[n.ID] = n.Data.Label
				}
				for _, e := range g.Edges {
					fmt.Fprintf(out, "  %s %s %s", labels[e.Source], subtle.Sprint("→"), labels[e.Target])
					if e.Label != "" {
						fmt.Fprintf(out, "  %s", subtle.Sprintf("(%s)", e.Label))
					}
					fmt.Fprintln(out)
				}
			}

			fmt.Fprintf(out, "\n  %d nodes, %d edges, next id %s\n", len(g.Nodes), len(g.Edges), domain.FormatNodeID(g.IDCount))
			return nil
		},
	}
}

func quarantineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quarantine",
		Short: "List stored records that could not be read and were set aside",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, err := a.openStore()
			if err != nil {
				return err
			}
			defer repo.Close()

			records, err := repo.ListQuarantined(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				good.Fprintln(out, "No quarantined records")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					strconv.FormatInt(rec.ID, 10),
					rec.Key,
					rec.QuarantinedAt.Format("2006-01-02 15:04:05"),
					strconv.Itoa(len(rec.Value)) + " bytes",
					rec.Reason,
				})
			}
			warn.Fprintf(out, "%d quarantined record(s)\n\n", len(records))
			table(out, []string{"ID", "KEY", "WHEN", "SIZE", "REASON"}, rows)
			return nil
		},
	}
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.configPath == "" {
				fmt.Fprintln(out, subtle.Sprint("No config file found, using defaults"))
			} else {
				fmt.Fprintf(out, "%s %s\n", brand.Sprint("Config"), a.configPath)
			}
			fmt.Fprintln(out, a.cfg.Summary())
			return nil
		},
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}
			good.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "Destination (default: $XDG_CONFIG_HOME/physmap/config.yaml)")
	cmd.AddCommand(initCmd)

	return cmd
}
