package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/username/tool-rental/internal/catalog"
	"github.com/username/tool-rental/internal/client"
	"github.com/username/tool-rental/internal/rental"
)

func toolsCmd() *cobra.Command {
	var (
		output string
		remote string
	)

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List rentable tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output format %q, want 'text' or 'json'", output)
			}

			var tools []catalog.Tool
			if remote != "" {
				remoteTools, err := client.NewClient(remote, logger).ListTools(cmd.Context())
				if err != nil {
					return err
				}
				tools = remoteTools
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				cat, err := buildCatalog(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				tools = cat.List()
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tools)
			}
			return printTools(out, tools)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
	cmd.Flags().StringVar(&remote, "remote", "", "Rental service URL; list the remote catalog")

	return cmd
}

func printTools(w io.Writer, tools []catalog.Tool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTYPE\tBRAND\tDAILY CHARGE")
	for _, tool := range tools {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			tool.Code, tool.Type, tool.Brand, rental.FormatCurrency(tool.DailyCharge))
	}
	return tw.Flush()
}
