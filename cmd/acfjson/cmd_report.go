package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-acfjson/pkg/runner"
	"github.com/goliatone/go-acfjson/pkg/scan"
)

func newInventoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory [path]",
		Short: "List every property seen per field type",
		Long: `Walks every field, including layout sub fields, and prints each field
type with the sorted set of property names found on fields of that type.
Directories are merged into a single inventory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.locator(args)
			if err != nil {
				return err
			}
			report, err := a.runner().Run(cmd.Context(), runner.Request{
				Locator: loc,
				Task:    runner.TaskInventory,
			})
			if err != nil {
				return err
			}
			return a.finish(report, false)
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		layouts bool
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "List select fields missing the multiple property",
		Long: `Walks the field tree and prints the name path (parent/child) of every
select field without a "multiple" property. Layout sub fields are only
inspected with --layouts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.locator(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("layouts") {
				layouts = a.cfg.Check.Layouts
			}
			report, err := a.runner().Run(cmd.Context(), runner.Request{
				Locator:      loc,
				Task:         runner.TaskCheck,
				CheckLayouts: layouts,
			})
			if err != nil {
				return err
			}
			return a.finish(report, strict && report.Findings() > 0)
		},
	}
	cmd.Flags().BoolVar(&layouts, "layouts", false, "also inspect layouts[].sub_fields")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when fields are reported")
	return cmd
}

func newScanCmd(a *app) *cobra.Command {
	var (
		lookBack  int
		lookAhead int
		strict    bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Line based search for select fields missing multiple",
		Long: `Scans raw lines for "type": "select" and looks for a "multiple" line in a
fixed window around it (10 lines back; 30 ahead for a document, 100 for a
directory). The reported name is the last "name" line seen in the window.
This is a heuristic that works on unparseable files too; prefer check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.locator(args)
			if err != nil {
				return err
			}
			window := a.cfg.Window()
			flags := cmd.Flags()
			if flags.Changed("look-back") {
				window.LookBack = &lookBack
			}
			if flags.Changed("look-ahead") {
				window.LookAhead = &lookAhead
			}
			report, err := a.runner().Run(cmd.Context(), runner.Request{
				Locator: loc,
				Task:    runner.TaskScan,
				Window:  window,
			})
			if err != nil {
				return err
			}
			return a.finish(report, strict && report.Findings() > 0)
		},
	}
	cmd.Flags().IntVar(&lookBack, "look-back", 0, fmt.Sprintf("lines inspected before a select marker (default %d)", scan.DocumentWindow.LookBack))
	cmd.Flags().IntVar(&lookAhead, "look-ahead", 0, fmt.Sprintf("lines inspected after a select marker (default %d for a document, %d for a directory)", scan.DocumentWindow.LookAhead, scan.DirectoryWindow.LookAhead))
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with status 2 when fields are reported")
	return cmd
}
