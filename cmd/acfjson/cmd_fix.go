package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/runner"
)

var fixModes = map[string]runner.Task{
	"select":         runner.TaskFixSelect,
	"select-layouts": runner.TaskFixSelectLayouts,
	"exhaustive":     runner.TaskFixExhaustive,
}

func newFixCmd(a *app) *cobra.Command {
	var (
		mode         string
		trigger      string
		write        string
		layouts      bool
		dryRun       bool
		confirm      bool
		ascii        bool
		failOnChange bool
	)
	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Add missing field properties with their default values",
		Long: `Adds absent properties to fields and rewrites each document that changed.

Modes:
  select          select fields only; fires when a required select property
                  is absent (--trigger required) or only "multiple" is absent
                  (--trigger multiple); --write all rewrites all eight
                  defaults, --write missing only the absent ones
  select-layouts  select fields only, absent keys only, layouts included
  exhaustive      common properties on every field plus the per-type table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, ok := fixModes[mode]
			if !ok {
				return fmt.Errorf("unknown fix mode %q (want select, select-layouts or exhaustive)", mode)
			}
			loc, err := a.locator(args)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("trigger") {
				a.cfg.Select.Trigger = trigger
			}
			if flags.Changed("write") {
				a.cfg.Select.Write = write
			}
			if flags.Changed("layouts") {
				a.cfg.Select.Layouts = layouts
			}
			if flags.Changed("ascii") {
				a.cfg.ASCII = &ascii
			}
			if !flags.Changed("dry-run") {
				dryRun = a.cfg.DryRun
			}
			if !flags.Changed("confirm") {
				confirm = a.cfg.Confirm
			}

			selectOpts, err := a.cfg.SelectOptions()
			if err != nil {
				return err
			}

			report, err := a.runner().Run(cmd.Context(), runner.Request{
				Locator: loc,
				Task:    task,
				Select:  selectOpts,
				DryRun:  dryRun,
				Confirm: confirm,
			})
			if err != nil {
				return err
			}
			return a.finish(report, failOnChange && report.Fixed() > 0)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&mode, "mode", "m", "exhaustive", "fill mode: select, select-layouts or exhaustive")
	flags.StringVar(&trigger, "trigger", string(normalize.TriggerRequired), "select mode trigger: required or multiple")
	flags.StringVar(&write, "write", string(normalize.WriteMissing), "select mode write policy: missing or all")
	flags.BoolVar(&layouts, "layouts", false, "select mode: also follow layouts[].sub_fields")
	flags.BoolVar(&dryRun, "dry-run", false, "report fixes without writing")
	flags.BoolVar(&confirm, "confirm", false, "ask before rewriting each document")
	flags.BoolVar(&ascii, "ascii", true, "escape non-ASCII characters when rewriting")
	flags.BoolVar(&failOnChange, "fail-on-change", false, "exit with status 2 when fixes were applied")
	return cmd
}
