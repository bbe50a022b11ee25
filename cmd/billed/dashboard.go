package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Review bills as an admin",
	}
	cmd.AddCommand(
		newDashboardShowCmd(a),
		newDashboardDecideCmd(a, "accept", "Accept a pending bill", service.DashboardController.AcceptBill),
		newDashboardDecideCmd(a, "refuse", "Refuse a pending bill", service.DashboardController.RefuseBill),
		newDashboardExportCmd(a),
	)
	return cmd
}

// loadDashboard checks the admin session and fills the controller
func (a *app) loadDashboard(ctx context.Context) (service.DashboardController, error) {
	if _, err := a.requireSession(entity.RoleAdmin); err != nil {
		return nil, err
	}
	dashboard := a.services().Dashboard
	if _, err := dashboard.GetAllBills(ctx); err != nil {
		if renderErr := a.renderer.Dashboard(dashboard.View()); renderErr != nil {
			return nil, renderErr
		}
		return nil, err
	}
	return dashboard, nil
}

func newDashboardShowCmd(a *app) *cobra.Command {
	var (
		expand []int
		open   string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the status groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dashboard, err := a.loadDashboard(ctx)
			if err != nil {
				return err
			}

			for _, index := range expand {
				if err := dashboard.ToggleGroup(ctx, index); err != nil {
					return err
				}
			}
			if open != "" {
				bill, ok := dashboard.FindBill(open)
				if !ok {
					return fmt.Errorf("bill %s not found", open)
				}
				if err := dashboard.OpenBillDetail(ctx, bill); err != nil {
					return err
				}
			}
			return a.renderer.Dashboard(dashboard.View())
		},
	}

	cmd.Flags().IntSliceVar(&expand, "expand", nil, "groups to expand (1 pending, 2 accepted, 3 refused)")
	cmd.Flags().StringVar(&open, "open", "", "bill to open in an expanded group")
	return cmd
}

type decision func(service.DashboardController, context.Context, entity.Bill, string) error

func newDashboardDecideCmd(a *app, use, short string, decide decision) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   use + " <bill-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dashboard, err := a.loadDashboard(ctx)
			if err != nil {
				return err
			}

			bill, ok := dashboard.FindBill(args[0])
			if !ok {
				return fmt.Errorf("bill %s not found", args[0])
			}
			if err := decide(dashboard, ctx, bill, comment); err != nil {
				return err
			}

			updated, _ := dashboard.FindBill(bill.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Bill %s: %s\n", bill.ID, updated.Status.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "admin comment")
	return cmd
}

func newDashboardExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every bill to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dashboard, err := a.loadDashboard(ctx)
			if err != nil {
				return err
			}

			if output == "" {
				name := fmt.Sprintf("dashboard-%s.xlsx", time.Now().Format("20060102-150405"))
				output = filepath.Join(a.container.Config().Export.OutputDir, name)
			}
			if err := dashboard.ExportBills(ctx, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: export.output_dir/dashboard-<time>.xlsx)")
	return cmd
}
