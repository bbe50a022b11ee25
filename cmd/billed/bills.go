package main

import (
	"fmt"

	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newBillsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Employee bills",
	}
	cmd.AddCommand(newBillsListCmd(a), newBillsNewCmd(a), newBillsEyeCmd(a))
	return cmd
}

func newBillsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your bills, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(entity.RoleEmployee); err != nil {
				return err
			}
			return a.renderer.BillList(a.services().BillList.Load(cmd.Context()))
		},
	}
}

func newBillsNewCmd(a *app) *cobra.Command {
	var (
		filePath string
		form     entity.NewBillForm
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Submit a new bill with its receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(entity.RoleEmployee); err != nil {
				return err
			}
			ctx := cmd.Context()
			composer := a.services().Composer

			receipt, err := a.container.ReceiptReader().Read(ctx, filePath)
			if err != nil {
				return err
			}
			input := &entity.FileInput{}
			input.Select(receipt)
			if err := composer.OnFileChange(ctx, input); err != nil {
				return err
			}

			if err := composer.OnSubmit(ctx, form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bill %s created\n", composer.BillID())
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "receipt image (png or jpeg)")
	cmd.Flags().StringVar(&form.Type, "type", "Transports", "expense type")
	cmd.Flags().StringVar(&form.Name, "name", "", "expense name")
	cmd.Flags().StringVar(&form.Amount, "amount", "", "amount including VAT")
	cmd.Flags().StringVar(&form.Date, "date", "", "expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.VAT, "vat", "", "VAT amount")
	cmd.Flags().StringVar(&form.Pct, "pct", "20", "VAT percentage")
	cmd.Flags().StringVar(&form.Commentary, "commentary", "", "comment")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newBillsEyeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eye <bill-id>",
		Short: "Show the receipt of one of your bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(entity.RoleEmployee); err != nil {
				return err
			}
			presenter := a.services().BillList
			view := presenter.Load(cmd.Context())
			if view.HasError() {
				return a.renderer.BillList(view)
			}
			for _, bill := range view.Bills {
				if bill.ID == args[0] {
					a.renderer.Lightbox(presenter.HandleClickIconEye(bill))
					return nil
				}
			}
			return fmt.Errorf("bill %s not found", args[0])
		},
	}
}
