package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const summarySheet = "Résumé"

var (
	summaryHeader = []interface{}{"Statut", "Nombre", "Total"}
	billHeader    = []interface{}{"Date", "Type", "Nom", "Montant", "TVA", "%", "Email", "Commentaire", "Commentaire admin", "Justificatif"}
)

// ExcelExporter writes the dashboard groups to an xlsx workbook: a summary
// sheet followed by one sheet per status.
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// Export saves the workbook to outputPath, creating its directory
func (e *ExcelExporter) Export(ctx context.Context, groups []entity.StatusGroup, outputPath string) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := file.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	grandTotal := decimal.Zero
	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := []interface{}{group.Status.Label(), group.Count, group.Total.InexactFloat64()}
		if err := file.SetSheetRow(summarySheet, cell("A", i+2), &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		grandTotal = grandTotal.Add(group.Total)

		if err := e.writeGroup(file, group); err != nil {
			return fmt.Errorf("failed to write %s sheet: %w", group.Status, err)
		}
	}

	totalRow := []interface{}{"Total", "", grandTotal.InexactFloat64()}
	if err := file.SetSheetRow(summarySheet, cell("A", len(groups)+2), &totalRow); err != nil {
		return fmt.Errorf("failed to write total row: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := file.SaveAs(outputPath); err != nil {
		e.logger.Error("Failed to save workbook", zap.String("path", outputPath), zap.Error(err))
		return fmt.Errorf("failed to save file: %w", err)
	}

	e.logger.Info("Dashboard exported",
		zap.String("output_path", outputPath),
		zap.Int("groups", len(groups)),
		zap.String("total", grandTotal.String()))
	return nil
}

func (e *ExcelExporter) writeGroup(file *excelize.File, group entity.StatusGroup) error {
	sheet := group.Status.Label()
	if _, err := file.NewSheet(sheet); err != nil {
		return err
	}
	if err := file.SetSheetRow(sheet, "A1", &billHeader); err != nil {
		return err
	}

	for i, bill := range group.Bills {
		row := []interface{}{
			bill.Date,
			bill.Type,
			bill.Name,
			amountCell(bill.Amount),
			amountCell(bill.VAT),
			bill.Pct.String(),
			bill.Email,
			bill.Commentary,
			bill.CommentAdmin,
			bill.FileName,
		}
		if err := file.SetSheetRow(sheet, cell("A", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

// amountCell writes numbers as numbers and anything else verbatim
func amountCell(v entity.FlexString) interface{} {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return v.String()
	}
	return d.InexactFloat64()
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

var _ port.BillExporter = (*ExcelExporter)(nil)
