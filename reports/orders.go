package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/Jataveda/Agriconnect/entities"

	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet     = "Orders"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var orderColumns = []any{
	"Order Number", "Type", "Item", "Quantity", "Total", "Status", "Start Date", "End Date", "Placed At",
}

// WriteOrders renders orders as a single-sheet workbook with a bold header row.
func WriteOrders(w io.Writer, orders []entities.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(OrdersSheet, "A1", &orderColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(OrdersSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	if err := f.SetColWidth(OrdersSheet, "A", "I", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	for i, o := range orders {
		row := []any{
			o.OrderNumber,
			string(o.Type),
			o.ItemName,
			o.Quantity,
			o.Total,
			string(o.Status),
			formatDate(o.StartDate),
			formatDate(o.EndDate),
			o.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return fmt.Errorf("write order %s: %w", o.OrderNumber, err)
		}
	}
	return f.Write(w)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
