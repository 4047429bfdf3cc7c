package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/Jataveda/Agriconnect/entities"

	"github.com/xuri/excelize/v2"
)

func TestWriteOrders(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	orders := []entities.Order{
		{OrderNumber: "ORD-1-AAAAAAAAA", Type: entities.OrderTypeVehicle, ItemName: "Tractor", Quantity: 1, Total: 300, Status: entities.OrderStatusPending, StartDate: &start, CreatedAt: start},
		{OrderNumber: "ORD-2-BBBBBBBBB", Type: entities.OrderTypeProduce, ItemName: "Corn", Quantity: 4, Total: 12.5, Status: entities.OrderStatusDelivered, CreatedAt: start},
	}

	var buf bytes.Buffer
	if err := WriteOrders(&buf, orders); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(OrdersSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows, got %d", len(rows))
	}
	if rows[0][0] != "Order Number" || rows[1][0] != "ORD-1-AAAAAAAAA" || rows[2][2] != "Corn" {
		t.Fatalf("unexpected content: %v", rows)
	}
	if rows[1][6] != "2025-03-01" || rows[2][5] != "delivered" {
		t.Fatalf("unexpected dates or status: %v", rows)
	}
}

func TestWriteOrdersEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOrders(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a workbook even with no orders")
	}
}
