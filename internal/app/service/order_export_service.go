package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const designSheet = "Designs"

var designExportHeaders = []string{
	"Line", "Unique Key", "Product ID", "Variant ID", "Quantity",
	"Print Type", "Fabric Type", "Color", "Attachment IDs",
	"Scale", "X", "Y", "Rotation",
	"Area X", "Area Y", "Area W", "Area H", "Preview URL",
}

// OrderExportService renders an order's design geometry for the merchant.
type OrderExportService interface {
	ExportDesigns(order *model.Order) ([]byte, error)
}

type orderExportService struct{}

func NewOrderExportService() OrderExportService {
	return orderExportService{}
}

func (orderExportService) ExportDesigns(order *model.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), designSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(designSheet, "A1", &designExportHeaders); err != nil {
		return nil, err
	}

	row := 2
	for i, item := range order.OrderItems {
		if !item.IsCustomized || item.Design == nil {
			continue
		}

		values := designRow(i+1, item)
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(designSheet, cell, &values); err != nil {
			return nil, err
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Error("Failed to render design export", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Design export rendered", map[string]interface{}{
		"order_id": order.ID,
		"rows":     row - 2,
	})
	return bytes.Clone(buf.Bytes()), nil
}

func designRow(line int, item model.OrderItem) []interface{} {
	d := item.Design
	variant := ""
	if item.VariantID != nil {
		variant = strconv.FormatUint(uint64(*item.VariantID), 10)
	}

	ids := make([]string, 0, len(item.AttachmentIDs))
	for _, id := range item.AttachmentIDs {
		ids = append(ids, strconv.FormatUint(id, 10))
	}

	area := d.PrintAreaMeta
	if item.PrintAreaSnapshot != nil {
		area = *item.PrintAreaSnapshot
	}

	return []interface{}{
		line,
		item.UniqueKey,
		item.ProductID,
		variant,
		item.Quantity,
		item.PrintType,
		item.FabricType,
		item.Color,
		strings.Join(ids, ","),
		d.AppliedTransform.Scale,
		d.AppliedTransform.X,
		d.AppliedTransform.Y,
		d.AppliedTransform.Rotation,
		area.X,
		area.Y,
		area.W,
		area.H,
		d.PreviewURL,
	}
}

// ExportFilename names the download for an order.
func ExportFilename(orderID uint) string {
	return fmt.Sprintf("order-%d-designs.xlsx", orderID)
}
