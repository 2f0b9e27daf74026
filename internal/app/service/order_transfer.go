package service

import (
	"github.com/ikkim/printcraft-backend/internal/app/model"
)

// OrderTransfer turns a cart line into its order line at checkout. The copy
// is one way and the order line owns its own copy of every design value.
type OrderTransfer interface {
	Transfer(item *model.CartItem) model.OrderItem
}

type orderTransfer struct{}

func NewOrderTransfer() OrderTransfer {
	return orderTransfer{}
}

func (orderTransfer) Transfer(item *model.CartItem) model.OrderItem {
	out := model.OrderItem{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.VariantID != nil {
		v := *item.VariantID
		out.VariantID = &v
	}

	if item.Design == nil {
		return out
	}

	design := item.Design.Clone()
	out.IsCustomized = true
	out.Design = design
	out.PrintType = design.PrintType
	out.FabricType = design.FabricType
	out.Color = design.Color
	out.AttachmentIDs = append([]uint64{}, design.AttachmentIDs...)
	out.PrintAreaSnapshot = copyRect(item.PrintAreaSnapshot)
	if item.UniqueKey != nil {
		out.UniqueKey = *item.UniqueKey
	}
	return out
}
