package http

import (
	"github.com/jhoicas/Cordeleria-api/internal/application/dto"
	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/pricing"
)

func toZoneResponse(z *entity.Zone) dto.ZoneResponse {
	return dto.ZoneResponse{ID: z.ID, Name: z.Name, Kind: string(z.Kind), CreatedAt: z.CreatedAt}
}

func toPostings(ps []inventory.Posting) []dto.PostingResponse {
	out := make([]dto.PostingResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.PostingResponse{
			EntryID:    p.EntryID,
			ZoneID:     p.ZoneID,
			LotEntryID: p.LotEntryID,
			Quantity:   p.Quantity,
		})
	}
	return out
}

func toEntryResponse(e *entity.StockEntry) dto.StockEntryResponse {
	return dto.StockEntryResponse{
		ID:            e.ID,
		ItemKind:      string(e.ItemKind),
		ItemID:        e.ItemID,
		ZoneID:        e.ZoneID,
		Quantity:      e.Quantity,
		Note:          e.Note,
		Reference:     e.Reference,
		SourceEntryID: e.SourceEntryID,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}

func toMaterialDraws(in []dto.MaterialDrawRequest) []entity.MaterialDraw {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.MaterialDraw, 0, len(in))
	for _, m := range in {
		out = append(out, entity.MaterialDraw{MaterialID: m.MaterialID, Quantity: m.Quantity, ZoneHint: m.ZoneHint})
	}
	return out
}

func toOrderResponse(v *fulfillment.OrderView) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:         v.Order.ID,
		CustomerID: v.Order.CustomerID,
		Status:     v.Order.Status,
		CreatedAt:  v.Order.CreatedAt,
		Lines:      make([]dto.OrderLineResponse, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, toOrderLineResponse(l))
	}
	return resp
}

func toOrderLineResponse(l fulfillment.LineView) dto.OrderLineResponse {
	return dto.OrderLineResponse{
		ID:              l.Line.ID,
		ProductID:       l.Line.ProductID,
		PresentationID:  l.Line.PresentationID,
		OrderedQuantity: l.Line.OrderedQuantity,
		Delivered:       l.Delivered,
		Outstanding:     l.Outstanding,
		State:           string(l.State),
	}
}

func toDeliveryResponse(v *fulfillment.DeliveryView) dto.DeliveryResponse {
	d := v.Delivery
	resp := dto.DeliveryResponse{
		ID:          d.ID,
		OrderID:     d.OrderID,
		CustomerID:  d.CustomerID,
		Date:        d.Date,
		ZoneID:      d.ZoneID,
		Note:        d.Note,
		OrderStatus: v.OrderStatus,
		Lines:       make([]dto.DeliveryLineResponse, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, dto.DeliveryLineResponse{
			ID:          l.ID,
			OrderLineID: l.OrderLineID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Currency:    l.Currency,
			Amount:      l.Amount(),
		})
	}
	return resp
}

func toPriceResponse(p *entity.PriceInterval) *dto.PriceIntervalResponse {
	if p == nil {
		return nil
	}
	resp := &dto.PriceIntervalResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		ProductID:  p.ProductID,
		Price:      p.Price,
		Currency:   p.Currency,
		ValidFrom:  p.ValidFrom.String(),
		UpdatedAt:  p.UpdatedAt,
	}
	if p.ValidTo != nil {
		to := p.ValidTo.String()
		resp.ValidTo = &to
	}
	return resp
}

func toUpsertResponse(action pricing.Action, p *entity.PriceInterval) dto.UpsertPriceResponse {
	return dto.UpsertPriceResponse{Action: string(action), Interval: toPriceResponse(p)}
}
