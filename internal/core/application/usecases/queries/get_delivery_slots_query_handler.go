package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/services"
)

type GetDeliverySlotsQueryHandler struct {
	planner services.SlotPlanner
}

func NewGetDeliverySlotsQueryHandler(planner services.SlotPlanner) GetDeliverySlotsQueryHandler {
	return GetDeliverySlotsQueryHandler{planner: planner}
}

func (h GetDeliverySlotsQueryHandler) Handle(_ context.Context,
	query GetDeliverySlotsQuery,
) ([]GetDeliverySlotsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	slots := h.planner.Slots(query.At())
	result := make([]GetDeliverySlotsQueryResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, GetDeliverySlotsQueryResponse{
			Value:    s.Value(),
			Day:      s.Day.Format(time.DateOnly),
			DayLabel: s.DayLabel,
			Window:   s.Window.String(),
			StartsAt: s.Start,
		})
	}
	return result, nil
}
