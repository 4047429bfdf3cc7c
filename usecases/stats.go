package usecases

import (
	"context"
	"math"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/repositories"
)

// UserStats feeds the dashboard. Farmer and customer views use different fields.
type UserStats struct {
	UserType       entities.UserType `json:"userType"`
	TotalOrders    int               `json:"totalOrders"`
	ActiveListings *int              `json:"activeListings,omitempty"`
	TotalRevenue   *float64          `json:"totalRevenue,omitempty"`
	TotalSpent     *float64          `json:"totalSpent,omitempty"`
	ActiveOrders   *int              `json:"activeOrders,omitempty"`
}

type StatsUseCase struct {
	store *repositories.Store
}

func NewStatsUseCase(store *repositories.Store) *StatsUseCase {
	return &StatsUseCase{store: store}
}

func (uc *StatsUseCase) ForUser(ctx context.Context, userID string) (*UserStats, error) {
	user, err := uc.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "User")
	}
	if user.UserType == entities.UserTypeFarmer {
		return uc.farmerStats(ctx, userID)
	}
	return uc.customerStats(ctx, userID)
}

func (uc *StatsUseCase) farmerStats(ctx context.Context, userID string) (*UserStats, error) {
	vehicles, err := uc.store.Vehicles.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	produce, err := uc.store.Produce.GetByFarmerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pesticides, err := uc.store.Pesticides.GetBySupplierID(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := 0
	itemIDs := make([]string, 0, len(vehicles)+len(produce)+len(pesticides))
	for _, v := range vehicles {
		if v.Available {
			active++
		}
		itemIDs = append(itemIDs, v.ID)
	}
	for _, p := range produce {
		if p.QuantityAvailable > 0 {
			active++
		}
		itemIDs = append(itemIDs, p.ID)
	}
	for _, p := range pesticides {
		if p.InStock {
			active++
		}
		itemIDs = append(itemIDs, p.ID)
	}

	stats := &UserStats{UserType: entities.UserTypeFarmer, ActiveListings: &active}
	revenue := 0.0
	for _, id := range itemIDs {
		orders, err := uc.store.Orders.GetByItemID(ctx, id)
		if err != nil {
			return nil, err
		}
		stats.TotalOrders += len(orders)
		for _, o := range orders {
			if o.Status != entities.OrderStatusCancelled {
				revenue += o.Total
			}
		}
	}
	revenue = roundCents(revenue)
	stats.TotalRevenue = &revenue
	return stats, nil
}

func (uc *StatsUseCase) customerStats(ctx context.Context, userID string) (*UserStats, error) {
	orders, err := uc.store.Orders.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	spent := 0.0
	active := 0
	for _, o := range orders {
		if o.Status != entities.OrderStatusCancelled {
			spent += o.Total
		}
		if o.Status.Active() {
			active++
		}
	}
	spent = roundCents(spent)
	return &UserStats{
		UserType:     entities.UserTypeCustomer,
		TotalOrders:  len(orders),
		TotalSpent:   &spent,
		ActiveOrders: &active,
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
