package store

import (
	"context"
	"sort" // Currencies in alphabetical order

	"wallet_admin/internal/domain"
)

type currencyTotal struct {
	Currency string
	Total    int64 // Minor units
}

// NetWorth sums a user's assets and liabilities per currency
func (s *Store) NetWorth(ctx context.Context, userID string) ([]domain.CurrencyNetWorth, error) {
	var assets, liabilities []currencyTotal
	if err := s.db.WithContext(ctx).Model(&domain.Asset{}).
		Select("currency, COALESCE(SUM(value), 0) AS total").
		Where("user_id = ?", userID).Group("currency").
		Scan(&assets).Error; err != nil {
		return nil, readErr("assets", err)
	}
	if err := s.db.WithContext(ctx).Model(&domain.Liability{}).
		Select("currency, COALESCE(SUM(value), 0) AS total").
		Where("user_id = ?", userID).Group("currency").
		Scan(&liabilities).Error; err != nil {
		return nil, readErr("liabilities", err)
	}
	return mergeTotals(assets, liabilities), nil
}

func mergeTotals(assets, liabilities []currencyTotal) []domain.CurrencyNetWorth {
	byCurrency := map[string]*domain.CurrencyNetWorth{}
	get := func(cur string) *domain.CurrencyNetWorth {
		if nw, ok := byCurrency[cur]; ok {
			return nw
		}
		nw := &domain.CurrencyNetWorth{Currency: cur}
		byCurrency[cur] = nw
		return nw
	}
	for _, a := range assets {
		get(a.Currency).Assets += a.Total
	}
	for _, l := range liabilities {
		get(l.Currency).Liabilities += l.Total
	}
	out := make([]domain.CurrencyNetWorth, 0, len(byCurrency))
	for _, nw := range byCurrency {
		nw.Net = nw.Assets - nw.Liabilities // May be negative
		out = append(out, *nw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}
