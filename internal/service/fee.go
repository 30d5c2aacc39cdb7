package service

import "preorder-service/internal/model"

// StoreFeeShare is one store's slice of the order-level shipping fee.
type StoreFeeShare struct {
	StoreID string
	Amount  int64
}

// DistinctStores returns the stores represented in the items, in order of
// first appearance.
func DistinctStores(items []*model.OrderItem) []string {
	seen := make(map[string]bool, len(items))
	var storeIDs []string
	for _, item := range items {
		if !seen[item.StoreID] {
			seen[item.StoreID] = true
			storeIDs = append(storeIDs, item.StoreID)
		}
	}
	return storeIDs
}

// ApportionServiceFee splits serviceFee evenly across the distinct stores
// in the items. When the fee does not divide evenly, the remainder is
// handed out one unit at a time to stores in first-appearance order, so
// the shares always sum to the full fee. A single-store order gets the
// whole fee. Display-only: callers must never write the result back.
func ApportionServiceFee(items []*model.OrderItem, serviceFee int64) []StoreFeeShare {
	storeIDs := DistinctStores(items)
	if len(storeIDs) == 0 {
		return nil
	}

	n := int64(len(storeIDs))
	base := serviceFee / n
	remainder := serviceFee % n

	shares := make([]StoreFeeShare, 0, len(storeIDs))
	for i, storeID := range storeIDs {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		shares = append(shares, StoreFeeShare{StoreID: storeID, Amount: amount})
	}

	return shares
}
