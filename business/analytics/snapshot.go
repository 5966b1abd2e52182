package analytics

import "olistInsights/domain"

// deliveredItem is an order item joined to its delivered parent order.
type deliveredItem struct {
	item  domain.OrderItem
	order domain.Order
}

// Snapshot indexes a dataset once so every metric can join in O(1). It is
// never mutated after NewSnapshot returns, so metrics may share it across
// goroutines.
type Snapshot struct {
	dataset      domain.Dataset
	orders       map[string]domain.Order
	customers    map[string]domain.Customer
	products     map[string]domain.Product
	translations map[string]string
	itemsByOrder map[string][]domain.OrderItem
	delivered    []deliveredItem
}

func NewSnapshot(ds domain.Dataset) *Snapshot {
	s := &Snapshot{
		dataset:      ds,
		orders:       make(map[string]domain.Order, len(ds.Orders)),
		customers:    make(map[string]domain.Customer, len(ds.Customers)),
		products:     make(map[string]domain.Product, len(ds.Products)),
		translations: make(map[string]string, len(ds.Translations)),
		itemsByOrder: make(map[string][]domain.OrderItem, len(ds.Orders)),
	}

	for _, o := range ds.Orders {
		s.orders[o.OrderID] = o
	}
	for _, c := range ds.Customers {
		s.customers[c.CustomerID] = c
	}
	for _, p := range ds.Products {
		s.products[p.ProductID] = p
	}
	for _, t := range ds.Translations {
		s.translations[t.CategoryName] = t.CategoryNameEnglish
	}

	for _, it := range ds.OrderItems {
		s.itemsByOrder[it.OrderID] = append(s.itemsByOrder[it.OrderID], it)

		order, ok := s.orders[it.OrderID]
		if !ok || !order.IsDelivered() {
			continue
		}
		s.delivered = append(s.delivered, deliveredItem{item: it, order: order})
	}

	return s
}

func (s *Snapshot) Dataset() domain.Dataset {
	return s.dataset
}

func (s *Snapshot) deliveredOrder(orderID string) (domain.Order, bool) {
	o, ok := s.orders[orderID]
	if !ok || !o.IsDelivered() {
		return domain.Order{}, false
	}
	return o, true
}

// deliveredOrders returns each delivered order once, in dataset order.
func (s *Snapshot) deliveredOrders() []domain.Order {
	seen := make(map[string]struct{}, len(s.orders))
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.dataset.Orders {
		if !o.IsDelivered() {
			continue
		}
		if _, dup := seen[o.OrderID]; dup {
			continue
		}
		seen[o.OrderID] = struct{}{}
		out = append(out, s.orders[o.OrderID])
	}
	return out
}

// category resolves an item's English category. ok is false when the item's
// product is missing, the only case where an item drops out of category
// metrics.
func (s *Snapshot) category(productID string) (string, bool) {
	p, ok := s.products[productID]
	if !ok {
		return "", false
	}
	return domain.ResolveCategory(s.translations, p.CategoryName), true
}
