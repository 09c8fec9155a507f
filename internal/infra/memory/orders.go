package memory

import (
	"context"
	"time"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"
)

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(ctx context.Context, o model.Order) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[o.ID]; ok {
		return model.Order{}, repo.ErrDuplicate
	}
	r.s.orders[o.ID] = o
	return o, nil
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	return r.update(orderID, func(o *model.Order) { o.Status = status })
}

func (r *orderRepo) UpdateDetails(ctx context.Context, orderID string, u repo.OrderDetailsUpdate) (model.Order, error) {
	return r.update(orderID, func(o *model.Order) {
		if u.ClientName != nil {
			o.ClientName = *u.ClientName
		}
		if u.ClientEmail != nil {
			o.ClientEmail = *u.ClientEmail
		}
		if u.ClientPhone != nil {
			o.ClientPhone = *u.ClientPhone
		}
		if u.ProfileLink != nil {
			o.ProfileLink = *u.ProfileLink
		}
		if u.PostLink != nil {
			v := *u.PostLink
			o.PostLink = &v
		}
		if u.SocialID != nil {
			v := *u.SocialID
			o.SocialID = &v
		}
		if u.RequiredFollowers != nil {
			o.RequiredFollowers = *u.RequiredFollowers
		}
		if u.Price != nil {
			o.Price = *u.Price
		}
	})
}

func (r *orderRepo) update(orderID string, apply func(o *model.Order)) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	apply(&o)
	o.UpdatedAt = r.s.now()
	r.s.orders[orderID] = o
	return o, nil
}

func (r *orderRepo) Delete(ctx context.Context, orderID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[orderID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.orders, orderID)
	return nil
}

func (r *orderRepo) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]model.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.ClientEmail != "" && o.ClientEmail != f.ClientEmail {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			continue
		}
		items = append(items, o)
	}

	out, total := page(items, func(o model.Order) time.Time { return o.CreatedAt }, f.Sort, f.Page, f.Limit)
	return out, total, nil
}
