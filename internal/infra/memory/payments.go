package memory

import (
	"context"
	"time"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"
)

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	//(transaction_id, payment_method) の一意制約
	for _, ex := range r.s.payments {
		if ex.TransactionID == p.TransactionID && ex.PaymentMethod == p.PaymentMethod {
			return model.Payment{}, repo.ErrDuplicate
		}
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *paymentRepo) FindByID(ctx context.Context, paymentID string) (model.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payments[paymentID]
	if !ok {
		return model.Payment{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *paymentRepo) FindByTransaction(ctx context.Context, transactionID string, method model.PaymentMethod) (model.Payment, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.payments {
		if p.TransactionID == transactionID && p.PaymentMethod == method {
			return p, true, nil
		}
	}
	return model.Payment{}, false, nil
}

func (r *paymentRepo) UpdateReview(ctx context.Context, paymentID string, status model.ReviewStatus, remarks *string) (model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[paymentID]
	if !ok {
		return model.Payment{}, repo.ErrNotFound
	}
	p.Status = status
	if remarks != nil {
		p.Remarks = *remarks
	}
	p.UpdatedAt = r.s.now()
	r.s.payments[paymentID] = p
	return p, nil
}

func (r *paymentRepo) List(ctx context.Context, f repo.PaymentListFilter) ([]model.Payment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]model.Payment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.OrderID != "" && p.OrderID != f.OrderID {
			continue
		}
		if f.Method != "" && string(p.PaymentMethod) != f.Method {
			continue
		}
		items = append(items, p)
	}

	out, total := page(items, func(p model.Payment) time.Time { return p.CreatedAt }, f.Sort, f.Page, f.Limit)
	return out, total, nil
}
