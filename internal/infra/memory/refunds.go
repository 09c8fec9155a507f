package memory

import (
	"context"
	"time"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"
)

type refundRepo struct{ s *Store }

func (r *refundRepo) Create(ctx context.Context, rf model.Refund) (model.Refund, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.refunds[rf.ID]; ok {
		return model.Refund{}, repo.ErrDuplicate
	}
	r.s.refunds[rf.ID] = rf
	return rf, nil
}

func (r *refundRepo) FindByID(ctx context.Context, refundID string) (model.Refund, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rf, ok := r.s.refunds[refundID]
	if !ok {
		return model.Refund{}, repo.ErrNotFound
	}
	return rf, nil
}

func (r *refundRepo) UpdateReview(ctx context.Context, refundID string, status model.ReviewStatus, adminRemarks *string) (model.Refund, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rf, ok := r.s.refunds[refundID]
	if !ok {
		return model.Refund{}, repo.ErrNotFound
	}
	rf.Status = status
	if adminRemarks != nil {
		rf.AdminRemarks = *adminRemarks
	}
	rf.UpdatedAt = r.s.now()
	r.s.refunds[refundID] = rf
	return rf, nil
}

func (r *refundRepo) List(ctx context.Context, f repo.RefundListFilter) ([]model.Refund, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]model.Refund, 0, len(r.s.refunds))
	for _, rf := range r.s.refunds {
		if f.Status != "" && string(rf.Status) != f.Status {
			continue
		}
		if f.UserID != "" && rf.UserID != f.UserID {
			continue
		}
		if f.OrderID != "" && rf.OrderID != f.OrderID {
			continue
		}
		items = append(items, rf)
	}

	out, total := page(items, func(rf model.Refund) time.Time { return rf.CreatedAt }, f.Sort, f.Page, f.Limit)
	return out, total, nil
}
