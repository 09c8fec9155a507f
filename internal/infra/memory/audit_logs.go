package memory

import (
	"context"

	"growthmarket/internal/domain/model"
	repo "growthmarket/internal/repository"
)

type auditLogRepo struct{ s *Store }

func (r *auditLogRepo) Create(ctx context.Context, log model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = int64(len(r.s.auditLogs) + 1)
	r.s.auditLogs = append(r.s.auditLogs, log)
	return nil
}

func (r *auditLogRepo) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []model.AuditLog{}
	//新しい順
	for i := len(r.s.auditLogs) - 1; i >= 0; i-- {
		l := r.s.auditLogs[i]
		if f.ActorUserID != nil && l.ActorUserID != *f.ActorUserID {
			continue
		}
		if f.Action != nil && l.Action != *f.Action {
			continue
		}
		if f.ResourceType != nil && l.ResourceType != *f.ResourceType {
			continue
		}
		if f.ResourceID != nil && l.ResourceID != *f.ResourceID {
			continue
		}
		if f.CreatedFrom != nil && l.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && l.CreatedAt.After(*f.CreatedTo) {
			continue
		}
		out = append(out, l)
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := max(f.Offset, 0)
	if offset >= len(out) {
		return []model.AuditLog{}, nil
	}
	end := min(offset+limit, len(out))
	return out[offset:end], nil
}
