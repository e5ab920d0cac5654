package service

import (
	"context"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/reorder"
	"github.com/avelise/scopeflow/internal/store"
)

type milestoneItem struct{ m *domain.Milestone }

func (i milestoneItem) ItemID() string      { return i.m.ID }
func (i milestoneItem) SetOrderIndex(n int) { i.m.OrderIndex = n }

// ReorderMilestones moves the project's milestone at src to dst, reindexes
// the whole list contiguously and persists the full mapping in the
// background. The project's milestone slice is left sorted by the new order.
// Returns false when either index is out of bounds.
func ReorderMilestones(e *reorder.Engine, client api.Client, cache *store.Store, p *domain.Project, src, dst int) (<-chan struct{}, bool) {
	items := make([]milestoneItem, len(p.Milestones))
	for i := range p.Milestones {
		items[i] = milestoneItem{m: &p.Milestones[i]}
	}
	done, ok := reorder.Apply(e, items, src, dst, func(ctx context.Context, order []api.OrderEntry) error {
		if err := client.ReorderMilestones(ctx, p.ID, order); err != nil {
			return err
		}
		if cache != nil {
			cache.InvalidateProject(p.ID)
		}
		return nil
	})
	if !ok {
		return nil, false
	}
	domain.SortMilestones(p.Milestones)
	return done, true
}
