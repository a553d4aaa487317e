package lifecycle

import (
	"context"

	"github.com/millbrookqa/docregister/internal/domain"
)

// ListDeleted returns deletion snapshots matching the filter. A filter
// without an explicit limit gets the configured default.
func (s *Service) ListDeleted(ctx context.Context, filter domain.DeletedFilter) ([]domain.DeletedRecord, error) {
	if filter.Limit == 0 {
		filter.Limit = s.defaultLimit
	}
	return s.deleted.List(ctx, filter)
}

// ListArchived returns archive snapshots matching the filter. A filter
// without an explicit limit gets the configured default.
func (s *Service) ListArchived(ctx context.Context, filter domain.ArchiveFilter) ([]domain.ArchiveRecord, error) {
	if filter.Limit == 0 {
		filter.Limit = s.defaultLimit
	}
	return s.archive.List(ctx, filter)
}
