package contract

import (
	"context"

	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/repository/specification"

	"github.com/google/uuid"
)

// CareerReportRepository persists report snapshots. FindOne returns
// (nil, nil) when nothing matches; absence of a share id is a normal
// outcome, not an error.
type CareerReportRepository interface {
	Create(ctx context.Context, report *entity.CareerReport) error
	Update(ctx context.Context, report *entity.CareerReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerReport, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
