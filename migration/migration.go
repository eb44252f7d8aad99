package migration

import (
	"context"

	"github.com/stayloft-lab/backend/internal/entity"
	"github.com/stayloft-lab/backend/pkg/xcontext"
)

// Migrate brings the schema to the latest version.
func Migrate(ctx context.Context) error {
	return entity.MigrateTable(xcontext.DB(ctx))
}
