package repo

import (
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// classify maps a Spanner error onto the domain taxonomy. Errors already in
// the taxonomy (a NotFound raised mid-transaction, say) pass through so a
// rollback does not reclassify them. conflictMsg names the unique constraint
// the calling operation can trip.
func classify(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if domain.IsNotFound(err) || domain.IsConflict(err) || domain.IsValidation(err) {
		return err
	}
	if spanner.ErrCode(err) == codes.AlreadyExists {
		return domain.Conflict("%s", conflictMsg)
	}
	return domain.Internal(err)
}
