package repository

import (
	"context"
	"time"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination    *pagination.PaginationParams
	PaymentMethod string
	From          *time.Time
	To            *time.Time
}

// TransactionRepository defines the interface for the sales ledger. The
// ledger is append-only: there is no Update or Delete.
type TransactionRepository interface {
	// Create appends a settled sale. The settlement ID carries a unique
	// constraint, so a replay surfaces as a constraint violation.
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetBySettlementID(ctx context.Context, userID uuid.UUID, settlementID string) (*entity.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entity.Transaction, error)
}
