package service

import (
	"context"

	"github.com/arjunms/maninventory-api/internal/domain/entity"
	"github.com/arjunms/maninventory-api/internal/domain/repository"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/arjunms/maninventory-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionService exposes the sales ledger for history screens
type TransactionService struct {
	transactionRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// ListTransactions lists the user's sales with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txns, total, err := s.transactionRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// GetTransaction retrieves one sale owned by the user
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil || txn.UserID != userID {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}
