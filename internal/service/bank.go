package service

import (
	"context"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"
	"preorder-service/internal/repository"

	"go.uber.org/zap"
)

// BankService exposes the settlement accounts a customer may pick from.
type BankService interface {
	ListActiveBanks(ctx context.Context) ([]*dto.BankResponse, error)
}

type bankServiceImpl struct {
	bankRepo repository.BankRepository
	logger   *zap.Logger
}

func NewBankService(bankRepo repository.BankRepository, logger *zap.Logger) BankService {
	return &bankServiceImpl{
		bankRepo: bankRepo,
		logger:   logger,
	}
}

func (s *bankServiceImpl) ListActiveBanks(ctx context.Context) ([]*dto.BankResponse, error) {
	banks, err := s.bankRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("list banks", zap.Error(err))
		return nil, model.ErrTransient
	}

	resp := make([]*dto.BankResponse, 0, len(banks))
	for _, bank := range banks {
		resp = append(resp, &dto.BankResponse{
			ID:            bank.ID,
			Name:          bank.Name,
			Code:          bank.Code,
			AccountNumber: bank.AccountNumber,
			AccountName:   bank.AccountName,
		})
	}

	return resp, nil
}
