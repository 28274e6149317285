package service

import (
	"context"
	"fmt"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"
)

// RetrievedService is the read side of the returns ledger
type RetrievedService interface {
	ListReturns(ctx context.Context, page, limit int) ([]model.Retrieved, int64, error)
	GetReturnByInvoiceNo(ctx context.Context, invoiceNo string) (*model.Retrieved, error)
	// ListReturnsByClientPhone lists a client's returns, newest first.
	ListReturnsByClientPhone(ctx context.Context, phone string) ([]model.Retrieved, error)
}

type retrievedService struct {
	repo     repository.RetrievedRepository
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
}

func NewRetrievedService(repo repository.RetrievedRepository, invoices repository.InvoiceRepository, clients repository.ClientRepository) RetrievedService {
	return &retrievedService{repo: repo, invoices: invoices, clients: clients}
}

func (s *retrievedService) ListReturns(ctx context.Context, page, limit int) ([]model.Retrieved, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	records, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch returns: %w", err)
	}
	return records, total, nil
}

func (s *retrievedService) GetReturnByInvoiceNo(ctx context.Context, invoiceNo string) (*model.Retrieved, error) {
	invoice, err := s.invoices.FindByNo(ctx, invoiceNo)
	if err != nil {
		return nil, apperr.NotFoundf("invoice %s not found", invoiceNo)
	}

	record, err := s.repo.FindByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return nil, apperr.NotFoundf("invoice %s has not been returned", invoiceNo)
	}
	return record, nil
}

func (s *retrievedService) ListReturnsByClientPhone(ctx context.Context, phone string) ([]model.Retrieved, error) {
	client, err := s.clients.FindByPhone(ctx, phone)
	if err != nil {
		return nil, apperr.NotFoundf("no client registered with this phone number")
	}

	records, err := s.repo.ListByClientID(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client returns: %w", err)
	}
	return records, nil
}
