package service

import (
	"context"
	"fmt"
	"time"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/google/uuid"
)

// Statistics is the back-office dashboard aggregate over a date range.
type Statistics struct {
	From        string                      `json:"from"`
	To          string                      `json:"to"`
	Revenue     string                      `json:"revenue"`
	Invoices    int64                       `json:"invoices"`
	Returns     int64                       `json:"returns"`
	TopProducts []repository.ProductRanking `json:"top_products"`
}

// ReportService is the read side of the denormalized sales audit trail, plus a
// manual rebuild for invoices whose snapshot got lost.
type ReportService interface {
	CreateFromInvoice(ctx context.Context, invoiceNo string) (*model.Report, error)
	GetReportByID(ctx context.Context, id string) (*model.Report, error)
	ListReports(ctx context.Context, page, limit int) ([]model.Report, int64, error)
	ListReportsByUser(ctx context.Context, userID string) ([]model.Report, error)
	ListReportsByDateRange(ctx context.Context, from, to string) ([]model.Report, error)
	GetStatistics(ctx context.Context, from, to string) (*Statistics, error)
}

type reportService struct {
	repo         repository.ReportRepository
	invoices     repository.InvoiceRepository
	transactions repository.TransactionRepository
}

func NewReportService(repo repository.ReportRepository, invoices repository.InvoiceRepository, transactions repository.TransactionRepository) ReportService {
	return &reportService{repo: repo, invoices: invoices, transactions: transactions}
}

// CreateFromInvoice rebuilds the denormalized snapshot from a stored invoice.
// Self-purchases have no payment transaction and report as wallet payments.
func (s *reportService) CreateFromInvoice(ctx context.Context, invoiceNo string) (*model.Report, error) {
	invoice, err := s.invoices.FindByNo(ctx, invoiceNo)
	if err != nil {
		return nil, apperr.NotFoundf("invoice %s not found", invoiceNo)
	}

	paymentMethod := model.PaymentWallet
	if tx, err := s.transactions.FindByInvoiceID(ctx, invoice.ID); err == nil {
		paymentMethod = tx.PaymentMethod
	}

	report := &model.Report{
		UserID:        invoice.UserID,
		InvoiceNo:     invoice.InvoiceNo,
		BuyingDate:    invoice.CreatedAt,
		PaymentMethod: paymentMethod,
		Tailored:      invoice.Tailored,
		ItemCount:     invoice.ItemCount,
		TotalPrice:    invoice.TotalPrice,
	}
	if invoice.User != nil {
		report.UserName = invoice.User.Name
	}
	if invoice.Product != nil {
		report.ProductName = invoice.Product.Name
		report.ProductPrice = invoice.Product.UnitPrice().Round(2)
	}
	if invoice.Client != nil {
		report.ClientName = invoice.Client.Name
		report.ClientPhone = invoice.Client.Phone
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to rebuild report: %w", err)
	}
	return report, nil
}

func (s *reportService) GetReportByID(ctx context.Context, id string) (*model.Report, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid report id")
	}
	report, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return nil, apperr.NotFoundf("report not found")
	}
	return report, nil
}

func (s *reportService) ListReports(ctx context.Context, page, limit int) ([]model.Report, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	reports, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, total, nil
}

func (s *reportService) ListReportsByUser(ctx context.Context, userID string) ([]model.Report, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.BadRequestf("invalid user id")
	}

	reports, err := s.repo.ListByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user reports: %w", err)
	}
	return reports, nil
}

// parseDateRange accepts YYYY-MM-DD bounds, inclusive of the whole end day.
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.BadRequestf("invalid from date, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.BadRequestf("invalid to date, expected YYYY-MM-DD")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.BadRequestf("date range is inverted")
	}
	return start, end, nil
}

func (s *reportService) ListReportsByDateRange(ctx context.Context, from, to string) ([]model.Report, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	reports, err := s.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports by date: %w", err)
	}
	return reports, nil
}

func (s *reportService) GetStatistics(ctx context.Context, from, to string) (*Statistics, error) {
	start, end, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.GetSalesTotals(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	top, err := s.repo.GetTopProducts(ctx, start, end, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}

	return &Statistics{
		From:        from,
		To:          to,
		Revenue:     totals.Revenue,
		Invoices:    totals.InvoiceCount,
		Returns:     totals.ReturnedCount,
		TopProducts: top,
	}, nil
}
