package service

import (
	"context"
	"fmt"
	"time"

	"tailorpos/internal/model"
	"tailorpos/internal/notify"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"
	"tailorpos/pkg/shortid"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultStockThreshold is the stock level at or below which a low-stock
	// notification is raised after a sale.
	DefaultStockThreshold = 5

	// returnWindow is how long after purchase a return is still accepted.
	returnWindow = 14 * 24 * time.Hour
)

type TailoringOrderRequest struct {
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
}

type BuyProductRequest struct {
	ClientPhone   string                 `json:"client_phone" binding:"required"`
	ProductID     string                 `json:"product_id" binding:"required,uuid"`
	ItemCount     int                    `json:"item_count" binding:"required,min=1"`
	PaymentMethod string                 `json:"payment_method" binding:"required"`
	Tailoring     *TailoringOrderRequest `json:"tailoring"` // absent means no alteration
}

type BuyForMyselfRequest struct {
	ProductID string                 `json:"product_id" binding:"required,uuid"`
	ItemCount int                    `json:"item_count" binding:"required,min=1"`
	Tailoring *TailoringOrderRequest `json:"tailoring"`
}

type PurchaseResponse struct {
	InvoiceNo   string `json:"invoice_no"`
	ProductName string `json:"product_name"`
	ItemCount   int    `json:"item_count"`
	TotalPrice  string `json:"total_price"`
	Tailored    bool   `json:"tailored"`
	CreatedAt   string `json:"created_at"`
}

type ReturnResponse struct {
	InvoiceNo    string `json:"invoice_no"`
	ProductName  string `json:"product_name"`
	ItemCount    int    `json:"item_count"`
	StockAfter   int    `json:"stock_after"`
	RefundAmount string `json:"refund_amount"`
	ReturnedAt   string `json:"returned_at"`
}

// CheckoutService runs the purchase and return workflows. Every workflow's
// writes happen inside one database transaction; notifications are emitted
// best effort after the transaction commits.
type CheckoutService interface {
	// BuyProduct is the counter sale: a staff member sells to a registered client.
	BuyProduct(ctx context.Context, sellerID string, req BuyProductRequest) (*PurchaseResponse, error)
	// BuyForMyself is the staff self-purchase paid from the staff wallet, with
	// the staff discount applied on top of any product discount.
	BuyForMyself(ctx context.Context, buyerID string, req BuyForMyselfRequest) (*PurchaseResponse, error)
	// ReturnProduct processes a return by invoice number. Admins may return
	// past the standard window.
	ReturnProduct(ctx context.Context, handlerID, handlerRole, invoiceNo string) (*ReturnResponse, error)
}

type checkoutService struct {
	txManager      repository.TransactionManager
	users          repository.UserRepository
	clients        repository.ClientRepository
	products       repository.ProductRepository
	invoices       repository.InvoiceRepository
	transactions   repository.TransactionRepository
	tailorings     repository.TailoringRepository
	retrieved      repository.RetrievedRepository
	reports        repository.ReportRepository
	notifications  repository.NotificationRepository
	hub            *notify.Hub
	stockThreshold int
}

func NewCheckoutService(
	txManager repository.TransactionManager,
	users repository.UserRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	invoices repository.InvoiceRepository,
	transactions repository.TransactionRepository,
	tailorings repository.TailoringRepository,
	retrieved repository.RetrievedRepository,
	reports repository.ReportRepository,
	notifications repository.NotificationRepository,
	hub *notify.Hub,
	stockThreshold int,
) CheckoutService {
	if stockThreshold <= 0 {
		stockThreshold = DefaultStockThreshold
	}
	return &checkoutService{
		txManager:      txManager,
		users:          users,
		clients:        clients,
		products:       products,
		invoices:       invoices,
		transactions:   transactions,
		tailorings:     tailorings,
		retrieved:      retrieved,
		reports:        reports,
		notifications:  notifications,
		hub:            hub,
		stockThreshold: stockThreshold,
	}
}

func validTailoring(t *TailoringOrderRequest) error {
	if t == nil {
		return nil
	}
	if t.Description == "" {
		return apperr.BadRequestf("tailoring description is required")
	}
	if t.Price.IsNegative() {
		return apperr.BadRequestf("tailoring price cannot be negative")
	}
	return nil
}

func (s *checkoutService) BuyProduct(ctx context.Context, sellerID string, req BuyProductRequest) (*PurchaseResponse, error) {
	userID, err := uuid.Parse(sellerID)
	if err != nil {
		return nil, apperr.Unauthorizedf("invalid session")
	}
	if req.PaymentMethod != model.PaymentCash && req.PaymentMethod != model.PaymentCard {
		return nil, apperr.BadRequestf("payment method must be cash or card")
	}
	if err := validTailoring(req.Tailoring); err != nil {
		return nil, err
	}

	seller, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorizedf("seller account not found")
	}

	client, err := s.clients.FindByPhone(ctx, req.ClientPhone)
	if err != nil {
		return nil, apperr.NotFoundf("no client registered with this phone number")
	}

	// Card payment requires a card on file before any stock is touched.
	if req.PaymentMethod == model.PaymentCard {
		if _, err := s.clients.FindCardByClientID(ctx, client.ID); err != nil {
			return nil, apperr.Unauthorizedf("client has no card on file, add one or pay cash")
		}
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.BadRequestf("invalid product id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFoundf("product not found")
	}

	// Tailoring is priced per item, so it scales with the quantity.
	count := decimal.NewFromInt(int64(req.ItemCount))
	tailoringPrice := decimal.Zero
	if req.Tailoring != nil {
		tailoringPrice = req.Tailoring.Price
	}
	total := product.UnitPrice().Add(tailoringPrice).Mul(count).Round(2)

	invoiceNo, err := shortid.NewInvoiceNo()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate invoice number", err)
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		ok, decErr := s.products.DecrementStock(txCtx, product.ID, req.ItemCount)
		if decErr != nil {
			return fmt.Errorf("failed to reserve stock: %w", decErr)
		}
		if !ok {
			return apperr.BadRequestf("not enough stock: %d requested", req.ItemCount)
		}

		invoice = &model.Invoice{
			InvoiceNo:  invoiceNo,
			UserID:     seller.ID,
			ProductID:  product.ID,
			ClientID:   &client.ID,
			ItemCount:  req.ItemCount,
			TotalPrice: total,
			Tailored:   req.Tailoring != nil,
		}
		if err := s.invoices.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		if err := s.transactions.Create(txCtx, &model.Transaction{
			InvoiceID:     invoice.ID,
			ClientID:      client.ID,
			UserID:        seller.ID,
			PaymentMethod: req.PaymentMethod,
		}); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		if req.Tailoring != nil {
			if err := s.tailorings.Create(txCtx, &model.Tailoring{
				ProductID:   product.ID,
				ClientID:    &client.ID,
				Description: req.Tailoring.Description,
				Price:       req.Tailoring.Price,
				Status:      model.TailoringRequested,
			}); err != nil {
				return fmt.Errorf("failed to create tailoring order: %w", err)
			}
		}

		return s.writeReport(txCtx, seller, invoice, product, req.PaymentMethod, client.Name, client.Phone, tailoringPrice)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAfterSale(ctx, product, req.ItemCount, req.Tailoring != nil, client.Name)

	return &PurchaseResponse{
		InvoiceNo:   invoice.InvoiceNo,
		ProductName: product.Name,
		ItemCount:   invoice.ItemCount,
		TotalPrice:  invoice.TotalPrice.StringFixed(2),
		Tailored:    invoice.Tailored,
		CreatedAt:   invoice.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *checkoutService) BuyForMyself(ctx context.Context, buyerID string, req BuyForMyselfRequest) (*PurchaseResponse, error) {
	userID, err := uuid.Parse(buyerID)
	if err != nil {
		return nil, apperr.Unauthorizedf("invalid session")
	}
	if err := validTailoring(req.Tailoring); err != nil {
		return nil, err
	}

	buyer, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorizedf("staff account not found")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, apperr.BadRequestf("invalid product id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, apperr.NotFoundf("product not found")
	}

	// Staff discount stacks on top of any product discount.
	hundred := decimal.NewFromInt(100)
	unit := product.UnitPrice()
	unit = unit.Sub(unit.Mul(buyer.DiscountPercentage).Div(hundred))

	count := decimal.NewFromInt(int64(req.ItemCount))
	tailoringPrice := decimal.Zero
	if req.Tailoring != nil {
		tailoringPrice = req.Tailoring.Price
	}
	total := unit.Add(tailoringPrice).Mul(count).Round(2)

	invoiceNo, err := shortid.NewInvoiceNo()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate invoice number", err)
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		paid, debitErr := s.users.DebitWallet(txCtx, buyer.ID, total)
		if debitErr != nil {
			return fmt.Errorf("failed to debit wallet: %w", debitErr)
		}
		if !paid {
			return apperr.BadRequestf("insufficient wallet balance for %s", total.StringFixed(2))
		}

		ok, decErr := s.products.DecrementStock(txCtx, product.ID, req.ItemCount)
		if decErr != nil {
			return fmt.Errorf("failed to reserve stock: %w", decErr)
		}
		if !ok {
			return apperr.BadRequestf("not enough stock: %d requested", req.ItemCount)
		}

		// No client and no payment transaction: the wallet debit is the payment.
		invoice = &model.Invoice{
			InvoiceNo:  invoiceNo,
			UserID:     buyer.ID,
			ProductID:  product.ID,
			ItemCount:  req.ItemCount,
			TotalPrice: total,
			Tailored:   req.Tailoring != nil,
		}
		if err := s.invoices.Create(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		if req.Tailoring != nil {
			if err := s.tailorings.Create(txCtx, &model.Tailoring{
				ProductID:   product.ID,
				Description: req.Tailoring.Description,
				Price:       req.Tailoring.Price,
				Status:      model.TailoringRequested,
			}); err != nil {
				return fmt.Errorf("failed to create tailoring order: %w", err)
			}
		}

		return s.writeReport(txCtx, buyer, invoice, product, model.PaymentWallet, "", "", tailoringPrice)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAfterSale(ctx, product, req.ItemCount, req.Tailoring != nil, buyer.Name)

	return &PurchaseResponse{
		InvoiceNo:   invoice.InvoiceNo,
		ProductName: product.Name,
		ItemCount:   invoice.ItemCount,
		TotalPrice:  invoice.TotalPrice.StringFixed(2),
		Tailored:    invoice.Tailored,
		CreatedAt:   invoice.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *checkoutService) ReturnProduct(ctx context.Context, handlerID, handlerRole, invoiceNo string) (*ReturnResponse, error) {
	userID, err := uuid.Parse(handlerID)
	if err != nil {
		return nil, apperr.Unauthorizedf("invalid session")
	}

	invoice, err := s.invoices.FindByNo(ctx, invoiceNo)
	if err != nil {
		return nil, apperr.NotFoundf("invoice %s not found", invoiceNo)
	}

	if _, err := s.transactions.FindByInvoiceID(ctx, invoice.ID); err != nil {
		return nil, apperr.NotFoundf("no payment transaction found for invoice %s", invoiceNo)
	}

	if invoice.Tailored {
		return nil, apperr.BadRequestf("tailored articles cannot be returned")
	}
	if invoice.Returned {
		return nil, apperr.Conflictf("invoice %s has already been returned", invoiceNo)
	}

	// The window is elapsed time since purchase, not a day-of-month comparison,
	// so purchases late in a month do not gain or lose return days.
	if time.Since(invoice.CreatedAt) > returnWindow && handlerRole != model.RoleAdmin {
		return nil, apperr.BadRequestf("return window of 14 days has passed")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.retrieved.Create(txCtx, &model.Retrieved{
			InvoiceID: invoice.ID,
			ProductID: invoice.ProductID,
			UserID:    userID,
			ClientID:  invoice.ClientID,
		}); err != nil {
			return fmt.Errorf("failed to record return: %w", err)
		}
		if err := s.products.IncrementStock(txCtx, invoice.ProductID, invoice.ItemCount); err != nil {
			return fmt.Errorf("failed to restock: %w", err)
		}
		if err := s.invoices.MarkReturned(txCtx, invoice.ID); err != nil {
			return fmt.Errorf("failed to flag invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	productName := ""
	stockAfter := 0
	if product, err := s.products.FindByID(ctx, invoice.ProductID); err == nil {
		productName = product.Name
		stockAfter = product.Stock
	} else if invoice.Product != nil {
		productName = invoice.Product.Name
	}
	return &ReturnResponse{
		InvoiceNo:    invoice.InvoiceNo,
		ProductName:  productName,
		ItemCount:    invoice.ItemCount,
		StockAfter:   stockAfter,
		RefundAmount: invoice.TotalPrice.StringFixed(2),
		ReturnedAt:   time.Now().Format(time.RFC3339),
	}, nil
}

// writeReport persists the denormalized audit snapshot inside the purchase transaction.
func (s *checkoutService) writeReport(ctx context.Context, staff *model.User, invoice *model.Invoice, product *model.Product, paymentMethod, clientName, clientPhone string, tailoringPrice decimal.Decimal) error {
	report := &model.Report{
		UserID:         staff.ID,
		UserName:       staff.Name,
		InvoiceNo:      invoice.InvoiceNo,
		BuyingDate:     time.Now(),
		PaymentMethod:  paymentMethod,
		ProductName:    product.Name,
		ProductPrice:   product.UnitPrice().Round(2),
		ClientName:     clientName,
		ClientPhone:    clientPhone,
		Tailored:       invoice.Tailored,
		TailoringPrice: tailoringPrice,
		ItemCount:      invoice.ItemCount,
		TotalPrice:     invoice.TotalPrice,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return fmt.Errorf("failed to write sales report: %w", err)
	}
	return nil
}

// notifyAfterSale raises low-stock and tailoring notifications. Runs after the
// purchase transaction commits; a failed notification never voids a sale.
func (s *checkoutService) notifyAfterSale(ctx context.Context, product *model.Product, sold int, tailored bool, buyerName string) {
	remaining := product.Stock - sold
	if remaining <= s.stockThreshold {
		msg := fmt.Sprintf("Low stock: %s has %d items left", product.Name, remaining)
		s.publish(ctx, model.NotificationStock, msg)
	}
	if tailored {
		msg := fmt.Sprintf("New tailoring order for %s (%s)", product.Name, buyerName)
		s.publish(ctx, model.NotificationTailor, msg)
	}
}

func (s *checkoutService) publish(ctx context.Context, notificationType, message string) {
	_ = s.notifications.Create(ctx, &model.Notification{
		Message: message,
		Type:    notificationType,
	})
	if s.hub != nil {
		s.hub.Publish(notificationType, message)
	}
}
