package service

import (
	"context"
	"testing"
	"time"

	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	db      *gorm.DB
	svc     CheckoutService
	cashier *model.User
	admin   *model.User
	client  *model.Client
	product *model.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := newTestDB(t)

	cashier := &model.User{
		Name:               "Counter Cashier",
		EmployeeCode:       "C0001",
		Email:              "cashier@shop.test",
		Password:           "x",
		Phone:              "0123456789",
		Role:               model.RoleCashier,
		Wallet:             decimal.NewFromInt(500),
		DiscountPercentage: decimal.NewFromInt(30),
		DOB:                time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	admin := &model.User{
		Name:         "Shop Admin",
		EmployeeCode: "A0001",
		Email:        "admin@shop.test",
		Password:     "x",
		Phone:        "0123456780",
		Role:         model.RoleAdmin,
		DOB:          time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	client := &model.Client{Name: "Walk In", Phone: "0987654321", Gender: model.GenderFemale}
	product := &model.Product{
		Name:          "Linen Jacket",
		Price:         decimal.NewFromInt(100),
		Stock:         10,
		Color:         "navy",
		Size:          "M",
		BarCodeNumber: 4006381333931,
	}

	for _, rec := range []interface{}{cashier, admin, client, product} {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("failed to seed fixture: %v", err)
		}
	}

	svc := NewCheckoutService(
		repository.NewTransactionManager(db),
		repository.NewUserRepository(db),
		repository.NewClientRepository(db),
		repository.NewProductRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewTailoringRepository(db),
		repository.NewRetrievedRepository(db),
		repository.NewReportRepository(db),
		repository.NewNotificationRepository(db),
		nil, // no websocket hub in tests
		DefaultStockThreshold,
	)

	return &checkoutFixture{db: db, svc: svc, cashier: cashier, admin: admin, client: client, product: product}
}

func (f *checkoutFixture) addCard(t *testing.T) {
	t.Helper()
	card := &model.CardInfo{
		ClientID:   f.client.ID,
		CardNumber: "4111111111111111",
		CVV:        "123",
		ExpiryDate: time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		CardType:   model.CardTypeVisa,
	}
	if err := f.db.Create(card).Error; err != nil {
		t.Fatalf("failed to seed card: %v", err)
	}
}

func (f *checkoutFixture) reloadProduct(t *testing.T) *model.Product {
	t.Helper()
	var p model.Product
	if err := f.db.First(&p, "id = ?", f.product.ID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	return &p
}

func (f *checkoutFixture) reloadCashier(t *testing.T) *model.User {
	t.Helper()
	var u model.User
	if err := f.db.First(&u, "id = ?", f.cashier.ID).Error; err != nil {
		t.Fatalf("failed to reload cashier: %v", err)
	}
	return &u
}

func TestBuyProductCashFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	res, err := f.svc.BuyProduct(ctx, f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     2,
		PaymentMethod: model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}

	if res.TotalPrice != "200.00" {
		t.Errorf("total price = %s, want 200.00", res.TotalPrice)
	}
	if res.Tailored {
		t.Error("purchase without tailoring flagged as tailored")
	}
	if got := f.reloadProduct(t).Stock; got != 8 {
		t.Errorf("stock after sale = %d, want 8", got)
	}

	var invoice model.Invoice
	if err := f.db.First(&invoice, "invoice_no = ?", res.InvoiceNo).Error; err != nil {
		t.Fatalf("invoice not persisted: %v", err)
	}
	if invoice.ClientID == nil || *invoice.ClientID != f.client.ID {
		t.Error("invoice not linked to the client")
	}

	var tx model.Transaction
	if err := f.db.First(&tx, "invoice_id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("transaction not persisted: %v", err)
	}
	if tx.PaymentMethod != model.PaymentCash {
		t.Errorf("payment method = %s, want cash", tx.PaymentMethod)
	}

	var report model.Report
	if err := f.db.First(&report, "invoice_no = ?", res.InvoiceNo).Error; err != nil {
		t.Fatalf("report snapshot not persisted: %v", err)
	}
	if report.ClientPhone != f.client.Phone {
		t.Errorf("report client phone = %s, want %s", report.ClientPhone, f.client.Phone)
	}

	// Stock went from 10 to 8, above the threshold, so no notification.
	var count int64
	f.db.Model(&model.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("notification count = %d, want 0", count)
	}
}

func TestBuyProductLowStockNotification(t *testing.T) {
	f := newCheckoutFixture(t)
	f.db.Model(&model.Product{}).Where("id = ?", f.product.ID).Update("stock", 6)

	_, err := f.svc.BuyProduct(context.Background(), f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     2,
		PaymentMethod: model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}

	var n model.Notification
	if err := f.db.First(&n, "type = ?", model.NotificationStock).Error; err != nil {
		t.Fatalf("expected a low-stock notification: %v", err)
	}
}

func TestBuyProductCardWithoutCardOnFile(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.BuyProduct(context.Background(), f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     1,
		PaymentMethod: model.PaymentCard,
	})
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}

	// Nothing must have been written.
	var invoices int64
	f.db.Model(&model.Invoice{}).Count(&invoices)
	if invoices != 0 {
		t.Errorf("invoice count = %d, want 0", invoices)
	}
	if got := f.reloadProduct(t).Stock; got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
}

func TestBuyProductCardWithCardOnFile(t *testing.T) {
	f := newCheckoutFixture(t)
	f.addCard(t)

	res, err := f.svc.BuyProduct(context.Background(), f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     1,
		PaymentMethod: model.PaymentCard,
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}
	if res.TotalPrice != "100.00" {
		t.Errorf("total price = %s, want 100.00", res.TotalPrice)
	}
}

func TestBuyProductInsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.BuyProduct(context.Background(), f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     20,
		PaymentMethod: model.PaymentCash,
	})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}

	if got := f.reloadProduct(t).Stock; got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
	var invoices int64
	f.db.Model(&model.Invoice{}).Count(&invoices)
	if invoices != 0 {
		t.Errorf("invoice count = %d, want 0", invoices)
	}
}

func TestBuyProductWithTailoring(t *testing.T) {
	f := newCheckoutFixture(t)

	res, err := f.svc.BuyProduct(context.Background(), f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     2,
		PaymentMethod: model.PaymentCash,
		Tailoring: &TailoringOrderRequest{
			Description: "shorten sleeves",
			Price:       decimal.NewFromInt(10),
		},
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}

	// (100 + 10 per-item tailoring) x 2
	if res.TotalPrice != "220.00" {
		t.Errorf("total price = %s, want 220.00", res.TotalPrice)
	}
	if !res.Tailored {
		t.Error("purchase with tailoring not flagged")
	}

	var order model.Tailoring
	if err := f.db.First(&order, "product_id = ?", f.product.ID).Error; err != nil {
		t.Fatalf("tailoring order not persisted: %v", err)
	}
	if order.Status != model.TailoringRequested {
		t.Errorf("tailoring status = %s, want requested", order.Status)
	}

	var n model.Notification
	if err := f.db.First(&n, "type = ?", model.NotificationTailor).Error; err != nil {
		t.Fatalf("expected a tailor notification: %v", err)
	}
}

func TestBuyProductFullDiscount(t *testing.T) {
	f := newCheckoutFixture(t)
	f.db.Model(&model.Product{}).Where("id = ?", f.product.ID).
		Updates(map[string]interface{}{"is_discount": true, "discount": 100})

	res, err := f.svc.BuyProduct(context.Background(), f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     1,
		PaymentMethod: model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}
	if res.TotalPrice != "0.00" {
		t.Errorf("total price at 100%% discount = %s, want 0.00", res.TotalPrice)
	}
}

func TestBuyForMyselfWalletMath(t *testing.T) {
	f := newCheckoutFixture(t)

	res, err := f.svc.BuyForMyself(context.Background(), f.cashier.ID.String(), BuyForMyselfRequest{
		ProductID: f.product.ID.String(),
		ItemCount: 1,
	})
	if err != nil {
		t.Fatalf("BuyForMyself failed: %v", err)
	}

	// 100 list price, 30% staff discount -> 70 charged against a 500 wallet.
	if res.TotalPrice != "70.00" {
		t.Errorf("total price = %s, want 70.00", res.TotalPrice)
	}
	if wallet := f.reloadCashier(t).Wallet; !wallet.Equal(decimal.NewFromInt(430)) {
		t.Errorf("wallet after purchase = %s, want 430", wallet)
	}

	var invoice model.Invoice
	if err := f.db.First(&invoice, "invoice_no = ?", res.InvoiceNo).Error; err != nil {
		t.Fatalf("invoice not persisted: %v", err)
	}
	if invoice.ClientID != nil {
		t.Error("self-purchase invoice should have no client")
	}

	// Wallet debit is the payment, so there is no transaction row.
	var txCount int64
	f.db.Model(&model.Transaction{}).Count(&txCount)
	if txCount != 0 {
		t.Errorf("transaction count = %d, want 0", txCount)
	}
}

func TestBuyForMyselfStacksDiscounts(t *testing.T) {
	f := newCheckoutFixture(t)
	f.db.Model(&model.Product{}).Where("id = ?", f.product.ID).
		Updates(map[string]interface{}{"is_discount": true, "discount": 50})

	res, err := f.svc.BuyForMyself(context.Background(), f.cashier.ID.String(), BuyForMyselfRequest{
		ProductID: f.product.ID.String(),
		ItemCount: 1,
	})
	if err != nil {
		t.Fatalf("BuyForMyself failed: %v", err)
	}

	// 100 -> 50 after product discount -> 35 after the 30% staff discount.
	if res.TotalPrice != "35.00" {
		t.Errorf("total price = %s, want 35.00", res.TotalPrice)
	}
}

func TestBuyForMyselfInsufficientFunds(t *testing.T) {
	f := newCheckoutFixture(t)
	f.db.Model(&model.Product{}).Where("id = ?", f.product.ID).Update("price", 1000)

	_, err := f.svc.BuyForMyself(context.Background(), f.cashier.ID.String(), BuyForMyselfRequest{
		ProductID: f.product.ID.String(),
		ItemCount: 1,
	})
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest, got %v", err)
	}

	if wallet := f.reloadCashier(t).Wallet; !wallet.Equal(decimal.NewFromInt(500)) {
		t.Errorf("wallet = %s, want untouched 500", wallet)
	}
	if got := f.reloadProduct(t).Stock; got != 10 {
		t.Errorf("stock = %d, want untouched 10", got)
	}
}

func TestReturnProductRestocksAndGuards(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	res, err := f.svc.BuyProduct(ctx, f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     3,
		PaymentMethod: model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}

	ret, err := f.svc.ReturnProduct(ctx, f.cashier.ID.String(), model.RoleCashier, res.InvoiceNo)
	if err != nil {
		t.Fatalf("ReturnProduct failed: %v", err)
	}
	if ret.StockAfter != 10 {
		t.Errorf("stock after return = %d, want 10", ret.StockAfter)
	}

	var invoice model.Invoice
	if err := f.db.First(&invoice, "invoice_no = ?", res.InvoiceNo).Error; err != nil {
		t.Fatalf("invoice lookup failed: %v", err)
	}
	if !invoice.Returned {
		t.Error("invoice not flagged as returned")
	}

	var retrieved model.Retrieved
	if err := f.db.First(&retrieved, "invoice_id = ?", invoice.ID).Error; err != nil {
		t.Fatalf("retrieved record not persisted: %v", err)
	}

	// A second return of the same invoice must be refused.
	_, err = f.svc.ReturnProduct(ctx, f.cashier.ID.String(), model.RoleCashier, res.InvoiceNo)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("expected Conflict on double return, got %v", err)
	}
}

func TestReturnTailoredRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	res, err := f.svc.BuyProduct(ctx, f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     1,
		PaymentMethod: model.PaymentCash,
		Tailoring: &TailoringOrderRequest{
			Description: "take in waist",
			Price:       decimal.NewFromInt(15),
		},
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}

	_, err = f.svc.ReturnProduct(ctx, f.cashier.ID.String(), model.RoleCashier, res.InvoiceNo)
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest for tailored article, got %v", err)
	}
}

func TestReturnWindowElapsed(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	res, err := f.svc.BuyProduct(ctx, f.cashier.ID.String(), BuyProductRequest{
		ClientPhone:   f.client.Phone,
		ProductID:     f.product.ID.String(),
		ItemCount:     1,
		PaymentMethod: model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("BuyProduct failed: %v", err)
	}

	// Age the purchase 20 days. Elapsed time is what counts, regardless of
	// where the month boundary falls.
	aged := time.Now().Add(-20 * 24 * time.Hour)
	f.db.Model(&model.Invoice{}).Where("invoice_no = ?", res.InvoiceNo).Update("created_at", aged)

	_, err = f.svc.ReturnProduct(ctx, f.cashier.ID.String(), model.RoleCashier, res.InvoiceNo)
	if !apperr.IsKind(err, apperr.BadRequest) {
		t.Fatalf("expected BadRequest past the window, got %v", err)
	}

	// Admins may override the window.
	if _, err := f.svc.ReturnProduct(ctx, f.admin.ID.String(), model.RoleAdmin, res.InvoiceNo); err != nil {
		t.Fatalf("admin override failed: %v", err)
	}
}

func TestReturnUnknownInvoice(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.ReturnProduct(context.Background(), f.cashier.ID.String(), model.RoleCashier, "ZZZZZZ")
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
