package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/models"
	orderdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/dto"
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
)

// ====================================
// FAKE STORES (in-memory, không cần database)
// ====================================

type fakeCheckoutStore struct {
	docs      map[primitive.ObjectID]ordermodels.Checkout
	failNext  bool
}

func newFakeCheckoutStore() *fakeCheckoutStore {
	return &fakeCheckoutStore{docs: map[primitive.ObjectID]ordermodels.Checkout{}}
}

func (s *fakeCheckoutStore) Insert(ctx context.Context, doc ordermodels.Checkout) (ordermodels.Checkout, error) {
	if s.failNext {
		return ordermodels.Checkout{}, errors.New("lỗi ghi checkout")
	}
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UnixMilli()
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *fakeCheckoutStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.docs, id)
	return nil
}

type fakeOrderStore struct {
	docs     map[primitive.ObjectID]ordermodels.Order
	failNext bool
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{docs: map[primitive.ObjectID]ordermodels.Order{}}
}

func (s *fakeOrderStore) Insert(ctx context.Context, doc ordermodels.Order) (ordermodels.Order, error) {
	if s.failNext {
		return ordermodels.Order{}, errors.New("lỗi ghi order")
	}
	doc.ID = primitive.NewObjectID()
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *fakeOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.docs, id)
	return nil
}

type fakeOrderItemStore struct {
	docs       map[primitive.ObjectID]ordermodels.OrderItem
	failAfterN int // fail khi insert lần thứ N+1 (0 = không fail)
	inserted   int
}

func newFakeOrderItemStore() *fakeOrderItemStore {
	return &fakeOrderItemStore{docs: map[primitive.ObjectID]ordermodels.OrderItem{}}
}

func (s *fakeOrderItemStore) Insert(ctx context.Context, doc ordermodels.OrderItem) (ordermodels.OrderItem, error) {
	if s.failAfterN > 0 && s.inserted >= s.failAfterN {
		return ordermodels.OrderItem{}, errors.New("lỗi ghi order item")
	}
	s.inserted++
	doc.ID = primitive.NewObjectID()
	s.docs[doc.ID] = doc
	return doc, nil
}

func (s *fakeOrderItemStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.docs, id)
	return nil
}

type fakeStockStore struct {
	products map[primitive.ObjectID]*catalogmodels.Product
}

func newFakeStockStore() *fakeStockStore {
	return &fakeStockStore{products: map[primitive.ObjectID]*catalogmodels.Product{}}
}

func (s *fakeStockStore) addProduct(name string, price float64, stock int64) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.products[id] = &catalogmodels.Product{ID: id, Name: name, Price: price, Stock: stock}
	return id
}

func (s *fakeStockStore) GetProduct(ctx context.Context, productID primitive.ObjectID) (catalogmodels.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return catalogmodels.Product{}, common.ErrNotFound
	}
	return *p, nil
}

func (s *fakeStockStore) DecrementStock(ctx context.Context, productID primitive.ObjectID, qty int64) (bool, error) {
	p, ok := s.products[productID]
	if !ok {
		return false, nil
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (s *fakeStockStore) IncrementStock(ctx context.Context, productID primitive.ObjectID, qty int64) error {
	if p, ok := s.products[productID]; ok {
		p.Stock += qty
	}
	return nil
}

type fakeMailer struct {
	sent     int
	lastTo   string
	failNext bool
}

func (m *fakeMailer) SendOrderConfirmation(to, name, orderID string, items []ordermodels.OrderItem, total float64) error {
	if m.failNext {
		return errors.New("SMTP không phản hồi")
	}
	m.sent++
	m.lastTo = to
	return nil
}

// ====================================
// HELPERS
// ====================================

type placementFixture struct {
	checkouts *fakeCheckoutStore
	orders    *fakeOrderStore
	items     *fakeOrderItemStore
	stock     *fakeStockStore
	mailer    *fakeMailer
	svc       *PlacementService
}

func newPlacementFixture() *placementFixture {
	f := &placementFixture{
		checkouts: newFakeCheckoutStore(),
		orders:    newFakeOrderStore(),
		items:     newFakeOrderItemStore(),
		stock:     newFakeStockStore(),
		mailer:    &fakeMailer{},
	}
	f.svc = NewPlacementServiceWithStores(f.checkouts, f.orders, f.items, f.stock, f.mailer)
	return f
}

func checkoutInput(items ...orderdto.CheckoutItemInput) *orderdto.CheckoutInput {
	return &orderdto.CheckoutInput{
		Fullname:        "Nguyễn Văn A",
		ShippingAddress: "12 Lý Thường Kiệt, Hà Nội",
		Phone:           "0901234567",
		Email:           "a@example.com",
		OrderItems:      items,
	}
}

// ====================================
// TESTS
// ====================================

func TestPlaceOrderSuccess(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa JBL Flip 6", 2500000, 10)
	micID := f.stock.addProduct("Micro Shure SM58", 3200000, 5)

	input := checkoutInput(
		orderdto.CheckoutItemInput{ProductID: loaID.Hex(), Quantity: 2},
		orderdto.CheckoutItemInput{ProductID: micID.Hex(), Quantity: 1},
	)

	result, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.OrderID, "phải trả về order_id")
	assert.Equal(t, MsgOrderPlaced, result.Message)

	// Mỗi loại bản ghi phải được ghi đúng số lượng
	assert.Len(t, f.checkouts.docs, 1, "phải có 1 bản ghi checkout")
	assert.Len(t, f.orders.docs, 1, "phải có 1 đơn hàng")
	assert.Len(t, f.items.docs, 2, "phải có 2 dòng hàng")

	// Kho phải bị trừ đúng số lượng đặt
	assert.Equal(t, int64(8), f.stock.products[loaID].Stock)
	assert.Equal(t, int64(4), f.stock.products[micID].Stock)

	// Email xác nhận gửi đến đúng địa chỉ
	assert.Equal(t, 1, f.mailer.sent)
	assert.Equal(t, "a@example.com", f.mailer.lastTo)

	// Đơn ở trạng thái pending
	for _, order := range f.orders.docs {
		assert.Equal(t, ordermodels.StatusPending, order.Status)
	}
}

func TestPlaceOrderInsufficientStockRollsBackEverything(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa JBL Flip 6", 2500000, 10)
	ampID := f.stock.addProduct("Amply Denon PMA-600", 9900000, 1)

	// Dòng thứ hai đặt quá tồn kho
	input := checkoutInput(
		orderdto.CheckoutItemInput{ProductID: loaID.Hex(), Quantity: 3},
		orderdto.CheckoutItemInput{ProductID: ampID.Hex(), Quantity: 2},
	)

	result, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, common.IsInsufficientStock(err), "lỗi phải là lỗi thiếu hàng, nhận được: %v", err)

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.StatusConflict, customErr.StatusCode)

	// Details phải trỏ đúng sản phẩm thiếu hàng bằng id, không phải tên
	details, ok := customErr.Details.(map[string]interface{})
	require.True(t, ok, "Details phải là map[string]interface{}, nhận được: %T", customErr.Details)
	assert.Equal(t, ampID.Hex(), details["productId"])
	assert.Equal(t, "Amply Denon PMA-600", details["productName"])

	// Toàn bộ bản ghi đã ghi phải được rollback
	assert.Empty(t, f.checkouts.docs, "checkout phải bị xóa khi rollback")
	assert.Empty(t, f.orders.docs, "order phải bị xóa khi rollback")
	assert.Empty(t, f.items.docs, "order items phải bị xóa khi rollback")

	// Kho của dòng đã trừ phải được cộng trả lại
	assert.Equal(t, int64(10), f.stock.products[loaID].Stock)
	assert.Equal(t, int64(1), f.stock.products[ampID].Stock)

	// Không gửi email khi đặt hàng thất bại
	assert.Equal(t, 0, f.mailer.sent)
}

func TestPlaceOrderStockNeverNegative(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa Bose S1 Pro", 14000000, 2)

	input := checkoutInput(orderdto.CheckoutItemInput{ProductID: loaID.Hex(), Quantity: 5})

	_, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.Error(t, err)
	assert.True(t, common.IsInsufficientStock(err))
	assert.Equal(t, int64(2), f.stock.products[loaID].Stock, "kho không được thay đổi khi không đủ hàng")
}

func TestPlaceOrderItemInsertFailureRollsBack(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa JBL Flip 6", 2500000, 10)
	micID := f.stock.addProduct("Micro Shure SM58", 3200000, 5)
	f.items.failAfterN = 1 // dòng thứ hai ghi thất bại

	input := checkoutInput(
		orderdto.CheckoutItemInput{ProductID: loaID.Hex(), Quantity: 2},
		orderdto.CheckoutItemInput{ProductID: micID.Hex(), Quantity: 1},
	)

	_, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.Error(t, err)

	assert.Empty(t, f.checkouts.docs)
	assert.Empty(t, f.orders.docs)
	assert.Empty(t, f.items.docs)
	assert.Equal(t, int64(10), f.stock.products[loaID].Stock, "kho dòng một phải được cộng trả lại")
	assert.Equal(t, int64(5), f.stock.products[micID].Stock)
}

func TestPlaceOrderMailFailureOnlyChangesMessage(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa JBL Flip 6", 2500000, 10)
	f.mailer.failNext = true

	input := checkoutInput(orderdto.CheckoutItemInput{ProductID: loaID.Hex(), Quantity: 1})

	result, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.NoError(t, err, "gửi mail thất bại không được làm hỏng đơn hàng")
	require.NotNil(t, result)

	assert.Equal(t, MsgOrderPlacedNoMail, result.Message)
	assert.NotEmpty(t, result.OrderID)

	// Đơn vẫn được ghi đầy đủ, kho vẫn bị trừ
	assert.Len(t, f.orders.docs, 1)
	assert.Len(t, f.items.docs, 1)
	assert.Equal(t, int64(9), f.stock.products[loaID].Stock)
}

func TestPlaceOrderNilMailerReportsNoMail(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa JBL Flip 6", 2500000, 10)
	f.svc = NewPlacementServiceWithStores(f.checkouts, f.orders, f.items, f.stock, nil)

	input := checkoutInput(orderdto.CheckoutItemInput{ProductID: loaID.Hex(), Quantity: 1})

	result, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Không có mailer thì không có email nào được gửi, message phải nói rõ
	assert.Equal(t, MsgOrderPlacedNoMail, result.Message)
	assert.Len(t, f.orders.docs, 1)
	assert.Equal(t, int64(9), f.stock.products[loaID].Stock)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newPlacementFixture()

	_, err := f.svc.PlaceOrder(context.Background(), checkoutInput(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyCart)
	assert.Empty(t, f.checkouts.docs, "không được ghi gì khi giỏ hàng trống")
}

func TestPlaceOrderInvalidProductID(t *testing.T) {
	f := newPlacementFixture()

	input := checkoutInput(orderdto.CheckoutItemInput{ProductID: "khong-phai-object-id", Quantity: 1})

	_, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.Error(t, err)

	var customErr *common.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)

	// Checkout và order đã ghi trước đó phải được rollback
	assert.Empty(t, f.checkouts.docs)
	assert.Empty(t, f.orders.docs)
}

func TestPlaceOrderUnitPriceSnapshot(t *testing.T) {
	f := newPlacementFixture()
	loaID := f.stock.addProduct("Loa JBL Flip 6", 2500000, 10)

	// Client cố gửi giá và tên khác: server phải snapshot lại từ sản phẩm
	input := checkoutInput(orderdto.CheckoutItemInput{
		ProductID: loaID.Hex(),
		Name:      "Loa giá rẻ",
		Quantity:  2,
		Price:     1000,
	})

	_, err := f.svc.PlaceOrder(context.Background(), input, nil)
	require.NoError(t, err)

	for _, item := range f.items.docs {
		assert.Equal(t, "Loa JBL Flip 6", item.Name)
		assert.Equal(t, float64(2500000), item.Price)
		assert.Equal(t, int64(2), item.Qty)
	}
}
