package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
)

func dayMilli(value string) int64 {
	t, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t.UnixMilli()
}

func TestComputeTotal(t *testing.T) {
	items := []ordermodels.OrderItem{
		{Name: "Loa JBL Flip 6", Price: 2500000, Qty: 2},
		{Name: "Micro Shure SM58", Price: 3200000, Qty: 1},
	}
	assert.Equal(t, float64(8200000), ComputeTotal(items))
	assert.Equal(t, float64(0), ComputeTotal(nil), "danh sách rỗng phải ra tổng 0")
}

func TestBuildStatistics(t *testing.T) {
	order1 := primitive.NewObjectID()
	order2 := primitive.NewObjectID()
	order3 := primitive.NewObjectID()

	orders := []ordermodels.Order{
		{ID: order1, Status: ordermodels.StatusCompleted, OrderDate: dayMilli("2026-08-20 09:30")},
		{ID: order2, Status: ordermodels.StatusPending, OrderDate: dayMilli("2026-08-20 15:00")},
		{ID: order3, Status: ordermodels.StatusCancelled, OrderDate: dayMilli("2026-08-21 10:00")},
	}
	items := []ordermodels.OrderItem{
		{OrderID: order1, Price: 2500000, Qty: 2},
		{OrderID: order2, Price: 3200000, Qty: 1},
		{OrderID: order3, Price: 9900000, Qty: 1},
	}

	stats := BuildStatistics(orders, items)

	// Nhãn ngày theo thứ tự tăng dần
	assert.Equal(t, []string{"2026-08-20", "2026-08-21"}, stats.Labels)

	// Ngày 20: hai đơn, doanh thu 5tr + 3.2tr
	// Ngày 21: một đơn đã hủy, vẫn đếm đơn nhưng không tính doanh thu
	assert.Equal(t, []float64{8200000, 0}, stats.Revenue)
	assert.Equal(t, []int64{2, 1}, stats.Orders)
}

func TestBuildStatisticsEmpty(t *testing.T) {
	stats := BuildStatistics(nil, nil)
	assert.Empty(t, stats.Labels)
	assert.Empty(t, stats.Revenue)
	assert.Empty(t, stats.Orders)
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range ordermodels.ValidStatuses {
		assert.True(t, ordermodels.IsValidStatus(status), "trạng thái '%s' phải hợp lệ", status)
	}
	assert.False(t, ordermodels.IsValidStatus("shipped"))
	assert.False(t, ordermodels.IsValidStatus(""))
}

// ====================================
// FAKE BASE STORES CHO LỊCH SỬ MUA HÀNG
// Chỉ override các method mà ListCustomerOrders và loadDetail dùng;
// method khác bị gọi sẽ panic (nil embedded interface) làm test fail ngay.
// ====================================

type fakeOrderBase struct {
	basesvc.BaseServiceMongo[ordermodels.Order]
	docs []ordermodels.Order
}

func (f *fakeOrderBase) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]ordermodels.Order, error) {
	customerID := filter.(bson.M)["customerId"].(primitive.ObjectID)
	var result []ordermodels.Order
	for _, doc := range f.docs {
		if doc.CustomerID != nil && *doc.CustomerID == customerID {
			result = append(result, doc)
		}
	}
	return result, nil
}

type fakeCheckoutBase struct {
	basesvc.BaseServiceMongo[ordermodels.Checkout]
	docs map[primitive.ObjectID]ordermodels.Checkout
}

func (f *fakeCheckoutBase) FindOneById(ctx context.Context, id primitive.ObjectID) (ordermodels.Checkout, error) {
	doc, ok := f.docs[id]
	if !ok {
		return ordermodels.Checkout{}, common.ErrNotFound
	}
	return doc, nil
}

type fakeOrderItemBase struct {
	basesvc.BaseServiceMongo[ordermodels.OrderItem]
	docs []ordermodels.OrderItem
}

func (f *fakeOrderItemBase) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]ordermodels.OrderItem, error) {
	orderID := filter.(bson.M)["orderId"].(primitive.ObjectID)
	var result []ordermodels.OrderItem
	for _, doc := range f.docs {
		if doc.OrderID == orderID {
			result = append(result, doc)
		}
	}
	return result, nil
}

func TestListCustomerOrders(t *testing.T) {
	customerA := primitive.NewObjectID()
	customerB := primitive.NewObjectID()
	checkoutA := primitive.NewObjectID()
	orderA := primitive.NewObjectID()
	orderB := primitive.NewObjectID()

	orders := &fakeOrderBase{docs: []ordermodels.Order{
		{ID: orderA, CheckoutID: checkoutA, CustomerID: &customerA, Status: ordermodels.StatusPending},
		{ID: orderB, CustomerID: &customerB, Status: ordermodels.StatusCompleted},
	}}
	checkouts := &fakeCheckoutBase{docs: map[primitive.ObjectID]ordermodels.Checkout{
		checkoutA: {ID: checkoutA, Name: "Nguyễn Văn A"},
	}}
	items := &fakeOrderItemBase{docs: []ordermodels.OrderItem{
		{OrderID: orderA, Name: "Loa JBL Flip 6", Price: 2500000, Qty: 2},
		{OrderID: orderB, Name: "Micro Shure SM58", Price: 3200000, Qty: 1},
	}}

	svc := NewAdminOrderServiceWithStores(checkouts, orders, items)

	result, err := svc.ListCustomerOrders(context.Background(), customerA)
	require.NoError(t, err)
	require.Len(t, result, 1, "chỉ trả về đơn của đúng khách đó")

	detail := result[0]
	assert.Equal(t, orderA, detail.Order.ID)
	assert.Equal(t, "Nguyễn Văn A", detail.Checkout.Name)
	assert.Len(t, detail.Items, 1)
	assert.Equal(t, float64(5000000), detail.Total)

	// Khách chưa có đơn nào: danh sách rỗng, không lỗi
	empty, err := svc.ListCustomerOrders(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
