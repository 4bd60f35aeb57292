package ordersvc

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	orderdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/dto"
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
)

// AdminOrderService phục vụ trang quản trị (danh sách đơn, đổi trạng thái,
// thống kê) và tab lịch sử mua hàng ở trang hồ sơ khách.
type AdminOrderService struct {
	checkouts basesvc.BaseServiceMongo[ordermodels.Checkout]
	orders    basesvc.BaseServiceMongo[ordermodels.Order]
	items     basesvc.BaseServiceMongo[ordermodels.OrderItem]
}

// NewAdminOrderService tạo AdminOrderService trên các collection Mongo mặc định.
func NewAdminOrderService() (*AdminOrderService, error) {
	checkouts, err := NewMongoCheckoutStore()
	if err != nil {
		return nil, err
	}
	orders, err := NewMongoOrderStore()
	if err != nil {
		return nil, err
	}
	items, err := NewMongoOrderItemStore()
	if err != nil {
		return nil, err
	}
	return NewAdminOrderServiceWithStores(checkouts, orders, items), nil
}

// NewAdminOrderServiceWithStores tạo AdminOrderService với store tùy ý (dùng trong test).
func NewAdminOrderServiceWithStores(
	checkouts basesvc.BaseServiceMongo[ordermodels.Checkout],
	orders basesvc.BaseServiceMongo[ordermodels.Order],
	items basesvc.BaseServiceMongo[ordermodels.OrderItem],
) *AdminOrderService {
	return &AdminOrderService{checkouts: checkouts, orders: orders, items: items}
}

// ListOrders trả về danh sách đơn hàng mới nhất trước, kèm thông tin giao hàng,
// các dòng hàng và tổng tiền tính từ order_items.
func (s *AdminOrderService) ListOrders(ctx context.Context, page, limit int64) (*orderdto.OrderListResult, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	pageResult, err := s.orders.FindWithPagination(ctx, bson.D{}, page, limit, opts)
	if err != nil {
		return nil, err
	}

	details := make([]orderdto.OrderDetail, 0, len(pageResult.Items))
	for _, order := range pageResult.Items {
		detail, err := s.loadDetail(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}

	return &orderdto.OrderListResult{
		Page:      pageResult.Page,
		Limit:     pageResult.Limit,
		Total:     pageResult.Total,
		TotalPage: pageResult.TotalPage,
		Items:     details,
	}, nil
}

// loadDetail gom thông tin giao hàng, dòng hàng và tổng tiền của một đơn.
func (s *AdminOrderService) loadDetail(ctx context.Context, order ordermodels.Order) (*orderdto.OrderDetail, error) {
	checkout, err := s.checkouts.FindOneById(ctx, order.CheckoutID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		// Checkout bị thiếu (dữ liệu cũ) không chặn việc hiển thị đơn
		checkout = ordermodels.Checkout{}
	}

	items, err := s.items.Find(ctx, bson.M{"orderId": order.ID}, nil)
	if err != nil {
		return nil, err
	}

	return &orderdto.OrderDetail{
		Order:    order,
		Checkout: checkout,
		Items:    items,
		Total:    ComputeTotal(items),
	}, nil
}

// ListCustomerOrders trả về các đơn của một khách, mới nhất trước, kèm chi tiết.
// Dùng cho tab lịch sử mua hàng ở trang hồ sơ.
func (s *AdminOrderService) ListCustomerOrders(ctx context.Context, customerID primitive.ObjectID) ([]orderdto.OrderDetail, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	orders, err := s.orders.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}

	details := make([]orderdto.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail, err := s.loadDetail(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// UpdateStatus đổi trạng thái một đơn hàng.
func (s *AdminOrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status string) error {
	if !ordermodels.IsValidStatus(status) {
		return common.ErrInvalidStatus
	}
	_, err := s.orders.UpdateById(ctx, orderID, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrOrderNotFound
		}
		return err
	}
	return nil
}

// Statistics tính doanh thu và số đơn theo ngày trong khoảng days ngày gần nhất
// (đơn cancelled không tính doanh thu). Tổng tiền luôn tính từ order_items.
func (s *AdminOrderService) Statistics(ctx context.Context, days int) (*orderdto.StatisticsResponse, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days).UnixMilli()

	orders, err := s.orders.Find(ctx, bson.M{"orderDate": bson.M{"$gte": since}}, nil)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return &orderdto.StatisticsResponse{Labels: []string{}, Revenue: []float64{}, Orders: []int64{}}, nil
	}

	orderIDs := make([]primitive.ObjectID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := s.items.Find(ctx, bson.M{"orderId": bson.M{"$in": orderIDs}}, nil)
	if err != nil {
		return nil, err
	}

	return BuildStatistics(orders, items), nil
}

// ComputeTotal tính tổng tiền của một danh sách dòng hàng.
func ComputeTotal(items []ordermodels.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Qty)
	}
	return total
}

// BuildStatistics gom đơn và dòng hàng thành dữ liệu biểu đồ theo ngày.
// Hàm thuần, không chạm database, để test trực tiếp.
func BuildStatistics(orders []ordermodels.Order, items []ordermodels.OrderItem) *orderdto.StatisticsResponse {
	totalsByOrder := make(map[primitive.ObjectID]float64, len(orders))
	for _, item := range items {
		totalsByOrder[item.OrderID] += item.Price * float64(item.Qty)
	}

	type dayStat struct {
		revenue float64
		count   int64
	}
	byDay := make(map[string]*dayStat)
	for _, order := range orders {
		day := time.UnixMilli(order.OrderDate).Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &dayStat{}
			byDay[day] = stat
		}
		stat.count++
		if order.Status != ordermodels.StatusCancelled {
			stat.revenue += totalsByOrder[order.ID]
		}
	}

	labels := make([]string, 0, len(byDay))
	for day := range byDay {
		labels = append(labels, day)
	}
	sort.Strings(labels)

	result := &orderdto.StatisticsResponse{
		Labels:  labels,
		Revenue: make([]float64, 0, len(labels)),
		Orders:  make([]int64, 0, len(labels)),
	}
	for _, day := range labels {
		result.Revenue = append(result.Revenue, byDay[day].revenue)
		result.Orders = append(result.Orders, byDay[day].count)
	}
	return result
}
