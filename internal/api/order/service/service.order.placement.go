package ordersvc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	orderdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/dto"
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/logger"
)

// Thông báo trả về cho client sau khi đặt hàng.
const (
	MsgOrderPlaced       = "Đặt hàng thành công. Email xác nhận đã được gửi."
	MsgOrderPlacedNoMail = "Đặt hàng thành công nhưng không gửi được email xác nhận."
)

// ConfirmationMailer gửi email xác nhận đơn hàng.
// Tách interface để PlacementService test được mà không cần SMTP.
type ConfirmationMailer interface {
	SendOrderConfirmation(to, name, orderID string, items []ordermodels.OrderItem, total float64) error
}

// compensationAction là một bước rollback, tích lũy sau mỗi bước ghi thành công.
// Khi một bước sau thất bại, các action được chạy theo thứ tự ngược lại.
type compensationAction struct {
	Name   string
	Action func() error
}

// PlacementService xử lý toàn bộ nghiệp vụ đặt hàng:
// validate giỏ, ghi Checkout → Order → OrderItems, trừ kho có điều kiện,
// rollback ngược khi thất bại, gửi email xác nhận sau khi ghi xong.
type PlacementService struct {
	checkouts CheckoutStore
	orders    OrderStore
	items     OrderItemStore
	stock     StockStore
	mailer    ConfirmationMailer // nil = không gửi mail
	log       *logrus.Logger
}

// NewPlacementService tạo PlacementService từ các store Mongo mặc định.
func NewPlacementService(mailer ConfirmationMailer) (*PlacementService, error) {
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
	stock, err := NewMongoStockStore()
	if err != nil {
		return nil, err
	}
	return NewPlacementServiceWithStores(checkouts, orders, items, stock, mailer), nil
}

// NewPlacementServiceWithStores tạo PlacementService với store tùy ý (dùng trong test).
func NewPlacementServiceWithStores(checkouts CheckoutStore, orders OrderStore, items OrderItemStore, stock StockStore, mailer ConfirmationMailer) *PlacementService {
	return &PlacementService{
		checkouts: checkouts,
		orders:    orders,
		items:     items,
		stock:     stock,
		mailer:    mailer,
		log:       logger.GetAppLogger(),
	}
}

// PlaceOrder thực hiện đặt hàng. customerID nil nếu khách vãng lai.
//
// Thứ tự ghi cố định: Checkout → Order → từng (OrderItem, trừ kho).
// Mỗi bước ghi thành công thêm một compensation action; bước nào thất bại
// thì chạy toàn bộ compensation theo thứ tự ngược lại rồi trả lỗi.
// Email xác nhận chỉ gửi sau khi mọi bản ghi đã an toàn; gửi mail thất bại
// chỉ đổi message trả về, không ảnh hưởng đơn đã ghi.
func (s *PlacementService) PlaceOrder(ctx context.Context, input *orderdto.CheckoutInput, customerID *primitive.ObjectID) (*orderdto.CheckoutResponse, error) {
	if len(input.OrderItems) == 0 {
		return nil, common.ErrEmptyCart
	}

	attemptID := uuid.NewString()
	var compensations []compensationAction

	// 1. Snapshot thông tin giao hàng
	checkout, err := s.checkouts.Insert(ctx, ordermodels.Checkout{
		AttemptID: attemptID,
		Name:      input.Fullname,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.ShippingAddress,
	})
	if err != nil {
		return nil, err
	}
	compensations = append(compensations, compensationAction{
		Name:   "delete checkout " + checkout.ID.Hex(),
		Action: func() error { return s.checkouts.Delete(ctx, checkout.ID) },
	})

	// 2. Đơn hàng
	order, err := s.orders.Insert(ctx, ordermodels.Order{
		AttemptID:  attemptID,
		CheckoutID: checkout.ID,
		CustomerID: customerID,
		Status:     ordermodels.StatusPending,
		OrderDate:  checkout.CreatedAt,
	})
	if err != nil {
		s.compensate(attemptID, compensations)
		return nil, err
	}
	compensations = append(compensations, compensationAction{
		Name:   "delete order " + order.ID.Hex(),
		Action: func() error { return s.orders.Delete(ctx, order.ID) },
	})

	// 3. Từng dòng hàng: ghi OrderItem rồi trừ kho có điều kiện
	var orderItems []ordermodels.OrderItem
	var total float64

	for _, item := range input.OrderItems {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			s.compensate(attemptID, compensations)
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Mã sản phẩm '%s' không hợp lệ", item.ProductID),
				common.StatusBadRequest,
				err,
			)
		}

		product, err := s.stock.GetProduct(ctx, productID)
		if err != nil {
			s.compensate(attemptID, compensations)
			return nil, err
		}

		orderItem, err := s.items.Insert(ctx, ordermodels.OrderItem{
			OrderID:   order.ID,
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Qty:       item.Quantity,
		})
		if err != nil {
			s.compensate(attemptID, compensations)
			return nil, err
		}
		itemID := orderItem.ID
		compensations = append(compensations, compensationAction{
			Name:   "delete order item " + itemID.Hex(),
			Action: func() error { return s.items.Delete(ctx, itemID) },
		})

		ok, err := s.stock.DecrementStock(ctx, productID, item.Quantity)
		if err != nil {
			s.compensate(attemptID, compensations)
			return nil, err
		}
		if !ok {
			// Không đủ hàng: rollback toàn bộ những gì đã ghi
			s.compensate(attemptID, compensations)
			return nil, common.NewInsufficientStockError(productID.Hex(), product.Name)
		}
		pid, qty := productID, item.Quantity
		compensations = append(compensations, compensationAction{
			Name:   "restock product " + pid.Hex(),
			Action: func() error { return s.stock.IncrementStock(ctx, pid, qty) },
		})

		orderItems = append(orderItems, orderItem)
		total += product.Price * float64(item.Quantity)
	}

	// 4. Đơn đã ghi xong, gửi email xác nhận (best effort).
	// Không có mailer (thiếu cấu hình SMTP) thì coi như không gửi được.
	message := MsgOrderPlacedNoMail
	if s.mailer != nil {
		message = MsgOrderPlaced
		if err := s.mailer.SendOrderConfirmation(input.Email, input.Fullname, order.ID.Hex(), orderItems, total); err != nil {
			s.log.WithFields(logrus.Fields{
				"orderId": order.ID.Hex(),
				"email":   input.Email,
				"error":   err.Error(),
			}).Warn("Gửi email xác nhận đơn hàng thất bại")
			message = MsgOrderPlacedNoMail
		}
	}

	return &orderdto.CheckoutResponse{
		OrderID: order.ID.Hex(),
		Message: message,
	}, nil
}

// compensate chạy các compensation action theo thứ tự ngược lại.
// Action thất bại chỉ được log, không dừng các action còn lại.
func (s *PlacementService) compensate(attemptID string, actions []compensationAction) {
	for i := len(actions) - 1; i >= 0; i-- {
		if err := actions[i].Action(); err != nil {
			s.log.WithFields(logrus.Fields{
				"attemptId": attemptID,
				"action":    actions[i].Name,
				"error":     err.Error(),
			}).Error("Rollback đơn hàng thất bại ở một bước")
		}
	}
}
