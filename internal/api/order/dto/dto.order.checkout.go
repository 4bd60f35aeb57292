// Package dto - DTO cho domain order (checkout, admin).
package dto

// CheckoutItemInput một dòng hàng trong giỏ lúc đặt.
// Name và Price client gửi lên chỉ để tham khảo; server luôn snapshot lại
// từ document sản phẩm để chống sửa giá phía client.
type CheckoutItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"omitempty,no_xss"`
	Quantity  int64   `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CheckoutInput dữ liệu đặt hàng từ trang thanh toán.
type CheckoutInput struct {
	Fullname        string              `json:"fullname" validate:"required,no_xss"`
	ShippingAddress string              `json:"shippingAddress" validate:"required,no_xss"`
	Phone           string              `json:"phone" validate:"required,max=15"`
	Email           string              `json:"email" validate:"required,email"`
	CustomerID      string              `json:"customerId" validate:"omitempty"` // Thiếu thì lấy từ session đăng nhập
	OrderItems      []CheckoutItemInput `json:"orderItems" validate:"required,min=1,dive"`
}

// CheckoutResponse trả về sau khi đặt hàng thành công.
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// UpdateStatusInput dữ liệu cập nhật trạng thái đơn (admin).
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// StatisticsResponse dữ liệu cho biểu đồ doanh thu của dashboard.
// Labels là các ngày (yyyy-mm-dd), Revenue và Orders song song theo index.
type StatisticsResponse struct {
	Labels  []string  `json:"labels"`
	Revenue []float64 `json:"revenue"`
	Orders  []int64   `json:"orders"`
}
