// Package dto - DTO cho trang quản trị đơn hàng.
package dto

import (
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
)

// OrderDetail là một đơn hàng kèm thông tin giao hàng, các dòng hàng
// và tổng tiền tính từ order_items.
type OrderDetail struct {
	Order    ordermodels.Order       `json:"order"`
	Checkout ordermodels.Checkout    `json:"checkout"`
	Items    []ordermodels.OrderItem `json:"items"`
	Total    float64                 `json:"total"`
}

// OrderListResult danh sách đơn hàng có phân trang cho trang quản trị.
type OrderListResult struct {
	Page      int64         `json:"page"`
	Limit     int64         `json:"limit"`
	Total     int64         `json:"total"`
	TotalPage int64         `json:"totalPage"`
	Items     []OrderDetail `json:"items"`
}
