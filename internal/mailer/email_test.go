package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
)

func TestFormatVND(t *testing.T) {
	cases := []struct {
		amount   float64
		expected string
	}{
		{0, "0₫"},
		{500, "500₫"},
		{2500000, "2.500.000₫"},
		{1234567890, "1.234.567.890₫"},
		{-99000, "-99.000₫"},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, FormatVND(c.amount), "amount = %v", c.amount)
	}
}

func TestRenderOrderConfirmation(t *testing.T) {
	items := []ordermodels.OrderItem{
		{Name: "Loa JBL Flip 6", Price: 2500000, Qty: 2},
		{Name: "Micro Shure SM58", Price: 3200000, Qty: 1},
	}

	html := RenderOrderConfirmation("Nguyễn Văn A", "abc123", items, 8200000)

	assert.Contains(t, html, "Nguyễn Văn A")
	assert.Contains(t, html, "abc123")
	assert.Contains(t, html, "Loa JBL Flip 6")
	assert.Contains(t, html, "Micro Shure SM58")
	assert.Contains(t, html, "2.500.000₫")
	assert.Contains(t, html, "8.200.000₫")

	// Mỗi dòng hàng một hàng trong bảng, cộng một hàng tiêu đề
	assert.Equal(t, 3, strings.Count(html, "<tr>"))
}
