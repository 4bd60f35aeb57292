// Package mailer gửi email giao dịch qua SMTP.
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dinhanhkiet510/doanchuyennganh/config"
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
)

// Mailer gửi email qua một SMTP server cấu hình sẵn.
type Mailer struct {
	dialer    *gomail.Dialer
	fromName  string
	fromEmail string
}

// NewMailer tạo Mailer từ cấu hình SMTP. Trả về nil nếu thiếu cấu hình:
// caller coi nil là "không gửi mail" thay vì lỗi.
func NewMailer(cfg *config.Configuration) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPFromEmail == "" {
		return nil
	}
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		fromName:  cfg.SMTPFromName,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// SendOrderConfirmation gửi email xác nhận đơn hàng kèm bảng chi tiết.
func (m *Mailer) SendOrderConfirmation(to, name, orderID string, items []ordermodels.OrderItem, total float64) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Xác nhận đơn hàng #%s", orderID))
	msg.SetBody("text/html", RenderOrderConfirmation(name, orderID, items, total))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("gửi email xác nhận đơn %s: %w", orderID, err)
	}
	return nil
}

// RenderOrderConfirmation dựng nội dung HTML cho email xác nhận.
// Hàm thuần để test không cần SMTP.
func RenderOrderConfirmation(name, orderID string, items []ordermodels.OrderItem, total float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h2>Cảm ơn %s đã đặt hàng!</h2>", name))
	b.WriteString(fmt.Sprintf("<p>Mã đơn hàng của bạn: <b>%s</b></p>", orderID))
	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0">`)
	b.WriteString("<tr><th>Sản phẩm</th><th>Số lượng</th><th>Đơn giá</th><th>Thành tiền</th></tr>")
	for _, item := range items {
		b.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			item.Name, item.Qty, FormatVND(item.Price), FormatVND(item.Price*float64(item.Qty)),
		))
	}
	b.WriteString("</table>")
	b.WriteString(fmt.Sprintf("<p><b>Tổng cộng: %s</b></p>", FormatVND(total)))
	b.WriteString("<p>Chúng tôi sẽ liên hệ với bạn để xác nhận giao hàng.</p>")

	return b.String()
}

// FormatVND định dạng số tiền VND với dấu chấm ngăn cách hàng nghìn.
func FormatVND(amount float64) string {
	digits := fmt.Sprintf("%.0f", amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteString("₫")
	return b.String()
}
