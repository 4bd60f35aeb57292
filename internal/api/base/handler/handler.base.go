package basehdl

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// ParseRequestBody parse request body JSON vào output struct.
func ParseRequestBody(c fiber.Ctx, output interface{}) error {
	if err := c.Bind().Body(output); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// ValidateInput validate input theo các struct tag (validate, oneof...).
// Trả về *common.Error với danh sách các field không hợp lệ.
func ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		details := map[string]interface{}{}
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				details[fieldErr.Field()] = fmt.Sprintf("không thỏa điều kiện '%s'", fieldErr.Tag())
			}
		}
		return &common.Error{
			Code:       common.ErrCodeValidationInput,
			Message:    "Dữ liệu đầu vào không hợp lệ",
			StatusCode: common.StatusBadRequest,
			Details:    details,
		}
	}
	return nil
}

// GetIDFromParams lấy và parse ObjectID từ URL param.
func GetIDFromParams(c fiber.Ctx, param string) (primitive.ObjectID, error) {
	idStr := c.Params(param)
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng ObjectID", idStr),
			common.StatusBadRequest,
			err,
		)
	}
	return id, nil
}

// GetPagination lấy page và limit từ query params, trả về giá trị mặc định nếu thiếu.
func GetPagination(c fiber.Ctx) (page int64, limit int64) {
	page = 1
	limit = 20

	if v := c.Query("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return page, limit
}
