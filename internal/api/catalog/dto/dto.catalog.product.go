// Package dto - DTO cho domain catalog (product, category).
package dto

// ProductCreateInput dữ liệu tạo sản phẩm mới.
type ProductCreateInput struct {
	Name        string  `json:"name" validate:"required,no_xss"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int64   `json:"stock" validate:"gte=0"`
	Img         string  `json:"img,omitempty"`
	Description string  `json:"description,omitempty" validate:"omitempty,no_xss"`
	CategoryID  string  `json:"categoryId" validate:"required,exists=categories"`
}

// ProductUpdateInput dữ liệu cập nhật sản phẩm. Các field đều optional.
type ProductUpdateInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,no_xss"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int64   `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Img         string   `json:"img,omitempty"`
	Description string   `json:"description,omitempty" validate:"omitempty,no_xss"`
	CategoryID  string   `json:"categoryId,omitempty" validate:"omitempty,exists=categories"`
}

// CategoryCreateInput dữ liệu tạo danh mục mới.
type CategoryCreateInput struct {
	Name string `json:"name" validate:"required,no_xss"`
	Img  string `json:"img,omitempty"`
}

// CategoryUpdateInput dữ liệu cập nhật danh mục.
type CategoryUpdateInput struct {
	Name string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Img  string `json:"img,omitempty"`
}
