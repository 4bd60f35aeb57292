// Package models - Customer thuộc domain auth (customers).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer là tài khoản khách hàng của cửa hàng.
// PasswordHash là bcrypt hash, không bao giờ trả về trong response.
type Customer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Username string `json:"username" bson:"username"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`

	PasswordHash string `json:"-" bson:"passwordHash"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
