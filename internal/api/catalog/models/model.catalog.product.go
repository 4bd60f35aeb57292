// Package models - Product, Category thuộc domain catalog.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product là sản phẩm thiết bị âm thanh bày bán (products).
type Product struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Stock       int64              `json:"stock" bson:"stock"`
	Img         string             `json:"img,omitempty" bson:"img,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CategoryID  primitive.ObjectID `json:"categoryId" bson:"categoryId"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// Category là danh mục sản phẩm (categories).
type Category struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name string `json:"name" bson:"name"`
	Img  string `json:"img,omitempty" bson:"img,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
