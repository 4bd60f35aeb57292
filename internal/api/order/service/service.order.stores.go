// Package ordersvc - Service đặt hàng và quản lý đơn thuộc domain order.
//
// Các store interface bên dưới được tách hẹp để PlacementService chỉ phụ thuộc
// vào đúng các thao tác nó cần, và để test được với fake store không cần database.
package ordersvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	catalogmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/models"
	ordermodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// CheckoutStore ghi / xóa snapshot thông tin giao hàng.
type CheckoutStore interface {
	Insert(ctx context.Context, doc ordermodels.Checkout) (ordermodels.Checkout, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderStore ghi / xóa đơn hàng.
type OrderStore interface {
	Insert(ctx context.Context, doc ordermodels.Order) (ordermodels.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderItemStore ghi / xóa dòng hàng của đơn.
type OrderItemStore interface {
	Insert(ctx context.Context, doc ordermodels.OrderItem) (ordermodels.OrderItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StockStore đọc sản phẩm và tăng / giảm tồn kho.
type StockStore interface {
	GetProduct(ctx context.Context, productID primitive.ObjectID) (catalogmodels.Product, error)

	// DecrementStock giảm tồn kho có điều kiện: chỉ giảm khi stock >= qty.
	// Trả về false (không lỗi) khi không đủ hàng.
	DecrementStock(ctx context.Context, productID primitive.ObjectID, qty int64) (bool, error)

	// IncrementStock cộng trả lại tồn kho (dùng khi rollback).
	IncrementStock(ctx context.Context, productID primitive.ObjectID, qty int64) error
}

// ====================================
// MONGO IMPLEMENTATIONS
// ====================================

// MongoCheckoutStore triển khai CheckoutStore trên collection checkout.
type MongoCheckoutStore struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.Checkout]
}

// NewMongoCheckoutStore tạo MongoCheckoutStore mới.
func NewMongoCheckoutStore() (*MongoCheckoutStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Checkouts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Checkouts, common.ErrNotFound)
	}
	return &MongoCheckoutStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.Checkout](coll)}, nil
}

func (s *MongoCheckoutStore) Insert(ctx context.Context, doc ordermodels.Checkout) (ordermodels.Checkout, error) {
	return s.InsertOne(ctx, doc)
}

func (s *MongoCheckoutStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// MongoOrderStore triển khai OrderStore trên collection orders.
type MongoOrderStore struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.Order]
}

// NewMongoOrderStore tạo MongoOrderStore mới.
func NewMongoOrderStore() (*MongoOrderStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Orders, common.ErrNotFound)
	}
	return &MongoOrderStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.Order](coll)}, nil
}

func (s *MongoOrderStore) Insert(ctx context.Context, doc ordermodels.Order) (ordermodels.Order, error) {
	return s.InsertOne(ctx, doc)
}

func (s *MongoOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// MongoOrderItemStore triển khai OrderItemStore trên collection order_items.
type MongoOrderItemStore struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.OrderItem]
}

// NewMongoOrderItemStore tạo MongoOrderItemStore mới.
func NewMongoOrderItemStore() (*MongoOrderItemStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OrderItems)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OrderItems, common.ErrNotFound)
	}
	return &MongoOrderItemStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.OrderItem](coll)}, nil
}

func (s *MongoOrderItemStore) Insert(ctx context.Context, doc ordermodels.OrderItem) (ordermodels.OrderItem, error) {
	return s.InsertOne(ctx, doc)
}

func (s *MongoOrderItemStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// MongoStockStore triển khai StockStore trên collection products.
type MongoStockStore struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Product]
}

// NewMongoStockStore tạo MongoStockStore mới.
func NewMongoStockStore() (*MongoStockStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Products, common.ErrNotFound)
	}
	return &MongoStockStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Product](coll)}, nil
}

func (s *MongoStockStore) GetProduct(ctx context.Context, productID primitive.ObjectID) (catalogmodels.Product, error) {
	return s.FindOneById(ctx, productID)
}

// DecrementStock giảm tồn kho bằng filtered update: filter yêu cầu stock >= qty
// nên document không bao giờ bị giảm xuống âm, kể cả khi nhiều request cùng lúc.
// MongoDB đảm bảo atomicity trên từng document cho thao tác này.
func (s *MongoStockStore) DecrementStock(ctx context.Context, productID primitive.ObjectID, qty int64) (bool, error) {
	filter := bson.M{
		"_id":   productID,
		"stock": bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updatedAt": time.Now().UnixMilli()},
	}
	result, err := s.Collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.ModifiedCount > 0, nil
}

// IncrementStock cộng trả lại tồn kho khi rollback đơn.
func (s *MongoStockStore) IncrementStock(ctx context.Context, productID primitive.ObjectID, qty int64) error {
	update := bson.M{
		"$inc": bson.M{"stock": qty},
		"$set": bson.M{"updatedAt": time.Now().UnixMilli()},
	}
	_, err := s.Collection().UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}
