package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinhanhkiet510/doanchuyennganh/config"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Products   string // Tên collection cho sản phẩm
	Categories string // Tên collection cho danh mục sản phẩm
	Customers  string // Tên collection cho khách hàng
	Checkouts  string // Tên collection cho thông tin giao hàng của đơn
	Orders     string // Tên collection cho đơn hàng
	OrderItems string // Tên collection cho chi tiết đơn hàng
	Messages   string // Tên collection cho tin nhắn chat
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
