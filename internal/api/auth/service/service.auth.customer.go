// Package authsvc - Service tài khoản khách hàng và đăng nhập.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	authdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/auth/dto"
	authmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/auth/models"
	basemodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/models"
	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/utility"
)

// TokenTTL thời gian sống của token đăng nhập.
const TokenTTL = 24 * time.Hour

// RoleAdmin và RoleUser là role gắn vào JWT claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// CustomerService xử lý đăng ký, đăng nhập tài khoản khách hàng.
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.Customer]
}

// NewCustomerService tạo CustomerService mới.
func NewCustomerService() (*CustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Customers, common.ErrNotFound)
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.Customer](coll),
	}, nil
}

// Register tạo tài khoản khách hàng mới và trả về token đăng nhập.
func (s *CustomerService) Register(ctx context.Context, input *authdto.RegisterInput) (*authdto.AuthResponse, error) {
	// Username trùng với tài khoản admin cố định cũng bị từ chối
	if input.Username == global.ServerConfig.AdminUsername {
		return nil, common.ErrDuplicate
	}

	exists, err := s.DocumentExists(ctx, bson.M{"username": input.Username})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Lỗi mã hóa mật khẩu", common.StatusInternalServerError, err)
	}

	doc := authmodels.Customer{
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		PasswordHash: string(hash),
	}
	customer, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	token, err := utility.CreateToken(global.ServerConfig.JwtSecret, customer.ID.Hex(), RoleUser, TokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Lỗi tạo token", common.StatusInternalServerError, err)
	}

	return &authdto.AuthResponse{
		Token:  token,
		UserID: customer.ID.Hex(),
		Role:   RoleUser,
		Name:   customer.Name,
	}, nil
}

// ListCustomers trả về danh sách khách hàng có phân trang, mới đăng ký trước.
// Chỉ dùng cho trang quản trị; PasswordHash không bao giờ ra ngoài nhờ tag json "-".
func (s *CustomerService) ListCustomers(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[authmodels.Customer], error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, bson.D{}, page, limit, opts)
}

// Login xác thực username/password và trả về token.
// Tài khoản admin là tài khoản cố định cấu hình qua environment,
// không nằm trong collection customers.
func (s *CustomerService) Login(ctx context.Context, input *authdto.LoginInput) (*authdto.AuthResponse, error) {
	cfg := global.ServerConfig

	// Tài khoản quản trị cố định
	if input.Username == cfg.AdminUsername {
		if input.Password != cfg.AdminPassword {
			return nil, common.ErrInvalidCredentials
		}
		token, err := utility.CreateToken(cfg.JwtSecret, cfg.AdminUserID, RoleAdmin, TokenTTL)
		if err != nil {
			return nil, common.NewError(common.ErrCodeInternalServer, "Lỗi tạo token", common.StatusInternalServerError, err)
		}
		return &authdto.AuthResponse{
			Token:  token,
			UserID: cfg.AdminUserID,
			Role:   RoleAdmin,
			Name:   cfg.AdminName,
		}, nil
	}

	customer, err := s.FindOne(ctx, bson.M{"username": input.Username}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(input.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := utility.CreateToken(cfg.JwtSecret, customer.ID.Hex(), RoleUser, TokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Lỗi tạo token", common.StatusInternalServerError, err)
	}

	return &authdto.AuthResponse{
		Token:  token,
		UserID: customer.ID.Hex(),
		Role:   RoleUser,
		Name:   customer.Name,
	}, nil
}
