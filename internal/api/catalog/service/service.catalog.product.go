// Package catalogsvc - Service sản phẩm thuộc domain catalog (products).
package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/models"
	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	catalogdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/dto"
	catalogmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// SearchSuggestLimit số sản phẩm tối đa trả về cho ô tìm kiếm gợi ý.
const SearchSuggestLimit = 3

// ProductService xử lý nghiệp vụ sản phẩm.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Product]
}

// NewProductService tạo ProductService mới.
func NewProductService() (*ProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Products, common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Product](coll),
	}, nil
}

// ListProducts trả về danh sách sản phẩm có phân trang, mới nhất trước.
func (s *ProductService) ListProducts(ctx context.Context, page, limit int64) (*basemodels.PaginateResult[catalogmodels.Product], error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, bson.D{}, page, limit, opts)
}

// Search tìm sản phẩm theo tên (không phân biệt hoa thường),
// giới hạn SearchSuggestLimit kết quả cho ô gợi ý tìm kiếm.
func (s *ProductService) Search(ctx context.Context, keyword string) ([]catalogmodels.Product, error) {
	if keyword == "" {
		return []catalogmodels.Product{}, nil
	}
	filter := bson.M{"name": bson.M{
		"$regex": primitive.Regex{Pattern: escapeRegex(keyword), Options: "i"},
	}}
	opts := mongoopts.Find().SetLimit(SearchSuggestLimit)
	return s.Find(ctx, filter, opts)
}

// FindByCategory trả về các sản phẩm thuộc một danh mục.
func (s *ProductService) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]catalogmodels.Product, error) {
	filter := bson.M{"categoryId": categoryID}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// CreateProduct tạo sản phẩm mới từ input đã validate.
func (s *ProductService) CreateProduct(ctx context.Context, input *catalogdto.ProductCreateInput) (*catalogmodels.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	doc := catalogmodels.Product{
		Name:        input.Name,
		Price:       input.Price,
		Stock:       input.Stock,
		Img:         input.Img,
		Description: input.Description,
		CategoryID:  categoryID,
	}
	product, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct cập nhật các field có giá trị trong input.
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, input *catalogdto.ProductUpdateInput) (*catalogmodels.Product, error) {
	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.Img != "" {
		set["img"] = input.Img
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		set["categoryId"] = categoryID
	}
	if len(set) == 0 {
		return nil, common.ErrInvalidInput
	}

	updated, err := s.UpdateById(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// escapeRegex escape các ký tự đặc biệt của regex trong keyword người dùng nhập.
func escapeRegex(s string) string {
	special := `\.+*?()|[]{}^$`
	out := make([]rune, 0, len(s))
	for _, r := range s {
		for _, sp := range special {
			if r == sp {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, r)
	}
	return string(out)
}
