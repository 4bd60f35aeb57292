// Package catalogsvc - Service danh mục thuộc domain catalog (categories).
package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	catalogdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/dto"
	catalogmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// CategoryService xử lý nghiệp vụ danh mục sản phẩm.
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Category]
}

// NewCategoryService tạo CategoryService mới.
func NewCategoryService() (*CategoryService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Categories, common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Category](coll),
	}, nil
}

// ListCategories trả về tất cả danh mục, theo thứ tự tên.
func (s *CategoryService) ListCategories(ctx context.Context) ([]catalogmodels.Category, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return s.Find(ctx, bson.D{}, opts)
}

// CreateCategory tạo danh mục mới.
func (s *CategoryService) CreateCategory(ctx context.Context, input *catalogdto.CategoryCreateInput) (*catalogmodels.Category, error) {
	doc := catalogmodels.Category{
		Name: input.Name,
		Img:  input.Img,
	}
	category, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory cập nhật danh mục theo id.
func (s *CategoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, input *catalogdto.CategoryUpdateInput) (*catalogmodels.Category, error) {
	set := bson.M{}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Img != "" {
		set["img"] = input.Img
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
