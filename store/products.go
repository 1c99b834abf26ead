package store

import (
	"errors"

	"mini-ecommerce-api/models"

	"gorm.io/gorm"
)

// Products is the catalog store. Mutations are admin-gated at the route level.
type Products struct {
	db *gorm.DB
}

func NewProducts(db *gorm.DB) *Products {
	return &Products{db: db}
}

func (s *Products) Create(p *models.Product) error {
	return s.db.Create(p).Error
}

// ListFilter narrows a catalog listing; zero values mean no filtering.
type ListFilter struct {
	CategoryID uint
	Search     string
	Limit      int
	Offset     int
}

func (s *Products) List(f ListFilter) ([]models.Product, error) {
	query := s.db.Preload("Category")
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		query = query.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 100
	}
	var products []models.Product
	err := query.Limit(f.Limit).Offset(f.Offset).Find(&products).Error
	return products, err
}

func (s *Products) ByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.Preload("Category").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ProductUpdate carries optional catalog fields; nil means leave unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	CategoryID  *uint
}

func (s *Products) Update(id uint, upd ProductUpdate) (*models.Product, error) {
	p, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.CategoryID != nil {
		p.CategoryID = upd.CategoryID
	}
	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Products) Delete(id uint) error {
	res := s.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Categories ───────────────────────────────────────────────────────────────

func (s *Products) CreateCategory(cat *models.Category) error {
	if err := s.db.Create(cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *Products) ListCategories() ([]models.Category, error) {
	var cats []models.Category
	err := s.db.Find(&cats).Error
	return cats, err
}

func (s *Products) UpdateCategory(id uint, name, description string) (*models.Category, error) {
	var cat models.Category
	if err := s.db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		cat.Name = name
	}
	if description != "" {
		cat.Description = description
	}
	if err := s.db.Save(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes the category and leaves its products uncategorised.
func (s *Products) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Product{}).Where("category_id = ?", id).
			Update("category_id", nil).Error
	})
}
