package store

import (
	"errors"

	"mini-ecommerce-api/models"

	"gorm.io/gorm"
)

// Reviews stores product reviews and wishlist entries.
type Reviews struct {
	db *gorm.DB
}

func NewReviews(db *gorm.DB) *Reviews {
	return &Reviews{db: db}
}

func (s *Reviews) Create(userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	review := models.Review{UserID: userID, ProductID: productID, Rating: rating, Comment: comment}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Reviews) ForProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("product_id = ?", productID).Order("created_at desc").Find(&reviews).Error
	return reviews, err
}

// ── Wishlist ─────────────────────────────────────────────────────────────────

// AddToWishlist is idempotent: adding the same product twice returns the
// existing entry.
func (s *Reviews) AddToWishlist(userID, productID uint) (*models.WishlistItem, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var item models.WishlistItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	item = models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Reviews) Wishlist(userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := s.db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

func (s *Reviews) WishlistItemByID(id uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Reviews) RemoveFromWishlist(id uint) error {
	res := s.db.Delete(&models.WishlistItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
