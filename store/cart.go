package store

import (
	"errors"

	"mini-ecommerce-api/models"

	"gorm.io/gorm"
)

// Carts manages the per-user shopping cart.
type Carts struct {
	db *gorm.DB
}

func NewCarts(db *gorm.DB) *Carts {
	return &Carts{db: db}
}

// GetOrCreate returns the user's cart, creating one on first use.
func (s *Carts) GetOrCreate(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product in the cart, merging quantities when it is already there.
func (s *Carts) AddItem(userID, productID uint, quantity int) (*models.CartItem, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &item, nil
}

// ItemOwner reports which user owns the cart containing the item.
func (s *Carts) ItemOwner(itemID uint) (uint, error) {
	var item models.CartItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	var cart models.Cart
	if err := s.db.First(&cart, item.CartID).Error; err != nil {
		return 0, err
	}
	return cart.UserID, nil
}

func (s *Carts) UpdateItem(itemID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Carts) RemoveItem(itemID uint) error {
	res := s.db.Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
