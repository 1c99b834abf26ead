package store

import (
	"errors"

	"mini-ecommerce-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Orders creates orders together with their shipping record and serves
// both entities afterwards.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// LineItem is one requested (product, quantity) pair.
type LineItem struct {
	ProductID uint
	Quantity  int
}

// Create places an order for the given items. The whole mutation runs in one
// transaction: product rows are locked and stock decremented, the order and
// its items are inserted, and exactly one shipping record is created. Any
// failure rolls everything back, so an order never exists without its
// shipping record.
func (s *Orders) Create(userID uint, address string, items []LineItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	address, err := s.resolveAddress(userID, address)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		order, err = createOrderTx(tx, userID, address, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.ByID(order.ID)
}

// CreateFromCart places an order from the user's cart and empties the cart,
// all within the same transaction as the order and shipping inserts.
func (s *Orders) CreateFromCart(userID uint, address string) (*models.Order, error) {
	address, err := s.resolveAddress(userID, address)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		items := make([]LineItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			items = append(items, LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}

		order, err = createOrderTx(tx, userID, address, items)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.ByID(order.ID)
}

// createOrderTx does the locked stock check, the order insert and the
// shipping insert. Callers wrap it in a transaction.
func createOrderTx(tx *gorm.DB, userID uint, address string, items []LineItem) (*models.Order, error) {
	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))

	// Lock product rows so concurrent orders against the same product
	// serialize and cannot oversell. SQLite has a single writer and no
	// FOR UPDATE syntax, so the clause only applies on postgres.
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	for _, it := range items {
		var p models.Product
		err := q.First(&p, it.ProductID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if p.Stock < it.Quantity {
			return nil, ErrInsufficientStock
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).
			Update("stock", gorm.Expr("stock - ?", it.Quantity)).Error; err != nil {
			return nil, err
		}
		total += p.Price * float64(it.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			Price:     p.Price,
			Name:      p.Name,
		})
	}

	order := models.Order{
		UserID:      userID,
		Status:      models.OrderPending,
		TotalAmount: total,
		Items:       orderItems,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}

	shipping := models.Shipping{
		OrderID:        order.ID,
		Address:        address,
		TrackingNumber: uuid.NewString(),
		Status:         models.ShippingPending,
	}
	if err := tx.Create(&shipping).Error; err != nil {
		return nil, err
	}
	order.Shipping = &shipping
	return &order, nil
}

// resolveAddress falls back to the caller's first stored address when the
// request does not carry one.
func (s *Orders) resolveAddress(userID uint, address string) (string, error) {
	if address != "" {
		return address, nil
	}
	var addr models.Address
	if err := s.db.Where("user_id = ?", userID).Order("id").First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAddressRequired
		}
		return "", err
	}
	return addr.Line(), nil
}

func (s *Orders) ByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Product").Preload("Shipping").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *Orders) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Product").Preload("Shipping").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (s *Orders) ListAll(status string) ([]models.Order, error) {
	var orders []models.Order
	query := s.db.Preload("Items.Product").Preload("Shipping").Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// ── Shipping ─────────────────────────────────────────────────────────────────

func (s *Orders) ShippingByID(id uint) (*models.Shipping, error) {
	var sh models.Shipping
	if err := s.db.First(&sh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sh, nil
}

// ShippingUpdate carries the mutable shipping fields; nil leaves a field alone.
type ShippingUpdate struct {
	Status  *models.ShippingStatus
	Carrier *string
	Address *string
}

func (s *Orders) UpdateShipping(id uint, upd ShippingUpdate) (*models.Shipping, error) {
	sh, err := s.ShippingByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Status != nil {
		sh.Status = *upd.Status
	}
	if upd.Carrier != nil {
		sh.Carrier = *upd.Carrier
	}
	if upd.Address != nil {
		sh.Address = *upd.Address
	}
	if err := s.db.Save(sh).Error; err != nil {
		return nil, err
	}
	return sh, nil
}

// DeleteShipping removes the shipping record only; the order survives.
func (s *Orders) DeleteShipping(id uint) error {
	res := s.db.Delete(&models.Shipping{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
