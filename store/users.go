package store

import (
	"errors"

	"mini-ecommerce-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Users persists user records and verifies credentials.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create hashes the password and persists a new user. The role always starts
// as customer; elevation goes through UpdateRole.
func (s *Users) Create(name, email, password, phone string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Phone:        phone,
		IsActive:     true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// VerifyLogin looks up the user by email and checks the password.
// bcrypt's comparison is constant-time.
func (s *Users) VerifyLogin(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *Users) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Addresses").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Users) List(role string) ([]models.User, error) {
	var users []models.User
	query := s.db
	if role != "" {
		query = query.Where("role = ?", role)
	}
	err := query.Find(&users).Error
	return users, err
}

// UserUpdate carries the optional fields a user (or admin) may change.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Password *string
}

func (s *Users) Update(id uint, upd UserUpdate) (*models.User, error) {
	user, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole is the only path that elevates or demotes a user.
func (s *Users) UpdateRole(id uint, role models.UserRole) (*models.User, error) {
	user, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Users) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Addresses ────────────────────────────────────────────────────────────────

func (s *Users) CreateAddress(userID uint, addr *models.Address) error {
	addr.UserID = userID
	return s.db.Create(addr).Error
}

func (s *Users) Addresses(userID uint) ([]models.Address, error) {
	var addrs []models.Address
	err := s.db.Where("user_id = ?", userID).Find(&addrs).Error
	return addrs, err
}

func (s *Users) AddressByID(id uint) (*models.Address, error) {
	var addr models.Address
	if err := s.db.First(&addr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &addr, nil
}

func (s *Users) SaveAddress(addr *models.Address) error {
	return s.db.Save(addr).Error
}

func (s *Users) DeleteAddress(id uint) error {
	res := s.db.Delete(&models.Address{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
