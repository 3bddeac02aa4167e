package service

import (
	"errors"

	"github.com/ravelt/retailpos-backend/internal/app/model"
	"github.com/ravelt/retailpos-backend/internal/app/repository"
	"github.com/ravelt/retailpos-backend/pkg/logger"
	"github.com/ravelt/retailpos-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidStaffRole = errors.New("staff role must be MANAGER or CASHIER")

// StaffInput carries the fields of a staff creation request.
type StaffInput struct {
	Email    string
	Username string
	Password string
	Fullname string
	Role     model.UserRole
}

// UserUpdate carries the partial field set of a user update. Password is
// re-hashed only when provided.
type UserUpdate struct {
	Email    *string
	Username *string
	Password *string
	Fullname *string
	Role     *model.UserRole
}

type UserService interface {
	CreateStaff(input StaffInput, managerID uint) (*model.User, error)
	GetUsers() ([]model.User, error)
	GetUserByID(id uint) (*model.User, error)
	UpdateUser(id uint, update UserUpdate) (*model.User, error)
	DeleteUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// CreateStaff registers a MANAGER or CASHIER account on behalf of the
// calling admin or manager, recorded as the staff member's manager.
func (s *userService) CreateStaff(input StaffInput, managerID uint) (*model.User, error) {
	if !model.ValidStaffRole(input.Role) {
		logger.Warn("Staff creation rejected: invalid role", map[string]interface{}{
			"role": input.Role,
		})
		return nil, ErrInvalidStaffRole
	}

	existingUser, err := s.userRepo.FindByEmail(input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Fullname:     input.Fullname,
		Role:         input.Role,
		ManagerID:    &managerID,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create staff in database", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	logger.Info("Staff created successfully", map[string]interface{}{
		"user_id":    user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"manager_id": managerID,
	})

	return user, nil
}

func (s *userService) GetUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(id uint, update UserUpdate) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Fullname != nil {
		user.Fullname = *update.Fullname
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Password != nil && *update.Password != "" {
		hashedPassword, err := util.HashPassword(*update.Password)
		if err != nil {
			logger.Error("Failed to hash password", err, map[string]interface{}{
				"user_id": id,
			})
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User updated successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	logger.Info("User deleted successfully", map[string]interface{}{
		"user_id": id,
	})
	return nil
}
