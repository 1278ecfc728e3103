package auth

import (
	"context"

	"cineops/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateEmployee(ctx context.Context, employee *users.Employee) error
	GetEmployeeByEmail(ctx context.Context, email string) (*users.Employee, error)
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*users.Employee, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateEmployee(ctx context.Context, employee *users.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *repository) GetEmployeeByEmail(ctx context.Context, email string) (*users.Employee, error) {
	var employee users.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*users.Employee, error) {
	var employee users.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.Employee{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.Employee{}).Where("role = ?", users.RoleAdmin).Count(&count).Error
	return count, err
}

func (r *repository) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.Employee{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
