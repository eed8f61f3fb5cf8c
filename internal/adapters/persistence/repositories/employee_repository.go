package repositories

import (
	"context"

	"credifit-consignado/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository handles employee data access
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates a new employee
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// GetByID gets an employee by ID with the owning company
func (r *employeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByCPF gets an employee by CPF with the owning company
func (r *employeeRepository) GetByCPF(ctx context.Context, cpf string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&employee, "cpf = ?", cpf).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update updates an employee
func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete deletes an employee
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id).Error
}

// List lists employees with pagination
func (r *employeeRepository) List(ctx context.Context, offset, limit int) ([]*models.Employee, int64, error) {
	var employees []*models.Employee
	var total int64

	r.db.WithContext(ctx).Model(&models.Employee{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Company").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error

	return employees, total, err
}

// ListByCompany lists employees of a company
func (r *employeeRepository) ListByCompany(ctx context.Context, companyID string) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&employees).Error
	return employees, err
}

// ExistsByCPF checks if an employee with the CPF exists
func (r *employeeRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("cpf = ?", cpf).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an employee with the email exists
func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// CountLoans counts loans on record for an employee
func (r *employeeRepository) CountLoans(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count, err
}
