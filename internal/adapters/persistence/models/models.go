package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Directory: companies and their employees
// ============================================================

// Company represents a partner company (convênio)
type Company struct {
	ID                 string    `gorm:"type:char(36);primaryKey" json:"id"`
	CNPJ               string    `gorm:"size:14;uniqueIndex;not null" json:"cnpj"`
	LegalName          string    `gorm:"size:255;not null" json:"legal_name"`
	RepresentativeName string    `gorm:"size:255;not null" json:"representative_name"`
	CPF                string    `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"size:255;not null" json:"-"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Employees []Employee `gorm:"foreignKey:CompanyID" json:"-"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Employee represents a registered employee of a partner company
type Employee struct {
	ID        string          `gorm:"type:char(36);primaryKey" json:"id"`
	FullName  string          `gorm:"size:255;not null" json:"full_name"`
	CPF       string          `gorm:"size:11;uniqueIndex;not null" json:"cpf"`
	Email     string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string          `gorm:"size:255;not null" json:"-"`
	Salary    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salary"`
	CompanyID string          `gorm:"type:char(36);index;not null" json:"company_id"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	Loans   []Loan  `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Loans and installments
// ============================================================

// LoanStatus is the lifecycle state of a loan. A loan is created already
// decided (REJECTED or APPROVED) and only ever moves APPROVED -> PAID
// after a confirmed settlement. There is deliberately no PENDING value:
// no creation path produces one.
type LoanStatus string

const (
	LoanStatusRejected LoanStatus = "REJECTED"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusPaid     LoanStatus = "PAID"
)

// InstallmentStatus is the repayment state of a single installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "PENDING"
	InstallmentStatusPaid    InstallmentStatus = "PAID"
	InstallmentStatusOverdue InstallmentStatus = "OVERDUE"
)

// Loan represents a consignado loan request and its underwriting outcome
type Loan struct {
	ID               string              `gorm:"type:char(36);primaryKey" json:"id"`
	RequestedAmount  decimal.Decimal     `gorm:"type:decimal(12,2);not null" json:"requested_amount"`
	ApprovedAmount   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"approved_amount"`
	InstallmentCount int                 `gorm:"not null" json:"installment_count"`
	Status           LoanStatus          `gorm:"size:20;not null;index" json:"status"`
	QueriedScore     *int                `json:"queried_score"`
	RequestedAt      time.Time           `gorm:"autoCreateTime;index" json:"requested_at"`
	PaidAt           *time.Time          `json:"paid_at"`
	EmployeeID       string              `gorm:"type:char(36);index;not null" json:"employee_id"`

	Employee     Employee      `gorm:"foreignKey:EmployeeID" json:"-"`
	Installments []Installment `gorm:"foreignKey:LoanID" json:"installments,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Installment represents one scheduled repayment of an approved loan
type Installment struct {
	ID      string            `gorm:"type:char(36);primaryKey" json:"id"`
	LoanID  string            `gorm:"type:char(36);index;not null" json:"loan_id"`
	Number  int               `gorm:"column:installment_number;not null" json:"installment_number"`
	Amount  decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"amount"`
	DueDate time.Time         `gorm:"not null" json:"due_date"`
	Status  InstallmentStatus `gorm:"size:20;not null" json:"status"`
}

func (Installment) TableName() string {
	return "installments"
}

func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ============================================================
// Response DTOs
// ============================================================

// CompanySummary is the company shape embedded in other responses
type CompanySummary struct {
	ID        string `json:"id"`
	LegalName string `json:"legal_name"`
	CNPJ      string `json:"cnpj"`
}

func (c *Company) ToSummary() *CompanySummary {
	return &CompanySummary{
		ID:        c.ID,
		LegalName: c.LegalName,
		CNPJ:      c.CNPJ,
	}
}

// EmployeeSummary is the employee shape embedded in loan responses
type EmployeeSummary struct {
	ID       string          `json:"id"`
	FullName string          `json:"full_name"`
	CPF      string          `json:"cpf"`
	Email    string          `json:"email"`
	Salary   decimal.Decimal `json:"salary"`
	Company  *CompanySummary `json:"company,omitempty"`
}

func (e *Employee) ToSummary() *EmployeeSummary {
	summary := &EmployeeSummary{
		ID:       e.ID,
		FullName: e.FullName,
		CPF:      e.CPF,
		Email:    e.Email,
		Salary:   e.Salary,
	}
	if e.Company.ID != "" {
		summary.Company = e.Company.ToSummary()
	}
	return summary
}

// LoanResponse is the loan shape returned by the API
type LoanResponse struct {
	ID               string              `json:"id"`
	RequestedAmount  decimal.Decimal     `json:"requested_amount"`
	ApprovedAmount   decimal.NullDecimal `json:"approved_amount"`
	InstallmentCount int                 `json:"installment_count"`
	Status           LoanStatus          `json:"status"`
	QueriedScore     *int                `json:"queried_score,omitempty"`
	RequestedAt      time.Time           `json:"requested_at"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	Employee         *EmployeeSummary    `json:"employee,omitempty"`
	Installments     []Installment       `json:"installments"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:               l.ID,
		RequestedAmount:  l.RequestedAmount,
		ApprovedAmount:   l.ApprovedAmount,
		InstallmentCount: l.InstallmentCount,
		Status:           l.Status,
		QueriedScore:     l.QueriedScore,
		RequestedAt:      l.RequestedAt,
		PaidAt:           l.PaidAt,
		Installments:     l.Installments,
	}
	if resp.Installments == nil {
		resp.Installments = []Installment{}
	}
	if l.Employee.ID != "" {
		resp.Employee = l.Employee.ToSummary()
	}
	return resp
}

// AutoMigrate creates or updates the schema for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Company{},
		&Employee{},
		&Loan{},
		&Installment{},
	)
}
