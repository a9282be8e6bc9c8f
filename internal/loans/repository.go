package loans

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the persistence contract for the loan flow. Services depend
// on it, not on gorm, so tests can substitute mocks.
type Repository interface {
	FarmerByPassport(ctx context.Context, passportID string) (*Farmer, error)
	FarmerByID(ctx context.Context, id uint) (*Farmer, error)
	CreateFarmer(ctx context.Context, farmer *Farmer) error

	AssessmentByID(ctx context.Context, id uint) (*RiskAssessment, error)
	CreateAssessment(ctx context.Context, assessment *RiskAssessment) error
	UpdateAssessment(ctx context.Context, assessment *RiskAssessment) error

	ApplicationByID(ctx context.Context, id uint) (*LoanApplication, error)
	CreateApplication(ctx context.Context, app *LoanApplication) error

	DecisionByApplicationID(ctx context.Context, applicationID uint) (*CreditDecision, error)
	CreateDecision(ctx context.Context, decision *CreditDecision) error
}

// GormRepository implements Repository on a gorm database handle.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps a database handle.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates or updates the loan flow tables.
func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&Farmer{}, &RiskAssessment{}, &LoanApplication{}, &CreditDecision{})
}

func (r *GormRepository) FarmerByPassport(ctx context.Context, passportID string) (*Farmer, error) {
	var farmer Farmer
	err := r.db.WithContext(ctx).Where("passport_id = ?", passportID).First(&farmer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *GormRepository) FarmerByID(ctx context.Context, id uint) (*Farmer, error) {
	var farmer Farmer
	err := r.db.WithContext(ctx).First(&farmer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &farmer, nil
}

func (r *GormRepository) CreateFarmer(ctx context.Context, farmer *Farmer) error {
	return r.db.WithContext(ctx).Create(farmer).Error
}

func (r *GormRepository) AssessmentByID(ctx context.Context, id uint) (*RiskAssessment, error) {
	var assessment RiskAssessment
	err := r.db.WithContext(ctx).First(&assessment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *GormRepository) CreateAssessment(ctx context.Context, assessment *RiskAssessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

func (r *GormRepository) UpdateAssessment(ctx context.Context, assessment *RiskAssessment) error {
	return r.db.WithContext(ctx).Save(assessment).Error
}

func (r *GormRepository) ApplicationByID(ctx context.Context, id uint) (*LoanApplication, error) {
	var app LoanApplication
	err := r.db.WithContext(ctx).First(&app, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormRepository) CreateApplication(ctx context.Context, app *LoanApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *GormRepository) DecisionByApplicationID(ctx context.Context, applicationID uint) (*CreditDecision, error) {
	var decision CreditDecision
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&decision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *GormRepository) CreateDecision(ctx context.Context, decision *CreditDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}
