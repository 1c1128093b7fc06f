package repositories

import (
	stderrors "errors"

	"gorm.io/gorm"

	"nyumba/errors"
	"nyumba/models"
)

// PropertyRepository định nghĩa interface truy cập dữ liệu property
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	Update(property *models.Property) error
	Delete(id uint) error
	All() ([]models.Property, error)
	ByOwner(ownerID uint) ([]models.Property, error)
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository tạo repository trên một kết nối gorm
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("User").First(&property, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

func (r *propertyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Property{}, id).Error
}

func (r *propertyRepository) All() ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.Preload("User").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) ByOwner(ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Preload("User").Where("user_id = ?", ownerID).Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}
