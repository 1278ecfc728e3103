package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateCinema(ctx context.Context, cinema *Cinema) error
	GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error)
	ListCinemas(ctx context.Context, query ListQuery) ([]Cinema, int64, error)
	SaveCinema(ctx context.Context, cinema *Cinema) error
	DeleteCinema(ctx context.Context, id uuid.UUID) error
	CinemaSlugExists(ctx context.Context, slug string) (bool, error)

	CreateFilm(ctx context.Context, film *Film) error
	GetFilm(ctx context.Context, id uuid.UUID) (*Film, error)
	ListFilms(ctx context.Context, query ListQuery) ([]Film, int64, error)
	ListActiveFilms(ctx context.Context, today time.Time) ([]Film, error)
	SaveFilm(ctx context.Context, film *Film) error
	DeleteFilm(ctx context.Context, id uuid.UUID) error
	FilmSlugExists(ctx context.Context, slug string) (bool, error)

	CreateCustomer(ctx context.Context, customer *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, query ListQuery) ([]Customer, int64, error)
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCinema(ctx context.Context, cinema *Cinema) error {
	return r.db.WithContext(ctx).Create(cinema).Error
}

func (r *repository) GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	var cinema Cinema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cinema).Error; err != nil {
		return nil, err
	}
	return &cinema, nil
}

func (r *repository) ListCinemas(ctx context.Context, query ListQuery) ([]Cinema, int64, error) {
	var cinemas []Cinema
	var total int64

	db := r.db.WithContext(ctx).Model(&Cinema{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("name ASC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&cinemas).Error
	return cinemas, total, err
}

func (r *repository) SaveCinema(ctx context.Context, cinema *Cinema) error {
	return r.db.WithContext(ctx).Save(cinema).Error
}

func (r *repository) DeleteCinema(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Cinema{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CinemaSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Cinema{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateFilm(ctx context.Context, film *Film) error {
	return r.db.WithContext(ctx).Create(film).Error
}

func (r *repository) GetFilm(ctx context.Context, id uuid.UUID) (*Film, error) {
	var film Film
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&film).Error; err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *repository) ListFilms(ctx context.Context, query ListQuery) ([]Film, int64, error) {
	var films []Film
	var total int64

	db := r.db.WithContext(ctx).Model(&Film{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("start_date DESC, title ASC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&films).Error
	return films, total, err
}

// ListActiveFilms returns films whose run has not ended by today.
func (r *repository) ListActiveFilms(ctx context.Context, today time.Time) ([]Film, error) {
	var films []Film
	err := r.db.WithContext(ctx).
		Where("end_date >= ?", today.Format(DateLayout)).
		Order("start_date ASC").
		Find(&films).Error
	return films, err
}

func (r *repository) SaveFilm(ctx context.Context, film *Film) error {
	return r.db.WithContext(ctx).Save(film).Error
}

func (r *repository) DeleteFilm(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Film{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FilmSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Film{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateCustomer(ctx context.Context, customer *Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) ListCustomers(ctx context.Context, query ListQuery) ([]Customer, int64, error) {
	var customers []Customer
	var total int64

	db := r.db.WithContext(ctx).Model(&Customer{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("last_name ASC, first_name ASC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&customers).Error
	return customers, total, err
}

func (r *repository) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
