package catalog

import (
	"context"
	"time"

	"cineops/internal/shared/apperror"
	"cineops/internal/shared/constants"
	"cineops/internal/shared/utils/response"
	"cineops/pkg/cache"
	"cineops/pkg/logger"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error)
	GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error)
	ListCinemas(ctx context.Context, query ListQuery) (*response.Page, error)
	UpdateCinema(ctx context.Context, id uuid.UUID, req UpdateCinemaRequest) (*Cinema, error)
	DeleteCinema(ctx context.Context, id uuid.UUID) error

	CreateFilm(ctx context.Context, req CreateFilmRequest) (*FilmResponse, error)
	GetFilm(ctx context.Context, id uuid.UUID) (*FilmResponse, error)
	ListFilms(ctx context.Context, query ListQuery) (*response.Page, error)
	ListActiveFilms(ctx context.Context) ([]FilmResponse, error)
	UpdateFilm(ctx context.Context, id uuid.UUID, req UpdateFilmRequest) (*FilmResponse, error)
	DeleteFilm(ctx context.Context, id uuid.UUID) error

	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, query ListQuery) (*response.Page, error)

	// Lookups used by the session registry and booking engine.
	LookupCinema(ctx context.Context, id uuid.UUID) (*Cinema, error)
	LookupFilm(ctx context.Context, id uuid.UUID) (*Film, error)
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
	now          func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
		now:  time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// cached serves dest through the cache when one is configured.
func (s *service) cached(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetch func() (interface{}, error)) error {
	if s.cacheService == nil {
		data, err := fetch()
		if err != nil {
			return err
		}
		return copier.Copy(dest, data)
	}
	return s.cacheService.GetOrSet(ctx, key, ttl, fetch, dest)
}

func (s *service) invalidate(ctx context.Context, pattern string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.log.WithError(err).Warn("cache invalidation failed", "pattern", pattern)
	}
}

// ---- cinemas ----

func (s *service) CreateCinema(ctx context.Context, req CreateCinemaRequest) (*Cinema, error) {
	var cinema Cinema
	if err := copier.Copy(&cinema, &req); err != nil {
		return nil, apperror.InvalidInput("invalid cinema payload")
	}

	slugValue, err := uniqueSlug(req.Name, func(candidate string) (bool, error) {
		return s.repo.CinemaSlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, apperror.FromDB(err, "cinema")
	}
	cinema.Slug = slugValue

	if err := s.repo.CreateCinema(ctx, &cinema); err != nil {
		return nil, apperror.FromDB(err, "cinema")
	}

	s.invalidate(ctx, constants.PATTERN_INVALIDATE_CINEMAS)
	return &cinema, nil
}

func (s *service) GetCinema(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	var cinema Cinema
	err := s.cached(ctx, constants.BuildCinemaDetailKey(id.String()), constants.TTL_CINEMA_DETAIL, &cinema, func() (interface{}, error) {
		found, err := s.repo.GetCinema(ctx, id)
		if err != nil {
			return nil, apperror.FromDB(err, "cinema")
		}
		return *found, nil
	})
	if err != nil {
		return nil, err
	}
	return &cinema, nil
}

// LookupCinema always reads the database.
func (s *service) LookupCinema(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	cinema, err := s.repo.GetCinema(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "cinema")
	}
	return cinema, nil
}

func (s *service) ListCinemas(ctx context.Context, query ListQuery) (*response.Page, error) {
	query.Normalize()

	type page struct {
		Items []Cinema `json:"items"`
		Total int64    `json:"total"`
	}
	var result page
	err := s.cached(ctx, constants.BuildCinemasListKey(query.Page, query.Limit), constants.TTL_CINEMAS_LIST, &result, func() (interface{}, error) {
		items, total, err := s.repo.ListCinemas(ctx, query)
		if err != nil {
			return nil, apperror.FromDB(err, "cinema")
		}
		return page{Items: items, Total: total}, nil
	})
	if err != nil {
		return nil, err
	}

	p := response.NewPage(result.Items, query.Page, query.Limit, result.Total)
	return &p, nil
}

func (s *service) UpdateCinema(ctx context.Context, id uuid.UUID, req UpdateCinemaRequest) (*Cinema, error) {
	cinema, err := s.repo.GetCinema(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "cinema")
	}

	if err := copier.CopyWithOption(cinema, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperror.InvalidInput("invalid cinema payload")
	}

	if err := s.repo.SaveCinema(ctx, cinema); err != nil {
		return nil, apperror.FromDB(err, "cinema")
	}

	s.invalidate(ctx, constants.PATTERN_INVALIDATE_CINEMAS)
	return cinema, nil
}

func (s *service) DeleteCinema(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCinema(ctx, id); err != nil {
		return apperror.FromDBDelete(err, "cinema")
	}
	s.invalidate(ctx, constants.PATTERN_INVALIDATE_CINEMAS)
	return nil
}

// ---- films ----

func (s *service) CreateFilm(ctx context.Context, req CreateFilmRequest) (*FilmResponse, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validateRun(start, end); err != nil {
		return nil, err
	}

	film := Film{
		Title:              req.Title,
		AgeRestriction:     req.AgeRestriction,
		IsBookingAvailable: true,
		StartDate:          start,
		EndDate:            end,
	}
	if req.IsBookingAvailable != nil {
		film.IsBookingAvailable = *req.IsBookingAvailable
	}

	film.Slug, err = uniqueSlug(req.Title, func(candidate string) (bool, error) {
		return s.repo.FilmSlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, apperror.FromDB(err, "film")
	}

	if err := s.repo.CreateFilm(ctx, &film); err != nil {
		return nil, apperror.FromDB(err, "film")
	}

	s.invalidate(ctx, constants.PATTERN_INVALIDATE_FILMS)
	resp := toFilmResponse(&film)
	return &resp, nil
}

func (s *service) GetFilm(ctx context.Context, id uuid.UUID) (*FilmResponse, error) {
	var resp FilmResponse
	err := s.cached(ctx, constants.BuildFilmDetailKey(id.String()), constants.TTL_FILM_DETAIL, &resp, func() (interface{}, error) {
		film, err := s.repo.GetFilm(ctx, id)
		if err != nil {
			return nil, apperror.FromDB(err, "film")
		}
		return toFilmResponse(film), nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// LookupFilm always reads the database.
func (s *service) LookupFilm(ctx context.Context, id uuid.UUID) (*Film, error) {
	film, err := s.repo.GetFilm(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "film")
	}
	return film, nil
}

func (s *service) ListFilms(ctx context.Context, query ListQuery) (*response.Page, error) {
	query.Normalize()

	type page struct {
		Items []FilmResponse `json:"items"`
		Total int64          `json:"total"`
	}
	var result page
	err := s.cached(ctx, constants.BuildFilmsListKey(query.Page, query.Limit), constants.TTL_FILMS_LIST, &result, func() (interface{}, error) {
		films, total, err := s.repo.ListFilms(ctx, query)
		if err != nil {
			return nil, apperror.FromDB(err, "film")
		}
		return page{Items: toFilmResponses(films), Total: total}, nil
	})
	if err != nil {
		return nil, err
	}

	p := response.NewPage(result.Items, query.Page, query.Limit, result.Total)
	return &p, nil
}

func (s *service) ListActiveFilms(ctx context.Context) ([]FilmResponse, error) {
	today := s.now().UTC()

	var films []FilmResponse
	err := s.cached(ctx, constants.BuildActiveFilmsKey(today), constants.TTL_FILMS_ACTIVE, &films, func() (interface{}, error) {
		found, err := s.repo.ListActiveFilms(ctx, today)
		if err != nil {
			return nil, apperror.FromDB(err, "film")
		}
		return toFilmResponses(found), nil
	})
	if err != nil {
		return nil, err
	}
	return films, nil
}

func (s *service) UpdateFilm(ctx context.Context, id uuid.UUID, req UpdateFilmRequest) (*FilmResponse, error) {
	film, err := s.repo.GetFilm(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "film")
	}

	if req.Title != nil {
		film.Title = *req.Title
	}
	if req.AgeRestriction != nil {
		film.AgeRestriction = *req.AgeRestriction
	}
	if req.IsBookingAvailable != nil {
		film.IsBookingAvailable = *req.IsBookingAvailable
	}
	if req.StartDate != nil {
		if film.StartDate, err = parseDate("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if film.EndDate, err = parseDate("end_date", *req.EndDate); err != nil {
			return nil, err
		}
	}
	if err := validateRun(film.StartDate, film.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.SaveFilm(ctx, film); err != nil {
		return nil, apperror.FromDB(err, "film")
	}

	s.invalidate(ctx, constants.PATTERN_INVALIDATE_FILMS)
	resp := toFilmResponse(film)
	return &resp, nil
}

func (s *service) DeleteFilm(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteFilm(ctx, id); err != nil {
		return apperror.FromDBDelete(err, "film")
	}
	s.invalidate(ctx, constants.PATTERN_INVALIDATE_FILMS)
	return nil
}

// ---- customers ----

func (s *service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	var customer Customer
	if err := copier.Copy(&customer, &req); err != nil {
		return nil, apperror.InvalidInput("invalid customer payload")
	}

	if err := s.repo.CreateCustomer(ctx, &customer); err != nil {
		return nil, apperror.FromDB(err, "customer")
	}
	return &customer, nil
}

func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error) {
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, apperror.FromDB(err, "customer")
	}
	return customer, nil
}

func (s *service) ListCustomers(ctx context.Context, query ListQuery) (*response.Page, error) {
	query.Normalize()

	customers, total, err := s.repo.ListCustomers(ctx, query)
	if err != nil {
		return nil, apperror.FromDB(err, "customer")
	}

	p := response.NewPage(customers, query.Page, query.Limit, total)
	return &p, nil
}

func (s *service) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.repo.CustomerExists(ctx, id)
	if err != nil {
		return false, apperror.FromDB(err, "customer")
	}
	return exists, nil
}
