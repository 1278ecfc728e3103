package constants

import (
	"fmt"
	"time"
)

// Redis key layout: cineops:{module}:{operation}:{identifier}:{params?}
// Only catalog data is cached. Session capacity and price are always read
// from PostgreSQL.

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG       = 24 * time.Hour   // cinemas rarely change
	TTL_SEMI_STATIC_LONG  = 2 * time.Hour    // film details
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // film listings
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cineops"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_CINEMA_DETAIL = CACHE_PREFIX + ":catalog:cinema:uuid:" // + cinema-id
	CACHE_KEY_CINEMAS_LIST  = CACHE_PREFIX + ":catalog:cinemas:list" // + :page:X:limit:Y
	CACHE_KEY_FILM_DETAIL   = CACHE_PREFIX + ":catalog:film:uuid:"   // + film-id
	CACHE_KEY_FILMS_LIST    = CACHE_PREFIX + ":catalog:films:list"   // + :page:X:limit:Y
	CACHE_KEY_FILMS_ACTIVE  = CACHE_PREFIX + ":catalog:films:active" // + :date:YYYY-MM-DD
)

const (
	TTL_CINEMA_DETAIL = TTL_STATIC_LONG
	TTL_CINEMAS_LIST  = TTL_STATIC_LONG
	TTL_FILM_DETAIL   = TTL_SEMI_STATIC_LONG
	TTL_FILMS_LIST    = TTL_SEMI_STATIC_QUICK
	TTL_FILMS_ACTIVE  = TTL_SEMI_STATIC_QUICK
)

// ================== RATE LIMIT ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit"
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_CINEMAS = CACHE_PREFIX + ":catalog:cinema*"
	PATTERN_INVALIDATE_FILMS   = CACHE_PREFIX + ":catalog:film*"
)

// ================== HELPER FUNCTIONS ==================

func BuildCinemaDetailKey(cinemaID string) string {
	return CACHE_KEY_CINEMA_DETAIL + cinemaID
}

func BuildCinemasListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_CINEMAS_LIST, page, limit)
}

func BuildFilmDetailKey(filmID string) string {
	return CACHE_KEY_FILM_DETAIL + filmID
}

func BuildFilmsListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_FILMS_LIST, page, limit)
}

func BuildActiveFilmsKey(day time.Time) string {
	return CACHE_KEY_FILMS_ACTIVE + ":date:" + day.Format("2006-01-02")
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return RATE_LIMIT_PREFIX + ":" + clientIP + ":" + limitType
}
