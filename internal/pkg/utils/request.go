package utils

import (
	"context"
	"net/http"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

func PrincipalFromContext(ctx context.Context) *models.Principal {
	principal, _ := ctx.Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
	return principal
}

func ParseRequestBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get(constvars.URLQueryParamPage)
	pageSizeStr := r.URL.Query().Get(constvars.URLQueryParamPageSize)

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func ParseSkipLimitQuery(r *http.Request, defaultLimit, maxLimit int) (skip, limit int) {
	skip, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamSkip))
	if err != nil || skip < 0 {
		skip = 0
	}

	limit, err = strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamLimit))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}

func ParseIntQuery(r *http.Request, name string, defaultValue int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return defaultValue
	}
	return value
}

// ParseDateQuery accepts both plain dates and RFC3339 timestamps.
func ParseDateQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		utc := parsed.UTC()
		return &utc, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	utc := parsed.UTC()
	return &utc, nil
}
