package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const dateOnlyLayout = "2006-01-02"

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// intQuery reads an integer query parameter, falling back to def when absent.
func intQuery(c *gin.Context, key string, def int) (int, error) {
	parsed, err := parseOptionalInt(c.Query(key))
	if err != nil {
		return 0, newValidationError(key, "invalid_"+key, "must be an integer")
	}
	if parsed == nil {
		return def, nil
	}
	return *parsed, nil
}

func parseSnowflakeID(value string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return 0, ErrNotFound
	}
	return parsed, nil
}

func parseOptionalSnowflakeID(value string) (*snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return nil, newValidationError("department_id", "invalid_department_id", "invalid department id")
	}
	return &parsed, nil
}

// parseDate accepts RFC3339 or YYYY-MM-DD and truncates to the UTC calendar day.
func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		parsed = parsed.UTC()
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(dateOnlyLayout, trimmed)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func companyIDParam(c *gin.Context) (snowflake.ID, bool) {
	id, err := parseSnowflakeID(c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return 0, false
	}
	return id, true
}

func idParam(c *gin.Context) (snowflake.ID, bool) {
	id, err := parseSnowflakeID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return 0, false
	}
	return id, true
}
