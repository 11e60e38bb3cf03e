package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MOON-roa-png/BodegaMati/models"
	"github.com/MOON-roa-png/BodegaMati/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUserID normalizes the user_id claim from the auth middleware;
// JWT numeric claims decode as float64.
func currentUserID(c *gin.Context) (uint, error) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, errors.New("user_id missing from context")
	}
	switch id := v.(type) {
	case uint:
		return id, nil
	case int:
		return uint(id), nil
	case int64:
		return uint(id), nil
	case float64:
		return uint(id), nil
	case string:
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, errors.New("user_id not valid")
		}
		return uint(n), nil
	default:
		return 0, errors.New("user_id not valid")
	}
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, &models.ValidationError{Field: "id", Msg: "must be a positive integer"}
	}
	return uint(id), nil
}

func pathIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, &models.ValidationError{Field: "index", Msg: "must be an integer"}
	}
	return index, nil
}

// respondError maps the typed domain errors to HTTP statuses. Anything
// unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	var (
		validation   *models.ValidationError
		notFound     *models.NotFoundError
		duplicate    *models.DuplicateNameError
		insufficient *models.InsufficientStockError
	)
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		utils.Error(c, http.StatusBadRequest, "Cart is empty", err)
	case errors.As(err, &validation):
		utils.Error(c, http.StatusBadRequest, "Invalid input", err)
	case errors.As(err, &notFound):
		utils.Error(c, http.StatusNotFound, "Not found", err)
	case errors.As(err, &duplicate):
		utils.Error(c, http.StatusConflict, "Name already in use", err)
	case errors.As(err, &insufficient):
		utils.Error(c, http.StatusConflict, "Insufficient stock", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(c, http.StatusNotFound, "Not found", err)
	default:
		utils.Error(c, http.StatusInternalServerError, "Internal error", err)
	}
}
