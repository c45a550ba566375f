package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/warrantyguard/internal/common"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

const (
	msgMissingFields   = "Missing userId or products"
	msgInvalidUserID   = "Invalid userId"
	msgInvalidBody     = "Invalid request body"
	msgSaveFailed      = "Failed to save backup"
	msgNoBackup        = "No backup found for this user"
	msgReadFailed      = "Failed to read backup"
	msgBackupSucceeded = "Backup successful"
)

// backupRequest keeps products raw so an absent field can be told apart
// from an empty list.
type backupRequest struct {
	UserID   string          `json:"userId"`
	Products json.RawMessage `json:"products"`
	Date     string          `json:"date"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

func (s *HTTPServer) Backup(c echo.Context) error {
	ctx := c.Request().Context()
	log := loggerFrom(c)

	var req backupRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		log.Warn(ctx, "malformed backup body", "error", err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	if req.UserID == "" || len(req.Products) == 0 || bytes.Equal(req.Products, []byte("null")) {
		return errorJSON(c, http.StatusBadRequest, msgMissingFields)
	}

	var products []warranty.Product
	if err := json.Unmarshal(req.Products, &products); err != nil {
		log.Warn(ctx, "malformed products", "user_id", req.UserID, "error", err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	err := s.backups.Save(ctx, req.UserID, products, req.Date)
	switch {
	case errors.Is(err, common.ErrInvalidUserID):
		return errorJSON(c, http.StatusBadRequest, msgInvalidUserID)
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, msgSaveFailed)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": msgBackupSucceeded})
}

func (s *HTTPServer) Restore(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := url.PathUnescape(c.Param("userId"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, msgInvalidUserID)
	}

	b, err := s.backups.Load(ctx, userID)
	switch {
	case errors.Is(err, common.ErrInvalidUserID):
		return errorJSON(c, http.StatusBadRequest, msgInvalidUserID)
	case errors.Is(err, common.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, msgNoBackup)
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, msgReadFailed)
	}

	return c.JSON(http.StatusOK, b)
}
