package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"medrecords-backend/internal/repository"
)

// Handler bundles the repositories behind the HTTP surface.
type Handler struct {
	Patients *repository.PatientRepository
	Studies  *repository.StudyRepository
	Users    *repository.UserRepository
	Sessions *repository.SessionRepository
	Search   *repository.SearchRepository
	Log      *logrus.Logger
}

func New(db *gorm.DB, sessionTTL time.Duration, log *logrus.Logger) *Handler {
	return &Handler{
		Patients: repository.NewPatientRepository(db),
		Studies:  repository.NewStudyRepository(db),
		Users:    repository.NewUserRepository(db),
		Sessions: repository.NewSessionRepository(db, sessionTTL),
		Search:   repository.NewSearchRepository(db),
		Log:      log,
	}
}

// Health reports liveness without touching the database.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// respondError maps a repository error onto the JSON error envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, repository.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrReferenceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
	default:
		h.Log.WithError(err).Error("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Storage error"})
	}
}

// pageError is respondError for the form surface: same statuses, plain text.
func (h *Handler) pageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrValidation):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrReferenceNotFound):
		c.String(http.StatusNotFound, err.Error())
	default:
		h.Log.WithError(err).Error("storage failure")
		c.String(http.StatusInternalServerError, "Storage error")
	}
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid id format"})
		return 0, false
	}
	return uint(id), true
}

// pageID is paramID for the form surface, answering in plain text like
// pageError does.
func pageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid id format")
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page/page_size with the historical defaults.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}
