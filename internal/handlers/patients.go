package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/repository"
)

// --- Structs for Request Binding ---

type CreatePatientRequest struct {
	Lastname  string  `json:"lastname" binding:"required"`
	Firstname string  `json:"firstname" binding:"required"`
	Birthdate *string `json:"birthdate"`
	Gender    *string `json:"gender"`
}

type UpdatePatientRequest struct {
	Lastname  *string `json:"lastname"`
	Firstname *string `json:"firstname"`
	Birthdate *string `json:"birthdate"`
	Gender    *string `json:"gender"`
}

// --- Handler Functions ---

func (h *Handler) ListPatients(c *gin.Context) {
	page, pageSize := pageParams(c)
	patients, total, err := h.Patients.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"per_page": pageSize,
		"total":    total,
		"data":     patients,
	})
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	id, err := h.Patients.Create(c.Request.Context(), repository.PatientCreate{
		Lastname:  req.Lastname,
		Firstname: req.Firstname,
		Birthdate: req.Birthdate,
		Gender:    req.Gender,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":     "success",
		"message":    "Patient created",
		"patient_id": id,
	})
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	patient, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	patient, err := h.Patients.Update(c.Request.Context(), id, repository.PatientUpdate{
		Lastname:  req.Lastname,
		Firstname: req.Firstname,
		Birthdate: req.Birthdate,
		Gender:    req.Gender,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
