package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/repository"
)

// --- Structs for Request Binding ---

type CreateStudyRequest struct {
	PatientID        uint   `json:"patient_id" binding:"required"`
	StudyDate        string `json:"study_date"` // server-assigned when omitted
	StudyDescription string `json:"study_description" binding:"required"`
	Modality         string `json:"modality" binding:"required"`
}

type UpdateStudyRequest struct {
	StudyDescription *string `json:"study_description"`
	Modality         *string `json:"modality"`
}

// --- Handler Functions ---

func (h *Handler) ListStudies(c *gin.Context) {
	page, pageSize := pageParams(c)
	studies, total, err := h.Studies.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"per_page": pageSize,
		"total":    total,
		"data":     studies,
	})
}

func (h *Handler) CreateStudy(c *gin.Context) {
	var req CreateStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	id, err := h.Studies.Create(c.Request.Context(), repository.StudyCreate{
		PatientID:        req.PatientID,
		StudyDate:        req.StudyDate,
		StudyDescription: req.StudyDescription,
		Modality:         req.Modality,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"message":  "Study created",
		"study_id": id,
	})
}

func (h *Handler) GetStudy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	study, err := h.Studies.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, study)
}

func (h *Handler) UpdateStudy(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateStudyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	study, err := h.Studies.Update(c.Request.Context(), id, repository.StudyUpdate{
		StudyDescription: req.StudyDescription,
		Modality:         req.Modality,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, study)
}
