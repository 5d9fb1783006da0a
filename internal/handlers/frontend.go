package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/auth"
	"medrecords-backend/internal/repository"
)

// optionalForm returns nil for empty form values so blanks don't overwrite.
func optionalForm(c *gin.Context, key string) *string {
	if v := c.PostForm(key); v != "" {
		return &v
	}
	return nil
}

// Dashboard renders the study feed with the search box. An empty query lists
// every study, unlike the API search which rejects it.
func (h *Handler) Dashboard(c *gin.Context) {
	query := c.Query("q")
	entries, err := h.Search.DashboardFeed(c.Request.Context(), query)
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Studies":     entries,
		"SearchQuery": query,
		"Identity":    auth.CurrentIdentity(c),
	})
}

// NewPatientForm renders the empty patient form.
func (h *Handler) NewPatientForm(c *gin.Context) {
	c.HTML(http.StatusOK, "patient_form.html", gin.H{})
}

// CreatePatientForm handles the patient form post and redirects to the dashboard.
func (h *Handler) CreatePatientForm(c *gin.Context) {
	_, err := h.Patients.Create(c.Request.Context(), repository.PatientCreate{
		Lastname:  c.PostForm("lastname"),
		Firstname: c.PostForm("firstname"),
		Birthdate: optionalForm(c, "birthdate"),
		Gender:    optionalForm(c, "gender"),
	})
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// PatientDetail renders a patient and their studies, newest first.
func (h *Handler) PatientDetail(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	patient, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		h.pageError(c, err)
		return
	}
	studies, err := h.Studies.ListByPatient(c.Request.Context(), id)
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "patient_detail.html", gin.H{
		"Patient": patient,
		"Studies": studies,
	})
}

// EditPatientForm renders the patient form prefilled.
func (h *Handler) EditPatientForm(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	patient, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "patient_form.html", gin.H{"Patient": patient})
}

// UpdatePatientForm handles the edit form post and redirects to the detail page.
func (h *Handler) UpdatePatientForm(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	lastname := c.PostForm("lastname")
	firstname := c.PostForm("firstname")
	_, err := h.Patients.Update(c.Request.Context(), id, repository.PatientUpdate{
		Lastname:  &lastname,
		Firstname: &firstname,
		Birthdate: optionalForm(c, "birthdate"),
		Gender:    optionalForm(c, "gender"),
	})
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/patient/"+strconv.FormatUint(uint64(id), 10))
}

// NewStudyForm renders the study form with the patient dropdown.
func (h *Handler) NewStudyForm(c *gin.Context) {
	patients, err := h.Patients.ListAll(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "study_form.html", gin.H{"Patients": patients})
}

// CreateStudyForm handles the study form post and redirects to the dashboard.
func (h *Handler) CreateStudyForm(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.PostForm("patient_id"), 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid patient id")
		return
	}
	_, err = h.Studies.Create(c.Request.Context(), repository.StudyCreate{
		PatientID:        uint(patientID),
		StudyDescription: c.PostForm("study_description"),
		Modality:         c.PostForm("modality"),
	})
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// StudyDetail renders a study joined with its patient's name.
func (h *Handler) StudyDetail(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	detail, err := h.Studies.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "study_detail.html", gin.H{"Study": detail})
}

// EditStudyForm renders the study form prefilled.
func (h *Handler) EditStudyForm(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	study, err := h.Studies.Get(c.Request.Context(), id)
	if err != nil {
		h.pageError(c, err)
		return
	}
	patients, err := h.Patients.ListAll(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "study_form.html", gin.H{
		"Study":    study,
		"Patients": patients,
	})
}

// UpdateStudyForm handles the study edit post and redirects to the dashboard.
func (h *Handler) UpdateStudyForm(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}
	description := c.PostForm("study_description")
	modality := c.PostForm("modality")
	_, err := h.Studies.Update(c.Request.Context(), id, repository.StudyUpdate{
		StudyDescription: &description,
		Modality:         &modality,
	})
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// AdminUsersPage renders the user management table.
func (h *Handler) AdminUsersPage(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, total, err := h.Users.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.pageError(c, err)
		return
	}
	roles, err := h.Users.ListRoles(c.Request.Context())
	if err != nil {
		h.pageError(c, err)
		return
	}
	c.HTML(http.StatusOK, "users.html", gin.H{
		"Users": users,
		"Roles": roles,
		"Total": total,
	})
}
