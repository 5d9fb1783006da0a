package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medrecords-backend/internal/database"
	"medrecords-backend/internal/middleware"
	"medrecords-backend/internal/repository"
)

// newFrontendServer mirrors newTestServer but loads the templates and mounts
// the server-rendered surface alongside the API.
func newFrontendServer(t *testing.T) (*gin.Engine, *Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db, "adminpw"))

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := New(db, time.Hour, log)
	r := gin.New()
	r.Use(middleware.SessionLoader(h.Sessions, log))
	r.LoadHTMLGlob("../../web/templates/*.html")
	h.RegisterAPI(r)
	h.RegisterFrontend(r)
	return r, h, db
}

func doForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// formLogin authenticates through the login form and returns the session cookie.
func formLogin(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doForm(t, r, "/login", url.Values{
		"username": {username}, "password": {password},
	}, "")
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in login response")
	return ""
}

func TestFrontendAnonymousRedirectedToLogin(t *testing.T) {
	r, _, _ := newFrontendServer(t)

	paths := []string{
		"/", "/dashboard", "/patient/1", "/study/1",
		"/patient/new", "/study/new", "/admin/users",
	}
	for _, path := range paths {
		w := doRequest(t, r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestFrontendViewerRoleGates(t *testing.T) {
	r, h, db := newFrontendServer(t)
	addUser(t, h, db, "viewer", "pw", "viewer")
	cookie := formLogin(t, r, "viewer", "pw")

	// viewing is allowed
	w := doRequest(t, r, http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// mutations and user management render the plain 403 page
	for _, path := range []string{"/patient/new", "/study/new", "/admin/users"} {
		w := doRequest(t, r, http.MethodGet, path, nil, cookie)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, "Insufficient role", w.Body.String(), path)
	}
}

func TestFrontendLoginFlow(t *testing.T) {
	r, h, db := newFrontendServer(t)
	addUser(t, h, db, "alice", "correctpw", "modification")

	w := doRequest(t, r, http.MethodGet, "/login", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doForm(t, r, "/login", url.Values{
		"username": {"alice"}, "password": {"wrongpw"},
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	cookie := formLogin(t, r, "alice", "correctpw")

	// /login skips straight to the dashboard once authenticated
	w = doRequest(t, r, http.MethodGet, "/login", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	// logout invalidates the session and returns to the form
	w = doRequest(t, r, http.MethodGet, "/logout", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = doRequest(t, r, http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestFrontendPatientForms(t *testing.T) {
	r, h, db := newFrontendServer(t)
	addUser(t, h, db, "editor", "pw", "modification")
	cookie := formLogin(t, r, "editor", "pw")

	w := doRequest(t, r, http.MethodGet, "/patient/new", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doForm(t, r, "/patient/new", url.Values{
		"lastname": {"Dupont"}, "firstname": {"Marie"}, "gender": {"F"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	patient, err := h.Patients.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, patient, 1)
	id := patient[0].ID

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/patient/%d", id), nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dupont")

	w = doForm(t, r, fmt.Sprintf("/patient/edit/%d", id), url.Values{
		"lastname": {"Dupont-Martin"}, "firstname": {"Marie"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/patient/%d", id), w.Header().Get("Location"))

	got, err := h.Patients.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Dupont-Martin", got.Lastname)
}

func TestFrontendStudyForms(t *testing.T) {
	r, h, db := newFrontendServer(t)
	addUser(t, h, db, "editor", "pw", "modification")
	cookie := formLogin(t, r, "editor", "pw")

	patientID, err := h.Patients.Create(context.Background(), repository.PatientCreate{
		Lastname: "Dupont", Firstname: "Marie",
	})
	require.NoError(t, err)

	w := doForm(t, r, "/study/new", url.Values{
		"patient_id":        {fmt.Sprint(patientID)},
		"study_description": {"Chest CT"},
		"modality":          {"CT"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	studies, err := h.Studies.ListByPatient(context.Background(), patientID)
	require.NoError(t, err)
	require.Len(t, studies, 1)

	// the dashboard feed picks the study up
	w = doRequest(t, r, http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chest CT")

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/study/%d", studies[0].ID), nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dupont")

	w = doForm(t, r, fmt.Sprintf("/study/edit/%d", studies[0].ID), url.Values{
		"study_description": {"Abdominal CT"}, "modality": {"CT"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	got, err := h.Studies.Get(context.Background(), studies[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Abdominal CT", got.StudyDescription)
}

func TestFrontendAdminUsersPage(t *testing.T) {
	r, h, db := newFrontendServer(t)
	addUser(t, h, db, "editor", "pw", "modification")

	cookie := formLogin(t, r, "admin", "adminpw")
	w := doRequest(t, r, http.MethodGet, "/admin/users", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
	assert.Contains(t, w.Body.String(), "editor")
}

func TestFrontendInvalidIDPlainText(t *testing.T) {
	r, h, db := newFrontendServer(t)
	addUser(t, h, db, "viewer", "pw", "viewer")
	cookie := formLogin(t, r, "viewer", "pw")

	w := doRequest(t, r, http.MethodGet, "/patient/abc", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id format", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	// missing rows answer in the same register
	w = doRequest(t, r, http.MethodGet, "/patient/9999", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
