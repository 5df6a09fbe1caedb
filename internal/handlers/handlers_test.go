package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synergy-india/admin-api/internal/auth"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
	"github.com/synergy-india/admin-api/internal/storage"
)

type testAPI struct {
	t       *testing.T
	router  http.Handler
	handler *Handler
	repos   *repository.Set
	root    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repos := repository.NewMemorySet()
	authSvc := auth.NewService(logger, repos.AdminUsers, repos.LoginHistory, auth.NewTokenIssuer("test-secret", nil))
	_, err := authSvc.CreateUser(context.Background(), "admin", auth.HashPassword("admin123"))
	require.NoError(t, err)

	root := t.TempDir()
	local, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	h := New(logger, repos, authSvc, storage.NewUploader(logger, local, true))
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger, repos.AccessLogs))
	RegisterRoutes(r, h, NewRateLimiter(3, time.Minute), NewRateLimiter(100, time.Minute))

	return &testAPI{t: t, router: r, handler: h, repos: repos, root: root}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) json(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.do(req)
}

func (a *testAPI) multipart(path, token string, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(a.t, err)
	_, err = part.Write(content)
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return a.do(req)
}

func (a *testAPI) login() string {
	a.t.Helper()
	rec := a.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var result auth.LoginResult
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result.AccessToken
}

func (a *testAPI) createService(token string) models.Service {
	a.t.Helper()
	rec := a.json(http.MethodPost, "/api/services", token, models.ServiceCreate{
		Title:       "Solar Equipment",
		Overview:    "Panels and inverters.",
		SubServices: []string{"Rooftop", "Water pumps"},
		Benefits:    []string{"Lower bills"},
		CTAText:     "Get a quote",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var svc models.Service
	decode(a.t, rec, &svc)
	return svc
}

func (a *testAPI) countFiles() int {
	n := 0
	_ = filepath.WalkDir(a.root, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decode(t, rec, &body)
	return body.Detail
}

func TestRoot(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"SYNERGY INDIA Admin API","version":"1.0.0"}`, rec.Body.String())
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result auth.LoginResult
	decode(t, rec, &result)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "bearer", result.TokenType)
	assert.Equal(t, 1800, result.ExpiresIn)

	rec = api.json(http.MethodGet, "/api/auth/me", result.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	decode(t, rec, &me)
	assert.Equal(t, "admin", me["username"])
	assert.NotContains(t, me, "hashed_password")
	assert.NotNil(t, me["last_login"])
}

func TestLoginRejected(t *testing.T) {
	api := newTestAPI(t)

	for _, body := range []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "nobody", "password": "admin123"},
	} {
		rec := api.json(http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid username or password", detail(t, rec))
	}

	history, err := api.repos.LoginHistory.FindMany(context.Background(), repository.Where(repository.Eq("success", false)))
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestLoginIsRateLimited(t *testing.T) {
	api := newTestAPI(t)

	var last int
	for i := 0; i < 4; i++ {
		last = api.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "x"}).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	api := newTestAPI(t)

	var codes []int
	for i := 1; i <= 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"admin","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i))
		codes = append(codes, api.do(req).Code)
	}
	assert.Equal(t, []int{401, 401, 401, 429, 429}, codes)

	history, err := api.repos.LoginHistory.FindMany(context.Background(), repository.Where())
	require.NoError(t, err)
	for _, h := range history {
		assert.Equal(t, "192.0.2.1", h.IPAddress)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = api.json(http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", detail(t, rec))

	for _, path := range []string{"/api/leads", "/api/dashboard/stats", "/api/security/login-history", "/api/leads/export/csv"} {
		assert.Equal(t, http.StatusUnauthorized, api.json(http.MethodGet, path, "", nil).Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized, api.json(http.MethodPost, "/api/services", "", models.ServiceCreate{}).Code)
}

func TestLeadLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodPost, "/api/leads", "", models.LeadCreate{
		Name:              "Raj",
		Phone:             "+91-9876543210",
		ServiceInterested: "Civil & Interior Work",
		ProjectType:       "Residential",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var lead models.Lead
	decode(t, rec, &lead)
	assert.Equal(t, models.LeadStatusNew, lead.Status)

	rec = api.json(http.MethodPost, "/api/leads", "", models.LeadCreate{Name: "No phone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token := api.login()

	rec = api.json(http.MethodPut, "/api/leads/"+lead.ID, token, map[string]string{"status": "Bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.json(http.MethodPut, "/api/leads/"+lead.ID, token, map[string]string{"status": models.LeadStatusContacted})
	require.Equal(t, http.StatusOK, rec.Code)

	var leads []models.Lead
	decode(t, api.json(http.MethodGet, "/api/leads?status=Contacted", token, nil), &leads)
	require.Len(t, leads, 1)
	assert.Equal(t, lead.ID, leads[0].ID)

	decode(t, api.json(http.MethodGet, "/api/leads?status=New", token, nil), &leads)
	assert.Empty(t, leads)

	assert.Equal(t, http.StatusOK, api.json(http.MethodDelete, "/api/leads/"+lead.ID, token, nil).Code)
	rec = api.json(http.MethodGet, "/api/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lead not found", detail(t, rec))
}

func TestExportLeadsCSV(t *testing.T) {
	api := newTestAPI(t)
	api.handler.now = func() time.Time { return time.Date(2025, 9, 16, 8, 30, 5, 0, time.UTC) }

	email := "asha@example.com"
	note := `Needs "urgent" quote`
	for _, l := range []models.LeadCreate{
		{Name: "Asha", Phone: "1", Email: &email, ServiceInterested: "Solar", ProjectType: "Residential", Message: &note},
	} {
		require.Equal(t, http.StatusOK, api.json(http.MethodPost, "/api/leads", "", l).Code)
	}

	rec := api.json(http.MethodGet, "/api/leads/export/csv", api.login(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out csvExport
	decode(t, rec, &out)
	assert.Equal(t, "leads_export_20250916_083005.csv", out.Filename)
	assert.Equal(t,
		"Name,Phone,Email,Service Interested,Project Type,Message,Status,Created At\n"+
			`"Asha","1","asha@example.com","Solar","Residential","Needs ""urgent"" quote","New","2025-09-16T08:30:05Z"`+"\n",
		out.Content)
}

func TestServicePartialUpdate(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	svc := api.createService(token)
	assert.Equal(t, []string{}, svc.Images)
	assert.True(t, svc.IsActive)

	rec := api.json(http.MethodPut, "/api/services/"+svc.ID, token, map[string]string{"title": "Solar Systems"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Service
	decode(t, api.json(http.MethodGet, "/api/services/"+svc.ID, "", nil), &updated)
	assert.Equal(t, "Solar Systems", updated.Title)
	assert.Equal(t, svc.Overview, updated.Overview)
	assert.Equal(t, svc.SubServices, updated.SubServices)
	assert.Equal(t, svc.Benefits, updated.Benefits)
	assert.Equal(t, svc.CTAText, updated.CTAText)

	rec = api.json(http.MethodPut, "/api/services/missing", token, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Service not found", detail(t, rec))
}

func TestServiceImageCap(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	svc := api.createService(token)
	path := "/api/services/" + svc.ID + "/images"

	for i := 0; i < models.MaxServiceImages; i++ {
		rec := api.multipart(path, token, "photo.txt", []byte("image bytes"), nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := api.multipart(path, token, "photo.txt", []byte("image bytes"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Service can have maximum 4 images", detail(t, rec))

	var got models.Service
	decode(t, api.json(http.MethodGet, "/api/services/"+svc.ID, "", nil), &got)
	assert.Len(t, got.Images, models.MaxServiceImages)
	assert.Equal(t, models.MaxServiceImages, api.countFiles())
}

func TestServiceImageTooLarge(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	svc := api.createService(token)

	rec := api.multipart("/api/services/"+svc.ID+"/images", token, "big.bin", make([]byte, storage.MaxUploadSize+1), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Zero(t, api.countFiles())

	var got models.Service
	decode(t, api.json(http.MethodGet, "/api/services/"+svc.ID, "", nil), &got)
	assert.Empty(t, got.Images)
}

func TestServiceImageRemoval(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	svc := api.createService(token)

	rec := api.multipart("/api/services/"+svc.ID+"/images", token, "a.txt", []byte("a"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var uploaded imageUploaded
	decode(t, rec, &uploaded)
	assert.True(t, strings.HasPrefix(uploaded.ImageURL, "/uploads/services/"))
	require.Equal(t, 1, api.countFiles())

	rec = api.json(http.MethodDelete, "/api/services/"+svc.ID+"/images", token, map[string]string{"image_url": "/uploads/services/other.txt"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/services/"+svc.ID+"/images",
		strings.NewReader("image_url="+uploaded.ImageURL))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.Service
	decode(t, api.json(http.MethodGet, "/api/services/"+svc.ID, "", nil), &got)
	assert.Empty(t, got.Images)
	assert.Zero(t, api.countFiles())
}

func TestServiceImageRemovalLeavesEarlierReadsIntact(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	svc := api.createService(token)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.Equal(t, http.StatusOK, api.multipart("/api/services/"+svc.ID+"/images", token, name, []byte(name), nil).Code)
	}
	stored, err := api.repos.Services.FindByID(context.Background(), svc.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 3)
	before := append([]string(nil), stored.Images...)

	req := httptest.NewRequest(http.MethodDelete,
		"/api/services/"+svc.ID+"/images?image_url="+url.QueryEscape(stored.Images[0]), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, api.do(req).Code)

	assert.Equal(t, before, stored.Images)
	after, err := api.repos.Services.FindByID(context.Background(), svc.ID)
	require.NoError(t, err)
	assert.Equal(t, before[1:], after.Images)
}

func TestListTruncationIsLogged(t *testing.T) {
	api := newTestAPI(t)
	hook := logtest.NewLocal(api.handler.log.Logger)
	token := api.login()
	for i := 0; i < 3; i++ {
		api.createService(token)
	}

	truncated := func() int {
		n := 0
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel && e.Message == "Response truncated at record limit" {
				n++
			}
		}
		return n
	}

	var services []models.Service
	decode(t, api.json(http.MethodGet, "/api/services", "", nil), &services)
	assert.Len(t, services, 3)
	assert.Zero(t, truncated())

	api.handler.listLimit = 2
	decode(t, api.json(http.MethodGet, "/api/services", "", nil), &services)
	assert.Len(t, services, 2)
	assert.Equal(t, 1, truncated())
}

func TestDeleteServiceRemovesImages(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	svc := api.createService(token)

	require.Equal(t, http.StatusOK, api.multipart("/api/services/"+svc.ID+"/images", token, "a.txt", []byte("a"), nil).Code)
	require.Equal(t, 1, api.countFiles())

	assert.Equal(t, http.StatusOK, api.json(http.MethodDelete, "/api/services/"+svc.ID, token, nil).Code)
	assert.Zero(t, api.countFiles())
	assert.Equal(t, http.StatusNotFound, api.json(http.MethodGet, "/api/services/"+svc.ID, "", nil).Code)
}

func TestGallery(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()

	create := func(caption, order string) models.GalleryImage {
		rec := api.multipart("/api/gallery", token, caption+".txt", []byte(caption), map[string]string{
			"alt_text": caption + " alt",
			"caption":  caption,
			"category": "Solar",
			"order":    order,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var img models.GalleryImage
		decode(t, rec, &img)
		return img
	}
	second := create("second", "2")
	first := create("first", "1")
	assert.True(t, first.IsActive)
	assert.True(t, strings.HasPrefix(first.URL, "/uploads/gallery/"))

	rec := api.multipart("/api/gallery", token, "x.txt", []byte("x"), map[string]string{"caption": "no alt"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, api.countFiles())

	var list []models.GalleryImage
	decode(t, api.json(http.MethodGet, "/api/gallery", "", nil), &list)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	rec = api.json(http.MethodPut, "/api/gallery/reorder", token, []models.GalleryOrder{
		{ID: first.ID, Order: 5},
		{ID: "unknown", Order: 0},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, api.json(http.MethodGet, "/api/gallery", "", nil), &list)
	assert.Equal(t, second.ID, list[0].ID)

	rec = api.json(http.MethodPut, "/api/gallery/"+second.ID, token, map[string]any{"caption": "renamed", "is_active": false})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.GalleryImage
	decode(t, rec, &updated)
	assert.Equal(t, "renamed", updated.Caption)
	assert.False(t, updated.IsActive)
	assert.Equal(t, second.AltText, updated.AltText)

	assert.Equal(t, http.StatusOK, api.json(http.MethodDelete, "/api/gallery/"+second.ID, token, nil).Code)
	assert.Equal(t, 1, api.countFiles())
	rec = api.json(http.MethodGet, "/api/gallery/"+second.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Image not found", detail(t, rec))
}

func TestSettings(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()

	var general models.GeneralSettings
	decode(t, api.json(http.MethodGet, "/api/settings/general", "", nil), &general)
	assert.Equal(t, "SYNERGY INDIA", general.SiteName)

	n, err := api.repos.General.Count(context.Background(), repository.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rec := api.json(http.MethodPut, "/api/settings/general", token, map[string]string{"phone": "+91-1111111111"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &general)
	assert.Equal(t, "+91-1111111111", general.Phone)
	assert.Equal(t, "SYNERGY INDIA", general.SiteName)

	rec = api.json(http.MethodPut, "/api/settings/general", token, map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// PUT before any GET starts from the defaults.
	rec = api.json(http.MethodPut, "/api/settings/cta", token, map[string]string{"call_number": "+910000"})
	require.Equal(t, http.StatusOK, rec.Code)
	var cta models.CTASettings
	decode(t, rec, &cta)
	assert.Equal(t, "+910000", cta.CallNumber)
	assert.Equal(t, "/contact", cta.ContactPageLink)

	var form models.ContactFormSettings
	decode(t, api.json(http.MethodGet, "/api/settings/contact-form", "", nil), &form)
	assert.Contains(t, form.ProjectTypeOptions, "Residential")

	assert.Equal(t, http.StatusUnauthorized, api.json(http.MethodPut, "/api/settings/cta", "", map[string]string{}).Code)
}

func TestUploadLogo(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()

	rec := api.multipart("/api/settings/general/logo", token, "logo.txt", []byte("v1"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var first logoUploaded
	decode(t, rec, &first)
	assert.True(t, strings.HasPrefix(first.LogoURL, "/uploads/logos/"))

	rec = api.multipart("/api/settings/general/logo", token, "logo.txt", []byte("v2"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var second logoUploaded
	decode(t, rec, &second)

	var general models.GeneralSettings
	decode(t, api.json(http.MethodGet, "/api/settings/general", "", nil), &general)
	assert.Equal(t, second.LogoURL, general.LogoURL)
	assert.Equal(t, 1, api.countFiles())
}

func TestDashboardStats(t *testing.T) {
	api := newTestAPI(t)
	token := api.login()
	ctx := context.Background()

	now := time.Now().UTC()
	for i, created := range []time.Time{now, now.Add(-48 * time.Hour)} {
		require.NoError(t, api.repos.Leads.Insert(ctx, models.Lead{
			ID: models.NewID(), Name: "L", Phone: "1", Status: models.LeadStatusNew,
			CreatedAt: created.Add(-time.Duration(i) * time.Second), UpdatedAt: created,
		}))
	}
	svc := api.createService(token)
	inactive := false
	require.Equal(t, http.StatusOK, api.json(http.MethodPut, "/api/services/"+svc.ID, token, models.ServiceUpdate{IsActive: &inactive}).Code)
	api.createService(token)

	rec := api.json(http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.TotalLeads)
	assert.Equal(t, int64(1), stats.TodayEnquiries)
	assert.Equal(t, int64(1), stats.TotalServices)
	assert.Zero(t, stats.TotalGalleryImages)
	assert.Len(t, stats.RecentLeads, 2)
}

func TestLoginHistoryEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.json(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "bad"})
	token := api.login()

	var history []models.LoginHistory
	decode(t, api.json(http.MethodGet, "/api/security/login-history", token, nil), &history)
	assert.Len(t, history, 2)
}

func TestAccessLogIsPersisted(t *testing.T) {
	api := newTestAPI(t)
	api.json(http.MethodGet, "/api/", "", nil)

	assert.Eventually(t, func() bool {
		logs, err := api.repos.AccessLogs.FindMany(context.Background(), repository.Where(repository.Eq("path", "/api/")))
		return err == nil && len(logs) == 1 && logs[0].Status == http.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.json(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", detail(t, rec))
}
