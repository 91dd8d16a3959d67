package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// Hand-written mocks for the service interfaces. Unset function fields fall
// back to permissive defaults so a test only wires the calls it asserts on.

type mockAuth struct {
	loginFn func(ctx context.Context, email, password string) (*models.User, error)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, service.ErrNoSuchAccount
}

type mockUsers struct {
	createFn        func(ctx context.Context, p service.CreateUserParams) (*models.User, error)
	getFn           func(ctx context.Context, id int) (*models.User, error)
	listFn          func(ctx context.Context) ([]models.User, error)
	updatePictureFn func(ctx context.Context, id int, pic []byte, mimeType string) error
	resetPasswordFn func(ctx context.Context, id int, newPassword string) error
	deleteFn        func(ctx context.Context, actorID, targetID int) error
}

func (m *mockUsers) Create(ctx context.Context, p service.CreateUserParams) (*models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return &models.User{ID: 1, Username: p.Username, Email: p.Email, IsAdmin: p.IsAdmin}, nil
}

func (m *mockUsers) Get(ctx context.Context, id int) (*models.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUsers) UpdateProfilePicture(ctx context.Context, id int, pic []byte, mimeType string) error {
	if m.updatePictureFn != nil {
		return m.updatePictureFn(ctx, id, pic, mimeType)
	}
	return nil
}

func (m *mockUsers) ResetPassword(ctx context.Context, id int, newPassword string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, id, newPassword)
	}
	return nil
}

func (m *mockUsers) Delete(ctx context.Context, actorID, targetID int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, actorID, targetID)
	}
	return nil
}

func (m *mockUsers) EnsureAdmin(ctx context.Context, username, email, password string) error {
	return nil
}

type mockFiles struct {
	uploadFn func(ctx context.Context, filename, contentType, year string, data []byte) (*models.StoredFile, error)
	getFn    func(ctx context.Context, id int) (*models.StoredFile, error)
	listFn   func(ctx context.Context, order repository.ListOrder) ([]models.StoredFile, error)
	deleteFn func(ctx context.Context, id int) error
}

func (m *mockFiles) Upload(ctx context.Context, filename, contentType, year string, data []byte) (*models.StoredFile, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, filename, contentType, year, data)
	}
	return &models.StoredFile{ID: 1, Filename: filename, Filetype: contentType, Year: year, Data: data}, nil
}

func (m *mockFiles) Get(ctx context.Context, id int) (*models.StoredFile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockFiles) List(ctx context.Context, order repository.ListOrder) ([]models.StoredFile, error) {
	if m.listFn != nil {
		return m.listFn(ctx, order)
	}
	return nil, nil
}

func (m *mockFiles) Delete(ctx context.Context, id int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockAnnouncements struct {
	postFn   func(ctx context.Context, title, content string) (*models.Announcement, error)
	getFn    func(ctx context.Context, id int) (*models.Announcement, error)
	listFn   func(ctx context.Context, order repository.ListOrder) ([]models.Announcement, error)
	deleteFn func(ctx context.Context, id int) error
}

func (m *mockAnnouncements) Post(ctx context.Context, title, content string) (*models.Announcement, error) {
	if m.postFn != nil {
		return m.postFn(ctx, title, content)
	}
	return &models.Announcement{ID: 1, Header: title, Content: content}, nil
}

func (m *mockAnnouncements) Get(ctx context.Context, id int) (*models.Announcement, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockAnnouncements) List(ctx context.Context, order repository.ListOrder) ([]models.Announcement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, order)
	}
	return nil, nil
}

func (m *mockAnnouncements) Delete(ctx context.Context, id int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// testService assembles a service root from mocks, substituting empty mocks
// for nil arguments.
func testService(auth *mockAuth, users *mockUsers, files *mockFiles, notices *mockAnnouncements) *service.Service {
	if auth == nil {
		auth = &mockAuth{}
	}
	if users == nil {
		users = &mockUsers{}
	}
	if files == nil {
		files = &mockFiles{}
	}
	if notices == nil {
		notices = &mockAnnouncements{}
	}
	return &service.Service{Auth: auth, Users: users, Files: files, Announcements: notices}
}

// testEnv bundles a router with the session manager that signs its cookies.
type testEnv struct {
	router  *gin.Engine
	manager *security.SessionManager
}

func newTestEnv(t *testing.T, svc *service.Service) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := security.NewSessionManager("test-secret")
	h := NewHandler(svc, manager, nil)
	return &testEnv{router: h.InitRoutes(), manager: manager}
}

// sessionCookie mints a signed cookie carrying the given identity.
func (e *testEnv) sessionCookie(t *testing.T, userID int, isAdmin bool) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	if err := e.manager.Start(w, httptest.NewRequest(http.MethodPost, "/", nil), userID, isAdmin); err != nil {
		t.Fatalf("start session: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie issued")
	}
	return cookies[len(cookies)-1]
}

func (e *testEnv) get(t *testing.T, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postMultipart(t *testing.T, path string, body io.Reader, contentType string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// responseRequest replays the cookies a response set onto a fresh request.
// Handlers may save the session more than once per request; only the last
// Set-Cookie per name counts, as in a browser.
func (e *testEnv) responseRequest(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	latest := map[string]*http.Cookie{}
	order := []string{}
	for _, c := range w.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, name := range order {
		req.AddCookie(latest[name])
	}
	return req
}

// responseFlashes drains the flashes queued on the response's session cookie.
func (e *testEnv) responseFlashes(t *testing.T, w *httptest.ResponseRecorder) []security.Flash {
	t.Helper()
	return e.manager.Flashes(httptest.NewRecorder(), e.responseRequest(t, w))
}

// requireFlash asserts exactly one queued flash with the given level and text.
func (e *testEnv) requireFlash(t *testing.T, w *httptest.ResponseRecorder, level, message string) {
	t.Helper()
	flashes := e.responseFlashes(t, w)
	if len(flashes) != 1 {
		t.Fatalf("expected one flash, got %+v", flashes)
	}
	if flashes[0].Level != level || flashes[0].Message != message {
		t.Fatalf("got flash %+v, want level=%q message=%q", flashes[0], level, message)
	}
}

func requireRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d (%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

// multipartBody builds a multipart form with one file part and optional
// plain fields. The part carries an explicit Content-Type header, as
// browsers send it.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}
