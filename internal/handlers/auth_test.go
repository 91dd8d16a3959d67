package handlers

import (
	"context"
	"net/url"
	"testing"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

func TestLogin_AdminLandsOnAdmin(t *testing.T) {
	auth := &mockAuth{
		loginFn: func(_ context.Context, email, password string) (*models.User, error) {
			if email != "admin@example.com" || password != "admin123" {
				t.Fatalf("credentials not forwarded: %q %q", email, password)
			}
			return &models.User{ID: 1, Username: "Admin", IsAdmin: true}, nil
		},
	}
	env := newTestEnv(t, testService(auth, nil, nil, nil))

	w := env.postForm(t, "/", url.Values{"email": {"admin@example.com"}, "password": {"admin123"}})

	requireRedirect(t, w, "/admin")
	userID, isAdmin, ok := env.manager.Current(env.responseRequest(t, w))
	if !ok || userID != 1 || !isAdmin {
		t.Fatalf("session not started: id=%d admin=%v ok=%v", userID, isAdmin, ok)
	}
	env.requireFlash(t, w, security.FlashSuccess, "Welcome Admin!")
}

func TestLogin_UserLandsOnDashboard(t *testing.T) {
	auth := &mockAuth{
		loginFn: func(_ context.Context, _, _ string) (*models.User, error) {
			return &models.User{ID: 7, Username: "bob"}, nil
		},
	}
	env := newTestEnv(t, testService(auth, nil, nil, nil))

	w := env.postForm(t, "/", url.Values{"email": {"bob@x.com"}, "password": {"pw"}})

	requireRedirect(t, w, "/dashboard")
	env.requireFlash(t, w, security.FlashSuccess, "Welcome bob!")
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		loginErr error
		wantMsg  string
	}{
		{
			name:    "missing fields",
			form:    url.Values{"email": {"bob@x.com"}},
			wantMsg: "Please fill in all required fields correctly.",
		},
		{
			name:     "unknown email",
			form:     url.Values{"email": {"nobody@x.com"}, "password": {"pw"}},
			loginErr: service.ErrNoSuchAccount,
			wantMsg:  "No account found with that email.",
		},
		{
			name:     "wrong password",
			form:     url.Values{"email": {"bob@x.com"}, "password": {"bad"}},
			loginErr: service.ErrBadCredentials,
			wantMsg:  "Incorrect password. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{
				loginFn: func(_ context.Context, _, _ string) (*models.User, error) {
					return nil, tt.loginErr
				},
			}
			env := newTestEnv(t, testService(auth, nil, nil, nil))

			w := env.postForm(t, "/", tt.form)

			requireRedirect(t, w, "/")
			env.requireFlash(t, w, security.FlashDanger, tt.wantMsg)
			if _, _, ok := env.manager.Current(env.responseRequest(t, w)); ok {
				t.Fatalf("failed login must not start a session")
			}
		})
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t, testService(nil, nil, nil, nil))
	cookie := env.sessionCookie(t, 7, false)

	w := env.get(t, "/logout", cookie)

	requireRedirect(t, w, "/")
	if _, _, ok := env.manager.Current(env.responseRequest(t, w)); ok {
		t.Fatalf("identity must be gone after logout")
	}
	env.requireFlash(t, w, security.FlashInfo, "Logged out successfully!")
}
