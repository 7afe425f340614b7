package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authmw "github.com/mind-engage/pizzaquiz/internal/auth/middleware"
	"github.com/mind-engage/pizzaquiz/internal/rbac"
)

func TestIdentityService_RoundTrip(t *testing.T) {
	a := authmw.NewIdentityService("s3cret", time.Hour)
	tok, err := a.Issue("user-1")
	if err != nil {
		t.Fatal(err)
	}
	sub, err := a.Parse(tok)
	if err != nil || sub != "user-1" {
		t.Fatalf("parse: %q %v", sub, err)
	}

	other := authmw.NewIdentityService("different", time.Hour)
	if _, err := other.Parse(tok); err == nil {
		t.Error("token signed with another secret must not parse")
	}
	if _, err := a.Parse("not-a-jwt"); err == nil {
		t.Error("garbage must not parse")
	}
}

func TestIdentify(t *testing.T) {
	a := authmw.NewIdentityService("s3cret", time.Hour)
	tok, _ := a.Issue("user-7")

	var gotSub, gotRole string
	h := authmw.Identify(a, "user_id")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = authmw.SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	for _, tc := range []struct {
		name   string
		cookie string
		want   string
	}{
		{"valid", tok, "user-7"},
		{"tampered", tok + "x", ""},
		{"missing", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			gotSub, gotRole = "unset", ""
			req := httptest.NewRequest(http.MethodGet, "/api/review", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "user_id", Value: tc.cookie})
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if gotSub != tc.want {
				t.Errorf("subject: got %q want %q", gotSub, tc.want)
			}
			if gotRole != rbac.RolePlayer {
				t.Errorf("role: got %q", gotRole)
			}
		})
	}
}
