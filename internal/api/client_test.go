package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lineagehub/internal/models"
	"lineagehub/internal/permissions"
)

// staticToken is a fixed TokenSource for tests
type staticToken string

func (t staticToken) Token() string { return string(t) }

// flakyTransport fails the first n round trips with a transport error and
// then delegates to the default transport
type flakyTransport struct {
	failures int
	calls    int
}

func (t *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	if t.calls <= t.failures {
		return nil, errors.New("connection reset")
	}
	return http.DefaultTransport.RoundTrip(req)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

func TestLoginScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode login request: %v", err)
		}
		if req.Email != "a@x.com" || req.Password != "secret123" {
			t.Errorf("credentials not forwarded: %+v", req)
		}
		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			AccessToken: "token-123",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			User: models.User{
				ID:     "u1",
				Email:  "a@x.com",
				Status: models.StatusActive,
				Roles:  []models.UserRole{{ID: "r1", Role: models.RoleSuperAdmin}},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken(""))
	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() = %v", err)
	}
	if resp.AccessToken != "token-123" {
		t.Errorf("AccessToken = %q", resp.AccessToken)
	}
	if len(resp.User.Roles) < 1 {
		t.Fatal("login must return a user with at least one role")
	}
	if !permissions.IsSuperAdmin(resp.User) {
		t.Error("returned user should be a super admin")
	}
	if ids := permissions.ManagedMemberIDs(resp.User); len(ids) != 0 {
		t.Errorf("SUPER_ADMIN carries no managed member, got %v", ids)
	}
}

func TestBearerTokenAndRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		writeJSON(t, w, http.StatusOK, models.User{ID: "u1"})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("token-abc"))
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me() = %v", err)
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind Kind
	}{
		{"unauthorized", 401, KindAuth},
		{"forbidden", 403, KindForbidden},
		{"bad request", 400, KindValidation},
		{"unprocessable", 422, KindValidation},
		{"not found", 404, KindNotFound},
		{"conflict", 409, KindConflict},
		{"server error", 500, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, models.ErrorEnvelope{
					Status:  tt.status,
					Error:   http.StatusText(tt.status),
					Message: "không được phép",
					Path:    r.URL.Path,
				})
			}))
			defer server.Close()

			c := NewClient(server.URL, staticToken("tok"))
			_, err := c.GetMember(context.Background(), "m1")
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", got, tt.wantKind)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatal("error is not *api.Error")
			}
			if apiErr.Message != "không được phép" {
				t.Errorf("server message not surfaced: %q", apiErr.Message)
			}
		})
	}
}

func TestValidationDetailsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 400, models.ErrorEnvelope{
			Status:  400,
			Error:   "Bad Request",
			Message: "validation failed",
			Details: &models.ErrorDetails{Field: "fullName", RejectedValue: "", Code: "NotBlank"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	_, err := c.CreateMember(context.Background(), models.CreateMemberRequest{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("CreateMember() = %v, want *api.Error", err)
	}
	if apiErr.Details == nil || apiErr.Details.Field != "fullName" {
		t.Errorf("field details not surfaced: %+v", apiErr.Details)
	}
}

func TestUnauthorizedHookFired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, 401, models.ErrorEnvelope{Status: 401, Error: "Unauthorized", Message: "token expired"})
	}))
	defer server.Close()

	fired := 0
	c := NewClient(server.URL, staticToken("stale"), WithUnauthorizedHook(func() { fired++ }))
	if _, err := c.Me(context.Background()); KindOf(err) != KindAuth {
		t.Fatalf("Me() = %v, want auth error", err)
	}
	if fired != 1 {
		t.Errorf("unauthorized hook fired %d times, want 1", fired)
	}
}

func TestReadRetriedOnTransportFailure(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeJSON(t, w, http.StatusOK, models.User{ID: "u1"})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"),
		WithHTTPClient(&http.Client{Transport: &flakyTransport{failures: 1}}))
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me() after one transport failure = %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (one failed attempt never arrived)", hits)
	}
}

func TestMutationNeverRetried(t *testing.T) {
	transport := &flakyTransport{failures: 100}
	c := NewClient("http://localhost:1", staticToken("tok"),
		WithHTTPClient(&http.Client{Transport: transport}))

	_, err := c.CreateMember(context.Background(), models.CreateMemberRequest{FullName: "X"})
	if KindOf(err) != KindNetwork {
		t.Fatalf("CreateMember() = %v, want network error", err)
	}
	if transport.calls != 1 {
		t.Errorf("mutation attempted %d times, want exactly 1", transport.calls)
	}
}

func TestListMembersQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("search") != "Nguyen" || q.Get("generation") != "2" || q.Get("isDeceased") != "false" {
			t.Errorf("unexpected query %v", q)
		}
		writeJSON(t, w, http.StatusOK, models.PaginatedResponse[models.Member]{
			Content: []models.Member{{ID: "m1", FullName: "Nguyen Van A", Generation: 2}},
			Page:    0, Size: 20, TotalElements: 1, TotalPages: 1,
		})
	}))
	defer server.Close()

	gen := 2
	deceased := false
	c := NewClient(server.URL, staticToken("tok"))
	page, err := c.ListMembers(context.Background(), MemberFilters{
		Search:     "Nguyen",
		Generation: &gen,
		IsDeceased: &deceased,
		Size:       20,
	})
	if err != nil {
		t.Fatalf("ListMembers() = %v", err)
	}
	if len(page.Content) != 1 || page.Content[0].ID != "m1" {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestDeleteMemberForceFlag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.URL.Query().Get("force"); got != "true" {
			t.Errorf("force = %q, want true", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	if err := c.DeleteMember(context.Background(), "m1", true); err != nil {
		t.Fatalf("DeleteMember() = %v", err)
	}
}

func TestUploadAvatarMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "portrait.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		raw, _ := io.ReadAll(file)
		if string(raw) != "jpeg-bytes" {
			t.Errorf("file content = %q", raw)
		}
		writeJSON(t, w, http.StatusOK, models.AvatarResponse{AvatarURL: "/avatars/m1.jpg"})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	url, err := c.UploadAvatar(context.Background(), "m1", "portrait.jpg", bytes.NewReader([]byte("jpeg-bytes")))
	if err != nil {
		t.Fatalf("UploadAvatar() = %v", err)
	}
	if url != "/avatars/m1.jpg" {
		t.Errorf("avatar url = %q", url)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	_, err := c.Me(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Me() = %v, want *api.Error", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.Status)
	}
}
