package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/request"
)

// recordedRequest captures what the fake backend received.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
}

// fakeBackend answers every request with the response registered for its
// method and path, and records the request.
type fakeBackend struct {
	responses map[string]any
	last      recordedRequest
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Services) {
	t.Helper()

	backend := &fakeBackend{responses: make(map[string]any)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		backend.last = recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     string(body),
		}

		resp, ok := backend.responses[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	client, err := request.New(&request.Config{BaseURL: server.URL})
	require.NoError(t, err)

	return backend, New(client)
}

func (b *fakeBackend) on(method, path string, resp any) {
	b.responses[method+" /api/proxy"+path] = resp
}

func TestActivityLogService_GetAll(t *testing.T) {
	backend, svc := newFakeBackend(t)
	backend.on(http.MethodGet, "/workspaces/ws-1/activity-logs", []models.ActivityLog{
		{ID: "log-1", WorkspaceID: "ws-1", Action: "document.created"},
	})

	logs, err := svc.ActivityLogs.GetAll(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "document.created", logs[0].Action)
}

func TestFileService_View(t *testing.T) {
	t.Run("unwraps url", func(t *testing.T) {
		backend, svc := newFakeBackend(t)
		backend.on(http.MethodGet, "/workspaces/ws-1/files/view/attachments/report.pdf", models.PresignedURL{
			URL: "https://files.example.com/report.pdf?sig=abc",
		})

		url, err := svc.Files.View(context.Background(), "ws-1", "attachments/report.pdf")
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/report.pdf?sig=abc", url)
	})

	t.Run("missing wrapper", func(t *testing.T) {
		_, svc := newFakeBackend(t)

		url, err := svc.Files.View(context.Background(), "ws-1", "missing.png")
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("null wrapper", func(t *testing.T) {
		backend, svc := newFakeBackend(t)
		backend.on(http.MethodGet, "/workspaces/ws-1/files/view/null.png", nil)

		url, err := svc.Files.View(context.Background(), "ws-1", "null.png")
		require.NoError(t, err)
		assert.Empty(t, url)
	})
}

func TestNotificationService(t *testing.T) {
	backend, svc := newFakeBackend(t)
	ctx := context.Background()

	backend.on(http.MethodGet, "/notifications", []models.Notification{
		{ID: "n-1", Title: "You were mentioned"},
		{ID: "n-2", Title: "Invitation accepted", IsRead: true},
	})

	notifications, err := svc.Notifications.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)

	require.NoError(t, svc.Notifications.MarkAsRead(ctx, "n-1"))
	assert.Equal(t, http.MethodPut, backend.last.Method)
	assert.Equal(t, "/api/proxy/notifications/n-1/read", backend.last.Path)
	assert.Empty(t, backend.last.Body)

	require.NoError(t, svc.Notifications.MarkAllAsRead(ctx))
	assert.Equal(t, http.MethodPut, backend.last.Method)
	assert.Equal(t, "/api/proxy/notifications/read-all", backend.last.Path)

	// Acknowledgement bodies are not part of the contract.
	backend.on(http.MethodPut, "/notifications/n-2/read", true)
	require.NoError(t, svc.Notifications.MarkAsRead(ctx, "n-2"))
	backend.on(http.MethodPut, "/notifications/read-all", "ok")
	require.NoError(t, svc.Notifications.MarkAllAsRead(ctx))
}

func TestPresenceService(t *testing.T) {
	backend, svc := newFakeBackend(t)
	ctx := context.Background()

	require.NoError(t, svc.Presence.Heartbeat(ctx))
	assert.Equal(t, http.MethodPost, backend.last.Method)
	assert.Equal(t, "/api/proxy/presence/heartbeat", backend.last.Path)

	backend.on(http.MethodPost, "/presence/check", []string{"u-2"})
	online, err := svc.Presence.Check(ctx, []string{"u-1", "u-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u-2"}, online)
	assert.JSONEq(t, `["u-1","u-2"]`, backend.last.Body)
}

func TestUserService(t *testing.T) {
	backend, svc := newFakeBackend(t)
	ctx := context.Background()

	backend.on(http.MethodGet, "/users/me", models.User{ID: "u-1", Email: "alice@example.com"})
	me, err := svc.Users.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	name := "Alice Liddell"
	backend.on(http.MethodPut, "/users", models.User{ID: "u-1", Name: name})
	updated, err := svc.Users.UpdateProfile(ctx, models.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.JSONEq(t, `{"name":"Alice Liddell"}`, backend.last.Body)
}

func TestInvitationService(t *testing.T) {
	backend, svc := newFakeBackend(t)
	ctx := context.Background()

	backend.on(http.MethodGet, "/invitations/my", models.Page[models.Invitation]{
		Items:      []models.Invitation{{ID: "inv-1", WorkspaceID: "ws-1"}},
		Page:       1,
		PageSize:   20,
		TotalCount: 1,
		TotalPages: 1,
	})
	page, err := svc.Invitations.GetMine(ctx)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalCount)

	err = svc.Invitations.Send(ctx, "ws-1", models.SendInvitationRequest{Email: "bob@example.com", Role: "Member"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, backend.last.Method)
	assert.Equal(t, "/api/proxy/workspaces/ws-1/invitations", backend.last.Path)
	assert.JSONEq(t, `{"email":"bob@example.com","role":"Member"}`, backend.last.Body)

	require.NoError(t, svc.Invitations.Respond(ctx, "inv-1", true))
	assert.Equal(t, "/api/proxy/invitations/inv-1/respond", backend.last.Path)
	assert.Equal(t, "accept=true", backend.last.RawQuery)

	require.NoError(t, svc.Invitations.Respond(ctx, "inv-1", false))
	assert.Equal(t, "accept=false", backend.last.RawQuery)
}

func TestWorkspaceService_Get(t *testing.T) {
	backend, svc := newFakeBackend(t)
	backend.on(http.MethodGet, "/workspaces/ws-1", models.Workspace{ID: "ws-1", Status: models.WorkspaceStatusArchived})

	ws, err := svc.Workspaces.Get(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.True(t, ws.IsArchived())
}

func TestAuthService(t *testing.T) {
	backend, svc := newFakeBackend(t)
	ctx := context.Background()

	backend.on(http.MethodPost, "/auth/login", models.User{ID: "u-1", Email: "alice@example.com"})
	user, err := svc.Auth.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	require.NoError(t, svc.Auth.Signup(ctx, models.SignupRequest{Email: "alice@example.com", Password: "pw"}))
	assert.Equal(t, "/api/proxy/auth/signup", backend.last.Path)

	require.NoError(t, svc.Auth.VerifyEmail(ctx, models.VerifyEmailRequest{Email: "alice@example.com", Code: "123456"}))
	assert.JSONEq(t, `{"email":"alice@example.com","code":"123456"}`, backend.last.Body)

	require.NoError(t, svc.Auth.Logout(ctx))
	assert.Equal(t, "/api/proxy/auth/logout", backend.last.Path)
}

func TestServices_PropagateRequestErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"session expired"}`))
	}))
	defer server.Close()

	client, err := request.New(&request.Config{BaseURL: server.URL})
	require.NoError(t, err)
	svc := New(client)

	_, err = svc.Notifications.GetAll(context.Background())
	require.Error(t, err)
	assert.True(t, request.IsUnauthorized(err))

	_, err = svc.Files.View(context.Background(), "ws-1", "a.png")
	assert.True(t, request.IsUnauthorized(err))
}

func TestValidateAvatar(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		mimeType string
		wantErr  error
	}{
		{name: "png within limit", size: 1024, mimeType: "image/png"},
		{name: "exactly at limit", size: MaxAvatarSize, mimeType: "image/webp"},
		{name: "uppercase type", size: 1024, mimeType: "IMAGE/JPEG"},
		{name: "too large", size: MaxAvatarSize + 1, mimeType: "image/png", wantErr: ErrFileTooLarge},
		{name: "gif rejected", size: 1024, mimeType: "image/gif", wantErr: ErrUnsupportedType},
		{name: "empty type", size: 1024, wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvatar(tt.size, tt.mimeType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateAttachment(t *testing.T) {
	assert.NoError(t, ValidateAttachment(MaxAttachmentSize))
	assert.ErrorIs(t, ValidateAttachment(MaxAttachmentSize+1), ErrFileTooLarge)
}
