package toggl

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAuth_Precedence(t *testing.T) {
	tests := []struct {
		name                           string
		token, email, password, cookie string
		want                           Auth
		wantErr                        error
	}{
		{name: "token wins", token: "t", email: "a@b.c", password: "p", cookie: "s", want: TokenAuth{Token: "t"}},
		{name: "email and password", email: "a@b.c", password: "p", cookie: "s", want: BasicAuth{Email: "a@b.c", Password: "p"}},
		{name: "email without password falls through", email: "a@b.c", cookie: "s", want: SessionAuth{Cookie: "s"}},
		{name: "session", cookie: "s", want: SessionAuth{Cookie: "s"}},
		{name: "nothing", wantErr: ErrNoAuth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAuth(tt.token, tt.email, tt.password, tt.cookie)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthFromEnv(t *testing.T) {
	t.Setenv("TOGGL_API_TOKEN", "")
	t.Setenv("TOGGL_EMAIL", "me@example.com")
	t.Setenv("TOGGL_PASSWORD", "secret")
	t.Setenv("TOGGL_SESSION_COOKIE", "")

	a, err := AuthFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "email", a.String())
}

func TestNewClient_RequiresAuth(t *testing.T) {
	_, err := NewClient(nil)
	require.ErrorIs(t, err, ErrNoAuth)
}

func TestAuthModes_SetCredentials(t *testing.T) {
	tests := []struct {
		auth  Auth
		check func(t *testing.T, r *http.Request)
	}{
		{TokenAuth{Token: "tok"}, func(t *testing.T, r *http.Request) {
			u, p, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "tok", u)
			assert.Equal(t, "api_token", p)
		}},
		{BasicAuth{Email: "me@example.com", Password: "pw"}, func(t *testing.T, r *http.Request) {
			u, p, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "me@example.com", u)
			assert.Equal(t, "pw", p)
		}},
		{SessionAuth{Cookie: "abc"}, func(t *testing.T, r *http.Request) {
			_, _, ok := r.BasicAuth()
			assert.False(t, ok)
			ck, err := r.Cookie(SessionCookieName)
			require.NoError(t, err)
			assert.Equal(t, "abc", ck.Value)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.auth.String(), func(t *testing.T) {
			var got *http.Request
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Clone(context.Background())
				writeJSON(w, http.StatusOK, map[string]any{"id": 1, "email": "me@example.com"})
			}))
			c.auth = tt.auth

			u, err := c.Me.Get(testContext(t))
			require.NoError(t, err)
			assert.Equal(t, int64(1), u.ID)
			require.NotNil(t, got)
			tt.check(t, got)
			assert.Equal(t, "application/json", got.Header.Get("Accept"))
		})
	}
}

func TestCreateSession_ReturnsCookie(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/accounts/sessions":
			http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: "sess-1"})
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete && r.URL.Path == "/accounts/sessions":
			ck, err := r.Cookie(SessionCookieName)
			if err != nil || ck.Value != "sess-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))

	cookie, err := CreateSession(testContext(t), nil, c.accountsURL, "me@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", cookie)

	sc, err := NewClient(SessionAuth{Cookie: cookie}, WithAccountsURL(c.accountsURL), WithRequestInterval(0))
	require.NoError(t, err)
	require.NoError(t, sc.DestroySession(testContext(t)))

	require.Error(t, c.DestroySession(testContext(t)))
}
