package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/pkg/config"
	"github.com/noah-isme/ssp-overtime-api/pkg/errors"
)

func testPortalConfig(baseURL string) config.PortalConfig {
	return config.PortalConfig{
		BaseURL:          baseURL,
		AttendancePath:   "/FW99001Z.aspx",
		PersonalPath:     "/FW21003Z.aspx",
		RequestTimeout:   2 * time.Second,
		VerifyTLS:        false,
		DisablePagingArg: "9999",
	}
}

func TestClientFetchAttendancePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/FW99001Z.aspx", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte("<html>attendance</html>"))
	}))
	defer srv.Close()

	client := NewClient(ClientParams{Config: testPortalConfig(srv.URL), Logger: zap.NewNop()})

	body, err := client.FetchAttendancePage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>attendance</html>", body)
}

func TestClientFetchPersonalPageDisablesPaging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/FW21003Z.aspx", r.URL.Path)
		assert.Equal(t, "9999", r.URL.Query().Get("ctl00$ContentPlaceHolder1$ddlPage"))
		_, _ = w.Write([]byte("<html>personal</html>"))
	}))
	defer srv.Close()

	client := NewClient(ClientParams{Config: testPortalConfig(srv.URL), Logger: zap.NewNop()})

	body, err := client.FetchPersonalPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>personal</html>", body)
}

func TestHTTPGetterNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	getter := NewHTTPGetter(testPortalConfig(srv.URL), zap.NewNop())

	_, err := getter.Get(context.Background(), srv.URL+"/FW99001Z.aspx")
	require.Error(t, err)
	assert.Equal(t, errors.ErrPortalStatus.Code, errors.FromError(err).Code)
}

func TestHTTPGetterTimeoutIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	cfg := testPortalConfig(srv.URL)
	cfg.RequestTimeout = 20 * time.Millisecond
	getter := NewHTTPGetter(cfg, zap.NewNop())

	_, err := getter.Get(context.Background(), srv.URL+"/FW99001Z.aspx")
	require.Error(t, err)
	assert.Equal(t, errors.ErrPortalUnreachable.Code, errors.FromError(err).Code)
}

func TestHTTPGetterConnectionRefusedIsUnreachable(t *testing.T) {
	getter := NewHTTPGetter(testPortalConfig("http://127.0.0.1:1"), zap.NewNop())

	_, err := getter.Get(context.Background(), "http://127.0.0.1:1/FW99001Z.aspx")
	require.Error(t, err)
	assert.Equal(t, errors.ErrPortalUnreachable.Code, errors.FromError(err).Code)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/FW99001Z.aspx", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := testPortalConfig(srv.URL + "/")
	client := NewClient(ClientParams{Config: cfg})

	_, err := client.FetchAttendancePage(context.Background())
	require.NoError(t, err)
}
