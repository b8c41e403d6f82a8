package gateway

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdvisor struct {
	advice string
	err    error
	got    []byte
}

func (f *fakeAdvisor) Advise(_ context.Context, profileJSON []byte) (string, error) {
	f.got = append([]byte(nil), profileJSON...)
	return f.advice, f.err
}

func newTestServer(t *testing.T, adv Advisor) (*httptest.Server, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	srv := httptest.NewServer(NewServer(Config{}, adv, log).Handler())
	t.Cleanup(srv.Close)
	return srv, hook
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestAdviceSuccess(t *testing.T) {
	adv := &fakeAdvisor{advice: "## Plan\n- save"}
	srv, hook := newTestServer(t, adv)

	resp, body := do(t, http.MethodPost, srv.URL+DefaultPath, `{"incomes":[]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"advice":"## Plan\n- save"}`, body)
	assert.JSONEq(t, `{"incomes":[]}`, string(adv.got))

	_, err := uuid.Parse(resp.Header.Get("X-Request-Id"))
	assert.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, resp.Header.Get("X-Request-Id"), entry.Data["request_id"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestAdviceMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAdvisor{})

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		resp, body := do(t, m, srv.URL+DefaultPath, "")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, m)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, body, m)
	}
}

func TestAdviceBadBody(t *testing.T) {
	adv := &fakeAdvisor{advice: "unused"}
	srv, _ := newTestServer(t, adv)

	for _, body := range []string{"", "{not json"} {
		resp, out := do(t, http.MethodPost, srv.URL+DefaultPath, body)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Contains(t, out, `"error"`)
	}
	assert.Nil(t, adv.got, "advisor must not be called")
}

func TestAdviceUpstreamFailure(t *testing.T) {
	srv, hook := newTestServer(t, &fakeAdvisor{err: errors.New("advice: upstream status 502: bad gateway")})

	resp, body := do(t, http.MethodPost, srv.URL+DefaultPath, `{}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"advice: upstream status 502: bad gateway"}`, body)

	var sawError bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeAdvisor{})
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)
}

func TestCustomPath(t *testing.T) {
	log, _ := test.NewNullLogger()
	srv := httptest.NewServer(NewServer(Config{Path: "/api/advice"}, &fakeAdvisor{advice: "x"}, log).Handler())
	defer srv.Close()

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/advice", `{}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+DefaultPath, `{}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewServer(Config{}, &fakeAdvisor{advice: "x"}, log)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, _ := do(t, http.MethodGet, "http://"+ln.Addr().String()+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
