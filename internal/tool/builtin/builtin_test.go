package builtin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sfdc-gateway/internal/salesforce"
)

// newBackend 起一个假的 Salesforce 实例，返回指向它的 client 和 session
func newBackend(t *testing.T, handler http.HandlerFunc) (*salesforce.Client, *salesforce.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return salesforce.NewClient(), &salesforce.Session{InstanceURL: srv.URL, AccessToken: "tok"}
}
