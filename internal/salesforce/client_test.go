// Copyright 2026 fanjia1024
// Tests for the object API facade

package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(srv *httptest.Server) *Session {
	return &Session{InstanceURL: srv.URL, AccessToken: "tok"}
}

func TestClient_Query(t *testing.T) {
	var gotSOQL, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/query", r.URL.Path)
		gotSOQL = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalSize":2,"done":true,"records":[{"Id":"001A"},{"Id":"001B"}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	records, err := c.Query(context.Background(), testSession(srv), "SELECT Id FROM Account")
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, "001A", records[0]["Id"])
	assert.Equal(t, "SELECT Id FROM Account", gotSOQL)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestClient_QueryMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"message":"unexpected token: FORM","errorCode":"MALFORMED_QUERY"}]`))
	}))
	defer srv.Close()

	c := NewClient()
	_, err := c.Query(context.Background(), testSession(srv), "SELECT Id FORM Account")
	require.Error(t, err)

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, http.StatusBadRequest, qe.StatusCode)
	assert.Contains(t, qe.Body, "MALFORMED_QUERY")
}

func TestClient_Retrieve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/sobjects/Case/500A0000001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Id":"500A0000001","Subject":"Printer on fire","Status":"New"}`))
	}))
	defer srv.Close()

	c := NewClient()
	record, err := c.Retrieve(context.Background(), testSession(srv), "Case", "500A0000001")
	require.NoError(t, err)
	assert.Equal(t, "Printer on fire", record["Subject"])
}

func TestClient_RetrieveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`[{"message":"The requested resource does not exist","errorCode":"NOT_FOUND"}]`))
	}))
	defer srv.Close()

	c := NewClient()
	_, err := c.Retrieve(context.Background(), testSession(srv), "Case", "500MISSING")
	require.Error(t, err)

	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "Case", nfe.ObjectType)
	assert.Equal(t, "500MISSING", nfe.ID)
}

func TestClient_Create(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/data/v59.0/sobjects/Case", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"500B0000002","success":true,"errors":[]}`))
	}))
	defer srv.Close()

	c := NewClient()
	result, err := c.Create(context.Background(), testSession(srv), "Case", map[string]any{"Subject": "Help"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "500B0000002", result.ID)
	assert.Equal(t, "Help", gotBody["Subject"])
}

func TestClient_CreateValidationRuleFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"message":"Subject is required by rule","errorCode":"FIELD_CUSTOM_VALIDATION_EXCEPTION"}]`))
	}))
	defer srv.Close()

	c := NewClient()
	result, err := c.Create(context.Background(), testSession(srv), "Case", map[string]any{})
	require.NoError(t, err, "business-rule failures must surface as a structured result, not an error")

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorDetail(), "FIELD_CUSTOM_VALIDATION_EXCEPTION")
	assert.Contains(t, result.ErrorDetail(), "Subject is required by rule")
}

func TestClient_Update(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/services/data/v59.0/sobjects/Case/500C0000003", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient()
	result, err := c.Update(context.Background(), testSession(srv), "Case", "500C0000003", map[string]any{"Status": "Closed"})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Closed", gotBody["Status"])
}

func TestClient_UpdateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"message":"cannot close case with open tasks","errorCode":"FIELD_CUSTOM_VALIDATION_EXCEPTION"}]`))
	}))
	defer srv.Close()

	c := NewClient()
	result, err := c.Update(context.Background(), testSession(srv), "Case", "500C0000003", map[string]any{"Status": "Closed"})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorDetail(), "open tasks")
}

func TestClient_Identity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/oauth2/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":"005ABC","organization_id":"00DXYZ","preferred_username":"ops@example.com"}`))
	}))
	defer srv.Close()

	c := NewClient()
	claims, err := c.Identity(context.Background(), testSession(srv))
	require.NoError(t, err)

	assert.Equal(t, "005ABC", claims["user_id"])
	assert.Equal(t, "00DXYZ", claims["organization_id"])
}

func TestClient_APIVersionOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v61.0/query", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totalSize":0,"done":true,"records":[]}`))
	}))
	defer srv.Close()

	c := NewClient(WithAPIVersion("v61.0"))
	_, err := c.Query(context.Background(), testSession(srv), "SELECT Id FROM Case")
	require.NoError(t, err)
}
