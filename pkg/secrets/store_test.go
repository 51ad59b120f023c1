package secrets

import (
	"context"
	"errors"
	"strings"
	"testing"

	pkgerrors "sfdc-gateway/pkg/errors"
)

func TestNewStore(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		wantErr     bool
		errContains string
	}{
		{name: "memory", provider: "memory", wantErr: false},
		{name: "env", provider: "env", wantErr: false},
		{name: "default is env", provider: "", wantErr: false},
		{name: "unknown provider", provider: "unknown", wantErr: true, errContains: "unsupported secret provider"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewStore(Config{Provider: tc.provider})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tc.errContains != "" && !strings.Contains(err.Error(), tc.errContains) {
					t.Fatalf("error = %q, want contains %q", err.Error(), tc.errContains)
				}
				if store != nil {
					t.Fatalf("store should be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store == nil {
				t.Fatalf("store should not be nil")
			}
		})
	}
}

func TestMemoryAndEnvStoreBasicContract(t *testing.T) {
	ctx := context.Background()
	stores := []Store{NewMemoryStore(), NewEnvStore()}

	for _, s := range stores {
		if err := s.Set(ctx, "secret_test_key", "value"); err != nil {
			t.Fatalf("set secret failed: %v", err)
		}
		got, err := s.Get(ctx, "secret_test_key")
		if err != nil {
			t.Fatalf("get secret failed: %v", err)
		}
		if got != "value" {
			t.Fatalf("get secret = %q, want value", got)
		}
		if err := s.Delete(ctx, "secret_test_key"); err != nil {
			t.Fatalf("delete secret failed: %v", err)
		}
		if _, err = s.Get(ctx, "secret_test_key"); !errors.Is(err, pkgerrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	got, err := Resolve(ctx, nil, "", "inline-value")
	if err != nil {
		t.Fatalf("Resolve with empty key: %v", err)
	}
	if got != "inline-value" {
		t.Fatalf("Resolve fallback = %q, want inline-value", got)
	}

	if _, err := Resolve(ctx, nil, "some_key", ""); err == nil {
		t.Fatalf("Resolve with key but nil store should fail")
	}

	mem := NewMemoryStore()
	if err := mem.Set(ctx, "sfdc_client_secret", "s3cret"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = Resolve(ctx, mem, "sfdc_client_secret", "inline")
	if err != nil {
		t.Fatalf("Resolve from store: %v", err)
	}
	if got != "s3cret" {
		t.Fatalf("Resolve = %q, want s3cret", got)
	}
}
