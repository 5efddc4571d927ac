package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDocument_ParsesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua == "" || ua == "Go-http-client/1.1" {
			t.Errorf("expected browser User-Agent, got %q", ua)
		}
		w.Write([]byte(`<html><body><h1>Campus News</h1></body></html>`))
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	doc, err := c.Document(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Campus News" {
		t.Errorf("h1 = %q, want %q", got, "Campus News")
	}
}

func TestDocument_Non200IsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	_, err := c.Document(context.Background(), srv.URL)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", fe.StatusCode)
	}
}

func TestDocument_NetworkErrorIsFetchError(t *testing.T) {
	c := New(time.Second)
	_, err := c.Document(context.Background(), "http://127.0.0.1:1/nothing")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}
