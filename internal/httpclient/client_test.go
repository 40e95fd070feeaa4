package httpclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(time.Second, "")
	body, err := c.Fetch(t.Context(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestFetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(time.Second, "test-agent").Fetch(t.Context(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !IsStatus(err) {
		t.Errorf("expected StatusError, got %T: %v", err, err)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	_, err := New(50*time.Millisecond, "").Fetch(t.Context(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if IsStatus(err) {
		t.Errorf("timeout should not be reported as a status error")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewWithTransport(t *testing.T) {
	var gotUA string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotUA = r.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<rss/>")),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})
	c := NewWithTransport(time.Second, "custom-agent", rt)
	body, err := c.Fetch(t.Context(), "http://feeds.example.test/rss")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "<rss/>" || gotUA != "custom-agent" {
		t.Errorf("body=%q ua=%q", body, gotUA)
	}
}
