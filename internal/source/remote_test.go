package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRemote(t *testing.T, handler http.HandlerFunc) *Remote {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r, err := NewRemote(RemoteConfig{
		BaseURL: server.URL + "/1/",
		Key:     "k3y",
		Token:   "s3cret",
		Client:  server.Client(),
	})
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}
	return r
}

func TestRemote_RequestShape(t *testing.T) {
	var gotPath, gotKey, gotToken string
	r := newTestRemote(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotKey = req.URL.Query().Get("key")
		gotToken = req.URL.Query().Get("token")
		w.Write([]byte(`[{"id":"b1","name":"Work"},{"id":"b2","name":"Home"}]`))
	})

	boards, err := r.ListBoards(context.Background())
	if err != nil {
		t.Fatalf("ListBoards failed: %v", err)
	}

	if gotPath != "/1/members/me/boards" {
		t.Errorf("path = %q, want /1/members/me/boards", gotPath)
	}
	if gotKey != "k3y" || gotToken != "s3cret" {
		t.Errorf("credentials = %q/%q, want k3y/s3cret", gotKey, gotToken)
	}
	if len(boards) != 2 || boards[0].Name != "Work" || boards[1].Name != "Home" {
		t.Errorf("boards = %+v, want [Work Home]", boards)
	}
}

func TestRemote_ScopedPaths(t *testing.T) {
	r := newTestRemote(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/1/boards/b1/lists":
			w.Write([]byte(`[{"id":"c1","name":"Todo"}]`))
		case "/1/lists/c1/cards":
			w.Write([]byte(`[{"id":"k1","name":"Buy milk","due":null}]`))
		default:
			http.NotFound(w, req)
		}
	})
	ctx := context.Background()

	cols, err := r.ListColumns(ctx, "b1")
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	if len(cols) != 1 || cols[0].ID != "c1" {
		t.Errorf("ListColumns = %+v, want [c1]", cols)
	}

	cards, err := r.ListCards(ctx, "c1")
	if err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "Buy milk" {
		t.Errorf("ListCards = %+v, want [Buy milk]", cards)
	}
	if string(cards[0].Extra["due"]) != "null" {
		t.Errorf("extra field due = %s, want null", cards[0].Extra["due"])
	}
}

func TestRemote_UnknownIDIsEmpty(t *testing.T) {
	r := newTestRemote(t, func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/1/boards/") {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		http.NotFound(w, req)
	})
	ctx := context.Background()

	cols, err := r.ListColumns(ctx, "nope")
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	if len(cols) != 0 {
		t.Errorf("ListColumns = %+v, want empty", cols)
	}

	cards, err := r.ListCards(ctx, "nope")
	if err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("ListCards = %+v, want empty", cards)
	}
}

func TestRemote_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   error
	}{
		{"server error", http.StatusInternalServerError, `oops`, ErrUnavailable},
		{"unauthorized", http.StatusUnauthorized, `invalid token`, ErrUnavailable},
		{"boards not found", http.StatusNotFound, ``, ErrUnavailable},
		{"html body", http.StatusOK, `<html></html>`, ErrDecode},
		{"object body", http.StatusOK, `{"id":"b1","name":"Work"}`, ErrDecode},
		{"empty body", http.StatusOK, ``, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRemote(t, func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			boards, err := r.ListBoards(context.Background())
			if !errors.Is(err, tt.kind) {
				t.Fatalf("ListBoards error = %v, want %v", err, tt.kind)
			}
			if boards != nil {
				t.Errorf("boards = %v, want nil", boards)
			}
			if strings.Contains(err.Error(), "s3cret") {
				t.Errorf("error leaks token: %v", err)
			}
		})
	}
}

func TestRemote_TransportErrorRedacted(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	r, err := NewRemote(RemoteConfig{BaseURL: base, Key: "k3y", Token: "s3cret"})
	if err != nil {
		t.Fatalf("NewRemote failed: %v", err)
	}

	_, err = r.ListBoards(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ListBoards error = %v, want ErrUnavailable", err)
	}
	if strings.Contains(err.Error(), "s3cret") || strings.Contains(err.Error(), "k3y") {
		t.Errorf("error leaks credentials: %v", err)
	}
}

func TestNewRemote_RequiresBaseURL(t *testing.T) {
	if _, err := NewRemote(RemoteConfig{}); err == nil {
		t.Error("NewRemote with empty base url should fail")
	}
}

func TestRemote_PathEscaping(t *testing.T) {
	var gotRawPath string
	r := newTestRemote(t, func(w http.ResponseWriter, req *http.Request) {
		gotRawPath = req.URL.EscapedPath()
		w.Write([]byte(`[]`))
	})

	if _, err := r.ListCards(context.Background(), "a/b"); err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	if gotRawPath != "/1/lists/a%2Fb/cards" {
		t.Errorf("escaped path = %q, want /1/lists/a%%2Fb/cards", gotRawPath)
	}
}
