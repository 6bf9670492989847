package rejimde

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil), srv
}

func TestFetchComments_EnvelopeShapes(t *testing.T) {
	one := `{"id": 7, "author": {"name": "Zeynep"}, "content": "harika"}`

	cases := []struct {
		name string
		body string
	}{
		{"status wrapper", `{"status":"success","data":[` + one + `]}`},
		{"bare array", `[` + one + `]`},
		{"data wrapper", `{"data":[` + one + `]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			})

			got, err := c.FetchComments(context.Background(), 1)
			if err != nil {
				t.Fatalf("FetchComments: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].ID != 7 || got[0].Author.Name != "Zeynep" {
				t.Errorf("normalized = %+v", got[0])
			}
		})
	}
}

func TestDo_BearerHeader(t *testing.T) {
	var gotAuth string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","data":{}}`))
	}

	t.Run("with token", func(t *testing.T) {
		c, _ := newTestClient(t, handler)
		c.Tokens = StaticToken("abc123")
		if _, err := c.do(context.Background(), "GET", "/x", nil, nil); err != nil {
			t.Fatalf("do: %v", err)
		}
		if gotAuth != "Bearer abc123" {
			t.Errorf("Authorization = %q", gotAuth)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		c, _ := newTestClient(t, handler)
		if _, err := c.do(context.Background(), "GET", "/x", nil, nil); err != nil {
			t.Fatalf("do: %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Authorization = %q, want empty", gotAuth)
		}
	})
}

func TestDo_ErrorStatusIsSoftFailure(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			"known business message localized",
			http.StatusBadRequest,
			`{"success":false,"message":"content must be started first"}`,
			"Önce planı başlatmalısın.",
		},
		{
			"unknown message passed through",
			http.StatusConflict,
			`{"success":false,"message":"Bu slot kapalı."}`,
			"Bu slot kapalı.",
		},
		{
			"non-JSON body degrades to generic",
			http.StatusBadGateway,
			`<html>upstream error</html>`,
			MsgServerError,
		},
		{
			"empty message degrades to generic",
			http.StatusInternalServerError,
			`{"success":false,"message":""}`,
			MsgServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			res, err := c.do(context.Background(), "POST", "/x", nil, nil)
			if err != nil {
				t.Fatalf("do returned hard error: %v", err)
			}
			if res.Success {
				t.Fatal("Success = true, want soft failure")
			}
			if res.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", res.Message, tc.wantMsg)
			}
		})
	}
}

func TestDo_EnvelopeFailureOn200(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"reward already claimed"}`))
	})

	res, err := c.do(context.Background(), "POST", "/x", nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.Success {
		t.Fatal("Success = true, want false")
	}
	if res.Message != "Ödül zaten alınmış." {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Err() == nil {
		t.Error("Err() = nil on failed result")
	}
}

func TestDo_TransportErrorIsHard(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	if _, err := c.do(context.Background(), "GET", "/x", nil, nil); err == nil {
		t.Fatal("want error after server closed")
	}
}

func TestDecodeList_Unrecognized(t *testing.T) {
	if _, err := decodeList([]byte(`{"count": 3}`)); err == nil {
		t.Fatal("want error for non-list payload")
	}
}

func TestParseTS(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-08-31T09:15:00Z", "2026-08-31T09:15:00Z"},
		{"2026-08-31T09:15:00.250Z", "2026-08-31T09:15:00Z"},
		{"2026-08-31T09:15:00", "2026-08-31T09:15:00Z"},
		{"2026-08-31 09:15:00", "2026-08-31T09:15:00Z"},
	}
	for _, tc := range cases {
		got := parseTS(tc.in)
		if got == nil {
			t.Errorf("parseTS(%q) = nil", tc.in)
			continue
		}
		if got.Truncate(time.Second).UTC().Format(time.RFC3339) != tc.want {
			t.Errorf("parseTS(%q) = %v, want %s", tc.in, got, tc.want)
		}
	}

	if parseTS("") != nil {
		t.Error("parseTS(\"\") should be nil")
	}
	if parseTS("31/08/2026") != nil {
		t.Error("parseTS on unknown layout should be nil")
	}
}
