package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/mailx/asks"
	"github.com/reusee/mailx/generators"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/modes"
	"github.com/reusee/mailx/storages"
)

type echoBackend struct{}

func (echoBackend) Args() generators.GeneratorArgs {
	return generators.GeneratorArgs{
		Provider: "fake",
		Model:    "fake-1",
	}
}

func (echoBackend) Generate(ctx context.Context, turns []generators.Turn, temperature float32) (string, error) {
	return "Counting.\n@@\nwrite(\"total\", db.summary()[\"message_count\"])\n@@", nil
}

func testServer(t *testing.T) *httptest.Server {
	var ts *httptest.Server
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() generators.GetDefaultGenerator {
			return func() (generators.Generator, error) {
				return echoBackend{}, nil
			}
		},
	).Call(func(
		newServer NewServer,
		logger logs.Logger,
	) {
		store, err := storages.Open(t.Context(), filepath.Join(t.TempDir(), "mailx.db"), logger)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			store.Close()
		})
		if _, err := store.Insert(t.Context(), storages.Message{
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			FromEmail: "a@b.com",
		}); err != nil {
			t.Fatal(err)
		}
		ts = httptest.NewServer(newServer(store).Routes())
		t.Cleanup(ts.Close)
	})
	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		resp.Body.Close()
	})
	return resp
}

func TestSessionFlow(t *testing.T) {
	ts := testServer(t)

	resp := post(t, ts.URL+"/sessions", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("empty id")
	}

	resp = post(t, ts.URL+"/sessions/"+created.ID+"/ask", map[string]string{
		"query": "how many messages?",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d", resp.StatusCode)
	}
	var answer asks.Answer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		t.Fatal(err)
	}
	if answer.ExecErr != "" || !strings.Contains(answer.Output, "total 1") {
		t.Fatalf("got %+v", answer)
	}

	turnsResp, err := http.Get(ts.URL + "/sessions/" + created.ID + "/turns")
	if err != nil {
		t.Fatal(err)
	}
	defer turnsResp.Body.Close()
	var turns []generators.Turn
	if err := json.NewDecoder(turnsResp.Body).Decode(&turns); err != nil {
		t.Fatal(err)
	}
	if len(turns) != 6 {
		t.Fatalf("got %d turns", len(turns))
	}

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/sessions/"+created.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("got %d", delResp.StatusCode)
	}

	resp = post(t, ts.URL+"/sessions/"+created.ID+"/ask", map[string]string{"query": "x"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got %d", resp.StatusCode)
	}
}

func TestBadRequests(t *testing.T) {
	ts := testServer(t)

	resp := post(t, ts.URL+"/sessions/nope/ask", map[string]string{"query": "x"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got %d", resp.StatusCode)
	}

	resp = post(t, ts.URL+"/sessions", nil)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	bad, err := http.Post(ts.URL+"/sessions/"+created.ID+"/ask", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d", bad.StatusCode)
	}
}

func TestSummaryAndHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/summary")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var summary storages.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatal(err)
	}
	if summary.MessageCount != 1 {
		t.Fatalf("got %+v", summary)
	}

	health, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Fatalf("got %d", health.StatusCode)
	}
}
