package nets

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/mailx/configs"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/modes"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		modes.ForTest(t),
		new(Module),
	)
}

func TestIsLocalAddr(t *testing.T) {
	testScope(t).Call(func(
		isLocal IsLocalAddr,
	) {
		for addr, want := range map[string]bool{
			"127.0.0.1:80":   true,
			"[::1]:443":      true,
			"192.168.1.2":    true,
			"8.8.8.8:53":     false,
			"localhost:8080": true,
		} {
			got, err := isLocal(addr)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Fatalf("%s: got %v", addr, got)
			}
		}
	})
}

func TestHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	defer server.Close()

	testScope(t).Call(func(
		client HTTPClient,
		addr ProxyAddr,
	) {
		if addr != "" {
			t.Fatalf("proxy should be disabled in tests, got %q", addr)
		}
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != "ok" {
			t.Fatalf("got %q", body)
		}
	})
}

func TestProxyAddrFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mailx.cue")
	if err := os.WriteFile(path, []byte(`proxy_addr: "socks://127.0.0.1:1080"`), 0o644); err != nil {
		t.Fatal(err)
	}
	testScope(t).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{path}, mailconfigs.Schema())
		},
		func() modes.Mode {
			return modes.ModeProduction
		},
	).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
	) {
		if addr != "socks://127.0.0.1:1080" {
			t.Fatalf("got %q", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" {
			t.Fatalf("got %s", u.Scheme)
		}
	})
}
