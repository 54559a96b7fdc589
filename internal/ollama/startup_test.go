package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// startupServer fakes the endpoints EnsureReady touches. models is the set
// reported by /api/tags; pulls records every name sent to /api/pull.
func startupServer(t *testing.T, models []string, pullStatus int) (*Client, *[]string) {
	t.Helper()
	pulls := &[]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.Write(tagsJSON(models...))
		case "/api/pull":
			var req pullRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("malformed pull request: %v", err)
			}
			*pulls = append(*pulls, req.Name)
			if pullStatus != http.StatusOK {
				w.WriteHeader(pullStatus)
				return
			}
			io.WriteString(w, `{"status":"success"}`+"\n")
		case "/api/chat":
			io.WriteString(w, `{"message":{"role":"assistant","content":"pong"}}`)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL, 0), pulls
}

func TestEnsureReadyAllModelsPresent(t *testing.T) {
	c, pulls := startupServer(t, []string{"qwen2.5:latest", "nomic-embed-text:latest"}, http.StatusOK)

	var out bytes.Buffer
	if err := EnsureReady(context.Background(), c, "qwen2.5", "nomic-embed-text", &out); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if len(*pulls) != 0 {
		t.Errorf("pulled %v, want no pulls when models are present", *pulls)
	}
	if !strings.Contains(out.String(), "model qwen2.5: ready") {
		t.Errorf("output missing ready line: %q", out.String())
	}
}

func TestEnsureReadyPullsMissingModel(t *testing.T) {
	c, pulls := startupServer(t, []string{"nomic-embed-text:latest"}, http.StatusOK)

	var out bytes.Buffer
	if err := EnsureReady(context.Background(), c, "qwen2.5", "nomic-embed-text", &out); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if len(*pulls) != 1 || (*pulls)[0] != "qwen2.5" {
		t.Fatalf("pulls = %v, want exactly [qwen2.5]", *pulls)
	}
	if !strings.Contains(out.String(), "model qwen2.5: pulling...") {
		t.Errorf("output missing pull progress: %q", out.String())
	}
	if !strings.Contains(out.String(), "model qwen2.5: ready") {
		t.Errorf("output missing post-pull ready line: %q", out.String())
	}
}

func TestEnsureReadyPullFailure(t *testing.T) {
	c, _ := startupServer(t, nil, http.StatusInternalServerError)

	var out bytes.Buffer
	err := EnsureReady(context.Background(), c, "qwen2.5", "nomic-embed-text", &out)
	if err == nil {
		t.Fatal("expected error when the pull fails")
	}
	if !strings.Contains(err.Error(), "qwen2.5") {
		t.Errorf("error = %v, want the failing model named", err)
	}
}

func TestEnsureReadyOllamaDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, 0)
	if err := EnsureReady(context.Background(), c, "qwen2.5", "nomic-embed-text", io.Discard); err == nil {
		t.Fatal("expected error when Ollama is unreachable")
	}
}
