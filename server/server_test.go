package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "github.com/gogpu/gg/raster"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Width: 400, Height: 320})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex(t *testing.T) {
	h := newServer(t).Handler()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Flow Visualizer",
		`<option value="cylinder">Cylinder in Flow</option>`,
		`name="U"`,
		`/plot.png?`,
		`\psi(x, y) = U \cdot y`,
		"viridis",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("GET / body does not contain %q", want)
		}
	}
}

func TestIndexCustom(t *testing.T) {
	h := newServer(t).Handler()

	rec := get(t, h, "/?pattern=custom&expr="+url.QueryEscape("x**2 - y**2"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Function parsed successfully!", ">log(r)</button>", `name="expr"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}

	rec = get(t, h, "/?pattern=custom&expr="+url.QueryEscape("x*(y"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid expression status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), msgParse) {
		t.Errorf("invalid expression page lacks %q", msgParse)
	}
}

func TestIndexCombination(t *testing.T) {
	h := newServer(t).Handler()
	rec := get(t, h, "/?pattern=combination&uniform=on&vortex=on&U=1&Gamma=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Select Flow Components") {
		t.Error("combination page lacks the component checkboxes")
	}
	if !strings.Contains(body, `name="vortex" checked`) {
		t.Error("vortex checkbox not checked")
	}
	if strings.Contains(body, `name="source" checked`) {
		t.Error("source checkbox checked")
	}
}

func TestPlotPNG(t *testing.T) {
	h := newServer(t).Handler()
	rec := get(t, h, "/plot.png?pattern=vortex&Gamma=5&points=30")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 320 {
		t.Errorf("image is %dx%d, want 400x320", b.Dx(), b.Dy())
	}
}

func TestPlotSVG(t *testing.T) {
	h := newServer(t).Handler()
	rec := get(t, h, "/plot.svg?pattern=doublet&kappa=2&points=25")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("<svg")) {
		t.Error("body is not SVG")
	}
}

func TestPlotDocuments(t *testing.T) {
	h := newServer(t).Handler()
	tests := []struct {
		path   string
		ctype  string
		prefix string
	}{
		{"/plot.pdf", "application/pdf", "%PDF"},
		{"/plot.eps", "application/postscript", "%!PS-Adobe"},
	}
	for _, tt := range tests {
		rec := get(t, h, tt.path+"?pattern=cylinder&points=25&contour=on&streamlines=on&vectors=on")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200: %s", tt.path, rec.Code, rec.Body.String())
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != tt.ctype {
			t.Errorf("GET %s Content-Type = %q, want %q", tt.path, ct, tt.ctype)
		}
		if !bytes.Contains(rec.Body.Bytes()[:min(32, rec.Body.Len())], []byte(tt.prefix)) {
			t.Errorf("GET %s body does not start with %q", tt.path, tt.prefix)
		}
	}
}

func TestPlotErrors(t *testing.T) {
	h := newServer(t).Handler()
	tests := []struct {
		name   string
		target string
		code   int
		msg    string
	}{
		{"parse", "/plot.png?pattern=custom&expr=" + url.QueryEscape("sin(("), http.StatusUnprocessableEntity, msgParse},
		{"non-finite", "/plot.png?pattern=custom&points=21&expr=" + url.QueryEscape("1/x"), http.StatusUnprocessableEntity, msgNonFinite},
		{"bad number", "/plot.png?pattern=uniform&U=fast", http.StatusBadRequest, "not a number"},
		{"bad colormap", "/plot.svg?pattern=uniform&colormap=rainbow", http.StatusBadRequest, "rainbow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), tt.msg) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.msg)
			}
		})
	}
}

func TestField(t *testing.T) {
	h := newServer(t).Handler()
	rec := get(t, h, "/api/field?pattern=uniform&U=2&points=20&domain=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp fieldResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Pattern != "Uniform Flow" {
		t.Errorf("pattern = %q, want Uniform Flow", resp.Pattern)
	}
	if len(resp.X) != 20 || len(resp.Psi) != 20 || len(resp.Psi[0]) != 20 {
		t.Fatalf("shape = %d x, %d x %d ψ, want 20", len(resp.X), len(resp.Psi), len(resp.Psi[0]))
	}
	if resp.X[0] != -2 || resp.X[19] != 2 {
		t.Errorf("x axis = [%v, %v], want [-2, 2]", resp.X[0], resp.X[19])
	}
	if resp.PsiMin != -4 || resp.PsiMax != 4 {
		t.Errorf("ψ range = [%v, %v], want [-4, 4]", resp.PsiMin, resp.PsiMax)
	}
	if u := resp.U[10][10]; u < 1.999 || u > 2.001 {
		t.Errorf("u = %v, want 2", u)
	}
	if resp.VelocityError == nil || *resp.VelocityError > 1e-9 {
		t.Errorf("velocity_error = %v, want 0", resp.VelocityError)
	}

	rec = get(t, h, "/api/field?pattern=custom&points=20&expr="+url.QueryEscape("x*y"))
	var custom fieldResponse
	if err := json.NewDecoder(rec.Body).Decode(&custom); err != nil {
		t.Fatal(err)
	}
	if custom.VelocityError != nil {
		t.Errorf("custom velocity_error = %v, want absent", *custom.VelocityError)
	}

	rec = get(t, h, "/api/field?pattern=custom&expr="+url.QueryEscape("log(x)"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("non-finite status = %d, want 422", rec.Code)
	}
}

func TestParse(t *testing.T) {
	h := newServer(t).Handler()

	rec := get(t, h, "/api/parse?expr="+url.QueryEscape("x*y"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var ok parseResponse
	if err := json.NewDecoder(rec.Body).Decode(&ok); err != nil {
		t.Fatal(err)
	}
	if !ok.OK || len(ok.Equations) != 3 {
		t.Errorf("response = %+v, want ok with 3 equations", ok)
	}

	rec = get(t, h, "/api/parse?expr="+url.QueryEscape("x +* y"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var bad parseResponse
	if err := json.NewDecoder(rec.Body).Decode(&bad); err != nil {
		t.Fatal(err)
	}
	if bad.OK || bad.Error != msgParse || bad.Position == nil {
		t.Fatalf("response = %+v, want failure with a position", bad)
	}

	// positions index the submitted text, leading blanks included
	rec = get(t, h, "/api/parse?expr="+url.QueryEscape("  x +* y"))
	var padded parseResponse
	if err := json.NewDecoder(rec.Body).Decode(&padded); err != nil {
		t.Fatal(err)
	}
	if padded.Position == nil || *padded.Position != *bad.Position+2 {
		t.Errorf("padded position = %v, want %d", padded.Position, *bad.Position+2)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, newServer(t).Handler(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestNotFound(t *testing.T) {
	if rec := get(t, newServer(t).Handler(), "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRecoverer(t *testing.T) {
	h := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := get(t, h, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), msgInternal) {
		t.Errorf("body = %q, want %q", rec.Body.String(), msgInternal)
	}
}

func TestServeShutdown(t *testing.T) {
	s := newServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
