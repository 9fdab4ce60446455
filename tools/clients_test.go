package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"creava/config"
)

func TestOpenAIComplete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  a quiet river flows  "}},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.Providers{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: srv.URL,
		OpenAIModel:   "test-model",
	})

	out, err := client.Complete(context.Background(), "haiku", 60)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "a quiet river flows" {
		t.Fatalf("unexpected content %q", out)
	}
	if gotBody["temperature"].(float64) != completionTemperature {
		t.Fatalf("temperature must be fixed at %v, got %v", completionTemperature, gotBody["temperature"])
	}
	if gotBody["max_tokens"].(float64) != 60 {
		t.Fatalf("max_tokens not forwarded, got %v", gotBody["max_tokens"])
	}
}

func TestOpenAICompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIClient(config.Providers{OpenAIAPIKey: "k", OpenAIBaseURL: srv.URL})
	if _, err := client.Complete(context.Background(), "p", 10); err == nil {
		t.Fatalf("expected error on non-success status")
	}
}

func TestClipdropGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-image/v1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "cd-key" {
			t.Fatalf("missing api key header")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("prompt"); got != "a castle" {
			t.Fatalf("unexpected prompt %q", got)
		}
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	client := NewClipdropClient(config.Providers{ClipdropAPIKey: "cd-key", ClipdropBaseURL: srv.URL})
	image, err := client.Generate(context.Background(), "a castle")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(image) != 4 || image[1] != 'P' {
		t.Fatalf("image bytes must pass through unmodified: %v", image)
	}
}

func TestCloudinaryRemoveObjectBuildsDeliveryURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/upload" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("folder") != objectRemovalFolder {
			t.Fatalf("unexpected folder %q", r.FormValue("folder"))
		}
		if r.FormValue("signature") == "" || r.FormValue("api_key") != "key" {
			t.Fatalf("request must be signed")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "remove-object/abc123",
			"secure_url": "https://res.example/remove-object/abc123.png",
		})
	}))
	defer srv.Close()

	client := NewCloudinaryClient(config.Providers{
		CloudinaryCloudName:   "demo",
		CloudinaryAPIKey:      "key",
		CloudinaryAPISecret:   "secret",
		CloudinaryUploadURL:   srv.URL,
		CloudinaryDeliveryURL: "https://res.cloudinary.com",
	})

	url, err := client.RemoveObject(context.Background(), []byte("img"), "watch")
	if err != nil {
		t.Fatalf("remove object: %v", err)
	}
	want := "https://res.cloudinary.com/demo/image/upload/e_gen_remove:watch/remove-object/abc123"
	if url != want {
		t.Fatalf("unexpected delivery url:\n got %s\nwant %s", url, want)
	}
}

func TestCloudinaryRemoveBackgroundUsesTransformation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("transformation") != "e_background_removal" {
			t.Fatalf("unexpected transformation %q", r.FormValue("transformation"))
		}
		if r.FormValue("folder") != backgroundRemovalFolder {
			t.Fatalf("unexpected folder %q", r.FormValue("folder"))
		}
		if !strings.HasPrefix(r.FormValue("file"), "data:image/png;base64,") {
			t.Fatalf("file must be sent as a data uri")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"public_id":  "ai-remove-bg/abc123",
			"secure_url": "https://res.example/ai-remove-bg/abc123.png",
		})
	}))
	defer srv.Close()

	client := NewCloudinaryClient(config.Providers{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
		CloudinaryUploadURL: srv.URL,
	})

	url, err := client.RemoveBackground(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("remove background: %v", err)
	}
	if url != "https://res.example/ai-remove-bg/abc123.png" {
		t.Fatalf("unexpected url %s", url)
	}
}

func TestIdentityUpdateFreeUsage(t *testing.T) {
	var gotBody map[string]map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/users/u1/metadata" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer id-key" {
			t.Fatalf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewIdentityAPIClient(config.Providers{IdentityBaseURL: srv.URL, IdentityAPIKey: "id-key"})
	if err := client.UpdateFreeUsage(context.Background(), "u1", 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotBody["private_metadata"]["free_usage"].(float64) != 5 {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestPDFExtractorRejectsGarbage(t *testing.T) {
	extractor := NewPDFExtractor()

	for _, data := range [][]byte{nil, []byte("not a pdf at all"), []byte("%PDF-")} {
		_, err := extractor.ExtractText(data)
		if !errors.Is(err, ErrUnreadableDocument) {
			t.Fatalf("expected ErrUnreadableDocument, got %v", err)
		}
	}
}

func TestPDFExtractorJoinsPagesInOrder(t *testing.T) {
	extractor := NewPDFExtractor()

	text, err := extractor.ExtractText(buildPDF(t, []string{"Jane Doe", "Engineer"}))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Jane Doe\nEngineer" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestPDFExtractorAcceptsTextlessDocument(t *testing.T) {
	extractor := NewPDFExtractor()

	// A structurally valid document with no extractable text (an image-only
	// scan behaves the same) is not unreadable; it just has nothing to say.
	text, err := extractor.ExtractText(buildPDF(t, []string{""}))
	if err != nil {
		t.Fatalf("valid textless document must parse, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

// buildPDF assembles a minimal valid PDF with one Helvetica text line per
// page (an empty string makes a contentless page).
func buildPDF(t *testing.T, pageTexts []string) []byte {
	t.Helper()

	const fontObj = 3
	kidsStart := 4

	kids := make([]string, 0, len(pageTexts))
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", kidsStart+2*i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pageTexts)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, text := range pageTexts {
		contentObj := kidsStart + 2*i + 1
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentObj))

		var stream string
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefPos)
	return buf.Bytes()
}
