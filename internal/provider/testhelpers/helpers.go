// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package testhelpers

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"text/template"

	"github.com/safeplots/terraform-provider-safeplots/internal/safeplots"
)

// TemplatePath returns the path of a template file under TmplPath.
func TemplatePath(name string) string {
	return filepath.Join(TmplPath, name)
}

// MustReadTemplate reads a template by name or fails the test.
func MustReadTemplate(t *testing.T, name string) string {
	t.Helper()
	p := TemplatePath(name)
	b, err := os.ReadFile(p)
	if err != nil {
		wd, _ := os.Getwd()
		var candidates []string
		if entries, dirErr := os.ReadDir(filepath.Dir(p)); dirErr == nil {
			for _, e := range entries {
				if !e.IsDir() {
					candidates = append(candidates, e.Name())
				}
			}
		}
		t.Fatalf("failed to read template %q\n  path: %s\n  cwd:  %s\n  available templates: %v\n  error: %v", name, p, wd, candidates, err)
	}
	return string(b)
}

// Render executes the named template with data and returns the result.
func Render(t *testing.T, name string, data any) string {
	t.Helper()
	tmpl, err := template.New(name).Funcs(template.FuncMap{"quote": strconv.Quote}).Parse(MustReadTemplate(t, name))
	if err != nil {
		t.Fatalf("parse template %q: %v", name, err)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		t.Fatalf("execute template %q: %v", name, err)
	}
	return out.String()
}

// Config joins the provider block with one or more resource blocks.
func Config(t *testing.T, provider ProviderTmplCfg, blocks ...string) string {
	t.Helper()
	return Render(t, ProviderTmpl, provider) + "\n" + strings.Join(blocks, "\n")
}

// MustCopy copies from r to a temp file and returns its path.
func MustCopy(t *testing.T, name string, r io.Reader) string {
	t.Helper()
	dst := filepath.Join(t.TempDir(), name)
	f, err := os.Create(dst)
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	return dst
}

// BuildLargeBody creates a large JSON-like string embedding various secrets
// to validate both truncation and redaction. Size target ~2MB.
func BuildLargeBody() string {
	var b strings.Builder
	chunks := 2 << 20 / 64
	for i := 0; i < chunks; i++ {
		b.WriteString(`{"authorization":"Bearer TOPSECRET`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`","token":"AAA`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`","password":"PWD`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`"}`)
	}
	return b.String()
}

// MkRS builds a *safeplots.Response with the given status, headers and body.
func MkRS(code int, headers http.Header, body string) *safeplots.Response {
	rs := &safeplots.Response{
		Code:     code,
		Response: &http.Response{StatusCode: code, Header: http.Header{}},
	}
	rs.Bytes.WriteString(body)
	for k, v := range headers {
		rs.Header[k] = v
	}
	return rs
}

// MkRSFor is MkRS with the request line filled in.
func MkRSFor(method, endpoint string, code int, body string) *safeplots.Response {
	rs := MkRS(code, nil, body)
	rs.Method = method
	rs.Endpoint = endpoint
	return rs
}
