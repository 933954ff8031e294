// Package loader resolves a URL to bytes (spec §4.6): sandbox-only VFS
// mapping, or (in non-sandbox mode) plain TCP/TLS/Gemini fetch, content-type
// detection, redirect following, and an LRU response cache.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"path"
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/browser/cache"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/gemini"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/urlpkg"
	"github.com/AndrewAltimit/oasis-os-sub003/nettls"
	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
	"github.com/AndrewAltimit/oasis-os-sub003/vfs"
)

// ContentType enumerates the loader's detected resource kinds.
type ContentType uint8

const (
	ContentHTML ContentType = iota
	ContentCSS
	ContentGemini
	ContentImage
	ContentText
	ContentOther
)

// Response is what a fetch produces: the resolved content type, the body,
// and a status code (HTTP-shaped; Gemini statuses are passed through as-is).
type Response struct {
	ContentType ContentType
	Body        []byte
	Status      int
}

const defaultMaxRedirects = 5

// Loader resolves URLs to Responses. SandboxOnly routes every fetch through
// Vfs regardless of scheme; otherwise http/https/gemini reach the network.
type Loader struct {
	Vfs         *vfs.FS
	Tls         nettls.Provider
	SandboxOnly bool
	MaxRedirects int
	Cache       *cache.Cache
}

// New builds a Loader with the spec default MaxRedirects (5) and no cache:
// Cache is left nil, which disables caching until a Cache is assigned.
func New(fs *vfs.FS, tls nettls.Provider, sandboxOnly bool) *Loader {
	return &Loader{Vfs: fs, Tls: tls, SandboxOnly: sandboxOnly, MaxRedirects: defaultMaxRedirects}
}

// Fetch resolves raw, following redirects up to MaxRedirects; exceeding the
// limit fails with oasiserr.Io wrapping a "Loop" message per spec §4.6.
func (l *Loader) Fetch(raw string) (Response, error) {
	u, err := urlpkg.Parse(raw, nil)
	if err != nil {
		return Response{}, oasiserr.Wrap(oasiserr.Io, "Fetch", err)
	}

	for redirects := 0; ; redirects++ {
		if redirects > l.maxRedirects() {
			return Response{}, oasiserr.Wrap(oasiserr.Io, "Fetch", fmt.Errorf("Loop: exceeded %d redirects", l.maxRedirects()))
		}

		if l.Cache != nil {
			if e, ok := l.Cache.Get(u.String()); ok {
				return Response{ContentType: contentTypeOf(e.ContentType), Body: e.Body, Status: 200}, nil
			}
		}

		resp, redirectTo, err := l.fetchOnce(u)
		if err != nil {
			return Response{}, err
		}
		if redirectTo != "" {
			next, err := urlpkg.Parse(redirectTo, &u)
			if err != nil {
				return Response{}, oasiserr.Wrap(oasiserr.Io, "Fetch", err)
			}
			u = next
			continue
		}

		if l.Cache != nil {
			l.Cache.Insert(u.String(), cache.Entry{Body: resp.Body, ContentType: contentTypeName(resp.ContentType)})
		}
		return resp, nil
	}
}

func (l *Loader) maxRedirects() int {
	if l.MaxRedirects <= 0 {
		return defaultMaxRedirects
	}
	return l.MaxRedirects
}

// fetchOnce performs one fetch with no redirect following of its own;
// redirectTo is non-empty when the caller should retry against a new URL.
func (l *Loader) fetchOnce(u urlpkg.URL) (Response, string, error) {
	if l.SandboxOnly || u.Scheme == "vfs" {
		return l.fetchVfs(u)
	}
	switch u.Scheme {
	case "http":
		return l.fetchTCP(u, false)
	case "https":
		return l.fetchTCP(u, true)
	case "gemini":
		return l.fetchGemini(u)
	default:
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchOnce", fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
}

// MapSandboxPath maps a URL to its VFS path per spec §4.6: http/https →
// /sites/<host>/<path> (appending /index.html for a directory-shaped path),
// vfs → /<host>/<path>. A path containing a ".." segment is rejected before
// any cleaning is attempted: path.Clean would otherwise silently collapse
// it, letting a crafted URL (e.g. "http://evil/../../sites/other/secret")
// escape its own host's sandbox directory and read another host's files.
func MapSandboxPath(u urlpkg.URL) (string, error) {
	p := u.Path
	if p == "" {
		p = "/"
	}
	if hasDotDotSegment(p) {
		return "", oasiserr.New(oasiserr.Vfs, fmt.Sprintf("invalid path: %q contains \"..\"", p))
	}

	if u.Scheme == "vfs" {
		return path.Clean("/" + u.Host + "/" + strings.TrimPrefix(p, "/")), nil
	}

	mapped := path.Clean("/sites/" + u.Host + "/" + strings.TrimPrefix(p, "/"))
	if isDirectoryShaped(p) {
		mapped = strings.TrimSuffix(mapped, "/") + "/index.html"
	}
	return mapped, nil
}

// hasDotDotSegment reports whether p contains a literal ".." path segment,
// matching vfs.splitPath's own traversal rejection.
func hasDotDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// isDirectoryShaped reports whether p ends with '/' or its last segment has
// no '.', per spec §4.6's append-index.html rule. The §9 defensive edge
// case ("last slash segment contains a '.'") is handled by this same check:
// a dotted last segment is never treated as directory-shaped.
func isDirectoryShaped(p string) bool {
	if p == "" || strings.HasSuffix(p, "/") {
		return true
	}
	last := p
	if idx := strings.LastIndexByte(p, '/'); idx >= 0 {
		last = p[idx+1:]
	}
	return !strings.Contains(last, ".")
}

func (l *Loader) fetchVfs(u urlpkg.URL) (Response, string, error) {
	if l.Vfs == nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Vfs, "fetchVfs", fmt.Errorf("no vfs configured"))
	}
	vpath, err := MapSandboxPath(u)
	if err != nil {
		return Response{}, "", err
	}
	data, err := l.Vfs.Read(vpath)
	if err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Vfs, "fetchVfs", err)
	}
	return Response{ContentType: DetectContentType(vpath, u.Scheme), Body: data, Status: 200}, "", nil
}

func (l *Loader) fetchTCP(u urlpkg.URL, useTLS bool) (Response, string, error) {
	addr := fmt.Sprintf("%s:%d", u.Host, u.Port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchTCP", err)
	}
	defer conn.Close()

	var rw io.ReadWriter = conn
	if useTLS {
		if l.Tls == nil {
			return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchTCP", fmt.Errorf("no TLS provider configured for https"))
		}
		stream, err := l.Tls.ConnectTLS(conn, u.Host)
		if err != nil {
			return Response{}, "", err
		}
		rw = stream
	}

	reqPath := u.Path
	if reqPath == "" {
		reqPath = "/"
	}
	if u.Query != "" {
		reqPath += "?" + u.Query
	}
	req := fmt.Sprintf("GET %s HTTP/1.0\r\nHost: %s\r\nConnection: close\r\n\r\n", reqPath, u.Host)
	if _, err := io.WriteString(rw, req); err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchTCP", err)
	}

	br := bufio.NewReader(rw)
	statusLine, err := br.ReadString('\n')
	if err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchTCP", err)
	}
	status := parseHTTPStatus(statusLine)

	var headers []string
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			break
		}
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			break
		}
		headers = append(headers, trimmed)
	}
	body, _ := io.ReadAll(br)

	if status >= 300 && status < 400 {
		if loc := headerValue(headers, "Location"); loc != "" {
			return Response{Status: status}, loc, nil
		}
	}

	return Response{ContentType: DetectContentType(u.Path, u.Scheme), Body: body, Status: status}, "", nil
}

func parseHTTPStatus(line string) int {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(parts) < 2 {
		return 0
	}
	n := 0
	for _, c := range parts[1] {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func headerValue(headers []string, name string) string {
	for _, h := range headers {
		idx := strings.IndexByte(h, ':')
		if idx < 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(h[:idx]), name) {
			return strings.TrimSpace(h[idx+1:])
		}
	}
	return ""
}

func (l *Loader) fetchGemini(u urlpkg.URL) (Response, string, error) {
	addr := fmt.Sprintf("%s:%d", u.Host, u.Port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchGemini", err)
	}
	defer conn.Close()

	if l.Tls == nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchGemini", fmt.Errorf("no TLS provider configured for gemini"))
	}
	stream, err := l.Tls.ConnectTLS(conn, u.Host)
	if err != nil {
		return Response{}, "", err
	}

	if err := gemini.Request(stream, u.String()); err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchGemini", err)
	}
	resp, err := gemini.ReadResponse(stream)
	if err != nil {
		return Response{}, "", oasiserr.Wrap(oasiserr.Io, "fetchGemini", err)
	}

	cat := gemini.CategorizeStatus(resp.Status)
	if cat == gemini.StatusRedirect {
		return Response{Status: resp.Status}, resp.Meta, nil
	}
	return Response{ContentType: ContentGemini, Body: resp.Body, Status: resp.Status}, "", nil
}

// DetectContentType classifies by file extension first; only a path with no
// extension falls back to a scheme default, and an unrecognized extension
// is ContentOther (spec §4.6).
func DetectContentType(p, scheme string) ContentType {
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".html", ".htm":
		return ContentHTML
	case ".css":
		return ContentCSS
	case ".gmi", ".gemini":
		return ContentGemini
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
		return ContentImage
	case ".txt":
		return ContentText
	}
	if ext != "" {
		return ContentOther
	}
	switch scheme {
	case "gemini":
		return ContentGemini
	case "http", "https", "vfs":
		return ContentHTML
	}
	return ContentOther
}

func contentTypeName(c ContentType) string {
	switch c {
	case ContentHTML:
		return "text/html"
	case ContentCSS:
		return "text/css"
	case ContentGemini:
		return "text/gemini"
	case ContentImage:
		return "image"
	case ContentText:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

func contentTypeOf(name string) ContentType {
	switch name {
	case "text/html":
		return ContentHTML
	case "text/css":
		return ContentCSS
	case "text/gemini":
		return ContentGemini
	case "image":
		return ContentImage
	case "text/plain":
		return ContentText
	default:
		return ContentOther
	}
}
