package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSiteServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeFirms(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "firms.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootRequiresOneArg(t *testing.T) {
	t.Parallel()

	_, err := execute(t)
	require.Error(t, err)

	_, err = execute(t, "a.txt", "b.txt")
	require.Error(t, err)
}

func TestRootMissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.txt")
	_, err := execute(t, missing)
	require.Error(t, err)
	require.Contains(t, err.Error(), "file not found: "+missing)
}

func TestRootStatusMode(t *testing.T) {
	t.Parallel()

	site := newSiteServer(t, map[string]string{
		"/":        `<html><body><a href="/careers">Careers</a><a href="/about">About</a></body></html>`,
		"/careers": `<html><body><p>We have open jobs.</p></body></html>`,
	})
	quiet := newSiteServer(t, map[string]string{
		"/": `<html><body><p>Welcome.</p></body></html>`,
	})
	firmsFile := writeFirms(t, site.URL+"\n\n  "+quiet.URL+"  \n")

	out, err := execute(t, "--mode", "status", "--workers", "2", firmsFile)
	require.NoError(t, err)
	require.Equal(t,
		site.URL+": openings found → "+site.URL+"/careers\n"+
			quiet.URL+": no openings found\n",
		out)
}

func TestRootStatusUnreachable(t *testing.T) {
	t.Parallel()

	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()
	firmsFile := writeFirms(t, url+"\n")

	out, err := execute(t, "--mode", "status", firmsFile)
	require.NoError(t, err)
	require.Equal(t, url+": could not reach site\n", out)
}

func TestRootItemizedWritesCSV(t *testing.T) {
	t.Parallel()

	site := newSiteServer(t, map[string]string{
		"/":        `<html><body><a href="/careers">Careers</a></body></html>`,
		"/careers": `<html><head><title>Jobs</title></head><body><h1>Open Positions</h1></body></html>`,
	})
	firmsFile := writeFirms(t, site.URL+"\n")
	output := filepath.Join(t.TempDir(), "openings.csv")

	out, err := execute(t, "--output", output, firmsFile)
	require.NoError(t, err)
	require.Equal(t, "Saved 1 openings to "+output+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t,
		"firm_url,opening_title,job_link\n"+
			site.URL+",Open Positions,"+site.URL+"/careers\n",
		string(data))
}

func TestRootItemizedEmptyInput(t *testing.T) {
	t.Parallel()

	firmsFile := writeFirms(t, "\n   \n")
	output := filepath.Join(t.TempDir(), "openings.csv")

	out, err := execute(t, "--output", output, firmsFile)
	require.NoError(t, err)
	require.Equal(t, "No openings found.\n", out)
	_, err = os.Stat(output)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootWithMetricsServer(t *testing.T) {
	t.Parallel()

	firmsFile := writeFirms(t, "")
	out, err := execute(t, "--mode", "status", "--metrics-addr", "127.0.0.1:0", firmsFile)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRootRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	firmsFile := writeFirms(t, "")
	_, err := execute(t, "--mode", "both", firmsFile)
	require.Error(t, err)
	require.Contains(t, err.Error(), "scan.mode")
}
