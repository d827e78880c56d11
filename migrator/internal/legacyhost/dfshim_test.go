package legacyhost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	name string
	args []string
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return nil
}

func (r *recordingRunner) RunCommandLine(context.Context, string) error {
	return nil
}

func noBackoff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3), ctx)
}

func TestDfshimHost_LocalManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ClickOnceApp.application")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))

	runner := &recordingRunner{}
	host := NewDfshimHost(path, runner)
	host.goos = "windows"

	require.NoError(t, Installer{}.Install(context.Background(), host))
	assert.Equal(t, "ClickOnceApp.application", host.Manifest().Name)
	assert.Equal(t, "rundll32.exe", runner.name)
	assert.Equal(t, []string{"dfshim.dll,ShOpenVerbApplication", path}, runner.args)
}

func TestDfshimHost_RetriesServerErrors(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(testManifest))
	}))
	defer server.Close()

	host := NewDfshimHost(server.URL+"/ClickOnceApp.application", &recordingRunner{})
	host.newBackOff = noBackoff

	require.NoError(t, host.GetManifest(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
	assert.Equal(t, "1.0.0.3", host.Manifest().Version)
}

func TestDfshimHost_NotFoundIsPermanent(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	host := NewDfshimHost(server.URL+"/missing.application", &recordingRunner{})
	host.newBackOff = noBackoff

	assert.Error(t, host.GetManifest(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestDfshimHost_Requirements(t *testing.T) {
	host := NewDfshimHost("ClickOnceApp.application", &recordingRunner{})
	assert.ErrorIs(t, host.AssertApplicationRequirements(), ErrManifestNotLoaded)
	assert.ErrorIs(t, host.DownloadApplication(context.Background()), ErrManifestNotLoaded)

	host.manifest = &Manifest{
		Name:              "ClickOnceApp.application",
		Installed:         true,
		PublicKeyToken:    "0123456789abcdef",
		ApplicationBundle: `Application Files\ClickOnceApp_1_0_0_3\ClickOnceApp.exe.manifest`,
	}
	host.goos = "linux"
	assert.ErrorIs(t, host.AssertApplicationRequirements(), ErrUnsupportedPlatform)

	host.goos = "windows"
	assert.NoError(t, host.AssertApplicationRequirements())

	host.manifest.Installed = false
	assert.Error(t, host.AssertApplicationRequirements())

	host.manifest.Installed = true
	host.manifest.PublicKeyToken = ""
	assert.Error(t, host.AssertApplicationRequirements())

	host.manifest.PublicKeyToken = "0123456789abcdef"
	host.manifest.ApplicationBundle = ""
	assert.ErrorContains(t, host.AssertApplicationRequirements(), "references no application manifest")
}
