package legacyhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/wunderlist/clickonce-to-squirrel/migrator/internal/process"
)

const (
	// dfshim.dll is the ClickOnce engine entry point. ShOpenVerbApplication installs and
	// starts the deployment at the given URL.
	dfshimEntryPoint = "dfshim.dll,ShOpenVerbApplication"

	maxManifestSize = 4 * 1024 * 1024
)

var (
	// ErrManifestNotLoaded is returned when requirements are checked before GetManifest
	ErrManifestNotLoaded = errors.New("call GetManifest() first")
	// ErrUnsupportedPlatform is returned when the ClickOnce engine is not available
	ErrUnsupportedPlatform = errors.New("ClickOnce requires windows")
)

// DfshimHost installs a deployment through rundll32 and dfshim.dll
type DfshimHost struct {
	deployment string
	client     *http.Client
	runner     process.Runner
	goos       string
	newBackOff func(ctx context.Context) backoff.BackOff

	manifest *Manifest
}

// NewDfshimHost targets the deployment manifest at deployment, an http(s) URL or a local path
func NewDfshimHost(deployment string, runner process.Runner) *DfshimHost {
	return &DfshimHost{
		deployment: deployment,
		client:     &http.Client{Timeout: 30 * time.Second},
		runner:     runner,
		goos:       runtime.GOOS,
		newBackOff: defaultBackoff,
	}
}

func defaultBackoff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(&backoff.ExponentialBackOff{
		InitialInterval:     500 * time.Millisecond,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         5 * time.Second,
		MaxElapsedTime:      time.Minute,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}, 5), ctx)
}

// Manifest returns the manifest loaded by GetManifest
func (h *DfshimHost) Manifest() *Manifest {
	return h.manifest
}

func (h *DfshimHost) GetManifest(ctx context.Context) error {
	data, err := h.readManifest(ctx)
	if err != nil {
		return err
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return err
	}
	log.Infof("loaded deployment manifest %s version %s", manifest.Name, manifest.Version)
	if manifest.ProviderCodebase != "" {
		log.Debugf("deployment %s is updated from %s", manifest.Name, manifest.ProviderCodebase)
	}
	h.manifest = manifest
	return nil
}

func (h *DfshimHost) readManifest(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(h.deployment)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return os.ReadFile(h.deployment)
	}

	var data []byte
	operation := func() error {
		data, err = h.download(ctx, u.String())
		if err != nil {
			log.Warnf("failed to download deployment manifest: %v", err)
		}
		return err
	}

	if err := backoff.Retry(operation, h.newBackOff(ctx)); err != nil {
		return nil, fmt.Errorf("download %s: %w", u, err)
	}
	return data, nil
}

func (h *DfshimHost) download(ctx context.Context, manifestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
}

func (h *DfshimHost) AssertApplicationRequirements() error {
	if h.manifest == nil {
		return ErrManifestNotLoaded
	}
	if h.goos != "windows" {
		return ErrUnsupportedPlatform
	}
	if !h.manifest.Installed {
		return fmt.Errorf("%s is an online-only deployment and cannot be installed", h.manifest.Name)
	}
	if len(h.manifest.PublicKeyToken) != 16 {
		return fmt.Errorf("%s is not signed with a strong name key", h.manifest.Name)
	}
	if h.manifest.ApplicationBundle == "" {
		return fmt.Errorf("%s references no application manifest", h.manifest.Name)
	}
	return nil
}

func (h *DfshimHost) DownloadApplication(ctx context.Context) error {
	if h.manifest == nil {
		return ErrManifestNotLoaded
	}
	return h.runner.Run(ctx, "rundll32.exe", dfshimEntryPoint, h.deployment)
}
