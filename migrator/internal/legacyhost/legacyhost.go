// Package legacyhost installs a ClickOnce deployment. It is used to seed a machine with the
// legacy app before exercising the migration.
package legacyhost

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Host drives the ClickOnce engine for one deployment
type Host interface {
	// GetManifest downloads and parses the deployment manifest
	GetManifest(ctx context.Context) error
	// AssertApplicationRequirements checks the manifest can be installed on this machine
	AssertApplicationRequirements() error
	// DownloadApplication installs the application files
	DownloadApplication(ctx context.Context) error
}

// Installer runs a Host through a full install
type Installer struct{}

// Install fetches the manifest, checks the requirements and downloads the application,
// stopping at the first failure.
func (Installer) Install(ctx context.Context, host Host) error {
	if err := host.GetManifest(ctx); err != nil {
		return fmt.Errorf("get manifest: %w", err)
	}
	if err := host.AssertApplicationRequirements(); err != nil {
		return fmt.Errorf("application requirements: %w", err)
	}
	if err := host.DownloadApplication(ctx); err != nil {
		return fmt.Errorf("download application: %w", err)
	}
	log.Infof("ClickOnce application installed")
	return nil
}
