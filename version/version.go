package version

// will be replaced with the release version when using goreleaser
var version = "development"

// MigratorVersion returns the migrator version
func MigratorVersion() string {
	return version
}
