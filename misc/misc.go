// Package misc keeps program identity used in logs, reports and file names.
// Values are replaced at build time by the linker.
package misc

var (
	appName = "slidec"
	version = "development"
	gitHash = "unknown"
)

// GetAppName returns program name.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set at build time.
func GetVersion() string {
	return version
}

// GetGitHash returns source control revision program was built from.
func GetGitHash() string {
	return gitHash
}
