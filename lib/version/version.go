package version

import "fmt"

var (
	Version             string = "0.1.0" // follows SemVer (https://semver.org), updated by hand at each release
	GitCommit, GitState string           // set by the build with -ldflags "-X"
	BuildDate           string           // set by the build with -ldflags "-X"
)

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}
