package buildinfo

// set via -ldflags at release time
var (
	Version    = "dev"
	CommitHash = "unknown"
)

type Info struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
}

func GetBuildInfo() Info {
	return Info{
		Tool:       "biscan",
		Version:    Version,
		CommitHash: CommitHash,
	}
}
