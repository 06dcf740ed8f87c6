package utils

const (
	TokenPlaceholder    = "TOKEN"
	FilePathPlaceholder = "FILEPATH"

	UnsetToken    = "<YOUR_TOKEN_HERE>"
	UnsetDataRoot = "<DOWNLOAD_LOCATION_HERE>"

	DefaultDataRoot   = "./scannetpp_data"
	DefaultUserAgent  = "scenefetch-cli"
	DefaultBufferSize = 1024 * 1024 * 8 // 8MB buffer

	PartSuffix = ".part"

	EnvToken    = "SCANNETPP_TOKEN"
	EnvDataRoot = "SCANNETPP_DATA_ROOT"
)
