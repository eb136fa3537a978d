// Meridian Callisto is the data access service for Meridian studies.
//
// It serves authenticated bulk exports of study data: every collection a
// study produces, streamed as a single zip archive in delimited-text or
// line-delimited JSON format.
//
// Usage:
//
//	# Start server with default configuration
//	meridian run
//
//	# Start with custom configuration file
//	meridian run --config /path/to/config.yaml
//
//	# Write an export archive to a local file without the HTTP server
//	meridian export --format csv --output study.zip
//
//	# Load demonstration data into the store
//	meridian seed
//
//	# Show version information
//	meridian version
package main

func main() {
	Execute()
}
