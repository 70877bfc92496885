// Package version carries the gofetch build version.
//
// Values are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/gofetch/version.Version=1.2.0"
//
// UserAgent is the default User-Agent of every client.
package version
