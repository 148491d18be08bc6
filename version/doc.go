// Package version exposes the build version of apimanager.
//
// Version and GitCommit are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/apimanager/version.Version=1.2.0"
//
// When GitCommit is empty the VCS revision recorded by the Go toolchain is
// used instead.
package version
