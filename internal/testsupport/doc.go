// Package testsupport holds helpers shared by package tests: default configs,
// fake media files and shell stubs standing in for ffmpeg and uvx.
package testsupport
