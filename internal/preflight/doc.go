// Package preflight runs environment checks before and outside a transcription
// run: external tool availability, scratch directory access and the compute
// device a run would select.
package preflight
