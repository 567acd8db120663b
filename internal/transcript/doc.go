// Package transcript defines the segment model produced by speech recognition
// and renders it as timestamped text lines of the form
//
//	[12.34s - 15.00s] text
//
// Writer persists those lines to the output file while echoing them to the
// console.
package transcript
