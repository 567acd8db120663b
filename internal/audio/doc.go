// Package audio extracts speech-ready audio from video files with ffmpeg.
package audio
