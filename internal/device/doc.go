// Package device chooses the compute device for speech recognition.
//
// Detection shells out to nvidia-smi; a GPU name on the first output line
// means an accelerator is usable. Anything else, including a missing binary,
// selects the CPU.
package device
