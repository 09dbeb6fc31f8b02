// Package runner wires locator resolution, document loading, the normalize
// and scan policies, write-back and reporting into a single entry point. Each
// document is processed on its own: in directory runs a document that cannot
// be read or parsed is skipped and the rest still run.
package runner
