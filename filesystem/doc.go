// Package filesystem walks directory trees while skipping the usual noise
// (VCS metadata, dependency caches, build output) and finds files by
// glob pattern. Plume uses it to discover generator manifests on the
// configured search paths.
//
//	manifests, err := filesystem.Find("generators", filesystem.WalkOptions{}, "*.plume.yml")
package filesystem
