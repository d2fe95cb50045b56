package vtclient

import "sort"

// poolRegistry holds the pool descriptors registered by the caller.
// Registration is legal only before the machine leaves ReadyForObjectPool
// (§4.3; behavior after that point is an Open Question the source header
// leaves unspecified — this implementation rejects with false, per
// DESIGN.md's decision).
type poolRegistry struct {
	descriptors map[uint8]*PoolDescriptor
}

func newPoolRegistry() *poolRegistry {
	return &poolRegistry{descriptors: make(map[uint8]*PoolDescriptor)}
}

// setObjectPool installs (or replaces) the in-memory descriptor at index.
// Returns false if version mismatches an already-registered pool of a
// different declared version (§3's invariant: all registered pools must
// declare the same version).
func (r *poolRegistry) setObjectPool(index uint8, version VTVersion, bytes []byte) bool {
	if !r.versionCompatible(version) {
		return false
	}
	r.descriptors[index] = &PoolDescriptor{
		Index:           index,
		DeclaredVersion: version,
		Source:          PoolSource{Bytes: bytes},
	}
	return true
}

// registerChunkCallback installs (or replaces) the pull-callback
// descriptor at index; it supersedes any prior in-memory registration for
// that index.
func (r *poolRegistry) registerChunkCallback(index uint8, version VTVersion, totalSize uint32, fetch FetchFunc) bool {
	if !r.versionCompatible(version) {
		return false
	}
	r.descriptors[index] = &PoolDescriptor{
		Index:           index,
		DeclaredVersion: version,
		Source:          PoolSource{Fetch: fetch, Size: totalSize},
	}
	return true
}

func (r *poolRegistry) versionCompatible(version VTVersion) bool {
	for _, d := range r.descriptors {
		if d.DeclaredVersion != version {
			return false
		}
	}
	return true
}

// sortedIndices returns registered pool indices in increasing order, the
// order the upload engine processes them in (§4.3).
func (r *poolRegistry) sortedIndices() []uint8 {
	idx := make([]uint8, 0, len(r.descriptors))
	for i := range r.descriptors {
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool { return idx[a] < idx[b] })
	return idx
}

func (r *poolRegistry) nextUnuploaded() *PoolDescriptor {
	for _, i := range r.sortedIndices() {
		d := r.descriptors[i]
		if !d.Uploaded {
			return d
		}
	}
	return nil
}

func (r *poolRegistry) allUploaded() bool {
	return r.nextUnuploaded() == nil
}

func (r *poolRegistry) empty() bool {
	return len(r.descriptors) == 0
}

func (r *poolRegistry) reset() {
	for _, d := range r.descriptors {
		d.Uploaded = false
		d.UploadState = PoolUninitialized
	}
}
