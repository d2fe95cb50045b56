package vtclient

// sourceFetch reads exactly len(out) bytes from src's own byte range
// (pool-relative offset, NOT the wire offset that includes the prepended
// multiplexor byte) into out. It is the PoolSource-to-byte-range adapter
// shared by both PoolSource variants.
func sourceFetch(src PoolSource, poolOffset uint32, out []byte) bool {
	if src.Fetch != nil {
		return src.Fetch(poolOffset, out)
	}
	end := poolOffset + uint32(len(out))
	if end > uint32(len(src.Bytes)) {
		return false
	}
	copy(out, src.Bytes[poolOffset:end])
	return true
}

// makeUploadFetch builds the per-byte fetch callback the upload engine
// hands to the network manager's transport protocol, per §4.3's contract:
// at wire offset 0 it emits the object-pool-transfer multiplexor (0x11)
// followed by bytesRequested-1 bytes of pool data from pool offset 0; at
// any later wire offset it emits bytesRequested bytes from pool offset
// byteOffset-1. This lets a Chunked source stream arbitrarily large pools
// without ever copying the whole thing into memory.
func makeUploadFetch(src PoolSource) TransportFetchFunc {
	return func(invocationCount int, byteOffset, bytesRequested uint32, out []byte) bool {
		if byteOffset == 0 {
			if bytesRequested == 0 {
				return true
			}
			out[0] = byte(fnObjectPoolTransfer)
			if bytesRequested == 1 {
				return true
			}
			return sourceFetch(src, 0, out[1:bytesRequested])
		}
		return sourceFetch(src, byteOffset-1, out[:bytesRequested])
	}
}

// uploadTotalLen is the wire length of a pool's transport-protocol
// payload: the pool's own byte count plus the one prepended multiplexor
// byte. Invariant (§8): the byte sequence submitted to the transport
// equals 0x11 ++ pool.bytes, so totalLen is always size+1.
func uploadTotalLen(src PoolSource) uint32 {
	return src.totalSize() + 1
}
