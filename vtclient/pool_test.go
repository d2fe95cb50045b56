package vtclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetObjectPoolRejectsVersionMismatch(t *testing.T) {
	r := newPoolRegistry()
	assert.True(t, r.setObjectPool(0, Version4, []byte{1}))
	assert.False(t, r.setObjectPool(1, Version3, []byte{2}), "a second pool must declare the same version as the first")
	assert.True(t, r.setObjectPool(1, Version4, []byte{2}))
}

func TestNextUnuploadedFollowsIndexOrder(t *testing.T) {
	r := newPoolRegistry()
	r.setObjectPool(2, Version4, []byte{1})
	r.setObjectPool(0, Version4, []byte{2})
	r.setObjectPool(1, Version4, []byte{3})

	assert.Equal(t, []uint8{0, 1, 2}, r.sortedIndices())

	first := r.nextUnuploaded()
	assert.Equal(t, uint8(0), first.Index)
	first.Uploaded = true

	second := r.nextUnuploaded()
	assert.Equal(t, uint8(1), second.Index)
	assert.False(t, r.allUploaded())
}

func TestAllUploadedAndReset(t *testing.T) {
	r := newPoolRegistry()
	r.setObjectPool(0, Version4, []byte{1})
	assert.False(t, r.allUploaded())

	d := r.descriptors[0]
	d.Uploaded = true
	d.UploadState = PoolSuccess
	assert.True(t, r.allUploaded())

	r.reset()
	assert.False(t, d.Uploaded)
	assert.Equal(t, PoolUninitialized, d.UploadState)
	assert.False(t, r.allUploaded())
}

func TestEmptyRegistry(t *testing.T) {
	r := newPoolRegistry()
	assert.True(t, r.empty())
	assert.True(t, r.allUploaded())

	r.setObjectPool(0, Version4, []byte{1})
	assert.False(t, r.empty())
}
