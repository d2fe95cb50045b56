package vtclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityStoreAppliesResponsesInIsolation(t *testing.T) {
	s := newCapabilityStore()
	assert.Equal(t, ReservedOrUnknown, s.record.ConnectedVTVersion)

	s.applyGetNumberSoftkeysResponse(&GetNumberSoftkeysResponse{
		SoftKeyWidthPixels: 32, SoftKeyHeightPixels: 32,
		VirtualSoftKeyCount: 6, PhysicalSoftKeyCount: 6,
	})
	assert.Equal(t, uint8(6), s.record.VirtualSoftKeyCount)

	s.applyGetHardwareResponse(&GetHardwareResponse{
		GraphicMode:           SixteenColour,
		ScreenWidthPixels:     480,
		ScreenHeightPixels:    320,
		ConnectedVTVersionRaw: 3,
	})
	assert.Equal(t, SixteenColour, s.record.GraphicMode)
	assert.Equal(t, VTVersion(3), s.record.ConnectedVTVersion)

	// applying the font-data response must not disturb fields the other
	// two responses already populated.
	s.applyGetTextFontDataResponse(&GetTextFontDataResponse{SmallFontSizeBitfield: 0xFF})
	assert.Equal(t, uint8(6), s.record.VirtualSoftKeyCount)
	assert.Equal(t, SixteenColour, s.record.GraphicMode)
}

func TestCapabilityStoreResetClearsRecord(t *testing.T) {
	s := newCapabilityStore()
	s.applyGetHardwareResponse(&GetHardwareResponse{ConnectedVTVersionRaw: 4})
	assert.Equal(t, VTVersion(4), s.record.ConnectedVTVersion)

	s.reset()
	assert.Equal(t, CapabilityRecord{ConnectedVTVersion: ReservedOrUnknown}, s.record)
}

func TestDecodeVTVersionRejectsOutOfRangeRaw(t *testing.T) {
	assert.Equal(t, VTVersion(4), decodeVTVersion(4))
	assert.Equal(t, ReservedOrUnknown, decodeVTVersion(5))
	assert.Equal(t, ReservedOrUnknown, decodeVTVersion(0xFF))
}
