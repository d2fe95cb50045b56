package vtclient

// capabilityStore is the passive record §4.2 describes, populated in strict
// order by the four handshake responses. It does not drive any
// transitions itself; the state machine calls applyX after validating it
// is the response it was waiting for.
type capabilityStore struct {
	record CapabilityRecord
}

func newCapabilityStore() *capabilityStore {
	return &capabilityStore{record: CapabilityRecord{ConnectedVTVersion: ReservedOrUnknown}}
}

func (c *capabilityStore) applyGetNumberSoftkeysResponse(r *GetNumberSoftkeysResponse) {
	c.record.SoftKeyWidthPixels = r.SoftKeyWidthPixels
	c.record.SoftKeyHeightPixels = r.SoftKeyHeightPixels
	c.record.VirtualSoftKeyCount = r.VirtualSoftKeyCount
	c.record.PhysicalSoftKeyCount = r.PhysicalSoftKeyCount
}

func (c *capabilityStore) applyGetTextFontDataResponse(r *GetTextFontDataResponse) {
	c.record.SmallFontSizeBitfield = r.SmallFontSizeBitfield
	c.record.LargeFontSizeBitfield = r.LargeFontSizeBitfield
	c.record.FontStyleBitfield = r.FontStyleBitfield
}

func (c *capabilityStore) applyGetHardwareResponse(r *GetHardwareResponse) {
	c.record.GraphicMode = r.GraphicMode
	c.record.HardwareFeatureBitfield = r.HardwareFeatureBitfield
	c.record.ScreenWidthPixels = r.ScreenWidthPixels
	c.record.ScreenHeightPixels = r.ScreenHeightPixels
	c.record.ConnectedVTVersionRaw = r.ConnectedVTVersionRaw
	c.record.ConnectedVTVersion = decodeVTVersion(r.ConnectedVTVersionRaw)
}

// reset clears the record on a reconnect; capabilities are never mutated
// after Connected except across a full reconnect (§3).
func (c *capabilityStore) reset() {
	c.record = CapabilityRecord{ConnectedVTVersion: ReservedOrUnknown}
}

func decodeVTVersion(raw uint8) VTVersion {
	switch raw {
	case 0, 1, 2, 3, 4:
		return VTVersion(raw)
	default:
		return ReservedOrUnknown
	}
}
