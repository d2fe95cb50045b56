package vtclient

// SoftKeyEvent is decoded from fn 0x00.
type SoftKeyEvent struct {
	KeyCode    KeyActivationCode
	ObjectID   uint16
	MaskID     uint16
	KeyNumber  uint8
}

// ButtonEvent is decoded from fn 0x01.
type ButtonEvent struct {
	KeyCode   KeyActivationCode
	ObjectID  uint16
	ParentObjectID uint16
	KeyNumber uint8
}

// PointingEvent is decoded from fn 0x02.
type PointingEvent struct {
	X, Y      uint16
	TouchState KeyActivationCode
}

// SelectInputObjectEvent is decoded from fn 0x03.
type SelectInputObjectEvent struct {
	ObjectID uint16
	Selected bool
	OpenForInput bool
}

// ESCEvent is decoded from fn 0x04.
type ESCEvent struct {
	ObjectID uint16
	ErrorCode uint8
}

// ChangeNumericValueNotification is decoded from fn 0x05.
type ChangeNumericValueNotification struct {
	ObjectID uint16
	Value    uint32
}

// ChangeActiveMaskNotification is decoded from fn 0x06.
type ChangeActiveMaskNotification struct {
	MaskObjectID uint16
	ErrorCode    uint8
}

// ChangeSoftKeyMaskNotification is decoded from fn 0x07.
type ChangeSoftKeyMaskNotification struct {
	MaskObjectID    uint16
	SoftKeyMaskObjectID uint16
	ErrorCode       uint8
}

// ChangeStringValueNotification is decoded from fn 0x08.
type ChangeStringValueNotification struct {
	ObjectID uint16
	Value    string
}

// OnUserLayoutHideShowNotification is decoded from fn 0x09.
type OnUserLayoutHideShowNotification struct {
	ObjectID uint16
	Shown    bool
}

// AudioSignalTerminationNotification is decoded from fn 0x0A.
type AudioSignalTerminationNotification struct {
	TerminatedEarly bool
}

// GetMemoryResponse is decoded from fn 0xC0.
type GetMemoryResponse struct {
	SufficientMemory bool
}

// GetNumberSoftkeysResponse is decoded from fn 0xC2.
type GetNumberSoftkeysResponse struct {
	SoftKeyWidthPixels   uint8
	SoftKeyHeightPixels  uint8
	VirtualSoftKeyCount  uint8
	PhysicalSoftKeyCount uint8
}

// GetTextFontDataResponse is decoded from fn 0xC3.
type GetTextFontDataResponse struct {
	SmallFontSizeBitfield uint8
	LargeFontSizeBitfield uint8
	FontStyleBitfield     uint8
}

// GetHardwareResponse is decoded from fn 0xC7.
type GetHardwareResponse struct {
	GraphicMode             GraphicMode
	HardwareFeatureBitfield uint8
	ScreenWidthPixels       uint16
	ScreenHeightPixels      uint16
	ConnectedVTVersionRaw   uint8
}

// EndOfObjectPoolResponse is decoded from fn 0x12.
type EndOfObjectPoolResponse struct {
	Success       bool
	ErrorObjectID uint16
	ParentObjectID uint16
	ErrorCode     uint8
}

// UnsupportedFunctionNotification is decoded from fn 0xFD.
type UnsupportedFunctionNotification struct {
	FunctionCode byte
}

// VTStatusMessage is decoded from fn 0xFE into a VTStatusSnapshot by the
// caller (it carries no timestamp of its own; the state machine stamps
// LastSeenMS from the injected clock at receipt time).
type VTStatusMessage struct {
	WorkingSetMasterAddress uint8
	ActiveDataMaskID        uint16
	ActiveSoftKeyMaskID     uint16
	BusyBits                uint8
	CurrentCommandFunction  uint8
}
