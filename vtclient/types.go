package vtclient

// VTVersion is the negotiated ISO 11783-6 version of the connected VT
// server, decoded from the raw byte in the get-hardware-response.
type VTVersion byte

const (
	Version2OrOlder   VTVersion = 0
	Version3          VTVersion = 1
	Version4          VTVersion = 2
	Version5          VTVersion = 3
	Version6          VTVersion = 4
	ReservedOrUnknown VTVersion = 0xFF
)

// GraphicMode is the colour depth the connected VT reports supporting.
type GraphicMode byte

const (
	Monochrome         GraphicMode = 0
	SixteenColour      GraphicMode = 1
	TwoFiftySixColour  GraphicMode = 2
)

// FontSize indexes one bit of the small (0..7) or large (8..14) font-size
// bitfield reported by get-text-font-data-response.
type FontSize byte

const (
	Size6x8    FontSize = 0
	Size8x8    FontSize = 1
	Size8x12   FontSize = 2
	Size12x16  FontSize = 3
	Size16x16  FontSize = 4
	Size16x24  FontSize = 5
	Size24x32  FontSize = 6
	Size32x32  FontSize = 7
	Size32x48  FontSize = 8
	Size48x64  FontSize = 9
	Size64x64  FontSize = 10
	Size64x96  FontSize = 11
	Size96x128 FontSize = 12
	Size128x128 FontSize = 13
	Size128x192 FontSize = 14
)

// FontStyleBits are the bit positions of the font-style byte reported by
// get-text-font-data-response.
type FontStyleBits byte

const (
	Bold                       FontStyleBits = 0
	CrossedOut                 FontStyleBits = 1
	Underlined                 FontStyleBits = 2
	Italic                     FontStyleBits = 3
	Inverted                   FontStyleBits = 4
	Flashing                   FontStyleBits = 5
	FlashingHidden             FontStyleBits = 6
	ProportionalFontRendering  FontStyleBits = 7
)

// HideShowObjectCommand is the state byte of send_hide_show_object.
type HideShowObjectCommand byte

const (
	HideObject HideShowObjectCommand = 0
	ShowObject HideShowObjectCommand = 1
)

// EnableDisableObjectCommand is the state byte of send_enable_disable_object.
type EnableDisableObjectCommand byte

const (
	DisableObject EnableDisableObjectCommand = 0
	EnableObject  EnableDisableObjectCommand = 1
)

// SelectInputObjectOptions is the option byte of send_select_input_object.
type SelectInputObjectOptions byte

const (
	ActivateObjectForDataInput SelectInputObjectOptions = 0
	SetFocusWithoutInput       SelectInputObjectOptions = 1
)

// LineDirection is the orientation bit used by change-attribute calls that
// manipulate line objects.
type LineDirection byte

const (
	LineDirectionTopLeftToBottomRight LineDirection = 0
	LineDirectionBottomLeftToTopRight LineDirection = 1
)

// KeyActivationCode distinguishes the phase of a soft-key or button event.
type KeyActivationCode byte

const (
	KeyReleased    KeyActivationCode = 0
	KeyPressed     KeyActivationCode = 1
	KeyStillHeld   KeyActivationCode = 2
	KeyPressAborted KeyActivationCode = 3
)

func (k KeyActivationCode) String() string {
	switch k {
	case KeyReleased:
		return "released"
	case KeyPressed:
		return "pressed"
	case KeyStillHeld:
		return "held"
	case KeyPressAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// CapabilityRecord is the passive record of everything learned from the
// partner VT during the handshake. It is populated in the strict order
// documented in §4.2: get-memory-response carries no capability bits (only
// a gating flag consumed by the state machine), followed by
// get-number-softkeys-response, get-text-font-data-response, and
// get-hardware-response. It is never mutated once Connected except across
// a full reconnect.
type CapabilityRecord struct {
	ScreenWidthPixels  uint16
	ScreenHeightPixels uint16

	SoftKeyWidthPixels  uint8
	SoftKeyHeightPixels uint8
	VirtualSoftKeyCount uint8
	PhysicalSoftKeyCount uint8

	SmallFontSizeBitfield uint8
	LargeFontSizeBitfield uint8
	FontStyleBitfield     uint8

	GraphicMode           GraphicMode
	HardwareFeatureBitfield uint8

	ConnectedVTVersionRaw uint8
	ConnectedVTVersion    VTVersion
}

// FontSizeSupported reports whether the given size was advertised by the
// partner VT. Sizes 0..7 index the small bitfield; 8..14 index the large
// bitfield.
func (c *CapabilityRecord) FontSizeSupported(size FontSize) bool {
	if size <= 7 {
		return c.SmallFontSizeBitfield&(1<<uint(size)) != 0
	}
	return c.LargeFontSizeBitfield&(1<<uint(size-8)) != 0
}

// FontStyleSupported reports whether the given style bit was advertised by
// the partner VT.
func (c *CapabilityRecord) FontStyleSupported(style FontStyleBits) bool {
	return c.FontStyleBitfield&(1<<uint(style)) != 0
}

// VTStatusSnapshot is updated on every inbound VT status message
// (fnVTStatusMessage).
type VTStatusSnapshot struct {
	LastSeenMS                 int64
	ActiveWorkingSetMasterAddr uint8
	ActiveDataMaskID           uint16
	ActiveSoftKeyMaskID        uint16
	BusyBits                   uint8
	CurrentCommandFunction     uint8
}

// PoolUploadState is the per-descriptor upload progress.
type PoolUploadState int

const (
	PoolUninitialized PoolUploadState = iota
	PoolInProgress
	PoolSuccess
	PoolFailed
)

// FetchFunc is a caller-supplied pull-callback pool source: fetch must
// place exactly len(out) bytes of the pool, starting at byteOffset within
// the pool's own byte range (not the wire byte range — the object-pool
// transfer multiplexor byte is handled by the upload engine, not the pool
// source), into out and return true on success.
type FetchFunc func(byteOffset uint32, out []byte) bool

// PoolSource is a tagged variant: either an in-memory byte view or a
// pull-callback plus declared total size. Exactly one of Bytes or Fetch is
// set.
type PoolSource struct {
	Bytes []byte
	Fetch FetchFunc
	Size  uint32
}

func (s PoolSource) totalSize() uint32 {
	if s.Fetch != nil {
		return s.Size
	}
	return uint32(len(s.Bytes))
}

// PoolDescriptor is one registered object pool.
type PoolDescriptor struct {
	Index           uint8
	DeclaredVersion VTVersion
	Source          PoolSource
	Uploaded        bool
	UploadState     PoolUploadState
}

// FillType is the fill-pattern discriminant used by change-fill-attributes.
type FillType byte

const (
	FillNone             FillType = 0
	FillSolidColor       FillType = 1
	FillPatternObjectID  FillType = 2
)

// MaskType distinguishes a Data Mask from an Alarm Mask.
type MaskType byte

const (
	DataMask  MaskType = 1
	AlarmMask MaskType = 2
)

// AlarmMaskPriority is the priority byte of change-priority / the Alarm
// Mask object's own priority attribute.
type AlarmMaskPriority byte

const (
	AlarmPriorityHigh   AlarmMaskPriority = 0
	AlarmPriorityMedium AlarmMaskPriority = 1
	AlarmPriorityLow    AlarmMaskPriority = 2
)

// MaskLockState is the lock/unlock state byte of send_lock_unlock_mask.
type MaskLockState byte

const (
	MaskUnlocked MaskLockState = 0
	MaskLocked   MaskLockState = 1
)

// Point16 is a signed 16-bit coordinate pair used by several drawing
// commands (draw-polygon vertices, etc).
type Point16 struct {
	X, Y int16
}

// PolygonPointOffset is a signed 16-bit (dx, dy) pair relative to the
// cursor, used by change-polygon-point.
type PolygonPointOffset struct {
	DX, DY int16
}

// RetryFlag is a deferred-send flag drained on the next driver tick.
type RetryFlag uint8

const (
	RetrySendWorkingSetMaintenance RetryFlag = 1 << 0
)
