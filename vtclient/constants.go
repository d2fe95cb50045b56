package vtclient

import "time"

// NullObjectID is the reserved object ID meaning "no object" on the wire.
const NullObjectID uint16 = 0xFFFF

// Timing constants from ISO 11783-6. VTStatusTimeout is the freshness floor
// for the partner's VT status message; losing it while Connected regresses
// the state machine to Disconnected. MaintenanceInterval is the cadence of
// the working-set-maintenance heartbeat while Connected.
const (
	VTStatusTimeout     = 3000 * time.Millisecond
	MaintenanceInterval = 1000 * time.Millisecond

	// HandshakeStepTimeout is not specified by the source header (see
	// DESIGN.md, Open Questions); 1500ms is a conservative per-step budget
	// for each Send.../WaitFor... handshake exchange.
	HandshakeStepTimeout = 1500 * time.Millisecond
)

// function is the wire multiplexor byte: the first byte of every VT
// message. Discriminants are fixed by ISO 11783-6 and must never be
// renumbered.
type function byte

const (
	fnSoftKeyActivation            function = 0x00
	fnButtonActivation             function = 0x01
	fnPointingEvent                function = 0x02
	fnSelectInputObject            function = 0x03
	fnESC                          function = 0x04
	fnChangeNumericValueNotify     function = 0x05
	fnChangeActiveMaskNotify       function = 0x06
	fnChangeSoftKeyMaskNotify      function = 0x07
	fnChangeStringValueNotify      function = 0x08
	fnOnUserLayoutHideShow         function = 0x09
	fnVTControlAudioSignalTerm     function = 0x0A
	fnWorkingSetMaster             function = 0x0E
	fnWorkingSetMaintenance        function = 0xFF

	fnObjectPoolTransfer function = 0x11
	fnEndOfObjectPool    function = 0x12

	fnAuxAssignType1    function = 0x20
	fnAuxInputType1     function = 0x21
	fnAuxAssignType2    function = 0x22
	fnAuxInputType2Stat function = 0x23
	fnAuxInputType2Max  function = 0x24
	fnAuxInputTypeMaint function = 0x25
	fnAuxCapsRequest    function = 0x26
	fnAuxCapsResponse   function = 0x27

	fnSelectActiveWorkingSet function = 0x90
	fnESCCommand             function = 0x92

	fnHideShowObject        function = 0xA0
	fnEnableDisableObject   function = 0xA1
	fnSelectInputObjectCmd  function = 0xA2
	fnControlAudioSignal    function = 0xA3
	fnSetAudioVolume        function = 0xA4
	fnChangeChildLocation   function = 0xA5
	fnChangeSize            function = 0xA6
	fnChangeBackgroundColor function = 0xA7
	fnChangeNumericValue    function = 0xA8
	fnChangeEndPoint        function = 0xA9
	fnChangeFontAttributes  function = 0xAA
	fnChangeLineAttributes  function = 0xAB
	fnChangeFillAttributes  function = 0xAC
	fnChangeActiveMask      function = 0xAD
	fnChangeSoftKeyMask     function = 0xAE
	fnChangeAttribute       function = 0xAF
	fnChangePriority        function = 0xB0
	fnChangeListItem        function = 0xB1
	fnDeleteObjectPoolCmd   function = 0xB2
	fnChangeStringValue     function = 0xB3
	fnChangeChildPosition   function = 0xB4
	fnChangeObjectLabel     function = 0xB5
	fnChangePolygonPoint    function = 0xB6
	fnChangePolygonScale    function = 0xB7
	fnGraphicsContext       function = 0xB8
	fnGetAttributeValue     function = 0xB9
	fnSelectColorMap        function = 0xBA
	// fnIdentifyVT = 0xBB is excluded: the source header has no public
	// sender for it (see SPEC_FULL.md §2), so it is not named here either.
	fnExecuteExtendedMacro function = 0xBC
	fnLockUnlockMask       function = 0xBD
	fnExecuteMacro         function = 0xBE

	// GetMemory..GetHardware share one wire byte between the ECU's query and
	// the VT's reply; direction (PGNECUToVT vs PGNVTToECU), not a distinct
	// code, disambiguates the two. There is no 0xC6.
	fnGetMemory             function = 0xC0
	fnGetSupportedWidechars function = 0xC1
	fnGetNumberSoftkeys     function = 0xC2
	fnGetTextFontData       function = 0xC3
	fnGetWindowMaskData     function = 0xC4
	fnGetSupportedObjects   function = 0xC5
	fnGetHardware           function = 0xC7

	fnStoreVersion          function = 0xD0
	fnLoadVersion           function = 0xD1
	fnDeleteVersion         function = 0xD2
	fnExtendedGetVersions   function = 0xD3
	fnExtendedStoreVersion  function = 0xD4
	fnExtendedLoadVersion   function = 0xD5
	fnExtendedDeleteVersion function = 0xD6

	fnGetVersionsMessage  function = 0xDF
	fnGetVersionsResponse function = 0xE0

	fnUnsupportedVTFunction function = 0xFD
	fnVTStatusMessage       function = 0xFE
)

// gcSubCommand is the 1-byte sub-command carried by every 0xB8 (graphics
// context) message.
type gcSubCommand byte

const (
	gcSetGraphicsCursor         gcSubCommand = 0x00
	gcMoveGraphicsCursor        gcSubCommand = 0x01
	gcSetForegroundColor        gcSubCommand = 0x02
	gcSetBackgroundColor        gcSubCommand = 0x03
	gcSetLineAttributesObjectID gcSubCommand = 0x04
	gcSetFillAttributesObjectID gcSubCommand = 0x05
	gcSetFontAttributesObjectID gcSubCommand = 0x06
	gcEraseRectangle            gcSubCommand = 0x07
	gcDrawPoint                 gcSubCommand = 0x08
	gcDrawLine                  gcSubCommand = 0x09
	gcDrawRectangle             gcSubCommand = 0x0A
	gcDrawClosedEllipse         gcSubCommand = 0x0B
	gcDrawPolygon               gcSubCommand = 0x0C
	gcDrawText                  gcSubCommand = 0x0D
	gcPanViewport               gcSubCommand = 0x0E
	gcZoomViewport              gcSubCommand = 0x0F
	gcPanAndZoomViewport        gcSubCommand = 0x10
	gcChangeViewportSize        gcSubCommand = 0x11
	gcDrawVTObject              gcSubCommand = 0x12
	gcCopyCanvasToPicture       gcSubCommand = 0x13
	gcCopyViewportToPicture     gcSubCommand = 0x14
)
