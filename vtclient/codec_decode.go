package vtclient

func getU16LE(b []byte, at int) uint16 {
	return uint16(b[at]) | uint16(b[at+1])<<8
}

func getU32LE(b []byte, at int) uint32 {
	return uint32(b[at]) | uint32(b[at+1])<<8 | uint32(b[at+2])<<16 | uint32(b[at+3])<<24
}

// decodeInbound decodes one reassembled inbound payload into a typed
// event. It returns nil for any function code the codec does not
// recognize — per §4.1, unknown function codes are discarded, not fatal.
func decodeInbound(payload []byte) interface{} {
	if len(payload) == 0 {
		return nil
	}
	fn := function(payload[0])
	switch fn {
	case fnSoftKeyActivation:
		if len(payload) < 7 {
			return nil
		}
		return &SoftKeyEvent{
			KeyCode:   KeyActivationCode(payload[1]),
			ObjectID:  getU16LE(payload, 2),
			MaskID:    getU16LE(payload, 4),
			KeyNumber: payload[6],
		}
	case fnButtonActivation:
		if len(payload) < 7 {
			return nil
		}
		return &ButtonEvent{
			KeyCode:        KeyActivationCode(payload[1]),
			ObjectID:       getU16LE(payload, 2),
			ParentObjectID: getU16LE(payload, 4),
			KeyNumber:      payload[6],
		}
	case fnPointingEvent:
		if len(payload) < 6 {
			return nil
		}
		return &PointingEvent{
			X:          getU16LE(payload, 1),
			Y:          getU16LE(payload, 3),
			TouchState: KeyActivationCode(payload[5]),
		}
	case fnSelectInputObject:
		if len(payload) < 4 {
			return nil
		}
		return &SelectInputObjectEvent{
			ObjectID:     getU16LE(payload, 1),
			Selected:     payload[3] != 0,
			OpenForInput: len(payload) > 4 && payload[4] != 0,
		}
	case fnESC:
		if len(payload) < 4 {
			return nil
		}
		return &ESCEvent{
			ObjectID:  getU16LE(payload, 1),
			ErrorCode: payload[3],
		}
	case fnChangeNumericValueNotify:
		if len(payload) < 8 {
			return nil
		}
		return &ChangeNumericValueNotification{
			ObjectID: getU16LE(payload, 1),
			Value:    getU32LE(payload, 4),
		}
	case fnChangeActiveMaskNotify:
		if len(payload) < 4 {
			return nil
		}
		return &ChangeActiveMaskNotification{
			MaskObjectID: getU16LE(payload, 1),
			ErrorCode:    payload[3],
		}
	case fnChangeSoftKeyMaskNotify:
		if len(payload) < 6 {
			return nil
		}
		return &ChangeSoftKeyMaskNotification{
			MaskObjectID:        getU16LE(payload, 1),
			SoftKeyMaskObjectID: getU16LE(payload, 3),
			ErrorCode:           payload[5],
		}
	case fnChangeStringValueNotify:
		if len(payload) < 5 {
			return nil
		}
		n := int(getU16LE(payload, 3))
		if 5+n > len(payload) {
			n = len(payload) - 5
		}
		return &ChangeStringValueNotification{
			ObjectID: getU16LE(payload, 1),
			Value:    string(payload[5 : 5+n]),
		}
	case fnOnUserLayoutHideShow:
		if len(payload) < 4 {
			return nil
		}
		return &OnUserLayoutHideShowNotification{
			ObjectID: getU16LE(payload, 1),
			Shown:    payload[3] != 0,
		}
	case fnVTControlAudioSignalTerm:
		if len(payload) < 2 {
			return nil
		}
		return &AudioSignalTerminationNotification{
			TerminatedEarly: payload[1] != 0,
		}
	case fnGetMemory:
		if len(payload) < 2 {
			return nil
		}
		return &GetMemoryResponse{SufficientMemory: payload[1] == 0}
	case fnGetNumberSoftkeys:
		if len(payload) < 6 {
			return nil
		}
		return &GetNumberSoftkeysResponse{
			SoftKeyWidthPixels:   payload[1],
			SoftKeyHeightPixels:  payload[2],
			VirtualSoftKeyCount:  payload[3],
			PhysicalSoftKeyCount: payload[4],
		}
	case fnGetTextFontData:
		if len(payload) < 4 {
			return nil
		}
		return &GetTextFontDataResponse{
			SmallFontSizeBitfield: payload[1],
			LargeFontSizeBitfield: payload[2],
			FontStyleBitfield:     payload[3],
		}
	case fnGetHardware:
		if len(payload) < 7 {
			return nil
		}
		return &GetHardwareResponse{
			GraphicMode:             GraphicMode(payload[1]),
			HardwareFeatureBitfield: payload[2],
			ScreenWidthPixels:       getU16LE(payload, 3),
			ScreenHeightPixels:      getU16LE(payload, 5),
			ConnectedVTVersionRaw:   payload[6],
		}
	case fnEndOfObjectPool:
		if len(payload) < 7 {
			return nil
		}
		return &EndOfObjectPoolResponse{
			Success:        payload[1] == 0,
			ErrorObjectID:  getU16LE(payload, 2),
			ParentObjectID: getU16LE(payload, 4),
			ErrorCode:      payload[6],
		}
	case fnUnsupportedVTFunction:
		if len(payload) < 2 {
			return nil
		}
		return &UnsupportedFunctionNotification{FunctionCode: payload[1]}
	case fnVTStatusMessage:
		if len(payload) < 8 {
			return nil
		}
		return &VTStatusMessage{
			WorkingSetMasterAddress: payload[1],
			ActiveDataMaskID:        getU16LE(payload, 2),
			ActiveSoftKeyMaskID:     getU16LE(payload, 4),
			BusyBits:                payload[6],
			CurrentCommandFunction:  payload[7],
		}
	default:
		return nil
	}
}
