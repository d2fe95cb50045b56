package vtclient

import "math"

// newFrame allocates an 8-byte frame with fn in byte 0 and every other
// byte defaulted to 0xFF, the documented "unused" filler for every fixed
// VT message (§4.1).
func newFrame(fn function) []byte {
	f := make([]byte, 8)
	for i := range f {
		f[i] = 0xFF
	}
	f[0] = byte(fn)
	return f
}

func putU16LE(b []byte, at int, v uint16) {
	b[at] = byte(v)
	b[at+1] = byte(v >> 8)
}

func putU32LE(b []byte, at int, v uint32) {
	b[at] = byte(v)
	b[at+1] = byte(v >> 8)
	b[at+2] = byte(v >> 16)
	b[at+3] = byte(v >> 24)
}

// --- working-set lifecycle ---

func encodeWorkingSetMaster() []byte {
	return newFrame(fnWorkingSetMaster)
}

func encodeWorkingSetMaintenance(initializing bool, version VTVersion) []byte {
	f := newFrame(fnWorkingSetMaintenance)
	var flags byte
	if initializing {
		flags |= 0x01
	}
	f[1] = flags
	f[2] = byte(version)
	return f
}

func encodeSelectActiveWorkingSet(name uint64) []byte {
	payload := make([]byte, 9)
	payload[0] = byte(fnSelectActiveWorkingSet)
	for i := 0; i < 8; i++ {
		payload[1+i] = byte(name >> (8 * uint(i)))
	}
	return payload
}

func encodeDeleteObjectPool() []byte {
	return newFrame(fnDeleteObjectPoolCmd)
}

func encodeEndOfObjectPool() []byte {
	return newFrame(fnEndOfObjectPool)
}

// --- capability queries ---

func encodeGetMemory(requiredMemory uint32) []byte {
	f := newFrame(fnGetMemory)
	putU32LE(f, 1, requiredMemory)
	return f
}

func encodeGetNumberSoftkeys() []byte { return newFrame(fnGetNumberSoftkeys) }
func encodeGetTextFontData() []byte   { return newFrame(fnGetTextFontData) }
func encodeGetHardware() []byte       { return newFrame(fnGetHardware) }

func encodeGetSupportedWidechars(codePlane uint8) []byte {
	f := newFrame(fnGetSupportedWidechars)
	f[1] = codePlane
	return f
}

func encodeGetWindowMaskData() []byte   { return newFrame(fnGetWindowMaskData) }
func encodeGetSupportedObjects() []byte { return newFrame(fnGetSupportedObjects) }
func encodeGetVersions() []byte         { return newFrame(fnGetVersionsMessage) }
func encodeExtendedGetVersions() []byte { return newFrame(fnExtendedGetVersions) }

func encodeStoreVersion(label [7]byte) []byte {
	f := newFrame(fnStoreVersion)
	copy(f[1:], label[:])
	return f
}

func encodeLoadVersion(label [7]byte) []byte {
	f := newFrame(fnLoadVersion)
	copy(f[1:], label[:])
	return f
}

func encodeDeleteVersion(label [7]byte) []byte {
	f := newFrame(fnDeleteVersion)
	copy(f[1:], label[:])
	return f
}

func encodeExtendedStoreVersion(label [32]byte) []byte {
	payload := make([]byte, 33)
	payload[0] = byte(fnExtendedStoreVersion)
	copy(payload[1:], label[:])
	return payload
}

func encodeExtendedLoadVersion(label [32]byte) []byte {
	payload := make([]byte, 33)
	payload[0] = byte(fnExtendedLoadVersion)
	copy(payload[1:], label[:])
	return payload
}

func encodeExtendedDeleteVersion(label [32]byte) []byte {
	payload := make([]byte, 33)
	payload[0] = byte(fnExtendedDeleteVersion)
	copy(payload[1:], label[:])
	return payload
}

// --- object manipulation commands ---

func encodeHideShowObject(objID uint16, cmd HideShowObjectCommand) []byte {
	f := newFrame(fnHideShowObject)
	putU16LE(f, 1, objID)
	f[3] = byte(cmd)
	return f
}

func encodeEnableDisableObject(objID uint16, cmd EnableDisableObjectCommand) []byte {
	f := newFrame(fnEnableDisableObject)
	putU16LE(f, 1, objID)
	f[3] = byte(cmd)
	return f
}

func encodeSelectInputObject(objID uint16, opt SelectInputObjectOptions) []byte {
	f := newFrame(fnSelectInputObjectCmd)
	putU16LE(f, 1, objID)
	f[3] = byte(opt)
	return f
}

func encodeESCCommand() []byte {
	return newFrame(fnESCCommand)
}

func encodeControlAudioSignal(activations uint8, frequencyHz, onTimeMS, offTimeMS uint16) []byte {
	f := newFrame(fnControlAudioSignal)
	f[1] = activations
	putU16LE(f, 2, frequencyHz)
	putU16LE(f, 4, onTimeMS)
	putU16LE(f, 6, offTimeMS)
	return f
}

func encodeSetAudioVolume(volumePercent uint8) []byte {
	f := newFrame(fnSetAudioVolume)
	f[1] = volumePercent
	return f
}

// encodeChangeChildLocation passes relativeXPositionChange and
// relativeYPositionChange straight through as raw wire bytes, matching
// send_change_child_location's std::uint8_t parameters in the source
// header — the VT interprets the bias, not this client.
func encodeChangeChildLocation(objID, parentObjID uint16, relativeXPositionChange, relativeYPositionChange uint8) []byte {
	f := newFrame(fnChangeChildLocation)
	putU16LE(f, 1, objID)
	putU16LE(f, 3, parentObjID)
	f[5] = relativeXPositionChange
	f[6] = relativeYPositionChange
	return f
}

func encodeChangeChildPosition(objID, parentObjID uint16, x, y int16) []byte {
	payload := make([]byte, 9)
	payload[0] = byte(fnChangeChildPosition)
	putU16LE(payload, 1, objID)
	putU16LE(payload, 3, parentObjID)
	putU16LE(payload, 5, uint16(x))
	putU16LE(payload, 7, uint16(y))
	return payload
}

func encodeChangeSize(objID, newWidth, newHeight uint16) []byte {
	f := newFrame(fnChangeSize)
	putU16LE(f, 1, objID)
	putU16LE(f, 3, newWidth)
	putU16LE(f, 5, newHeight)
	return f
}

func encodeChangeBackgroundColor(objID uint16, colorIndex uint8) []byte {
	f := newFrame(fnChangeBackgroundColor)
	putU16LE(f, 1, objID)
	f[3] = colorIndex
	return f
}

func encodeChangeNumericValue(objID uint16, value uint32) []byte {
	f := newFrame(fnChangeNumericValue)
	putU16LE(f, 1, objID)
	putU32LE(f, 4, value)
	return f
}

func encodeChangeEndPoint(objID, width, height uint16, direction LineDirection) []byte {
	f := newFrame(fnChangeEndPoint)
	putU16LE(f, 1, objID)
	putU16LE(f, 3, width)
	putU16LE(f, 5, height)
	f[7] = byte(direction)
	return f
}

func encodeChangeFontAttributes(objID uint16, colour uint8, size FontSize, fontType, style uint8) []byte {
	f := newFrame(fnChangeFontAttributes)
	putU16LE(f, 1, objID)
	f[3] = colour
	f[4] = byte(size)
	f[5] = fontType
	f[6] = style
	return f
}

func encodeChangeLineAttributes(objID uint16, colour, width uint8, lineArt uint16) []byte {
	f := newFrame(fnChangeLineAttributes)
	putU16LE(f, 1, objID)
	f[3] = colour
	f[4] = width
	putU16LE(f, 5, lineArt)
	return f
}

func encodeChangeFillAttributes(objID uint16, fillType FillType, colour uint8, fillPatternObjID uint16) []byte {
	f := newFrame(fnChangeFillAttributes)
	putU16LE(f, 1, objID)
	f[3] = byte(fillType)
	f[4] = colour
	putU16LE(f, 5, fillPatternObjID)
	return f
}

func encodeChangeActiveMask(workingSetObjID, newActiveMaskObjID uint16) []byte {
	f := newFrame(fnChangeActiveMask)
	putU16LE(f, 1, workingSetObjID)
	putU16LE(f, 3, newActiveMaskObjID)
	return f
}

func encodeChangeSoftKeyMask(maskType MaskType, dataOrAlarmMaskObjID, newSoftKeyMaskObjID uint16) []byte {
	f := newFrame(fnChangeSoftKeyMask)
	f[1] = byte(maskType)
	putU16LE(f, 2, dataOrAlarmMaskObjID)
	putU16LE(f, 4, newSoftKeyMaskObjID)
	return f
}

func encodeChangeAttribute(objID uint16, attributeID uint8, newValue uint32) []byte {
	f := newFrame(fnChangeAttribute)
	putU16LE(f, 1, objID)
	f[3] = attributeID
	putU32LE(f, 4, newValue)
	return f
}

func encodeChangePriority(alarmMaskObjID uint16, priority AlarmMaskPriority) []byte {
	f := newFrame(fnChangePriority)
	putU16LE(f, 1, alarmMaskObjID)
	f[3] = byte(priority)
	return f
}

func encodeChangeListItem(objID uint16, listIndex uint8, newObjID uint16) []byte {
	f := newFrame(fnChangeListItem)
	putU16LE(f, 1, objID)
	f[3] = listIndex
	putU16LE(f, 4, newObjID)
	return f
}

// encodeChangeStringValue returns the unpadded payload: [fn][objId lo/hi]
// [len lo/hi][chars...]. The caller pads to 8 bytes and uses SendFrame
// when the payload fits, or routes through SendTransport otherwise
// (§4.1/§8 boundary scenario 4).
func encodeChangeStringValue(objID uint16, value string) []byte {
	chars := []byte(value)
	payload := make([]byte, 5+len(chars))
	payload[0] = byte(fnChangeStringValue)
	putU16LE(payload, 1, objID)
	putU16LE(payload, 3, uint16(len(chars)))
	copy(payload[5:], chars)
	return payload
}

func encodeChangeObjectLabel(objID, stringVariableObjID uint16, fontType uint8, graphicRepresentationObjID uint16) []byte {
	f := newFrame(fnChangeObjectLabel)
	putU16LE(f, 1, objID)
	putU16LE(f, 3, stringVariableObjID)
	f[5] = fontType
	putU16LE(f, 6, graphicRepresentationObjID)
	return f
}

// encodeChangePolygonPoint returns the unpadded payload: [fn][objId lo/hi]
// [pointIndex][(dx,dy) pairs...], per §4.1's "8-bit point index, then n
// pairs of 16-bit signed offsets relative to the cursor."
func encodeChangePolygonPoint(objID uint16, pointIndex uint8, points []PolygonPointOffset) []byte {
	payload := make([]byte, 4+4*len(points))
	payload[0] = byte(fnChangePolygonPoint)
	putU16LE(payload, 1, objID)
	payload[3] = pointIndex
	at := 4
	for _, p := range points {
		putU16LE(payload, at, uint16(p.DX))
		putU16LE(payload, at+2, uint16(p.DY))
		at += 4
	}
	return payload
}

func encodeChangePolygonScale(objID, widthScale, heightScale uint16) []byte {
	f := newFrame(fnChangePolygonScale)
	putU16LE(f, 1, objID)
	putU16LE(f, 3, widthScale)
	putU16LE(f, 5, heightScale)
	return f
}

func encodeGetAttributeValue(objID uint16, attributeID uint8) []byte {
	f := newFrame(fnGetAttributeValue)
	putU16LE(f, 1, objID)
	f[3] = attributeID
	return f
}

func encodeSelectColorMap(objID uint16) []byte {
	f := newFrame(fnSelectColorMap)
	putU16LE(f, 1, objID)
	return f
}

func encodeExecuteExtendedMacro(objID uint16) []byte {
	f := newFrame(fnExecuteExtendedMacro)
	putU16LE(f, 1, objID)
	return f
}

func encodeLockUnlockMask(maskType MaskType, objID uint16, lockState MaskLockState, timeoutMS uint16) []byte {
	f := newFrame(fnLockUnlockMask)
	f[1] = byte(maskType)
	putU16LE(f, 2, objID)
	f[4] = byte(lockState)
	putU16LE(f, 5, timeoutMS)
	return f
}

func encodeExecuteMacro(macroObjID uint16) []byte {
	f := newFrame(fnExecuteMacro)
	putU16LE(f, 1, macroObjID)
	return f
}

// --- graphics context (outer fn 0xB8, sub-command byte) ---

func encodeGraphicsContext(gcObjID uint16, sub gcSubCommand, payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	out[0] = byte(fnGraphicsContext)
	putU16LE(out, 1, gcObjID)
	out[3] = byte(sub)
	copy(out[4:], payload)
	if len(out) < 8 {
		padded := make([]byte, 8)
		for i := range padded {
			padded[i] = 0xFF
		}
		copy(padded, out)
		return padded
	}
	return out
}

func encodeSetGraphicsCursor(gcObjID uint16, x, y int16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, uint16(x))
	putU16LE(p, 2, uint16(y))
	return encodeGraphicsContext(gcObjID, gcSetGraphicsCursor, p)
}

func encodeMoveGraphicsCursor(gcObjID uint16, dx, dy int16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, uint16(dx))
	putU16LE(p, 2, uint16(dy))
	return encodeGraphicsContext(gcObjID, gcMoveGraphicsCursor, p)
}

func encodeSetForegroundColor(gcObjID uint16, colour uint8) []byte {
	return encodeGraphicsContext(gcObjID, gcSetForegroundColor, []byte{colour})
}

func encodeSetBackgroundColor(gcObjID uint16, colour uint8) []byte {
	return encodeGraphicsContext(gcObjID, gcSetBackgroundColor, []byte{colour})
}

func encodeSetLineAttributesObjectID(gcObjID, attrObjID uint16) []byte {
	p := make([]byte, 2)
	putU16LE(p, 0, attrObjID)
	return encodeGraphicsContext(gcObjID, gcSetLineAttributesObjectID, p)
}

func encodeSetFillAttributesObjectID(gcObjID, attrObjID uint16) []byte {
	p := make([]byte, 2)
	putU16LE(p, 0, attrObjID)
	return encodeGraphicsContext(gcObjID, gcSetFillAttributesObjectID, p)
}

func encodeSetFontAttributesObjectID(gcObjID, attrObjID uint16) []byte {
	p := make([]byte, 2)
	putU16LE(p, 0, attrObjID)
	return encodeGraphicsContext(gcObjID, gcSetFontAttributesObjectID, p)
}

func encodeEraseRectangle(gcObjID, width, height uint16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, width)
	putU16LE(p, 2, height)
	return encodeGraphicsContext(gcObjID, gcEraseRectangle, p)
}

func encodeDrawPoint(gcObjID uint16, x, y int16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, uint16(x))
	putU16LE(p, 2, uint16(y))
	return encodeGraphicsContext(gcObjID, gcDrawPoint, p)
}

func encodeDrawLine(gcObjID uint16, x, y int16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, uint16(x))
	putU16LE(p, 2, uint16(y))
	return encodeGraphicsContext(gcObjID, gcDrawLine, p)
}

func encodeDrawRectangle(gcObjID, width, height uint16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, width)
	putU16LE(p, 2, height)
	return encodeGraphicsContext(gcObjID, gcDrawRectangle, p)
}

func encodeDrawClosedEllipse(gcObjID, width, height uint16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, width)
	putU16LE(p, 2, height)
	return encodeGraphicsContext(gcObjID, gcDrawClosedEllipse, p)
}

func encodeDrawPolygon(gcObjID uint16, points []Point16) []byte {
	p := make([]byte, 4*len(points))
	at := 0
	for _, pt := range points {
		putU16LE(p, at, uint16(pt.X))
		putU16LE(p, at+2, uint16(pt.Y))
		at += 4
	}
	return encodeGraphicsContext(gcObjID, gcDrawPolygon, p)
}

func encodeDrawText(gcObjID uint16, transparent bool, text string) []byte {
	chars := []byte(text)
	p := make([]byte, 2+len(chars))
	if transparent {
		p[0] = 1
	}
	p[1] = byte(len(chars))
	copy(p[2:], chars)
	return encodeGraphicsContext(gcObjID, gcDrawText, p)
}

func encodePanViewport(gcObjID uint16, dx, dy int16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, uint16(dx))
	putU16LE(p, 2, uint16(dy))
	return encodeGraphicsContext(gcObjID, gcPanViewport, p)
}

// encodeZoomViewport matches §8 boundary scenario 5 exactly: sub-command
// 0x0F followed by a 4-byte IEEE-754 LE float. zoom must lie in -32.0..32.0
// (the caller-facing wrapper in commands.go rejects out-of-range values
// before reaching here).
func encodeZoomViewport(gcObjID uint16, zoom float32) []byte {
	bits := math.Float32bits(zoom)
	p := make([]byte, 4)
	putU32LE(p, 0, bits)
	return encodeGraphicsContext(gcObjID, gcZoomViewport, p)
}

func encodePanAndZoomViewport(gcObjID uint16, dx, dy int16, zoom float32) []byte {
	p := make([]byte, 8)
	putU16LE(p, 0, uint16(dx))
	putU16LE(p, 2, uint16(dy))
	putU32LE(p, 4, math.Float32bits(zoom))
	return encodeGraphicsContext(gcObjID, gcPanAndZoomViewport, p)
}

func encodeChangeViewportSize(gcObjID, width, height uint16) []byte {
	p := make([]byte, 4)
	putU16LE(p, 0, width)
	putU16LE(p, 2, height)
	return encodeGraphicsContext(gcObjID, gcChangeViewportSize, p)
}

func encodeDrawVTObject(gcObjID, objID uint16) []byte {
	p := make([]byte, 2)
	putU16LE(p, 0, objID)
	return encodeGraphicsContext(gcObjID, gcDrawVTObject, p)
}

func encodeCopyCanvasToPicture(gcObjID, pictureGraphicObjID uint16) []byte {
	p := make([]byte, 2)
	putU16LE(p, 0, pictureGraphicObjID)
	return encodeGraphicsContext(gcObjID, gcCopyCanvasToPicture, p)
}

func encodeCopyViewportToPicture(gcObjID, pictureGraphicObjID uint16) []byte {
	p := make([]byte, 2)
	putU16LE(p, 0, pictureGraphicObjID)
	return encodeGraphicsContext(gcObjID, gcCopyViewportToPicture, p)
}
