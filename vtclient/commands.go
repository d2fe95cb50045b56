package vtclient

// This file is the Client Facade (§4.7): thin wrappers over the codec that
// hand a frame to the NetworkManager and return whether it was accepted
// for transmission. None of these block; failure is limited to
// not-yet-Connected, network-manager rejection, or invalid caller input.

func (c *Client) sendFixed(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Connected {
		return false
	}
	return c.submit(frame)
}

// sendVariable submits an unpadded payload built by one of the codec's
// variable-length encoders, choosing SendFrame (zero-padded to 8 bytes)
// or SendTransport depending on length, per §4.1.
func (c *Client) sendVariable(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Connected {
		return false
	}
	if len(payload) <= 8 {
		frame := make([]byte, 8)
		for i := range frame {
			frame[i] = 0xFF
		}
		copy(frame, payload)
		return c.submit(frame)
	}
	fixed := append([]byte(nil), payload...)
	return c.net.SendTransport(c.ctx, PGNECUToVT, c.local, c.partner, uint32(len(fixed)), fixedPayloadFetch(fixed), nil)
}

func fixedPayloadFetch(payload []byte) TransportFetchFunc {
	return func(invocationCount int, byteOffset, bytesRequested uint32, out []byte) bool {
		end := byteOffset + bytesRequested
		if end > uint32(len(payload)) {
			return false
		}
		copy(out[:bytesRequested], payload[byteOffset:end])
		return true
	}
}

// SendHideShowObject shows or hides objID.
func (c *Client) SendHideShowObject(objID uint16, cmd HideShowObjectCommand) bool {
	return c.sendFixed(encodeHideShowObject(objID, cmd))
}

// SendEnableDisableObject enables or disables objID for input.
func (c *Client) SendEnableDisableObject(objID uint16, cmd EnableDisableObjectCommand) bool {
	return c.sendFixed(encodeEnableDisableObject(objID, cmd))
}

// SendSelectInputObject requests focus (with or without triggering input)
// on objID.
func (c *Client) SendSelectInputObject(objID uint16, opt SelectInputObjectOptions) bool {
	return c.sendFixed(encodeSelectInputObject(objID, opt))
}

// SendESC cancels the current input activity on the connected VT.
func (c *Client) SendESC() bool {
	return c.sendFixed(encodeESCCommand())
}

// SendControlAudioSignal drives the VT's built-in audio transducer.
func (c *Client) SendControlAudioSignal(activations uint8, frequencyHz, onTimeMS, offTimeMS uint16) bool {
	return c.sendFixed(encodeControlAudioSignal(activations, frequencyHz, onTimeMS, offTimeMS))
}

// SendSetAudioVolume sets the VT's audio output volume, 0-100.
func (c *Client) SendSetAudioVolume(volumePercent uint8) bool {
	if volumePercent > 100 {
		return false
	}
	return c.sendFixed(encodeSetAudioVolume(volumePercent))
}

// SendChangeChildLocation moves objID (a child of parentObjID) by the raw
// wire-byte deltas relativeXPositionChange/relativeYPositionChange, passed
// straight through to the VT uninterpreted.
func (c *Client) SendChangeChildLocation(objID, parentObjID uint16, relativeXPositionChange, relativeYPositionChange uint8) bool {
	return c.sendFixed(encodeChangeChildLocation(objID, parentObjID, relativeXPositionChange, relativeYPositionChange))
}

// SendChangeChildPosition sets objID's absolute position within
// parentObjID.
func (c *Client) SendChangeChildPosition(objID, parentObjID uint16, x, y int16) bool {
	return c.sendVariable(encodeChangeChildPosition(objID, parentObjID, x, y))
}

// SendChangeSize resizes objID.
func (c *Client) SendChangeSize(objID, newWidth, newHeight uint16) bool {
	return c.sendFixed(encodeChangeSize(objID, newWidth, newHeight))
}

// SendChangeBackgroundColor recolors objID's background.
func (c *Client) SendChangeBackgroundColor(objID uint16, colorIndex uint8) bool {
	return c.sendFixed(encodeChangeBackgroundColor(objID, colorIndex))
}

// SendChangeNumericValue sets objID's numeric attribute to value.
func (c *Client) SendChangeNumericValue(objID uint16, value uint32) bool {
	return c.sendFixed(encodeChangeNumericValue(objID, value))
}

// SendChangeEndPoint resizes a line/rectangle-like object by moving its
// endpoint.
func (c *Client) SendChangeEndPoint(objID, width, height uint16, direction LineDirection) bool {
	return c.sendFixed(encodeChangeEndPoint(objID, width, height, direction))
}

// SendChangeFontAttributes updates objID's font colour, size, type, and
// style bits.
func (c *Client) SendChangeFontAttributes(objID uint16, colour uint8, size FontSize, fontType, style uint8) bool {
	return c.sendFixed(encodeChangeFontAttributes(objID, colour, size, fontType, style))
}

// SendChangeLineAttributes updates objID's line colour, width, and
// line-art pattern.
func (c *Client) SendChangeLineAttributes(objID uint16, colour, width uint8, lineArt uint16) bool {
	return c.sendFixed(encodeChangeLineAttributes(objID, colour, width, lineArt))
}

// SendChangeFillAttributes updates objID's fill type, colour, and fill
// pattern object.
func (c *Client) SendChangeFillAttributes(objID uint16, fillType FillType, colour uint8, fillPatternObjID uint16) bool {
	return c.sendFixed(encodeChangeFillAttributes(objID, fillType, colour, fillPatternObjID))
}

// SendChangeActiveMask switches workingSetObjID's currently active mask.
func (c *Client) SendChangeActiveMask(workingSetObjID, newActiveMaskObjID uint16) bool {
	return c.sendFixed(encodeChangeActiveMask(workingSetObjID, newActiveMaskObjID))
}

// SendChangeSoftKeyMask switches the soft-key mask bound to a data or
// alarm mask.
func (c *Client) SendChangeSoftKeyMask(maskType MaskType, dataOrAlarmMaskObjID, newSoftKeyMaskObjID uint16) bool {
	return c.sendFixed(encodeChangeSoftKeyMask(maskType, dataOrAlarmMaskObjID, newSoftKeyMaskObjID))
}

// SendChangeAttribute sets a generic attribute of objID by attribute ID.
func (c *Client) SendChangeAttribute(objID uint16, attributeID uint8, newValue uint32) bool {
	return c.sendFixed(encodeChangeAttribute(objID, attributeID, newValue))
}

// SendChangePriority sets an alarm mask's display priority.
func (c *Client) SendChangePriority(alarmMaskObjID uint16, priority AlarmMaskPriority) bool {
	return c.sendFixed(encodeChangePriority(alarmMaskObjID, priority))
}

// SendChangeListItem replaces one entry of a list-like object.
func (c *Client) SendChangeListItem(objID uint16, listIndex uint8, newObjID uint16) bool {
	return c.sendFixed(encodeChangeListItem(objID, listIndex, newObjID))
}

// SendDeleteObjectPool requests the connected VT discard the uploaded
// object pool.
func (c *Client) SendDeleteObjectPool() bool {
	return c.sendFixed(encodeDeleteObjectPool())
}

// SendChangeStringValue sets objID's string attribute. value may be
// shorter than the target object's declared length; the server right-pads
// with spaces.
func (c *Client) SendChangeStringValue(objID uint16, value string) bool {
	return c.sendVariable(encodeChangeStringValue(objID, value))
}

// SendChangeObjectLabel rebinds objID's label to a string variable object
// and, optionally, a graphic representation object.
func (c *Client) SendChangeObjectLabel(objID, stringVariableObjID uint16, fontType uint8, graphicRepresentationObjID uint16) bool {
	return c.sendFixed(encodeChangeObjectLabel(objID, stringVariableObjID, fontType, graphicRepresentationObjID))
}

// SendChangePolygonPoint rewrites points starting at pointIndex as offsets
// relative to the polygon's cursor.
func (c *Client) SendChangePolygonPoint(objID uint16, pointIndex uint8, points []PolygonPointOffset) bool {
	if len(points) == 0 {
		return false
	}
	return c.sendVariable(encodeChangePolygonPoint(objID, pointIndex, points))
}

// SendChangePolygonScale rescales a polygon object.
func (c *Client) SendChangePolygonScale(objID, widthScale, heightScale uint16) bool {
	return c.sendFixed(encodeChangePolygonScale(objID, widthScale, heightScale))
}

// SendGetAttributeValue requests the current value of one of objID's
// attributes. The request is fire-and-forget: the core does not decode the
// VT's get-attribute-value reply, so handleReceive discards it as an
// unrecognised payload and no event or callback carries the value.
func (c *Client) SendGetAttributeValue(objID uint16, attributeID uint8) bool {
	return c.sendFixed(encodeGetAttributeValue(objID, attributeID))
}

// SendSelectColorMap selects objID as the active colour map or palette.
func (c *Client) SendSelectColorMap(objID uint16) bool {
	return c.sendFixed(encodeSelectColorMap(objID))
}

// SendExecuteExtendedMacro runs the extended macro identified by objID.
func (c *Client) SendExecuteExtendedMacro(objID uint16) bool {
	return c.sendFixed(encodeExecuteExtendedMacro(objID))
}

// SendLockUnlockMask locks or unlocks a mask for the given timeout,
// suppressing/allowing redraws while a batch of changes is applied.
func (c *Client) SendLockUnlockMask(maskType MaskType, objID uint16, lockState MaskLockState, timeoutMS uint16) bool {
	return c.sendFixed(encodeLockUnlockMask(maskType, objID, lockState, timeoutMS))
}

// SendExecuteMacro runs the macro object macroObjID.
func (c *Client) SendExecuteMacro(macroObjID uint16) bool {
	return c.sendFixed(encodeExecuteMacro(macroObjID))
}

// SendSelectActiveWorkingSet switches the active working set to the one
// identified by its 8-byte ISO NAME.
func (c *Client) SendSelectActiveWorkingSet(name uint64) bool {
	return c.sendVariable(encodeSelectActiveWorkingSet(name))
}

// SendStoreVersion, SendLoadVersion, and SendDeleteVersion drive the
// 7-byte-label version-housekeeping commands (§2's supplemented surface;
// the core neither validates nor interprets the label).
func (c *Client) SendStoreVersion(label [7]byte) bool  { return c.sendFixed(encodeStoreVersion(label)) }
func (c *Client) SendLoadVersion(label [7]byte) bool   { return c.sendFixed(encodeLoadVersion(label)) }
func (c *Client) SendDeleteVersion(label [7]byte) bool { return c.sendFixed(encodeDeleteVersion(label)) }

// SendExtendedStoreVersion, SendExtendedLoadVersion, and
// SendExtendedDeleteVersion are the 32-byte-label variants.
func (c *Client) SendExtendedStoreVersion(label [32]byte) bool {
	return c.sendVariable(encodeExtendedStoreVersion(label))
}
func (c *Client) SendExtendedLoadVersion(label [32]byte) bool {
	return c.sendVariable(encodeExtendedLoadVersion(label))
}
func (c *Client) SendExtendedDeleteVersion(label [32]byte) bool {
	return c.sendVariable(encodeExtendedDeleteVersion(label))
}

// SendGetSupportedWidechars queries wide-character support for a Unicode
// code plane.
func (c *Client) SendGetSupportedWidechars(codePlane uint8) bool {
	return c.sendFixed(encodeGetSupportedWidechars(codePlane))
}

// SendGetWindowMaskData requests window mask layout data.
func (c *Client) SendGetWindowMaskData() bool { return c.sendFixed(encodeGetWindowMaskData()) }

// SendGetSupportedObjects requests the list of object types the connected
// VT supports.
func (c *Client) SendGetSupportedObjects() bool { return c.sendFixed(encodeGetSupportedObjects()) }

// SendGetVersions requests the list of object pool versions stored on the
// connected VT.
func (c *Client) SendGetVersions() bool { return c.sendFixed(encodeGetVersions()) }

// SendExtendedGetVersions is SendGetVersions' 32-byte-label counterpart,
// requesting the list of extended-label object pool versions stored on the
// connected VT (§2's supplemented surface).
func (c *Client) SendExtendedGetVersions() bool { return c.sendFixed(encodeExtendedGetVersions()) }

// --- graphics context (outer function 0xB8) ---

func (c *Client) SendSetGraphicsCursor(gcObjID uint16, x, y int16) bool {
	return c.sendFixed(encodeSetGraphicsCursor(gcObjID, x, y))
}

func (c *Client) SendMoveGraphicsCursor(gcObjID uint16, dx, dy int16) bool {
	return c.sendFixed(encodeMoveGraphicsCursor(gcObjID, dx, dy))
}

func (c *Client) SendSetForegroundColor(gcObjID uint16, colour uint8) bool {
	return c.sendFixed(encodeSetForegroundColor(gcObjID, colour))
}

func (c *Client) SendSetBackgroundColor(gcObjID uint16, colour uint8) bool {
	return c.sendFixed(encodeSetBackgroundColor(gcObjID, colour))
}

func (c *Client) SendSetLineAttributesObjectID(gcObjID, attrObjID uint16) bool {
	return c.sendFixed(encodeSetLineAttributesObjectID(gcObjID, attrObjID))
}

func (c *Client) SendSetFillAttributesObjectID(gcObjID, attrObjID uint16) bool {
	return c.sendFixed(encodeSetFillAttributesObjectID(gcObjID, attrObjID))
}

func (c *Client) SendSetFontAttributesObjectID(gcObjID, attrObjID uint16) bool {
	return c.sendFixed(encodeSetFontAttributesObjectID(gcObjID, attrObjID))
}

func (c *Client) SendEraseRectangle(gcObjID, width, height uint16) bool {
	return c.sendFixed(encodeEraseRectangle(gcObjID, width, height))
}

func (c *Client) SendDrawPoint(gcObjID uint16, x, y int16) bool {
	return c.sendFixed(encodeDrawPoint(gcObjID, x, y))
}

func (c *Client) SendDrawLine(gcObjID uint16, x, y int16) bool {
	return c.sendFixed(encodeDrawLine(gcObjID, x, y))
}

func (c *Client) SendDrawRectangle(gcObjID, width, height uint16) bool {
	return c.sendFixed(encodeDrawRectangle(gcObjID, width, height))
}

func (c *Client) SendDrawClosedEllipse(gcObjID, width, height uint16) bool {
	return c.sendFixed(encodeDrawClosedEllipse(gcObjID, width, height))
}

func (c *Client) SendDrawPolygon(gcObjID uint16, points []Point16) bool {
	if len(points) == 0 {
		return false
	}
	return c.sendVariable(encodeDrawPolygon(gcObjID, points))
}

func (c *Client) SendDrawText(gcObjID uint16, transparent bool, text string) bool {
	if len(text) > 255 {
		return false
	}
	return c.sendVariable(encodeDrawText(gcObjID, transparent, text))
}

func (c *Client) SendPanViewport(gcObjID uint16, dx, dy int16) bool {
	return c.sendFixed(encodePanViewport(gcObjID, dx, dy))
}

// SendZoomViewport zooms gcObjID's viewport. zoom must lie in -32.0..32.0;
// values outside that range are a caller error (§4.1/§8 boundary
// scenario 5).
func (c *Client) SendZoomViewport(gcObjID uint16, zoom float32) bool {
	if zoom < -32.0 || zoom > 32.0 {
		return false
	}
	return c.sendFixed(encodeZoomViewport(gcObjID, zoom))
}

// SendPanAndZoomViewport combines a pan and a zoom in one message. zoom
// must lie in -32.0..32.0.
func (c *Client) SendPanAndZoomViewport(gcObjID uint16, dx, dy int16, zoom float32) bool {
	if zoom < -32.0 || zoom > 32.0 {
		return false
	}
	return c.sendVariable(encodePanAndZoomViewport(gcObjID, dx, dy, zoom))
}

func (c *Client) SendChangeViewportSize(gcObjID, width, height uint16) bool {
	return c.sendFixed(encodeChangeViewportSize(gcObjID, width, height))
}

func (c *Client) SendDrawVTObject(gcObjID, objID uint16) bool {
	return c.sendFixed(encodeDrawVTObject(gcObjID, objID))
}

func (c *Client) SendCopyCanvasToPicture(gcObjID, pictureGraphicObjID uint16) bool {
	return c.sendFixed(encodeCopyCanvasToPicture(gcObjID, pictureGraphicObjID))
}

func (c *Client) SendCopyViewportToPicture(gcObjID, pictureGraphicObjID uint16) bool {
	return c.sendFixed(encodeCopyViewportToPicture(gcObjID, pictureGraphicObjID))
}
