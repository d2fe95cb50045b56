package vtclient

// SoftKeyHandler, ButtonHandler, PointingHandler, and SelectInputHandler
// are the four event subscriber shapes. The client passes itself through
// so a handler may issue follow-up commands without capturing anything
// beyond what Subscribe already gave it — this replaces the source
// header's "static method + void* context" pattern (§9) with a typed
// closure.
type SoftKeyHandler func(c *Client, e *SoftKeyEvent)
type ButtonHandler func(c *Client, e *ButtonEvent)
type PointingHandler func(c *Client, e *PointingEvent)
type SelectInputHandler func(c *Client, e *SelectInputObjectEvent)

type softKeySub struct {
	id int
	fn SoftKeyHandler
}
type buttonSub struct {
	id int
	fn ButtonHandler
}
type pointingSub struct {
	id int
	fn PointingHandler
}
type selectInputSub struct {
	id int
	fn SelectInputHandler
}

// dispatcher maintains the four ordered subscriber lists described in
// §4.5. Insertion order is delivery order; an Unsubscribe closure removes
// exactly the entry it was returned for, which stands in for the source
// header's function-pointer-equality removal (Go function values are not
// comparable).
type dispatcher struct {
	nextID int

	softKeys     []softKeySub
	buttons      []buttonSub
	pointing     []pointingSub
	selectInputs []selectInputSub
}

func newDispatcher() *dispatcher {
	return &dispatcher{}
}

func (d *dispatcher) subscribeSoftKey(fn SoftKeyHandler) func() {
	id := d.nextID
	d.nextID++
	d.softKeys = append(d.softKeys, softKeySub{id: id, fn: fn})
	return func() {
		for i, s := range d.softKeys {
			if s.id == id {
				d.softKeys = append(d.softKeys[:i:i], d.softKeys[i+1:]...)
				return
			}
		}
	}
}

func (d *dispatcher) subscribeButton(fn ButtonHandler) func() {
	id := d.nextID
	d.nextID++
	d.buttons = append(d.buttons, buttonSub{id: id, fn: fn})
	return func() {
		for i, s := range d.buttons {
			if s.id == id {
				d.buttons = append(d.buttons[:i:i], d.buttons[i+1:]...)
				return
			}
		}
	}
}

func (d *dispatcher) subscribePointing(fn PointingHandler) func() {
	id := d.nextID
	d.nextID++
	d.pointing = append(d.pointing, pointingSub{id: id, fn: fn})
	return func() {
		for i, s := range d.pointing {
			if s.id == id {
				d.pointing = append(d.pointing[:i:i], d.pointing[i+1:]...)
				return
			}
		}
	}
}

func (d *dispatcher) subscribeSelectInput(fn SelectInputHandler) func() {
	id := d.nextID
	d.nextID++
	d.selectInputs = append(d.selectInputs, selectInputSub{id: id, fn: fn})
	return func() {
		for i, s := range d.selectInputs {
			if s.id == id {
				d.selectInputs = append(d.selectInputs[:i:i], d.selectInputs[i+1:]...)
				return
			}
		}
	}
}

// snapshotSoftKey, snapshotButton, snapshotPointing, and
// snapshotSelectInput copy the current subscriber list. They are called
// while the client's mutex is held; the caller then releases the mutex
// before invoking the snapshot, so that (a) a handler that
// subscribes/unsubscribes mid-dispatch cannot invalidate the iteration,
// and (b) a handler's follow-up commands never deadlock against the
// client's own lock (see handleReceive in driver.go).
func (d *dispatcher) snapshotSoftKey() []softKeySub {
	return append([]softKeySub(nil), d.softKeys...)
}

func (d *dispatcher) snapshotButton() []buttonSub {
	return append([]buttonSub(nil), d.buttons...)
}

func (d *dispatcher) snapshotPointing() []pointingSub {
	return append([]pointingSub(nil), d.pointing...)
}

func (d *dispatcher) snapshotSelectInput() []selectInputSub {
	return append([]selectInputSub(nil), d.selectInputs...)
}
