package rampart

// Input routing. Once per frame, after the cursor snapshot is applied and
// before any event dispatch, the manager walks the attached top-level
// controls in descending z-order (topmost first), resolving the single
// active control in the same pass that runs each control's update hook.
// Event dispatch then bubbles from the active control (or the exclusive
// capture holder) up the parent chain with early termination.

// routeFrame resolves the active control and runs every control's update.
//
// The candidacy check runs immediately before each control's update, so a
// control can observe whether it is active before running its own logic.
// After a control's update, if the active slot still points into its subtree
// and the active control is marked passthrough, the slot is vacated: a
// control further back in z-order may claim it later in the same pass.
// Passthrough never re-hit-tests controls already visited.
func (m *Manager) routeFrame() {
	m.active = nil

	cx, cy := m.cursor.X, m.cursor.Y

	for i := len(m.ordered) - 1; i >= 0; i-- {
		c := m.ordered[i]
		b := c.UI()
		if b.Detached {
			continue
		}
		if !b.Enabled {
			continue
		}
		if m.focused && b.InputEnabled &&
			((m.active == nil && b.WindowRect().Contains(cx, cy)) || c == m.selected) {
			m.active = c
		}
		m.safeUpdate(c)
		if m.active != nil && withinSubtree(c, m.active) && m.active.UI().Passthrough {
			m.active = nil
		}
	}

	// Detached controls update out of band and never participate in the
	// active-control scan.
	for i := len(m.ordered) - 1; i >= 0; i-- {
		c := m.ordered[i]
		if c.UI().Detached && c.UI().Enabled {
			m.safeUpdate(c)
		}
	}
}

// SetActive overrides this frame's active control. Intended for container
// controls that hit-test their own children during update and want events
// routed to the child rather than themselves.
func (m *Manager) SetActive(c Control) { m.active = c }

// DelegateActive hit-tests c's subtree and hands this frame's activity to
// the deepest eligible descendant under the cursor. Call it from a
// container's update hook; it does nothing unless c is currently the active
// control. Children that are invisible, disabled, input-disabled, or
// passthrough are skipped, so a click over a passthrough child still lands
// on the container.
func (m *Manager) DelegateActive(c Control) {
	if m.active == nil || m.active.UI() != c.UI() {
		return
	}
	cx, cy := m.cursor.X, m.cursor.Y
	cur := c
	for {
		next := topChildAt(cur, cx, cy)
		if next == nil {
			break
		}
		cur = next
	}
	if cur.UI() != c.UI() {
		m.active = cur
	}
}

// topChildAt returns c's topmost eligible child containing the point, or nil.
func topChildAt(c Control, x, y float64) Control {
	children := c.UI().Children()
	for i := len(children) - 1; i >= 0; i-- {
		b := children[i].UI()
		if !b.Visible || !b.Enabled || !b.InputEnabled || b.Passthrough {
			continue
		}
		if b.WindowRect().Contains(x, y) {
			return children[i]
		}
	}
	return nil
}

// dispatchEvents synthesizes the frame's routed events from the cursor
// edges and latches.
//
// Exclusive capture: while the selected control requires exclusive input
// and a button from the original press is still involved (held or released
// this frame), all events target the selected control and new press edges
// are suppressed outright when the cursor is over something else. Release
// edges still dispatch so the original press completes cleanly.
func (m *Manager) dispatchEvents() {
	target := m.active
	suppressPress := false
	if m.selected != nil && m.selected.UI().ExclusiveInput &&
		(m.cursor.AnyDown() || m.cursor.AnyReleased()) {
		if m.selected != m.active {
			suppressPress = true
		}
		target = m.selected
	}

	// Switching targets abandons any pending click latches on the old one.
	if m.latchTarget != target {
		m.clearLatches(target)
	}

	if target == nil {
		return
	}

	if m.cursor.Left.Pressed && !suppressPress {
		m.leftOn = true
		m.bubble(InputLeftDown, target)
	}
	if m.leftOn && !m.cursor.Left.Down {
		m.leftOn = false
		m.bubble(InputLeftClick, target)
	}

	if m.cursor.Right.Pressed && !suppressPress {
		m.rightOn = true
		m.bubble(InputRightDown, target)
	}
	if m.rightOn && !m.cursor.Right.Down {
		m.rightOn = false
		m.bubble(InputRightClick, target)
	}

	if m.cursor.Middle.Pressed && !suppressPress {
		m.middleOn = true
		m.bubble(InputMiddleDown, target)
	}
	if m.middleOn && !m.cursor.Middle.Down {
		m.middleOn = false
		m.bubble(InputMiddleClick, target)
	}

	// Scroll is level-triggered: delivered every frame the delta is
	// nonzero, independent of the click latches.
	if m.cursor.WheelY != 0 {
		m.bubble(InputScrollV, target)
	}
	if m.cursor.WheelX != 0 {
		m.bubble(InputScrollH, target)
	}
}

func (m *Manager) clearLatches(newTarget Control) {
	m.latchTarget = newTarget
	m.leftOn = false
	m.rightOn = false
	m.middleOn = false
}

// bubble runs one bubbling pass for the given kind, starting at target and
// walking up the parent chain. Passthrough controls are skipped entirely. A
// control whose Consumes mask declares the kind marks the shared record
// handled; its hook still runs, and the walk stops once the record is
// handled (whether by declaration or by the hook itself). If nothing
// declares ownership the event is still delivered to every non-passthrough
// ancestor.
func (m *Manager) bubble(kind InputKind, target Control) {
	m.latchTarget = target

	ev := &m.ev
	*ev = InputEvent{
		Kind:    kind,
		X:       m.cursor.X,
		Y:       m.cursor.Y,
		ScrollX: m.cursor.WheelX,
		ScrollY: m.cursor.WheelY,
		Target:  target,
	}

	for c := target; c != nil; c = c.UI().parent {
		b := c.UI()
		if b.Passthrough {
			continue
		}
		if b.Consumes&kind.Mask() != 0 {
			ev.Handled = true
		}
		if h := b.hook(kind); h != nil {
			h(ev)
		}
		if ev.Handled {
			break
		}
	}

	if m.sink != nil {
		m.sink.HandleEvent(RoutedEvent{
			Kind:       kind,
			TargetName: target.UI().Name(),
			X:          ev.X,
			Y:          ev.Y,
			ScrollX:    ev.ScrollX,
			ScrollY:    ev.ScrollY,
			Handled:    ev.Handled,
		})
	}
}

// invalidateCapture runs after the full control pass: an exclusive-capture
// selection is released once no mouse button is held, or once the chain
// from the selected control to the root is no longer enabled and
// input-enabled.
func (m *Manager) invalidateCapture() {
	if m.selected == nil || !m.selected.UI().ExclusiveInput {
		return
	}
	if !m.cursor.AnyDown() || !inputChainEnabled(m.selected) {
		m.selected = nil
	}
}
