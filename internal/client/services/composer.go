package services

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"

	"github.com/ndemidova/chattr/internal/client/models"
)

// Composer states. A thread view owns one Composer; the send control is
// enabled exactly when the machine sits in StateComposing.
const (
	StateIdle      = "Idle"
	StateComposing = "Composing"
	StateSending   = "Sending"
)

// Composer triggers.
const (
	triggerEdit  = "Edit"
	triggerClear = "Clear"
	triggerSend  = "Send"
	triggerSent  = "Sent"
	triggerFail  = "Fail"
)

// Composer drives the draft lifecycle of a single thread view:
// Idle → Composing (non-empty draft) → Sending (send) → Idle (appended).
// Sending is local-only — the message goes into the thread cache, not onto
// the wire — so the only misuse the machine has to forbid is sending an
// empty draft, which it does by never permitting Send outside Composing.
type Composer struct {
	chatID string
	thread ThreadService

	fsm   *stateless.StateMachine
	draft string
}

// NewComposer returns an idle composer for the given thread.
func NewComposer(chatID string, thread ThreadService) *Composer {
	c := &Composer{chatID: chatID, thread: thread}

	fsm := stateless.NewStateMachine(StateIdle)

	fsm.Configure(StateIdle).
		Permit(triggerEdit, StateComposing).
		Ignore(triggerClear)

	fsm.Configure(StateComposing).
		PermitReentry(triggerEdit).
		Permit(triggerClear, StateIdle).
		Permit(triggerSend, StateSending)

	fsm.Configure(StateSending).
		Permit(triggerSent, StateIdle).
		Permit(triggerFail, StateComposing)

	c.fsm = fsm
	return c
}

// SetDraft replaces the draft text and moves the machine between Idle and
// Composing accordingly.
func (c *Composer) SetDraft(text string) {
	c.draft = text
	if text == "" {
		_ = c.fsm.Fire(triggerClear)
		return
	}
	_ = c.fsm.Fire(triggerEdit)
}

// Draft returns the current draft text.
func (c *Composer) Draft() string {
	return c.draft
}

// State returns the current machine state.
func (c *Composer) State() string {
	return c.fsm.MustState().(string)
}

// CanSend reports whether the send control should be enabled.
func (c *Composer) CanSend() bool {
	return c.State() == StateComposing
}

// Send appends the draft to the thread cache as a message authored by the
// local user and returns to Idle with an empty draft. Firing Send outside
// Composing (empty draft, send already in flight) is rejected by the
// machine; a cache failure returns the composer to Composing with the draft
// intact so the user can retry.
func (c *Composer) Send(ctx context.Context) (*models.Message, error) {
	if err := c.fsm.Fire(triggerSend); err != nil {
		return nil, fmt.Errorf("cannot send from state %s: %w", c.State(), err)
	}

	m, err := c.thread.Append(ctx, c.chatID, c.draft, models.AuthorSelf)
	if err != nil {
		_ = c.fsm.Fire(triggerFail)
		return nil, err
	}

	c.draft = ""
	_ = c.fsm.Fire(triggerSent)
	return m, nil
}
