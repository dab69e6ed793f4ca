package smsactivate

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Reactivate asks the service to deliver a new message to the mailbox
// without buying a new one. On success the activation takes the id and
// email returned by the service, the cached message is cleared and the
// activation is ready for another GetText.
//
// An activation that was never purchased returns ErrInvalidState without a
// request. If the service no longer knows the activation, the error
// matches both ErrActivationNotFound and ErrInvalidState and the
// activation is left unchanged.
func (a *EmailActivation) Reactivate(ctx context.Context) error {
	a.mu.Lock()
	id := a.id
	state := a.state
	a.mu.Unlock()

	if id == 0 {
		return fmt.Errorf("%w: activation has no id", ErrInvalidState)
	}
	if state == StateCancelled {
		return fmt.Errorf("%w: activation is cancelled", ErrInvalidState)
	}

	resp, err := a.client.backend.ReorderMailActivation(ctx, id)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.id = int64(resp.ID)
	a.email = resp.Email
	a.fullMessage = ""
	a.status = 0
	a.value = ""
	a.date = ""
	a.lastPoll = nil
	a.state = StateWaiting
	a.mu.Unlock()

	a.client.logger.Info("reactivated email activation",
		zap.Int64("previous_id", id),
		zap.Int64("id", int64(resp.ID)),
		zap.String("email", resp.Email),
	)
	return nil
}

// Cancel cancels the mailbox with the service. A cancelled activation
// keeps its id, email and cached message but can no longer be polled or
// reactivated.
func (a *EmailActivation) Cancel(ctx context.Context) error {
	a.mu.Lock()
	id := a.id
	a.mu.Unlock()

	if id == 0 {
		return fmt.Errorf("%w: activation has no id", ErrInvalidState)
	}

	if err := a.client.backend.CancelMailActivation(ctx, id); err != nil {
		return err
	}

	a.mu.Lock()
	a.state = StateCancelled
	a.mu.Unlock()

	a.client.logger.Info("cancelled email activation", zap.Int64("id", id))
	return nil
}
