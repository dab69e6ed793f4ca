// Package delivery provides the bounded polling loop used to wait for a
// mailbox message.
//
// # Polling
//
// A [Poller] issues up to Attempts sequential checks, pausing Period between
// them. There is no pause before the first check, after a successful check,
// or after the final unsuccessful one, so a poll that finds its message on
// attempt k waits exactly (k-1) * Period.
//
//	p := &delivery.Poller{Period: 5 * time.Second, Attempts: 10}
//	res, err := p.Poll(ctx, func(ctx context.Context) (string, error) {
//	    return backend.Check(ctx, id)
//	})
//
// A check returning an empty message means "not yet received" and is retried.
// A check returning an error aborts the poll immediately.
//
// # Waiting
//
// The pause is performed by a [WaitFunc]. [Sleep] blocks on a timer and
// honours context cancellation. Tests inject a function that records the
// requested durations instead of sleeping.
//
// # Cancellation
//
// The context is consulted between attempts only. A request already in
// flight is allowed to finish, and a cancelled poll reports
// [OutcomeCancelled], which is distinct from [OutcomeExhausted].
package delivery
