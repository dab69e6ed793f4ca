// Package smsactivate provides a Go client for the SMS-Activate temporary
// email service.
//
// A client buys an email activation (a temporary mailbox expecting mail from
// one site), polls the service until the message arrives, and can reactivate
// the mailbox to receive another message without buying a new one.
//
// Basic usage:
//
//	client, err := smsactivate.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	domain := smsactivate.EmailDomain{Name: "gmail.com", Type: smsactivate.DomainPopular}
//	activation, err := client.BuyEmailActivation(ctx, "instagram.com", domain)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Poll up to 12 times, 5 seconds apart.
//	text, err := activation.GetText(ctx,
//	    smsactivate.WithPeriod(5*time.Second),
//	    smsactivate.WithAttempts(12),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if text == "" {
//	    fmt.Println("no message yet")
//	}
//
// Exhausting the attempt budget is not an error: GetText returns an empty
// string and LastPoll reports what happened. Use GetTextStrict to treat
// exhaustion as [ErrAttemptsExhausted].
package smsactivate
