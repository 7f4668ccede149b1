// Package async runs functions in goroutines and collects their results
// through generic futures.
//
// Async starts fn and returns a *Future. Await blocks until it finishes,
// AwaitContext also gives up when a context is done, AwaitWithTimeout gives
// up after a duration with ErrTimeout, and IsComplete polls. A panic in fn
// completes the future with an error wrapping ErrPanic.
//
// Two fan-in helpers wait for several futures:
//
//   - WaitAll returns at the first error in argument order.
//   - Settle waits for all of them and keeps every value and error, which is
//     what the validation engine needs to report every failing validator.
//
// Fanning out over a slice of validators:
//
//	futures := make([]*async.Future[validator.Result], 0, len(vs))
//	for _, v := range vs {
//	    futures = append(futures, async.Async(ctx, v, run))
//	}
//	outcomes, err := async.Settle(ctx, futures...)
package async
