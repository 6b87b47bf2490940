package stream

import "context"

// CombineLatest joins two streams into one, recomputing with the newest
// pair whenever either side emits. Nothing is produced until both sides
// have emitted at least once; neither side is required to arrive first.
func CombineLatest[A any, B any, R any](ctx context.Context, a <-chan A, b <-chan B, combine func(A, B) R) <-chan R {
	out := make(chan R, 1)

	go func() {
		defer close(out)

		var lastA A
		var lastB B
		var hasA, hasB bool

		for {
			select {
			case <-ctx.Done():
				return
			case value, ok := <-a:
				if !ok {
					a = nil
					if b == nil {
						return
					}
					continue
				}
				lastA, hasA = value, true
			case value, ok := <-b:
				if !ok {
					b = nil
					if a == nil {
						return
					}
					continue
				}
				lastB, hasB = value, true
			}

			if hasA && hasB {
				OfferLatest(out, combine(lastA, lastB))
			}
		}
	}()

	return out
}
