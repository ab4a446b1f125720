package realtime

import "context"

// Watch runs the read-and-refresh loop for one live view: subscribe to
// tables, fetch once, then fetch again for every notification received.
// Fetches are serial and each delivered notification causes exactly one.
//
// emit receives every result. On a fetch error it gets the last good value
// together with the error, so the caller can keep showing prior state.
// Watch returns when ctx is done, when the hub closes the subscription, or
// when emit returns an error; the subscription is always released.
func Watch[T any](ctx context.Context, hub *Hub, tables []string, fetch func(context.Context) (T, error), emit func(T, error) error) error {
	sub := hub.Subscribe(tables...)
	defer sub.Unsubscribe()

	var last T
	refresh := func() error {
		v, err := fetch(ctx)
		if err != nil {
			return emit(last, err)
		}
		last = v
		return emit(v, nil)
	}

	if err := refresh(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-sub.C:
			if !ok {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := refresh(); err != nil {
				return err
			}
		}
	}
}
