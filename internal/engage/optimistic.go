package engage

// Optimistic runs the shared toggle contract: snapshot the current value,
// apply the guessed next value, await the effect, and on failure restore the
// snapshot. When the effect reports an authoritative value it overwrites the
// guess; otherwise the guess stands.
//
// set is invoked synchronously for every transition, so wiring it to both
// in-memory state and the local cache keeps the two in lockstep, reverts
// included.
func Optimistic[T any](get func() T, set func(T), next T, effect func() (T, bool, error)) error {
	snapshot := get()
	set(next)

	settled, authoritative, err := effect()
	if err != nil {
		set(snapshot)
		return err
	}
	if authoritative {
		set(settled)
	}
	return nil
}
