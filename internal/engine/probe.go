package engine

import "context"

// Probe verifies the engine is discoverable and runnable with a trivial
// version query. The two causes are reported as distinct kinds: the binary
// missing from the search path (KindToolMissing) versus the query exiting
// non-zero (KindToolProbeFailed).
func Probe(ctx context.Context, r Runner) error {
	if _, err := r.LookPath(Binary); err != nil {
		return &Error{Kind: KindToolMissing, Op: "probe", Err: err}
	}
	if res := r.Run(ctx, Binary, []string{"-version"}); res.Err != nil {
		return &Error{Kind: KindToolProbeFailed, Op: "probe", Stderr: res.Stderr, Err: res.Err}
	}
	return nil
}
