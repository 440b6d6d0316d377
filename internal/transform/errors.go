package transform

// FitError reports a fit that failed to converge or produced non-physical
// parameters. Inputs are static files, so there is nothing to retry; the
// owning pipeline aborts.
type FitError struct {
	Detail string
}

func (e *FitError) Error() string { return "fit failed: " + e.Detail }
