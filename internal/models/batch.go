package models

// FileResult is the outcome of stamping a single input file.
type FileResult struct {
	Input  string
	Output string
	Err    error
}

// BatchReport collects per-file results in input order.
type BatchReport struct {
	RunID   string
	Results []FileResult
}

func (r BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

func (r BatchReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Errors returns the failed results only.
func (r BatchReport) Errors() []FileResult {
	var failed []FileResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
