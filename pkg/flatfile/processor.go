package flatfile

// Processor is the per-field extension point. The engine invokes it once per
// line with the raw extracted substring; the Result decides whether the value
// is stored as-is, stored with a warning attached, or replaced by an empty
// placeholder with a rejection warning. Processors are supplied by the
// caller, never by the engine.
type Processor interface {
	Process(raw string) Result
}

// ProcessorFunc adapts an ordinary function to the Processor interface.
type ProcessorFunc func(raw string) Result

// Process calls f(raw).
func (f ProcessorFunc) Process(raw string) Result { return f(raw) }

// Result is the outcome of processing one raw field value. Exactly one of
// the three shapes is meaningful:
//   - accepted:              Err == nil, Warning == ""
//   - accepted with warning: Err == nil, Warning != ""
//   - rejected:              Err != nil (Value is ignored)
type Result struct {
	Value   string
	Warning string
	Err     error
}

// Accept returns a Result storing value unchanged.
func Accept(value string) Result {
	return Result{Value: value}
}

// AcceptWarning returns a Result storing value but attaching a warning
// message to the load.
func AcceptWarning(value, warning string) Result {
	return Result{Value: value, Warning: warning}
}

// Reject returns a Result discarding the value; the record gets an empty
// placeholder and the load gets a warning carrying err's message.
func Reject(err error) Result {
	return Result{Err: err}
}
