package dashboard

import "context"

type ResultStatus string

const (
	ResultFound ResultStatus = "found"
	ResultEmpty ResultStatus = "empty"
	ResultFault ResultStatus = "fault"
)

// Result is what every store read returns. A fault carries the underlying
// error for logging; callers fall back to sample data on anything but found.
type Result struct {
	Records []Record
	Err     error
}

func Found(records []Record) Result {
	return Result{Records: records}
}

func Empty() Result {
	return Result{}
}

func Fault(err error) Result {
	return Result{Err: err}
}

func (r Result) Status() ResultStatus {
	switch {
	case r.Err != nil:
		return ResultFault
	case len(r.Records) == 0:
		return ResultEmpty
	default:
		return ResultFound
	}
}

// StoreAPI is the read surface the dashboard needs from a backing store.
// Implementations never return bare errors; faults travel inside Result.
type StoreAPI interface {
	ListUsers(ctx context.Context, limit int) Result
	QueryMetrics(ctx context.Context, alias string) Result
	ListTeam(ctx context.Context, managerAlias string) Result
}

// NopStore never has data. It backs deployments without provisioned storage.
type NopStore struct{}

func (NopStore) ListUsers(context.Context, int) Result       { return Empty() }
func (NopStore) QueryMetrics(context.Context, string) Result { return Empty() }
func (NopStore) ListTeam(context.Context, string) Result     { return Empty() }
