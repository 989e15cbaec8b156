package dashboard

import (
	"context"
	"log/slog"

	"perfdash/internal/requestctx"
)

const (
	OpListUsers    = "list_users"
	OpQueryMetrics = "query_metrics"
	OpListTeam     = "list_team"
)

// Observer receives store outcomes. The metrics package implements it.
type Observer interface {
	ObserveStoreResult(operation string, status ResultStatus)
	ObserveFallback(operation string)
}

type nopObserver struct{}

func (nopObserver) ObserveStoreResult(string, ResultStatus) {}
func (nopObserver) ObserveFallback(string)                  {}

type Service struct {
	Store      StoreAPI
	usersLimit int
	logger     *slog.Logger
	observer   Observer
}

type ServiceOption func(*Service)

func WithUsersLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.usersLimit = limit
		}
	}
}

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithObserver(observer Observer) ServiceOption {
	return func(s *Service) {
		if observer != nil {
			s.observer = observer
		}
	}
}

func NewService(store StoreAPI, opts ...ServiceOption) *Service {
	if store == nil {
		store = NopStore{}
	}
	s := &Service{
		Store:      store,
		usersLimit: DefaultUsersLimit,
		logger:     slog.Default(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Users(ctx context.Context) UserList {
	res := s.Store.ListUsers(ctx, s.usersLimit)
	if s.useStore(ctx, OpListUsers, res) {
		return UserList{Users: UsersFromRecords(res.Records)}
	}
	return UserList{Users: SampleUsers()}
}

// UserDashboard takes identity from the sample directory even when metrics
// come from the store, so a handler costs at most one store round trip.
func (s *Service) UserDashboard(ctx context.Context, alias string) UserDashboard {
	res := s.Store.QueryMetrics(ctx, alias)
	if s.useStore(ctx, OpQueryMetrics, res, "alias", alias) {
		return UserDashboard{
			UserInfo: LookupUserInfo(alias),
			Metrics:  FormatMetrics(res.Records),
		}
	}
	return SampleUserDashboard(alias)
}

func (s *Service) TeamDashboard(ctx context.Context, managerAlias string) TeamDashboard {
	var members []TeamMember
	res := s.Store.ListTeam(ctx, managerAlias)
	if s.useStore(ctx, OpListTeam, res, "managerAlias", managerAlias) {
		members = TeamMembersFromRecords(res.Records)
	} else {
		members = SampleTeam(managerAlias)
	}

	return TeamDashboard{
		ManagerAlias: managerAlias,
		TeamSummary:  Summarize(members),
		TeamMembers:  members,
	}
}

func (s *Service) useStore(ctx context.Context, op string, res Result, attrs ...any) bool {
	status := res.Status()
	s.observer.ObserveStoreResult(op, status)

	if status == ResultFound {
		return true
	}
	if caller, ok := requestctx.GetCaller(ctx); ok {
		attrs = append(attrs, "caller", caller)
	}
	switch status {
	case ResultFault:
		args := append([]any{"op", op, "err", res.Err}, attrs...)
		s.logger.InfoContext(ctx, "store not available, using sample data", args...)
	default:
		args := append([]any{"op", op}, attrs...)
		s.logger.DebugContext(ctx, "store returned no data, using sample data", args...)
	}
	s.observer.ObserveFallback(op)
	return false
}
