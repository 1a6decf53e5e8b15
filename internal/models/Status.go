package models

// RouteStatus is the planner-set operational phase of a route. It is never derived
// from the statuses of the route's stops.
type RouteStatus string

const (
	RouteStatusPending     RouteStatus = "pending"
	RouteStatusInProgress  RouteStatus = "in_progress"
	RouteStatusDelivered   RouteStatus = "delivered"
	RouteStatusCancelled   RouteStatus = "cancelled"
	RouteStatusRescheduled RouteStatus = "rescheduled"
)

func (s RouteStatus) String() string {
	return string(s)
}

func (s RouteStatus) IsValid() bool {
	switch s {
	case RouteStatusPending, RouteStatusInProgress, RouteStatusDelivered, RouteStatusCancelled, RouteStatusRescheduled:
		return true
	default:
		return false
	}
}

// AllRouteStatuses returns every route status in display order.
func AllRouteStatuses() []RouteStatus {
	return []RouteStatus{
		RouteStatusPending,
		RouteStatusInProgress,
		RouteStatusDelivered,
		RouteStatusCancelled,
		RouteStatusRescheduled,
	}
}

// StopStatus is the fulfillment outcome of a single stop, moved by the driver app.
type StopStatus string

const (
	StopStatusPending      StopStatus = "pending"
	StopStatusEnRoute      StopStatus = "en_route"
	StopStatusDelivered    StopStatus = "delivered"
	StopStatusNotDelivered StopStatus = "not_delivered"
	StopStatusCancelled    StopStatus = "cancelled"
)

func (s StopStatus) String() string {
	return string(s)
}

func (s StopStatus) IsValid() bool {
	switch s {
	case StopStatusPending, StopStatusEnRoute, StopStatusDelivered, StopStatusNotDelivered, StopStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once a stop can no longer change status.
func (s StopStatus) IsTerminal() bool {
	return s == StopStatusDelivered || s == StopStatusNotDelivered || s == StopStatusCancelled
}

// CanTransitionTo reports whether a stop may move from s to next:
//
//	pending  -> en_route | cancelled
//	en_route -> delivered | not_delivered | cancelled
//
// Setting the current status again is accepted as a no-op.
func (s StopStatus) CanTransitionTo(next StopStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == StopStatusCancelled {
		return true
	}
	switch s {
	case StopStatusPending:
		return next == StopStatusEnRoute
	case StopStatusEnRoute:
		return next == StopStatusDelivered || next == StopStatusNotDelivered
	}
	return false
}

// AllStopStatuses returns every stop status in display order.
func AllStopStatuses() []StopStatus {
	return []StopStatus{
		StopStatusPending,
		StopStatusEnRoute,
		StopStatusDelivered,
		StopStatusNotDelivered,
		StopStatusCancelled,
	}
}
