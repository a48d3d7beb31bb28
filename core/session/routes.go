package session

import "github.com/linkudp/linkudp-cli/core/user"

// Route is a client-visible navigation target.
type Route string

const (
	RouteLogin             Route = "/login"
	RouteRegister          Route = "/register"
	RouteStudentOnboarding Route = "/onboarding/student"
	RouteTutorOnboarding   Route = "/onboarding/tutor"
	RouteStudentDashboard  Route = "/dashboard/student"
	RouteTutorDashboard    Route = "/dashboard/tutor"
	RouteStudentProfile    Route = "/profile/student"
	RouteTutorProfile      Route = "/profile/tutor"
	RouteAvailability      Route = "/profile/tutor/availability"
	RouteTutoringList      Route = "/tutoring"
	RouteTutoringCreate    Route = "/tutoring/create"
)

// Navigator is the navigation sink of the session manager; the frontend
// decides what "going to" a route means.
type Navigator interface {
	Push(route Route)
}

// DashboardFor maps a role to its post-login dashboard. Unknown or
// ambiguous roles resolve to the student dashboard.
func DashboardFor(role user.Role) Route {
	if role.IsTutor() {
		return RouteTutorDashboard
	}
	return RouteStudentDashboard
}

// OnboardingFor maps a role to its post-registration onboarding flow.
// STUDENT and BOTH onboard as students first; unknown roles default to
// student onboarding.
func OnboardingFor(role user.Role) Route {
	if role == user.RoleTutor {
		return RouteTutorOnboarding
	}
	return RouteStudentOnboarding
}
