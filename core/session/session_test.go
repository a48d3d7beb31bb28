package session

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkudp/linkudp-cli/core/user"
	"github.com/linkudp/linkudp-cli/services/linkapi"
	logsvc "github.com/linkudp/linkudp-cli/services/logger"
	"github.com/linkudp/linkudp-cli/storage/token"
)

// fakeAPI implements API with overridable behavior per test.
type fakeAPI struct {
	loginFn         func(creds user.Credentials) (string, error)
	registerFn      func(data user.RegisterData) (string, error)
	meFn            func(token string) (*user.Profile, error)
	updateStudentFn func(token string, data user.UpdateStudentProfile) (*user.Profile, error)
	updateGeneralFn func(token string, data user.UpdateGeneralProfile) (*user.Profile, error)
	updateTutorFn   func(token string, data user.UpdateTutorProfile) (*user.Profile, error)

	meCalls int
}

func (f *fakeAPI) Login(_ context.Context, creds user.Credentials) (string, error) {
	return f.loginFn(creds)
}

func (f *fakeAPI) Register(_ context.Context, data user.RegisterData) (string, error) {
	return f.registerFn(data)
}

func (f *fakeAPI) Me(_ context.Context, token string) (*user.Profile, error) {
	f.meCalls++
	return f.meFn(token)
}

func (f *fakeAPI) UpdateStudentProfile(_ context.Context, token string, data user.UpdateStudentProfile) (*user.Profile, error) {
	return f.updateStudentFn(token, data)
}

func (f *fakeAPI) UpdateGeneralProfile(_ context.Context, token string, data user.UpdateGeneralProfile) (*user.Profile, error) {
	return f.updateGeneralFn(token, data)
}

func (f *fakeAPI) UpdateTutorProfile(_ context.Context, token string, data user.UpdateTutorProfile) (*user.Profile, error) {
	return f.updateTutorFn(token, data)
}

// recordingNav collects pushed routes.
type recordingNav struct {
	routes []Route
}

func (n *recordingNav) Push(route Route) { n.routes = append(n.routes, route) }

func profileWithRole(role user.Role) *user.Profile {
	return &user.Profile{User: user.User{ID: 7, FullName: "Ana", Email: "a@udp.cl", Role: role}}
}

func newTestManager(api API) (*Manager, *token.DummyStore, *recordingNav) {
	tokens := token.NewDummyStore("")
	nav := &recordingNav{}
	logger := logsvc.NewConsoleLogger(log.New(io.Discard, "", 0), false)
	return NewManager(api, tokens, nav, logger), tokens, nav
}

func TestManager_Login(t *testing.T) {
	tests := []struct {
		name      string
		role      user.Role
		wantRoute Route
	}{
		{name: "student goes to student dashboard", role: user.RoleStudent, wantRoute: RouteStudentDashboard},
		{name: "tutor goes to tutor dashboard", role: user.RoleTutor, wantRoute: RouteTutorDashboard},
		{name: "both goes to tutor dashboard", role: user.RoleBoth, wantRoute: RouteTutorDashboard},
		{name: "unknown role defaults to student dashboard", role: "WEIRD", wantRoute: RouteStudentDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				loginFn: func(creds user.Credentials) (string, error) {
					assert.Equal(t, "a@udp.cl", creds.Email)
					return "t1", nil
				},
				meFn: func(tok string) (*user.Profile, error) {
					assert.Equal(t, "t1", tok)
					return profileWithRole(tt.role), nil
				},
			}
			mgr, tokens, nav := newTestManager(api)

			profile, err := mgr.Login(context.Background(), user.Credentials{Email: "a@udp.cl", Password: "x"})
			require.NoError(t, err)
			require.NotNil(t, profile)

			got, _ := tokens.Get()
			assert.Equal(t, "t1", got)
			assert.Equal(t, []Route{tt.wantRoute}, nav.routes)
		})
	}
}

func TestManager_Login_badCredentials(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(user.Credentials) (string, error) {
			return "", linkapi.ErrUnauthenticated
		},
	}
	mgr, tokens, nav := newTestManager(api)

	_, err := mgr.Login(context.Background(), user.Credentials{Email: "a@udp.cl", Password: "bad"})
	assert.ErrorIs(t, err, ErrLoginFailed)

	got, _ := tokens.Get()
	assert.Empty(t, got, "no token persisted on failure")
	assert.Empty(t, nav.routes, "no navigation on failure")
}

func TestManager_Login_keepsPriorTokenOnFailure(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(user.Credentials) (string, error) {
			return "", linkapi.ErrUnauthenticated
		},
	}
	mgr, tokens, _ := newTestManager(api)
	require.NoError(t, tokens.Set("prior"))

	_, err := mgr.Login(context.Background(), user.Credentials{Email: "a@udp.cl", Password: "bad"})
	assert.ErrorIs(t, err, ErrLoginFailed)

	got, _ := tokens.Get()
	assert.Equal(t, "prior", got)
}

func TestManager_Login_invalidInputSkipsNetwork(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(user.Credentials) (string, error) {
			t.Fatal("Login should not be called with invalid credentials")
			return "", nil
		},
	}
	mgr, _, nav := newTestManager(api)

	_, err := mgr.Login(context.Background(), user.Credentials{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)
	assert.Empty(t, nav.routes)
}

func TestManager_Login_rejectsConcurrentCalls(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		loginFn: func(user.Credentials) (string, error) {
			close(started)
			<-release
			return "t1", nil
		},
		meFn: func(string) (*user.Profile, error) {
			return profileWithRole(user.RoleStudent), nil
		},
	}
	mgr, _, _ := newTestManager(api)

	done := make(chan error, 1)
	go func() {
		_, err := mgr.Login(context.Background(), user.Credentials{Email: "a@udp.cl", Password: "x"})
		done <- err
	}()
	<-started

	_, err := mgr.Login(context.Background(), user.Credentials{Email: "a@udp.cl", Password: "x"})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func signedToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestManager_Register(t *testing.T) {
	tests := []struct {
		name      string
		role      user.Role
		wantRoute Route
	}{
		{name: "student onboards as student", role: user.RoleStudent, wantRoute: RouteStudentOnboarding},
		{name: "both onboards as student", role: user.RoleBoth, wantRoute: RouteStudentOnboarding},
		{name: "tutor onboards as tutor", role: user.RoleTutor, wantRoute: RouteTutorOnboarding},
		{name: "unknown role defaults to student onboarding", role: "WEIRD", wantRoute: RouteStudentOnboarding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := signedToken(t, string(tt.role))
			api := &fakeAPI{
				registerFn: func(data user.RegisterData) (string, error) {
					return tok, nil
				},
				meFn: func(string) (*user.Profile, error) {
					return profileWithRole(tt.role), nil
				},
			}
			mgr, tokens, nav := newTestManager(api)

			reqRole := tt.role
			if !reqRole.Valid() {
				reqRole = user.RoleStudent // the form never submits an unknown role
			}
			_, err := mgr.Register(context.Background(), user.RegisterData{
				FullName: "Ana", Email: "a@udp.cl", Password: "x", Role: reqRole,
			})
			require.NoError(t, err)

			got, _ := tokens.Get()
			assert.Equal(t, tok, got)
			assert.Equal(t, []Route{tt.wantRoute}, nav.routes)
		})
	}
}

func TestManager_Register_failure(t *testing.T) {
	api := &fakeAPI{
		registerFn: func(user.RegisterData) (string, error) {
			return "", &linkapi.APIError{StatusCode: 409, Message: "ya existe"}
		},
	}
	mgr, tokens, nav := newTestManager(api)

	_, err := mgr.Register(context.Background(), user.RegisterData{
		FullName: "Ana", Email: "a@udp.cl", Password: "x", Role: user.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrRegisterFailed)

	got, _ := tokens.Get()
	assert.Empty(t, got)
	assert.Empty(t, nav.routes)
}

func TestManager_CurrentProfile_noToken(t *testing.T) {
	api := &fakeAPI{
		meFn: func(string) (*user.Profile, error) {
			t.Fatal("no request should be issued without a token")
			return nil, nil
		},
	}
	mgr, _, _ := newTestManager(api)

	profile, err := mgr.CurrentProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.Zero(t, api.meCalls)
}

func TestManager_CurrentProfile_rejectedTokenIsCleared(t *testing.T) {
	api := &fakeAPI{
		meFn: func(string) (*user.Profile, error) {
			return nil, linkapi.ErrUnauthenticated
		},
	}
	mgr, tokens, _ := newTestManager(api)
	require.NoError(t, tokens.Set("stale"))

	profile, err := mgr.CurrentProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)

	got, _ := tokens.Get()
	assert.Empty(t, got, "rejected token must be cleared")
}

func TestManager_CurrentProfile_idempotent(t *testing.T) {
	api := &fakeAPI{
		meFn: func(string) (*user.Profile, error) {
			p := profileWithRole(user.RoleStudent)
			p.StudentProfile = &user.StudentProfile{University: "UDP"}
			return p, nil
		},
	}
	mgr, tokens, _ := newTestManager(api)
	require.NoError(t, tokens.Set("t1"))

	first, err := mgr.CurrentProfile(context.Background())
	require.NoError(t, err)
	second, err := mgr.CurrentProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, api.meCalls)

	got, _ := tokens.Get()
	assert.Equal(t, "t1", got, "valid token left in place")
}

func TestManager_UpdateStudentProfile(t *testing.T) {
	submitted := []int{3, 5}
	api := &fakeAPI{
		updateStudentFn: func(tok string, data user.UpdateStudentProfile) (*user.Profile, error) {
			assert.Equal(t, "t1", tok)
			assert.Equal(t, submitted, data.InterestCourseIDs)
			p := profileWithRole(user.RoleStudent)
			p.StudentProfile = &user.StudentProfile{
				University: data.University,
				Interests: []user.Interest{
					{CourseID: 5, CourseName: "B"},
					{CourseID: 3, CourseName: "A"},
				},
			}
			return p, nil
		},
	}
	mgr, tokens, nav := newTestManager(api)
	require.NoError(t, tokens.Set("t1"))

	profile, err := mgr.UpdateStudentProfile(context.Background(), user.UpdateStudentProfile{
		University: "UDP", StudyYear: 3, InterestCourseIDs: submitted,
	})
	require.NoError(t, err)
	assert.Equal(t, []Route{RouteStudentDashboard}, nav.routes)

	// round trip: the submitted course ids come back as interests, order aside
	student, ok := profile.Student()
	require.True(t, ok)
	got := make(map[int]bool)
	for _, in := range student.Interests {
		got[in.CourseID] = true
	}
	want := make(map[int]bool)
	for _, id := range submitted {
		want[id] = true
	}
	assert.Equal(t, want, got)
}

func TestManager_UpdateStudentProfile_requiresToken(t *testing.T) {
	api := &fakeAPI{
		updateStudentFn: func(string, user.UpdateStudentProfile) (*user.Profile, error) {
			t.Fatal("no request should be issued without a token")
			return nil, nil
		},
	}
	mgr, _, nav := newTestManager(api)

	_, err := mgr.UpdateStudentProfile(context.Background(), user.UpdateStudentProfile{
		University: "UDP", StudyYear: 3,
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, nav.routes)
}

func TestManager_UpdateStudentProfile_failure(t *testing.T) {
	api := &fakeAPI{
		updateStudentFn: func(string, user.UpdateStudentProfile) (*user.Profile, error) {
			return nil, &linkapi.APIError{StatusCode: 500, Message: "boom"}
		},
	}
	mgr, tokens, nav := newTestManager(api)
	require.NoError(t, tokens.Set("t1"))

	profile, err := mgr.UpdateStudentProfile(context.Background(), user.UpdateStudentProfile{
		University: "UDP", StudyYear: 3,
	})
	assert.ErrorIs(t, err, ErrSaveProfile)
	assert.Nil(t, profile)
	assert.Empty(t, nav.routes, "no navigation on failure")
}

func TestManager_UpdateTutorProfile_abortsAfterGeneralFailure(t *testing.T) {
	api := &fakeAPI{
		updateGeneralFn: func(string, user.UpdateGeneralProfile) (*user.Profile, error) {
			return nil, &linkapi.APIError{StatusCode: 400, Message: "bad"}
		},
		updateTutorFn: func(string, user.UpdateTutorProfile) (*user.Profile, error) {
			t.Fatal("tutor-specific patch must not run after the general patch fails")
			return nil, nil
		},
	}
	mgr, tokens, _ := newTestManager(api)
	require.NoError(t, tokens.Set("t1"))

	_, err := mgr.UpdateTutorProfile(context.Background(),
		user.UpdateGeneralProfile{FullName: "Ana"}, user.UpdateTutorProfile{})
	assert.ErrorIs(t, err, ErrSaveProfile)
}

func TestManager_Logout(t *testing.T) {
	mgr, tokens, nav := newTestManager(&fakeAPI{})
	require.NoError(t, tokens.Set("t1"))

	require.NoError(t, mgr.Logout())
	got, _ := tokens.Get()
	assert.Empty(t, got)
	assert.Equal(t, []Route{RouteLogin}, nav.routes)

	// logging out twice is fine
	require.NoError(t, mgr.Logout())
	assert.Equal(t, []Route{RouteLogin, RouteLogin}, nav.routes)
}

func TestManager_WatchInvalidation_unsupportedStore(t *testing.T) {
	mgr, _, _ := newTestManager(&fakeAPI{})

	_, ok, err := mgr.WatchInvalidation(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "dummy store has no watch support")
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, RouteStudentDashboard, DashboardFor(user.RoleStudent))
	assert.Equal(t, RouteTutorDashboard, DashboardFor(user.RoleTutor))
	assert.Equal(t, RouteTutorDashboard, DashboardFor(user.RoleBoth))
	assert.Equal(t, RouteStudentDashboard, DashboardFor("WEIRD"))
}

func TestOnboardingFor(t *testing.T) {
	assert.Equal(t, RouteStudentOnboarding, OnboardingFor(user.RoleStudent))
	assert.Equal(t, RouteStudentOnboarding, OnboardingFor(user.RoleBoth))
	assert.Equal(t, RouteTutorOnboarding, OnboardingFor(user.RoleTutor))
	assert.Equal(t, RouteStudentOnboarding, OnboardingFor("WEIRD"))
}
