package user

import (
	"github.com/linkudp/linkudp-cli/core"
)

// Role determines which profile sub-entity and dashboard apply to a User.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleBoth    Role = "BOTH"
)

var AllRoles = []Role{RoleStudent, RoleTutor, RoleBoth}

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStudent reports whether the role carries a student profile.
func (r Role) IsStudent() bool { return r == RoleStudent || r == RoleBoth }

// IsTutor reports whether the role carries a tutor profile.
func (r Role) IsTutor() bool { return r == RoleTutor || r == RoleBoth }

// DayOfWeek is the backend's availability day enum.
type DayOfWeek string

const (
	Lunes     DayOfWeek = "LUNES"
	Martes    DayOfWeek = "MARTES"
	Miercoles DayOfWeek = "MIERCOLES"
	Jueves    DayOfWeek = "JUEVES"
	Viernes   DayOfWeek = "VIERNES"
	Sabado    DayOfWeek = "SABADO"
	Domingo   DayOfWeek = "DOMINGO"
)

var AllDays = []DayOfWeek{Lunes, Martes, Miercoles, Jueves, Viernes, Sabado, Domingo}

func (d DayOfWeek) Valid() bool {
	for _, day := range AllDays {
		if d == day {
			return true
		}
	}
	return false
}

type User struct {
	ID            int    `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	PhotoURL      string `json:"photo_url,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// Interest is a course a student wants tutoring in.
type Interest struct {
	CourseID   int    `json:"courseId"`
	CourseName string `json:"courseName"`
}

type StudentProfile struct {
	University string     `json:"university,omitempty"`
	Career     string     `json:"career,omitempty"`
	StudyYear  int        `json:"study_year,omitempty"`
	Bio        string     `json:"bio,omitempty"`
	Interests  []Interest `json:"interests"`
}

// TutorCourse is a course a tutor offers, with the level taught and the
// grade the tutor obtained in it (Chilean 1.0 - 7.0 scale).
type TutorCourse struct {
	CourseID   int      `json:"courseId" validate:"required"`
	CourseName string   `json:"courseName,omitempty"`
	Level      string   `json:"level" validate:"required"`
	Grade      *float64 `json:"grade,omitempty" validate:"omitempty,grade"`
}

// AvailabilityBlock is a weekly recurring time window a tutor offers.
type AvailabilityBlock struct {
	DayOfWeek DayOfWeek `json:"day_of_week" validate:"required,weekday"`
	StartTime string    `json:"start_time" validate:"required,hhmm"`
	EndTime   string    `json:"end_time" validate:"required,hhmm"`
}

type TutorProfile struct {
	Bio                  string              `json:"bio"`
	CVURL                string              `json:"cv_url,omitempty"`
	ExperienceDetails    string              `json:"experience_details,omitempty"`
	TutoringContactEmail string              `json:"tutoring_contact_email,omitempty"`
	TutoringPhone        string              `json:"tutoring_phone,omitempty"`
	Courses              []TutorCourse       `json:"courses"`
	Availability         []AvailabilityBlock `json:"availability"`
}

// Profile is the /profile/me payload: the base user plus the sub-profiles its
// role permits. The role field discriminates which sub-profiles are expected;
// a BOTH user may carry both.
type Profile struct {
	User           User            `json:"user"`
	StudentProfile *StudentProfile `json:"studentProfile,omitempty"`
	TutorProfile   *TutorProfile   `json:"tutorProfile,omitempty"`
}

// Student returns the student sub-profile when the role permits one.
func (p *Profile) Student() (*StudentProfile, bool) {
	if p == nil || !p.User.Role.IsStudent() || p.StudentProfile == nil {
		return nil, false
	}
	return p.StudentProfile, true
}

// Tutor returns the tutor sub-profile when the role permits one.
func (p *Profile) Tutor() (*TutorProfile, bool) {
	if p == nil || !p.User.Role.IsTutor() || p.TutorProfile == nil {
		return nil, false
	}
	return p.TutorProfile, true
}

// Credentials is the POST /auth/login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.Validate.Struct(c)
}

// RegisterData is the POST /auth/register payload.
type RegisterData struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,role"`
}

func (rd *RegisterData) Validate() error {
	rd.FullName = core.CleanString(rd.FullName)
	rd.Email = core.CleanString(rd.Email, true /* lower */)
	return core.Validate.Struct(rd)
}

// UpdateStudentProfile is the PATCH /profile/me payload of the student
// onboarding and profile-edit forms.
type UpdateStudentProfile struct {
	University        string `json:"university" validate:"required"`
	Career            string `json:"career,omitempty"`
	StudyYear         int    `json:"study_year" validate:"required,min=1,max=10"`
	Bio               string `json:"bio"`
	InterestCourseIDs []int  `json:"interestCourseIds,omitempty"`
}

func (up *UpdateStudentProfile) Validate() error {
	up.University = core.CleanString(up.University)
	up.Career = core.CleanString(up.Career)
	return core.Validate.Struct(up)
}

// UpdateGeneralProfile is the PATCH /profile/me payload of the tutor
// profile form (base user fields shared across roles).
type UpdateGeneralProfile struct {
	FullName string `json:"full_name" validate:"required"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Bio      string `json:"bio,omitempty"`
}

func (up *UpdateGeneralProfile) Validate() error {
	up.FullName = core.CleanString(up.FullName)
	return core.Validate.Struct(up)
}

// UpdateTutorProfile is the PATCH /profile/me/tutor payload.
type UpdateTutorProfile struct {
	CVURL                string              `json:"cv_url,omitempty" validate:"omitempty,url"`
	ExperienceDetails    string              `json:"experience_details,omitempty"`
	TutoringContactEmail string              `json:"tutoring_contact_email,omitempty" validate:"omitempty,email"`
	TutoringPhone        string              `json:"tutoring_phone,omitempty"`
	Courses              []TutorCourse       `json:"courses" validate:"dive"`
	Availability         []AvailabilityBlock `json:"availability" validate:"dive"`
}

func (up *UpdateTutorProfile) Validate() error {
	up.TutoringContactEmail = core.CleanString(up.TutoringContactEmail, true /* lower */)
	return core.Validate.Struct(up)
}
